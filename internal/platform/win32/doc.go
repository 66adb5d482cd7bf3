// Package win32 provides Windows platform support using user32 and dwmapi.
// On other systems the package compiles as a no-op.
package win32
