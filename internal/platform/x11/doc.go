// Package x11 provides Linux platform support using the X11 protocol and
// EWMH hints. X11 has no native menu bar handles, so every menu operation
// reports "no menu". On other systems the package compiles as a no-op.
package x11
