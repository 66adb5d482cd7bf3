package platform

import (
	"errors"
	"fmt"
	"runtime"
)

// Provider bundles the window system backend for the current OS.
type Provider struct {
	System  WindowSystem
	Backend string

	// Close releases backend resources such as the X server connection.
	// It may be nil.
	Close func() error
}

// ErrUnsupported is returned on unsupported platforms.
var ErrUnsupported = fmt.Errorf("winctl is not supported on %s/%s; supported: windows, linux (X11)", runtime.GOOS, runtime.GOARCH)

// ErrNoMenu is returned by backends that have no native menu bar to read or click.
var ErrNoMenu = errors.New("window has no native menu")

// ErrInvalidHandle is returned when a handle no longer refers to a live window.
var ErrInvalidHandle = errors.New("invalid window handle")

// NewProviderFunc is set by platform-specific packages via init().
// See internal/platform/win32 and internal/platform/x11.
var NewProviderFunc func() (*Provider, error)

// NewProvider returns a Provider for the current OS.
func NewProvider() (*Provider, error) {
	if NewProviderFunc == nil {
		return nil, ErrUnsupported
	}
	return NewProviderFunc()
}

// Shutdown calls p.Close when set.
func (p *Provider) Shutdown() error {
	if p == nil || p.Close == nil {
		return nil
	}
	return p.Close()
}
