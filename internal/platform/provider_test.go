package platform

import (
	"errors"
	"testing"
)

func TestNewProvider_UnsupportedPlatform(t *testing.T) {
	// Temporarily clear the provider func to simulate unsupported platform
	orig := NewProviderFunc
	NewProviderFunc = nil
	defer func() { NewProviderFunc = orig }()

	_, err := NewProvider()
	if err == nil {
		t.Fatal("expected error on unsupported platform")
	}
	if err != ErrUnsupported {
		t.Errorf("expected ErrUnsupported, got: %v", err)
	}
}

func TestNewProvider_UsesRegisteredFunc(t *testing.T) {
	orig := NewProviderFunc
	defer func() { NewProviderFunc = orig }()

	closed := false
	NewProviderFunc = func() (*Provider, error) {
		return &Provider{Backend: "test", Close: func() error { closed = true; return nil }}, nil
	}

	p, err := NewProvider()
	if err != nil {
		t.Fatal(err)
	}
	if p.Backend != "test" {
		t.Errorf("Backend = %q, want test", p.Backend)
	}
	if err := p.Shutdown(); err != nil {
		t.Fatal(err)
	}
	if !closed {
		t.Error("Shutdown should call Close")
	}
}

func TestShutdown_NilSafe(t *testing.T) {
	var p *Provider
	if err := p.Shutdown(); err != nil {
		t.Errorf("nil provider Shutdown: %v", err)
	}
	if err := (&Provider{}).Shutdown(); err != nil {
		t.Errorf("provider without Close: %v", err)
	}
}

func TestNewProvider_PropagatesError(t *testing.T) {
	orig := NewProviderFunc
	defer func() { NewProviderFunc = orig }()

	boom := errors.New("cannot open display")
	NewProviderFunc = func() (*Provider, error) { return nil, boom }
	if _, err := NewProvider(); !errors.Is(err, boom) {
		t.Errorf("expected backend error, got %v", err)
	}
}
