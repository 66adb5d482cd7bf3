//go:build linux

package x11

import (
	"fmt"

	"github.com/mj1618/winctl/internal/platform"
)

func init() {
	platform.NewProviderFunc = func() (*platform.Provider, error) {
		sys, err := NewSystem()
		if err != nil {
			return nil, fmt.Errorf("failed to connect to X11: %w", err)
		}
		return &platform.Provider{
			System:  sys,
			Backend: "x11",
			Close:   sys.Close,
		}, nil
	}
}
