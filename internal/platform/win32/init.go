//go:build windows

package win32

import "github.com/mj1618/winctl/internal/platform"

func init() {
	platform.NewProviderFunc = func() (*platform.Provider, error) {
		return &platform.Provider{
			System:  NewSystem(),
			Backend: "win32",
		}, nil
	}
}
