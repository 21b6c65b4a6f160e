// Package identity supplies the display name printed in report headers.
package identity

import (
	"os"
	"os/user"
	"strings"
)

// Provider supplies a display name for report headers. The rest of the
// system depends on nothing else from the identity layer.
type Provider interface {
	DisplayName() string
}

// Static returns a fixed display name.
type Static string

// DisplayName implements Provider.
func (s Static) DisplayName() string {
	return string(s)
}

// EnvProvider resolves the display name from DRILLWATCH_COACH, then a
// configured fallback, then the OS user name.
type EnvProvider struct {
	Fallback string
}

// DisplayName implements Provider.
func (p EnvProvider) DisplayName() string {
	if v := strings.TrimSpace(os.Getenv("DRILLWATCH_COACH")); v != "" {
		return v
	}
	if p.Fallback != "" {
		return p.Fallback
	}
	if u, err := user.Current(); err == nil {
		if u.Name != "" {
			return u.Name
		}
		return u.Username
	}
	return ""
}
