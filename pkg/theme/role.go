package theme

import "github.com/matzehuels/okrdash/pkg/errors"

// Role names a palette slot. Panels refer to roles so that swapping the theme
// recolours every panel type at once.
type Role string

const (
	RoleAccent Role = "accent"
	RoleText   Role = "text"
	RoleMuted  Role = "muted"
	RoleAlert  Role = "alert"
)

// ParseRole maps a descriptor string to a Role. Empty means accent.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case "":
		return RoleAccent, nil
	case RoleAccent, RoleText, RoleMuted, RoleAlert:
		return Role(s), nil
	}
	return "", errors.New(errors.ErrCodeInvalidInput, "unknown color role %q (must be accent, text, muted or alert)", s)
}

// Resolve returns the color for a role.
func (t Theme) Resolve(r Role) Color {
	switch r {
	case RoleText:
		return t.Text
	case RoleMuted:
		return t.Muted
	case RoleAlert:
		return t.Alert
	default:
		return t.Accent
	}
}
