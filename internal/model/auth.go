package model

import (
	"github.com/google/uuid"
)

// Cookie names per role. Each role gets its own token namespace so a valid
// token of one kind cannot be replayed against routes of another.
const (
	CookieAdmin   = "adminToken"
	CookieDoctor  = "doctorToken"
	CookiePatient = "patientToken"
)

// CookieForRole maps a role to its cookie name.
func CookieForRole(rol Role) string {
	switch rol {
	case RoleAdministrador:
		return CookieAdmin
	case RoleDoctor:
		return CookieDoctor
	default:
		return CookiePatient
	}
}

// TokenClaims is the decoded identity carried in a role cookie.
type TokenClaims struct {
	UserID uuid.UUID `json:"user_id"`
	Correo string    `json:"correo"`
	Rol    Role      `json:"rol"`
}
