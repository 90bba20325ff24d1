package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role is the application role of an identity.
type Role string

const (
	RoleAdminPendaftaran Role = "admin_pendaftaran"
	RoleDokter           Role = "dokter"
	RolePasien           Role = "pasien"
	RoleApoteker         Role = "apoteker"
	RolePembayaran       Role = "pembayaran"
)

// Roles lists the closed role enumeration.
var Roles = []Role{
	RoleAdminPendaftaran,
	RoleDokter,
	RolePasien,
	RoleApoteker,
	RolePembayaran,
}

// Valid reports whether r is one of the enumerated roles.
func (r Role) Valid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

// ParseRole converts a stored or submitted value into a Role.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}

// UserRole maps an identity to its single role. The unique index on
// user_id rejects a second role for the same identity.
type UserRole struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID    string    `gorm:"size:36;uniqueIndex;not null" json:"user_id"`
	Role      Role      `gorm:"size:32;not null" json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// BeforeCreate assigns the row id.
func (r *UserRole) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return nil
}
