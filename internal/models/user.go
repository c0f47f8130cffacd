package models

import "time"

type Role string

const (
	RoleSupplier     Role = "supplier"
	RoleManufacturer Role = "manufacturer"
	RoleWarehouse    Role = "warehouse"
	RoleRetailer     Role = "retailer"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleSupplier, RoleManufacturer, RoleWarehouse, RoleRetailer:
		return true
	default:
		return false
	}
}

func (r Role) String() string {
	return string(r)
}

// ParseRole maps a raw string onto the closed role enum. Comparison is
// exact-match; free-text or partial role names are rejected.
func ParseRole(s string) (Role, bool) {
	r := Role(s)
	return r, r.IsValid()
}

type User struct {
	ID           uint   `gorm:"primaryKey"`
	Name         string `gorm:"size:100;not null"`
	Email        string `gorm:"size:100;uniqueIndex;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	Role         Role   `gorm:"size:20;not null"` // immutable after registration
	Address      string `gorm:"size:255"`
	Contact      string `gorm:"size:50"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
