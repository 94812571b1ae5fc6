package models

import (
	"time"
)

// Account is a registered user of the site. Students own at most one profile.
type Account struct {
	ID        int64     `json:"id" db:"id" example:"1"`
	Name      string    `json:"name" db:"name" example:"Asha Rao"`
	Email     string    `json:"email" db:"email" example:"asha@example.com"`
	Password  string    `json:"-" db:"password"` // bcrypt hash, never serialized
	RoleType  RoleType  `json:"roleType" db:"role_type" example:"STUDENT"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
