package model

import (
	"time"

	"workgate/internal/domain"

	"github.com/google/uuid"
)

// User is an account provisioned after a verified signup payment.
// Email is the unique key; Paid only becomes true alongside a successful
// transaction insert in the same database transaction.
type User struct {
	ID           string
	Email        string
	FirstName    string
	LastName     string
	Phone        string
	Role         Role
	Paid         bool
	ReferralCode string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func NewUser(id, email string, role Role) (*User, error) {
	if id == "" {
		id = uuid.NewString()
	}
	if email == "" {
		return nil, domain.ErrInvalidArgument
	}
	if !role.Valid() {
		return nil, domain.ErrInvalidRole
	}
	now := time.Now()
	return &User{
		ID:        id,
		Email:     email,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (u *User) IsZero() bool { return u == nil || u.ID == "" }

// ApplyProfile overwrites profile fields from a confirmation payload.
// The referral code is only replaced when a non-empty one is supplied,
// so a previously recorded code survives later payments.
func (u *User) ApplyProfile(firstName, lastName, phone string, role Role, referralCode string) {
	u.FirstName = firstName
	u.LastName = lastName
	u.Phone = phone
	u.Role = role
	if referralCode != "" {
		u.ReferralCode = referralCode
	}
	u.UpdatedAt = time.Now()
}
