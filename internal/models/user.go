package models

import "time"

type Role string

const (
	RoleCrew   Role = "crew"
	RoleStaff  Role = "staff"
	RoleMaster Role = "master"
)

func (r Role) Valid() bool {
	switch r {
	case RoleCrew, RoleStaff, RoleMaster:
		return true
	}
	return false
}

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	Role         Role      `json:"role"`
	ShipID       string    `json:"ship_id,omitempty"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (u *User) IsCrewOn(vesselID string) bool {
	return u.Role == RoleCrew && u.ShipID == vesselID
}

// Session is the authenticated caller as vouched for by the identity
// provider. It is passed explicitly into every service and workflow call.
type Session struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
	ShipID string `json:"ship_id,omitempty"`
	Active bool   `json:"active"`
}

func (s Session) IsCrew() bool   { return s.Role == RoleCrew }
func (s Session) IsStaff() bool  { return s.Role == RoleStaff }
func (s Session) IsMaster() bool { return s.Role == RoleMaster }

// CanManageTemplates reports whether the caller may author templates and
// trigger work. Office staff and masters share this right.
func (s Session) CanManageTemplates() bool {
	return s.IsStaff() || s.IsMaster()
}

func (s Session) HasRole(roles ...Role) bool {
	for _, r := range roles {
		if s.Role == r {
			return true
		}
	}
	return false
}

func (u *User) Session() Session {
	return Session{
		UserID: u.ID,
		Name:   u.Name,
		Email:  u.Email,
		Role:   u.Role,
		ShipID: u.ShipID,
		Active: u.Active,
	}
}
