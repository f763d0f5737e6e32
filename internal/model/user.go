package model

import "time"

type Role string

const (
	RoleStaff    Role = "staff"
	RoleCustomer Role = "customer"
)

// User is a persisted account. Email is stored lower-cased and unique.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"passwordHash"`
	Role         Role      `json:"role"`
	Name         string    `json:"name"`
	CreatedAt    time.Time `json:"createdAt"`
}

// UserInfo is the safe-to-expose view of a User.
type UserInfo struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
	Name  string `json:"name"`
}

func (u User) Info() UserInfo {
	return UserInfo{ID: u.ID, Email: u.Email, Role: u.Role, Name: u.Name}
}

// Actor is the verified identity attached to a request. A nil *Actor means
// the request is anonymous.
type Actor struct {
	ID   string
	Role Role
	Name string
}
