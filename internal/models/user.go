package models

import "time"

const (
	RoleMember = "member"
	RoleAdmin  = "admin"
)

type User struct {
	ID           string    `json:"id" bson:"id"`
	FullName     string    `json:"fullName" bson:"fullName"`
	Email        string    `json:"email" bson:"email"`
	PasswordHash string    `json:"passwordHash,omitempty" bson:"passwordHash"`
	Role         string    `json:"role" bson:"role"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
}

// Sanitized returns a copy safe to send to clients (credential hash stripped).
func (u User) Sanitized() User {
	u.PasswordHash = ""
	return u
}
