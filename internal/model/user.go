package model

import "time"

// User is a registered account. HashedPassword is a bcrypt digest and is
// never serialized.
type User struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	FullName       string    `json:"full_name"`
	IsAdmin        bool      `json:"is_admin"`
	HashedPassword string    `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
}

// Principal is the authenticated actor attached to a request. It carries
// just enough identity for access decisions.
type Principal struct {
	ID      string
	Email   string
	IsAdmin bool
}

// Principal derives the access-control identity of a user.
func (u *User) Principal() Principal {
	return Principal{ID: u.ID, Email: u.Email, IsAdmin: u.IsAdmin}
}
