package domain

import "errors"

// Auth outcome errors. Login deliberately collapses "unknown email" and
// "wrong password" into ErrInvalidCredentials so callers cannot probe
// which emails are registered.
var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
)

type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Name         string `gorm:"size:64;not null" json:"name"`
	Email        string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash string `gorm:"size:100;not null" json:"-"`
}

func (User) TableName() string { return "users" }

// PublicUser is the listing projection. PasswordHash has no counterpart
// here at all, so it cannot leak through serialization.
type PublicUser struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Name: u.Name, Email: u.Email}
}

type UserRepository interface {
	// Create assigns the id. A unique-index violation on email comes back
	// as ErrEmailTaken, which makes concurrent duplicate registrations
	// safe without a read-modify-write.
	Create(u *User) error
	// FindByEmail is a case-sensitive exact lookup; (nil, nil) when absent.
	FindByEmail(email string) (*User, error)
	// List returns all users in insertion order.
	List() ([]User, error)
}
