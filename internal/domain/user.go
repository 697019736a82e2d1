package domain

import "strings"

// User represents a registered user. Users carry no credential material:
// login is an idempotent find-or-create keyed by the unique name, and the
// opaque encoded form of the ID is the only thing clients ever hold.
type User struct {
	ID   int64
	Name string
}

// NewUser creates a User with the given name.
// Returns an error if validation fails.
func NewUser(name string) (*User, error) {
	user := &User{Name: name}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
func (u *User) Validate() error {
	if strings.TrimSpace(u.Name) == "" {
		return ErrEmptyName
	}
	return nil
}
