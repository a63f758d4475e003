package domain

import "context"

// User comes from the external user directory; the core only needs identity
// and a recipient address for notifications.
type User struct {
	ID        int
	FirstName string
	LastName  string
	Email     string
}

type UserDirectory interface {
	GetById(ctx context.Context, id int) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
}
