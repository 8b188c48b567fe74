package models

import "strings"

// User is an account that can author tweets.
type User struct {
	ID        string
	FirstName string
	LastName  string
}

// FullName joins the first and last name with a single space.
// It is derived on every read and never stored.
func (u User) FullName() string {
	return strings.Join([]string{u.FirstName, u.LastName}, " ")
}
