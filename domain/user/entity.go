// Package user - the signed-in user and the accounts the backend fake
// authenticates against.
package user

import "strings"

// User the authenticated user returned by login
type User struct {
	ID    string
	Name  string
	Email string
}

// Greeting returns the home screen greeting, "Olá, Ana!", falling back to
// "Usuário" when the name is unknown.
func (u *User) Greeting() string {
	name := ""
	if u != nil {
		name = strings.TrimSpace(u.Name)
	}
	if name == "" {
		name = "Usuário"
	}
	return "Olá, " + name + "!"
}

// Account a user plus its password, held only by the backend fake
type Account struct {
	user     User
	email    Email
	password string
}

// NewAccount creates an account. The email must be well formed and the
// password non-empty.
func NewAccount(id, name, email, password string) (*Account, error) {
	parsed, err := ParseEmail(email)
	if err != nil {
		return nil, err
	}
	if password == "" {
		return nil, ErrEmptyPassword
	}
	return &Account{
		user:     User{ID: id, Name: strings.TrimSpace(name), Email: parsed.Value()},
		email:    parsed,
		password: password,
	}, nil
}

// User returns the public view of the account
func (a *Account) User() User {
	return a.user
}

// Email returns the normalized email
func (a *Account) Email() Email {
	return a.email
}

// Matches reports whether the credentials identify this account. The email
// is compared case-insensitively, the password exactly.
func (a *Account) Matches(c Credentials) bool {
	if c.Blank() {
		return false
	}
	return Email(NormalizeEmail(c.Email)) == a.email && a.password == c.Password
}
