package user

import (
	"regexp"
	"strings"
)

// emailPattern what the login form accepts once normalized
var emailPattern = regexp.MustCompile(`^[a-z0-9._%+-]+@[a-z0-9.-]+\.[a-z]{2,}$`)

// Email a login address, trimmed and lower cased
type Email string

// NormalizeEmail is the form accounts are keyed by, so "Admin@X.com " and
// "admin@x.com" reach the same account.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ParseEmail normalizes s and rejects malformed addresses
func ParseEmail(s string) (Email, error) {
	n := NormalizeEmail(s)
	if !emailPattern.MatchString(n) {
		return "", ErrInvalidEmail
	}
	return Email(n), nil
}

func (e Email) Value() string {
	return string(e)
}

// Masked keeps the first letter and the domain, "a***@tilapiasupreme.com.br".
// Login logs carry this form only.
func (e Email) Masked() string {
	local, domain, ok := strings.Cut(string(e), "@")
	if !ok || local == "" {
		return "***"
	}
	return local[:1] + "***@" + domain
}

// Credentials what the login form submits
type Credentials struct {
	Email    string
	Password string
}

// Blank reports a form sent without an email or a password
func (c Credentials) Blank() bool {
	return strings.TrimSpace(c.Email) == "" || c.Password == ""
}
