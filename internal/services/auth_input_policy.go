package services

import (
	"errors"
	"net/mail"
	"strings"
)

var ErrAuthCredentialsInvalid = errors.New("auth credentials invalid")

// Credentials is a login attempt after trimming and email normalization.
type Credentials struct {
	Email    string
	Password string
}

// NormalizeAuthEmail lowercases raw and returns "" unless it is a bare address.
// Display-name forms such as "Emma <emma@example.com>" are rejected.
func NormalizeAuthEmail(raw string) string {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return ""
	}
	parsed, err := mail.ParseAddress(email)
	if err != nil || parsed.Address != email {
		return ""
	}
	return email
}

func ParseCredentials(emailRaw string, passwordRaw string) (Credentials, error) {
	credentials := Credentials{
		Email:    NormalizeAuthEmail(emailRaw),
		Password: strings.TrimSpace(passwordRaw),
	}
	if credentials.Email == "" || credentials.Password == "" {
		return Credentials{}, ErrAuthCredentialsInvalid
	}
	return credentials, nil
}
