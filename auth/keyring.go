// Package auth persists the streaming API token in the system keyring.
package auth

import (
	"errors"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	service = "playdeck"
	user    = "api-token"
)

// ErrNoToken is returned when no token is stored.
var ErrNoToken = errors.New("no API token stored, run `playdeck login`")

// SetToken stores the token, replacing any previous one.
func SetToken(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return errors.New("empty token")
	}
	return keyring.Set(service, user, token)
}

// GetToken returns the stored token.
func GetToken() (string, error) {
	token, err := keyring.Get(service, user)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", ErrNoToken
	}
	return token, err
}

// DeleteToken removes the stored token. Removing a missing token is not an error.
func DeleteToken() error {
	err := keyring.Delete(service, user)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil
	}
	return err
}
