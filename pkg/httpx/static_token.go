package httpx

import (
	"context"
	"errors"
)

var ErrEmptyToken = errors.New("static token is empty")

// StaticToken authenticates with a pre-issued token that never rotates.
type StaticToken string

func (t StaticToken) Authenticate(context.Context) error {
	if t == "" {
		return ErrEmptyToken
	}

	return nil
}

func (t StaticToken) BearerToken() string {
	return string(t)
}
