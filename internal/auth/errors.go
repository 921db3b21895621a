package auth

import "errors"

var (
	ErrMissingToken = errors.New("auth: dashboard token required")
	ErrNoSecret     = errors.New("auth: signing secret not configured")
	ErrInvalidToken = errors.New("auth: dashboard token rejected")
	ErrUnknownRole  = errors.New("auth: token role is not viewer, operator or admin")
	ErrInsufficient = errors.New("auth: role does not allow this dashboard route")
)
