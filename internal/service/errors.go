package service

import "errors"

// Failure taxonomy surfaced to handlers, which map each to an HTTP
// status. Anything else bubbling out of a service is an upstream
// failure (store or image host).
var (
	ErrEmailTaken         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEventNotFound      = errors.New("event not found")
	ErrNotEventOwner      = errors.New("not the owner of this event")
)
