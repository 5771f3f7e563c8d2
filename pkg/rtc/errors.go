package rtc

import "errors"

var (
	ErrNotConnected        = errors.New("no active session")
	ErrPublishNotPermitted = errors.New("session was not joined with publish capability")
	ErrPublishInProgress   = errors.New("a publish is already in progress")
	ErrNoCredential        = errors.New("could not obtain a join credential")
	ErrTransport           = errors.New("room transport failure")
	ErrSessionChanged      = errors.New("session changed while publishing")
	ErrEmptyIdentity       = errors.New("identity is required")
	ErrEmptyRoom           = errors.New("room is required")
)
