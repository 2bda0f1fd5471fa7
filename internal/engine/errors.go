package engine

import "errors"

var (
	ErrAlreadyStarted = errors.New("engine already started")
	ErrStopped        = errors.New("engine stopped")
	ErrNoClient       = errors.New("engine requires a client")
	ErrUnknownAction  = errors.New("unknown action")
)
