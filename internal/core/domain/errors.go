package domain

import "errors"

var (
	ErrExposeNotFound       = errors.New("expose not found")
	ErrTransitionNotAllowed = errors.New("photo request transition not allowed")
)

var ErrHuntInProgress = errors.New("hunt is already running")
