package model

import "errors"

var (
	// Remote storage errors
	ErrTransport   = errors.New("remote storage request failed")
	ErrAuthExpired = errors.New("remote storage credentials expired")

	// Lookup errors
	ErrFileNotFound   = errors.New("file not found")
	ErrFolderNotFound = errors.New("folder not found")
	ErrBatchNotFound  = errors.New("copy batch not found")

	// History errors
	ErrHistoryDisabled = errors.New("copy history persistence is not configured")

	// Auth errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")

	// Generic errors
	ErrInvalidInput = errors.New("invalid input")
)
