package model

import "errors"

var (
	ErrScanFailed       = errors.New("directory scan failed")
	ErrInvalidPattern   = errors.New("invalid ignore pattern")
	ErrUnknownExtension = errors.New("unknown extension")
	ErrMissingRoot      = errors.New("watch root not found")
	ErrNoAction         = errors.New("no execute command or callback configured")
	ErrInvalidInterval  = errors.New("polling interval must be positive")
)
