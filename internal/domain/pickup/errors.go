package pickup

import "errors"

var (
	ErrPersonNotFound  = errors.New("pickup person not found")
	ErrProfileNotFound = errors.New("pickup person profile not found")
)
