package somatotype

import "errors"

var (
	ErrInvalidInput    = errors.New("invalid biometric input")
	ErrDegeneratePose  = errors.New("degenerate pose, cannot establish scale")
	ErrMissingLandmark = errors.New("required landmark missing")
)
