package pointillism

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidParameter is returned when a configuration value can never
	// produce a valid transform.
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrEmptyFrame is returned for frames with zero width or height.
	ErrEmptyFrame = errors.New("empty frame")
)

// ParamError describes which parameter failed validation and why.
type ParamError struct {
	Name   string
	Value  interface{}
	Reason string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("%s: %s=%v %s", ErrInvalidParameter, e.Name, e.Value, e.Reason)
}

func (e *ParamError) Is(target error) bool {
	return target == ErrInvalidParameter
}

func invalid(name string, value interface{}, reason string) error {
	return &ParamError{Name: name, Value: value, Reason: reason}
}

// FrameError reports the frame that aborted a sequence transform.
type FrameError struct {
	Index int
	Err   error
}

func (e *FrameError) Error() string {
	return fmt.Sprintf("frame %d: %v", e.Index, e.Err)
}

func (e *FrameError) Unwrap() error {
	return e.Err
}
