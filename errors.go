package gui

import (
	"errors"
	"fmt"
)

var (
	// ErrDecodeFailed is returned when image bytes are malformed or in an
	// unsupported format. Callers treat the resource as absent.
	ErrDecodeFailed = errors.New("gui: image decode failed")

	// ErrDevice is wrapped by DeviceError.
	ErrDevice = errors.New("gui: graphics device error")

	// ErrOutOfMemory is returned when a decoded image would exceed the
	// configured pixel budget. The load is aborted.
	ErrOutOfMemory = errors.New("gui: image exceeds pixel budget")

	// ErrRasterization is returned when the font engine cannot render text.
	// It is an initialization-class failure; callers should not try to
	// continue without text.
	ErrRasterization = errors.New("gui: text rasterization failed")

	// ErrInvalidSize is returned for non-positive or out-of-bounds dimensions.
	ErrInvalidSize = errors.New("gui: invalid size")

	// ErrNoPixels is returned when an operation needs CPU pixels and the
	// image storage cannot provide them.
	ErrNoPixels = errors.New("gui: image has no pixel data")
)

// DeviceError reports a failed texture allocation or upload together with
// the backend's error code.
type DeviceError struct {
	Op   string
	Code uint32
}

func (e *DeviceError) Error() string {
	return fmt.Sprintf("gui: %s failed with device error 0x%04x", e.Op, e.Code)
}

// Unwrap lets errors.Is(err, ErrDevice) match.
func (e *DeviceError) Unwrap() error {
	return ErrDevice
}
