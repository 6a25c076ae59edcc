package bitframe

import "errors"

var (
	ErrInvalidGeometry  = errors.New("bitframe: invalid geometry")
	ErrEmptySequence    = errors.New("bitframe: empty frame sequence")
	ErrIndexOutOfBounds = errors.New("bitframe: frame index out of bounds")
	ErrOutOfRange       = errors.New("bitframe: byte range exceeds buffer")
	ErrInvalidPixel     = errors.New("bitframe: pixel value is not 0 or 1")
	ErrNonZeroPadding   = errors.New("bitframe: padding bit is set")
)
