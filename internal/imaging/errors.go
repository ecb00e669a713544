package imaging

import "errors"

// ErrPoolBusy is returned by Pool.Do when no worker slot frees up in time.
var ErrPoolBusy = errors.New("imaging: worker pool busy")

// DecodeError reports bytes that could not be decoded as a raster image.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return "decode image: " + e.Err.Error()
}

func (e *DecodeError) Unwrap() error { return e.Err }

// EncodeError reports a failure to encode a raster image.
type EncodeError struct {
	Err error
}

func (e *EncodeError) Error() string {
	return "encode jpeg: " + e.Err.Error()
}

func (e *EncodeError) Unwrap() error { return e.Err }
