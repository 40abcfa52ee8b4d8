package tbf

import "fmt"

// A TruncatedError indicates the stream ended before a fixed-size structure
// or a declared-length payload could be fully read. Region names the part of
// the image that could not be read.
type TruncatedError struct {
	Region string
	Err    error
}

func (e *TruncatedError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: truncated: %v", e.Region, e.Err)
	}
	return fmt.Sprintf("%s: truncated", e.Region)
}

func (e *TruncatedError) Unwrap() error { return e.Err }

// An UnsupportedVersionError indicates the image's header version is not one
// this package can parse.
type UnsupportedVersionError struct {
	Version uint16
}

func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("unsupported TBF header version %d (expected %d)",
		e.Version, Version2)
}

// A BadLayoutError indicates the header fields derive an inconsistent byte
// range, such as a code region with negative length.
type BadLayoutError struct {
	Field string
	Value uint32
	Min   uint32
}

func (e *BadLayoutError) Error() string {
	return fmt.Sprintf("bad layout: %s is 0x%x, need at least 0x%x",
		e.Field, e.Value, e.Min)
}

func truncated(region string, err error) error {
	return &TruncatedError{Region: region, Err: err}
}
