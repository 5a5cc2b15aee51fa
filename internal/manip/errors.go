package manip

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrInvalidManipulation is matched by every parameter validation failure.
	ErrInvalidManipulation = errors.New("invalid manipulation")

	// ErrFileNotFound is matched when a source is missing, its type cannot be
	// determined, or no encoder exists for the requested output format.
	ErrFileNotFound = errors.New("file not found")

	// ErrCouldNotConvert is matched when an operation fails while being applied.
	ErrCouldNotConvert = errors.New("could not convert")
)

// InvalidManipulationError reports a parameter outside its valid domain.
type InvalidManipulationError struct {
	Param string
	Value interface{}
	Valid string
}

// InvalidParameter builds an error for a value outside an enumerated domain.
func InvalidParameter(param string, value interface{}, valid ...interface{}) *InvalidManipulationError {
	return &InvalidManipulationError{Param: param, Value: value, Valid: fmt.Sprintf("%v", valid)}
}

// ValueNotInRange builds an error for a numeric value outside [min, max].
func ValueNotInRange(param string, value, min, max interface{}) *InvalidManipulationError {
	return &InvalidManipulationError{Param: param, Value: value, Valid: fmt.Sprintf("[%v, %v]", min, max)}
}

func (e *InvalidManipulationError) Error() string {
	return fmt.Sprintf("invalid manipulation: `%s` got `%v`, valid values are %s", e.Param, e.Value, e.Valid)
}

// Is makes errors.Is(err, ErrInvalidManipulation) succeed.
func (e *InvalidManipulationError) Is(target error) bool {
	return target == ErrInvalidManipulation
}

// FileNotFoundError reports a missing or unusable file.
type FileNotFoundError struct {
	Path   string
	Reason string
	Err    error
}

const (
	reasonMissing     = "does not exist"
	reasonInvalidType = "has an invalid type"
	reasonNoRenderer  = "has no output renderer"
)

// NonExisting is returned when the file at path does not exist.
func NonExisting(path string) *FileNotFoundError {
	return &FileNotFoundError{Path: path, Reason: reasonMissing}
}

// InvalidType is returned when no codec can be selected for path.
func InvalidType(path string, cause error) *FileNotFoundError {
	return &FileNotFoundError{Path: path, Reason: reasonInvalidType, Err: cause}
}

// NoRenderer is returned when no encoder exists for the output format.
func NoRenderer(format string) *FileNotFoundError {
	return &FileNotFoundError{Path: format, Reason: reasonNoRenderer}
}

// Missing reports whether the file did not exist, as opposed to having an
// unsupported type.
func (e *FileNotFoundError) Missing() bool {
	return e.Reason == reasonMissing
}

func (e *FileNotFoundError) Error() string {
	msg := fmt.Sprintf("the file `%s` %s", e.Path, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *FileNotFoundError) Is(target error) bool {
	return target == ErrFileNotFound
}

func (e *FileNotFoundError) Unwrap() error {
	return e.Err
}

// CouldNotConvertError reports a failure while applying an operation.
type CouldNotConvertError struct {
	Op  string
	Err error
}

// ConversionFailed wraps cause as a failure of the named operation.
func ConversionFailed(op string, cause error) *CouldNotConvertError {
	return &CouldNotConvertError{Op: op, Err: cause}
}

func (e *CouldNotConvertError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("could not convert: `%s` failed", e.Op)
	}
	return fmt.Sprintf("could not convert: `%s` failed: %v", e.Op, e.Err)
}

func (e *CouldNotConvertError) Is(target error) bool {
	return target == ErrCouldNotConvert
}

func (e *CouldNotConvertError) Unwrap() error {
	return e.Err
}
