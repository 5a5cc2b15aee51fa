package imagemanip

import "github.com/zoolt/imagemanip/internal/manip"

var (
	// ErrInvalidManipulation is matched by every argument validation failure.
	ErrInvalidManipulation = manip.ErrInvalidManipulation
	// ErrFileNotFound is matched when the source is missing or unreadable, or
	// the output format has no encoder.
	ErrFileNotFound = manip.ErrFileNotFound
	// ErrCouldNotConvert is matched when an operation fails while rendering.
	ErrCouldNotConvert = manip.ErrCouldNotConvert
)

type (
	// InvalidManipulationError carries the rejected parameter and its valid
	// domain.
	InvalidManipulationError = manip.InvalidManipulationError
	// FileNotFoundError carries the offending path.
	FileNotFoundError = manip.FileNotFoundError
	// CouldNotConvertError names the operation that failed.
	CouldNotConvertError = manip.CouldNotConvertError
)
