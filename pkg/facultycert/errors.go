package facultycert

import "errors"

var (
	// ErrNoCoursesFound is returned when a professor has no course rows to certify.
	ErrNoCoursesFound = errors.New("no courses found for professor")
	// ErrAssetUnreadable marks an optional image that could not be decoded. It is never returned
	// by Generate, only reported to the composer logger.
	ErrAssetUnreadable = errors.New("asset unreadable")
	ErrInvalidTermCode = errors.New("invalid term code")
)
