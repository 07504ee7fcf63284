package pet

import "errors"

// Validation failures. All of them are returned before the profile is
// touched.
var (
	ErrUnknownAction     = errors.New("unknown action")
	ErrItemNotFound      = errors.New("item not found")
	ErrInsufficientFunds = errors.New("not enough coins")
	ErrItemNotOwned      = errors.New("item not owned")
)

// IsValidation reports whether err is one of the caller-input failures
// above.
func IsValidation(err error) bool {
	return errors.Is(err, ErrUnknownAction) ||
		errors.Is(err, ErrItemNotFound) ||
		errors.Is(err, ErrInsufficientFunds) ||
		errors.Is(err, ErrItemNotOwned)
}
