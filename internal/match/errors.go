package match

import "errors"

// ErrNoResult reports that the scoring run produced no evaluation at all.
var ErrNoResult = errors.New("no evaluations produced")

// InvalidInputError reports a malformed candidate profile or vacancy catalog.
// It fails the whole run before any generative call is made.
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	return "invalid input data: " + e.Reason
}
