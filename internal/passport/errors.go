package passport

import (
	"errors"
	"net/url"
)

const (
	msgUnknown       = "An unknown error occurred"
	msgInvalidImage  = "Please select a valid image file"
	msgImageTooLarge = "Image size must be less than 5MB"
	msgUploadFailed  = "Failed to upload avatar. Please try again."
	msgSignIn        = "Please sign in first"
	msgNameRequired  = "Display name is required"
)

// ErrNoSession is returned by operations that need a signed-in player.
var ErrNoSession = errors.New("no active session")

// Displayable is implemented by errors that carry a message meant for the
// player, such as a backend error body.
type Displayable interface {
	error
	UserMessage() string
}

// ValidationError is a local check that failed before any network call.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string       { return e.Message }
func (e *ValidationError) UserMessage() string { return e.Message }

// Error is a failed store operation. Prior state is left untouched.
type Error struct {
	Op      string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Op + ": " + e.Err.Error()
	}
	return e.Op + ": " + e.Message
}

func (e *Error) Unwrap() error       { return e.Err }
func (e *Error) UserMessage() string { return e.Message }

// DisplayMessage turns any error from this package or the backend into the
// line shown in an alert. nil yields "".
func DisplayMessage(err error) string {
	return messageOr(err, msgUnknown)
}

func messageOr(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var d Displayable
	if errors.As(err, &d) && d.UserMessage() != "" {
		return d.UserMessage()
	}
	var ue *url.Error
	if errors.As(err, &ue) {
		return ue.Error()
	}
	return fallback
}

func failure(op string, err error, fallback string) *Error {
	return &Error{Op: op, Message: messageOr(err, fallback), Err: err}
}
