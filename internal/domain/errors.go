package domain

import "errors"

var (
	ErrSecretNotFound = errors.New("secret not found")
	ErrRunNotFound    = errors.New("run not found")

	ErrChallengeUnavailable = errors.New("challenge artifact unavailable")
	ErrChallengeRejected    = errors.New("challenge rejected")
	ErrChallengeTimeout     = errors.New("timed out waiting for challenge confirmation")
	ErrTicketRejected       = errors.New("challenge ticket rejected")

	ErrOrderContextNull  = errors.New("order context payload is null")
	ErrNoShippingAddress = errors.New("order context has no shipping address")
	ErrMissingOrderToken = errors.New("order context has no token")

	ErrPurchaseURLUnavailable = errors.New("purchase url not available yet")
)

type Stage string

const (
	StageAuthenticate Stage = "authenticate"
	StageResolve      Stage = "resolve"
	StageReserve      Stage = "reserve"
)

// FatalError marks a failure that must abort the whole run.
type FatalError struct {
	Stage Stage
	Err   error
}

func (e *FatalError) Error() string {
	return string(e.Stage) + ": " + e.Err.Error()
}

func (e *FatalError) Unwrap() error {
	return e.Err
}

func Fatal(stage Stage, err error) error {
	if err == nil {
		return nil
	}
	var fatal *FatalError
	if errors.As(err, &fatal) {
		return err
	}
	return &FatalError{Stage: stage, Err: err}
}

func IsFatal(err error) bool {
	var fatal *FatalError
	return errors.As(err, &fatal)
}
