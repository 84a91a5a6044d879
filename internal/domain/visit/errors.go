package visit

import "errors"

var (
	ErrVisitNotFound     = errors.New("visit not found")
	ErrNotVisitRequester = errors.New("only the visit requester may do this")
	ErrVisitAccessDenied = errors.New("visit is not visible to this user")

	ErrVisitCompleted = errors.New("visit is already completed")
	ErrVisitCancelled = errors.New("visit is already cancelled")

	ErrVisitDateInPast = errors.New("cannot schedule visit in the past")
	ErrVisitDateTooFar = errors.New("cannot schedule visit more than 6 months in advance")
	ErrVisitConflict   = errors.New("another visit is already scheduled at this time")

	ErrNotesTooLong  = errors.New("notes must have at most 500 characters")
	ErrReasonTooLong = errors.New("cancellation reason must have at most 200 characters")
)
