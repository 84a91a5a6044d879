package proposal

import "errors"

var (
	ErrProposalNotFound     = errors.New("proposal not found")
	ErrNotProposalRequester = errors.New("only the proposal requester may do this")
	ErrNotPropertyOwner     = errors.New("only the property owner may do this")
	ErrProposalAccessDenied = errors.New("proposal is not visible to this user")

	ErrOwnProperty        = errors.New("cannot make a proposal on your own property")
	ErrDuplicatePending   = errors.New("a pending proposal for this property already exists")
	ErrProposalNotPending = errors.New("proposal is no longer pending")
	ErrProposalExpired    = errors.New("proposal has expired")

	ErrValueNotPositive = errors.New("proposal value must be greater than zero")
	ErrValueTooHigh     = errors.New("proposal value too high")
	ErrMessageTooLong   = errors.New("message must have at most 1000 characters")
	ErrResponseTooLong  = errors.New("response message must have at most 500 characters")
)
