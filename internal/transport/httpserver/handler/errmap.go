package handler

import (
	"errors"
	"net/http"

	propertydomain "listings-api/internal/domain/property"
	proposaldomain "listings-api/internal/domain/proposal"
	visitdomain "listings-api/internal/domain/visit"
)

type errorMapping struct {
	target error
	status int
	code   string
}

// domainErrors is the stable taxonomy-to-status mapping for every sentinel
// the lifecycle engine can return. Anything not listed is an internal error.
var domainErrors = []errorMapping{
	{propertydomain.ErrPropertyNotFound, http.StatusNotFound, "property_not_found"},

	{visitdomain.ErrVisitNotFound, http.StatusNotFound, "visit_not_found"},
	{visitdomain.ErrNotVisitRequester, http.StatusForbidden, "forbidden"},
	{visitdomain.ErrVisitAccessDenied, http.StatusForbidden, "forbidden"},
	{visitdomain.ErrVisitCompleted, http.StatusBadRequest, "invalid_state"},
	{visitdomain.ErrVisitCancelled, http.StatusBadRequest, "invalid_state"},
	{visitdomain.ErrVisitDateInPast, http.StatusBadRequest, "validation_error"},
	{visitdomain.ErrVisitDateTooFar, http.StatusBadRequest, "validation_error"},
	{visitdomain.ErrNotesTooLong, http.StatusBadRequest, "validation_error"},
	{visitdomain.ErrReasonTooLong, http.StatusBadRequest, "validation_error"},
	{visitdomain.ErrVisitConflict, http.StatusConflict, "conflict"},

	{proposaldomain.ErrProposalNotFound, http.StatusNotFound, "proposal_not_found"},
	{proposaldomain.ErrNotProposalRequester, http.StatusForbidden, "forbidden"},
	{proposaldomain.ErrNotPropertyOwner, http.StatusForbidden, "forbidden"},
	{proposaldomain.ErrProposalAccessDenied, http.StatusForbidden, "forbidden"},
	{proposaldomain.ErrOwnProperty, http.StatusBadRequest, "business_rule"},
	{proposaldomain.ErrDuplicatePending, http.StatusConflict, "conflict"},
	{proposaldomain.ErrProposalNotPending, http.StatusBadRequest, "invalid_state"},
	{proposaldomain.ErrProposalExpired, http.StatusBadRequest, "invalid_state"},
	{proposaldomain.ErrValueNotPositive, http.StatusBadRequest, "validation_error"},
	{proposaldomain.ErrValueTooHigh, http.StatusBadRequest, "validation_error"},
	{proposaldomain.ErrMessageTooLong, http.StatusBadRequest, "validation_error"},
	{proposaldomain.ErrResponseTooLong, http.StatusBadRequest, "validation_error"},
}

func (h *Handlers) writeDomainError(w http.ResponseWriter, op string, err error, args ...any) {
	for _, mapping := range domainErrors {
		if errors.Is(err, mapping.target) {
			h.log.BusinessError(op, err, args...)
			writeError(w, mapping.status, mapping.code, err.Error())
			return
		}
	}

	h.log.InternalError(op, err, args...)
	writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
}
