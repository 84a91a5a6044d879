package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	proposaldomain "listings-api/internal/domain/proposal"
	"listings-api/internal/transport/httpserver/middleware"
)

type createProposalRequest struct {
	PropertyID string          `json:"property_id"`
	Value      decimal.Decimal `json:"value"`
	Message    *string         `json:"message"`
}

type respondProposalRequest struct {
	ResponseMessage *string `json:"response_message"`
}

type proposalResponse struct {
	ID              string          `json:"id"`
	PropertyID      string          `json:"property_id"`
	RequesterID     string          `json:"requester_id"`
	Value           decimal.Decimal `json:"value"`
	Status          string          `json:"status"`
	Message         *string         `json:"message"`
	ResponseMessage *string         `json:"response_message"`
	ResponseDate    *time.Time      `json:"response_date"`
	ExpiresAt       time.Time       `json:"expires_at"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

type propertySummaryResponse struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	City  string `json:"city"`
}

type proposalWithUserResponse struct {
	proposalResponse
	User     *userResponse            `json:"user"`
	Property *propertySummaryResponse `json:"property"`
}

type proposalListResponse struct {
	Items      []proposalResponse `json:"items"`
	Total      int64              `json:"total"`
	Page       int                `json:"page"`
	Size       int                `json:"size"`
	TotalPages int64              `json:"total_pages"`
}

type proposalWithUserListResponse struct {
	Items      []proposalWithUserResponse `json:"items"`
	Total      int64                      `json:"total"`
	Page       int                        `json:"page"`
	Size       int                        `json:"size"`
	TotalPages int64                      `json:"total_pages"`
}

func toProposalResponse(p proposaldomain.Proposal) proposalResponse {
	return proposalResponse{
		ID:              p.ID,
		PropertyID:      p.PropertyID,
		RequesterID:     p.RequesterID,
		Value:           p.Value,
		Status:          string(p.Status),
		Message:         p.Message,
		ResponseMessage: p.ResponseMessage,
		ResponseDate:    p.ResponseDate,
		ExpiresAt:       p.ExpiresAt,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

func (h *Handlers) CreateProposal(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	var req createProposalRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	propertyID, ok := parseUUIDParam(req.PropertyID)
	if !ok {
		writeError(w, http.StatusBadRequest, "validation_error", "property_id must be a valid uuid")
		return
	}

	p, err := h.Proposals.Create(r.Context(), proposaldomain.CreateInput{
		PropertyID:  propertyID,
		RequesterID: principal.ID,
		Value:       req.Value,
		Message:     req.Message,
	})
	if err != nil {
		h.writeDomainError(w, "proposals.create", err, "user_id", principal.ID, "property_id", propertyID)
		return
	}

	writeJSON(w, http.StatusCreated, toProposalResponse(*p))
}

func (h *Handlers) ListMyProposals(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	filter, ok := h.proposalListFilter(w, r)
	if !ok {
		return
	}

	proposals, total, err := h.Proposals.ListByRequester(r.Context(), principal.ID, filter)
	if err != nil {
		h.writeDomainError(w, "proposals.list_mine", err, "user_id", principal.ID)
		return
	}

	writeJSON(w, http.StatusOK, toProposalListResponse(proposals, total, filter))
}

func (h *Handlers) GetProposal(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}
	proposalID, ok := parseUUIDParam(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusBadRequest, "validation_error", "proposal id must be a valid uuid")
		return
	}

	p, err := h.Proposals.Get(r.Context(), proposalID, principal.ID)
	if err != nil {
		h.writeDomainError(w, "proposals.get", err, "user_id", principal.ID, "proposal_id", proposalID)
		return
	}

	writeJSON(w, http.StatusOK, toProposalResponse(*p))
}

func (h *Handlers) AcceptProposal(w http.ResponseWriter, r *http.Request) {
	h.respondProposal(w, r, "proposals.accept", h.Proposals.Accept)
}

func (h *Handlers) RejectProposal(w http.ResponseWriter, r *http.Request) {
	h.respondProposal(w, r, "proposals.reject", h.Proposals.Reject)
}

func (h *Handlers) respondProposal(
	w http.ResponseWriter,
	r *http.Request,
	op string,
	respond func(ctx context.Context, proposalID, subjectID string, responseMessage *string) (*proposaldomain.Proposal, error),
) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}
	proposalID, ok := parseUUIDParam(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusBadRequest, "validation_error", "proposal id must be a valid uuid")
		return
	}

	var req respondProposalRequest
	if r.ContentLength > 0 {
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
			return
		}
	}

	p, err := respond(r.Context(), proposalID, principal.ID, req.ResponseMessage)
	if err != nil {
		h.writeDomainError(w, op, err, "user_id", principal.ID, "proposal_id", proposalID)
		return
	}

	writeJSON(w, http.StatusOK, toProposalResponse(*p))
}

func (h *Handlers) WithdrawProposal(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}
	proposalID, ok := parseUUIDParam(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusBadRequest, "validation_error", "proposal id must be a valid uuid")
		return
	}

	p, err := h.Proposals.Withdraw(r.Context(), proposalID, principal.ID)
	if err != nil {
		h.writeDomainError(w, "proposals.withdraw", err, "user_id", principal.ID, "proposal_id", proposalID)
		return
	}

	writeJSON(w, http.StatusOK, toProposalResponse(*p))
}

func (h *Handlers) DeleteProposal(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}
	proposalID, ok := parseUUIDParam(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusBadRequest, "validation_error", "proposal id must be a valid uuid")
		return
	}

	if err := h.Proposals.Delete(r.Context(), proposalID, principal.ID); err != nil {
		h.writeDomainError(w, "proposals.delete", err, "user_id", principal.ID, "proposal_id", proposalID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) ListPropertyProposals(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}
	propertyID, ok := parseUUIDParam(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusBadRequest, "validation_error", "property id must be a valid uuid")
		return
	}

	filter, ok := h.proposalListFilter(w, r)
	if !ok {
		return
	}

	proposals, total, err := h.Proposals.ListByProperty(r.Context(), propertyID, principal.ID, filter)
	if err != nil {
		h.writeDomainError(w, "proposals.list_property", err, "user_id", principal.ID, "property_id", propertyID)
		return
	}

	writeJSON(w, http.StatusOK, toProposalListResponse(proposals, total, filter))
}

// ListReceivedProposals returns proposals across all of the caller's
// properties with best-effort requester contact details and a property
// summary. Neither lookup ever fails the page.
func (h *Handlers) ListReceivedProposals(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}
	token, ok := middleware.TokenFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing_token", "missing credentials")
		return
	}

	filter, ok := h.proposalListFilter(w, r)
	if !ok {
		return
	}

	proposals, total, err := h.Proposals.ListReceived(r.Context(), principal.ID, filter)
	if err != nil {
		h.writeDomainError(w, "proposals.list_received", err, "user_id", principal.ID)
		return
	}

	items := make([]proposalWithUserResponse, 0, len(proposals))
	for _, p := range proposals {
		items = append(items, proposalWithUserResponse{
			proposalResponse: toProposalResponse(p),
			User:             toUserResponse(h.users.UserInfo(r.Context(), p.RequesterID, token)),
			Property:         h.propertySummary(r, p.PropertyID),
		})
	}

	writeJSON(w, http.StatusOK, proposalWithUserListResponse{
		Items:      items,
		Total:      total,
		Page:       filter.Page,
		Size:       filter.Size,
		TotalPages: totalPages(total, filter.Size),
	})
}

func (h *Handlers) propertySummary(r *http.Request, propertyID string) *propertySummaryResponse {
	prop, err := h.Properties.GetByID(r.Context(), propertyID)
	if err != nil {
		h.log.Debug("proposals: property summary lookup failed", "property_id", propertyID, "err", err)
		return nil
	}
	return &propertySummaryResponse{ID: prop.ID, Title: prop.Title, City: prop.City}
}

func (h *Handlers) proposalListFilter(w http.ResponseWriter, r *http.Request) (proposaldomain.ListFilter, bool) {
	query := r.URL.Query()

	params, err := parsePageParams(query)
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation_error", err.Error())
		return proposaldomain.ListFilter{}, false
	}

	filter := proposaldomain.ListFilter{Page: params.Page, Size: params.Size}
	if raw := query.Get("status"); raw != "" {
		status, ok := proposaldomain.ParseStatus(raw)
		if !ok {
			writeError(w, http.StatusBadRequest, "validation_error", "invalid status")
			return proposaldomain.ListFilter{}, false
		}
		filter.Status = &status
	}

	return filter, true
}

func toProposalListResponse(proposals []proposaldomain.Proposal, total int64, filter proposaldomain.ListFilter) proposalListResponse {
	items := make([]proposalResponse, 0, len(proposals))
	for _, p := range proposals {
		items = append(items, toProposalResponse(p))
	}
	return proposalListResponse{
		Items:      items,
		Total:      total,
		Page:       filter.Page,
		Size:       filter.Size,
		TotalPages: totalPages(total, filter.Size),
	}
}
