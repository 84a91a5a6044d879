package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	visitdomain "listings-api/internal/domain/visit"
	"listings-api/internal/identity"
	"listings-api/internal/transport/httpserver/middleware"
)

type createVisitRequest struct {
	PropertyID string    `json:"property_id"`
	VisitDate  time.Time `json:"visit_date"`
	Notes      *string   `json:"notes"`
}

type updateVisitRequest struct {
	VisitDate *time.Time `json:"visit_date"`
	Notes     *string    `json:"notes"`
}

type completeVisitRequest struct {
	Notes *string `json:"notes"`
}

type cancelVisitRequest struct {
	Reason *string `json:"reason"`
}

type visitResponse struct {
	ID                 string     `json:"id"`
	PropertyID         string     `json:"property_id"`
	RequesterID        string     `json:"requester_id"`
	VisitDate          time.Time  `json:"visit_date"`
	IsCompleted        bool       `json:"is_completed"`
	IsCancelled        bool       `json:"is_cancelled"`
	Notes              *string    `json:"notes"`
	CancellationReason *string    `json:"cancellation_reason"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

type visitWithUserResponse struct {
	visitResponse
	User *userResponse `json:"user"`
}

type userResponse struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	FullName    string `json:"full_name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
}

type visitListResponse struct {
	Items      []visitResponse `json:"items"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	Size       int             `json:"size"`
	TotalPages int64           `json:"total_pages"`
}

type visitWithUserListResponse struct {
	Items      []visitWithUserResponse `json:"items"`
	Total      int64                   `json:"total"`
	Page       int                     `json:"page"`
	Size       int                     `json:"size"`
	TotalPages int64                   `json:"total_pages"`
}

func toVisitResponse(v visitdomain.Visit) visitResponse {
	return visitResponse{
		ID:                 v.ID,
		PropertyID:         v.PropertyID,
		RequesterID:        v.RequesterID,
		VisitDate:          v.VisitDate,
		IsCompleted:        v.IsCompleted,
		IsCancelled:        v.IsCancelled,
		Notes:              v.Notes,
		CancellationReason: v.CancellationReason,
		CreatedAt:          v.CreatedAt,
		UpdatedAt:          v.UpdatedAt,
	}
}

func toUserResponse(details *identity.UserDetails) *userResponse {
	if details == nil {
		return nil
	}
	return &userResponse{
		ID:          details.ID,
		Username:    details.Username,
		FullName:    details.FullName,
		Email:       details.Email,
		PhoneNumber: details.PhoneNumber,
	}
}

func (h *Handlers) CreateVisit(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	var req createVisitRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	propertyID, ok := parseUUIDParam(req.PropertyID)
	if !ok {
		writeError(w, http.StatusBadRequest, "validation_error", "property_id must be a valid uuid")
		return
	}
	if req.VisitDate.IsZero() {
		writeError(w, http.StatusBadRequest, "validation_error", "visit_date is required")
		return
	}

	v, err := h.Visits.Schedule(r.Context(), visitdomain.ScheduleInput{
		PropertyID:  propertyID,
		RequesterID: principal.ID,
		VisitDate:   req.VisitDate,
		Notes:       req.Notes,
	})
	if err != nil {
		h.writeDomainError(w, "visits.create", err, "user_id", principal.ID, "property_id", propertyID)
		return
	}

	writeJSON(w, http.StatusCreated, toVisitResponse(*v))
}

func (h *Handlers) ListMyVisits(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	filter, ok := h.visitListFilter(w, r)
	if !ok {
		return
	}

	visits, total, err := h.Visits.ListByRequester(r.Context(), principal.ID, filter)
	if err != nil {
		h.writeDomainError(w, "visits.list_mine", err, "user_id", principal.ID)
		return
	}

	writeJSON(w, http.StatusOK, toVisitListResponse(visits, total, filter))
}

func (h *Handlers) ListUpcomingVisits(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	visits, err := h.Visits.Upcoming(r.Context(), principal.ID)
	if err != nil {
		h.writeDomainError(w, "visits.upcoming", err, "user_id", principal.ID)
		return
	}

	items := make([]visitResponse, 0, len(visits))
	for _, v := range visits {
		items = append(items, toVisitResponse(v))
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"items": items})
}

func (h *Handlers) GetVisit(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}
	visitID, ok := parseUUIDParam(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusBadRequest, "validation_error", "visit id must be a valid uuid")
		return
	}

	v, err := h.Visits.Get(r.Context(), visitID, principal.ID)
	if err != nil {
		h.writeDomainError(w, "visits.get", err, "user_id", principal.ID, "visit_id", visitID)
		return
	}

	writeJSON(w, http.StatusOK, toVisitResponse(*v))
}

func (h *Handlers) UpdateVisit(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}
	visitID, ok := parseUUIDParam(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusBadRequest, "validation_error", "visit id must be a valid uuid")
		return
	}

	var req updateVisitRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if req.VisitDate == nil && req.Notes == nil {
		writeError(w, http.StatusBadRequest, "validation_error", "no fields to update")
		return
	}

	v, err := h.Visits.Update(r.Context(), visitdomain.UpdateInput{
		ID:          visitID,
		RequesterID: principal.ID,
		VisitDate:   req.VisitDate,
		Notes:       req.Notes,
	})
	if err != nil {
		h.writeDomainError(w, "visits.update", err, "user_id", principal.ID, "visit_id", visitID)
		return
	}

	writeJSON(w, http.StatusOK, toVisitResponse(*v))
}

func (h *Handlers) CompleteVisit(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}
	visitID, ok := parseUUIDParam(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusBadRequest, "validation_error", "visit id must be a valid uuid")
		return
	}

	var req completeVisitRequest
	if r.ContentLength > 0 {
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
			return
		}
	}

	v, err := h.Visits.Complete(r.Context(), visitID, principal.ID, req.Notes)
	if err != nil {
		h.writeDomainError(w, "visits.complete", err, "user_id", principal.ID, "visit_id", visitID)
		return
	}

	writeJSON(w, http.StatusOK, toVisitResponse(*v))
}

func (h *Handlers) CancelVisit(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}
	visitID, ok := parseUUIDParam(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusBadRequest, "validation_error", "visit id must be a valid uuid")
		return
	}

	var req cancelVisitRequest
	if r.ContentLength > 0 {
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
			return
		}
	}

	v, err := h.Visits.Cancel(r.Context(), visitID, principal.ID, req.Reason)
	if err != nil {
		h.writeDomainError(w, "visits.cancel", err, "user_id", principal.ID, "visit_id", visitID)
		return
	}

	writeJSON(w, http.StatusOK, toVisitResponse(*v))
}

func (h *Handlers) DeleteVisit(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}
	visitID, ok := parseUUIDParam(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusBadRequest, "validation_error", "visit id must be a valid uuid")
		return
	}

	if err := h.Visits.Delete(r.Context(), visitID, principal.ID); err != nil {
		h.writeDomainError(w, "visits.delete", err, "user_id", principal.ID, "visit_id", visitID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) ListPropertyVisits(w http.ResponseWriter, r *http.Request) {
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

	filter, ok := h.visitListFilter(w, r)
	if !ok {
		return
	}

	visits, total, err := h.Visits.ListByProperty(r.Context(), propertyID, principal.ID, filter)
	if err != nil {
		h.writeDomainError(w, "visits.list_property", err, "user_id", principal.ID, "property_id", propertyID)
		return
	}

	writeJSON(w, http.StatusOK, toVisitListResponse(visits, total, filter))
}

// ListReceivedVisits returns visits on all of the caller's properties,
// enriched with requester contact details where the identity service allows
// it. Enrichment never fails the page: a denied lookup leaves user null.
func (h *Handlers) ListReceivedVisits(w http.ResponseWriter, r *http.Request) {
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

	filter, ok := h.visitListFilter(w, r)
	if !ok {
		return
	}

	visits, total, err := h.Visits.ListReceived(r.Context(), principal.ID, filter)
	if err != nil {
		h.writeDomainError(w, "visits.list_received", err, "user_id", principal.ID)
		return
	}

	items := make([]visitWithUserResponse, 0, len(visits))
	for _, v := range visits {
		items = append(items, visitWithUserResponse{
			visitResponse: toVisitResponse(v),
			User:          toUserResponse(h.users.UserInfo(r.Context(), v.RequesterID, token)),
		})
	}

	writeJSON(w, http.StatusOK, visitWithUserListResponse{
		Items:      items,
		Total:      total,
		Page:       filter.Page,
		Size:       filter.Size,
		TotalPages: totalPages(total, filter.Size),
	})
}

func (h *Handlers) visitListFilter(w http.ResponseWriter, r *http.Request) (visitdomain.ListFilter, bool) {
	query := r.URL.Query()

	params, err := parsePageParams(query)
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation_error", err.Error())
		return visitdomain.ListFilter{}, false
	}
	includeCancelled, err := parseBoolParam(query.Get("include_cancelled"), false)
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation_error", "invalid include_cancelled")
		return visitdomain.ListFilter{}, false
	}
	includeCompleted, err := parseBoolParam(query.Get("include_completed"), true)
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation_error", "invalid include_completed")
		return visitdomain.ListFilter{}, false
	}

	return visitdomain.ListFilter{
		Page:             params.Page,
		Size:             params.Size,
		IncludeCancelled: includeCancelled,
		IncludeCompleted: includeCompleted,
	}, true
}

func toVisitListResponse(visits []visitdomain.Visit, total int64, filter visitdomain.ListFilter) visitListResponse {
	items := make([]visitResponse, 0, len(visits))
	for _, v := range visits {
		items = append(items, toVisitResponse(v))
	}
	return visitListResponse{
		Items:      items,
		Total:      total,
		Page:       filter.Page,
		Size:       filter.Size,
		TotalPages: totalPages(total, filter.Size),
	}
}
