package handler

import "net/http"

type relationResponse struct {
	HasRelation bool   `json:"has_relation"`
	HasVisit    bool   `json:"has_visit"`
	HasProposal bool   `json:"has_proposal"`
	UserID      string `json:"user_id"`
	OwnerID     string `json:"owner_id"`
}

// CheckUserPropertyRelation is the service-to-service endpoint the identity
// service calls before releasing a user's contact details to a property
// owner. The internal-secret middleware has already authenticated the peer.
func (h *Handlers) CheckUserPropertyRelation(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	userID, ok := parseUUIDParam(query.Get("user_id"))
	if !ok {
		writeError(w, http.StatusBadRequest, "validation_error", "user_id must be a valid uuid")
		return
	}
	ownerID, ok := parseUUIDParam(query.Get("owner_id"))
	if !ok {
		writeError(w, http.StatusBadRequest, "validation_error", "owner_id must be a valid uuid")
		return
	}

	relation, err := h.Relations.Check(r.Context(), userID, ownerID)
	if err != nil {
		h.log.InternalError("internal.relation_check failed", err, "user_id", userID, "owner_id", ownerID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, relationResponse{
		HasRelation: relation.HasRelation(),
		HasVisit:    relation.HasVisit,
		HasProposal: relation.HasProposal,
		UserID:      userID,
		OwnerID:     ownerID,
	})
}
