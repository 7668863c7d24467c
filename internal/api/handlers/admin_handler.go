package handlers

import (
	"net/http"

	"github.com/carebridge/hms-gateway/internal/application/services"
)

// AdminHandler serves the admin dashboard's account management
type AdminHandler struct {
	accounts *services.AccountService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(accounts *services.AccountService) *AdminHandler {
	return &AdminHandler{accounts: accounts}
}

// InactiveUsers handles GET /api/admin/inactive-users
func (h *AdminHandler) InactiveUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.accounts.InactiveUsers(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"users": users,
		"count": len(users),
	})
}

// ActivateAccount handles POST /api/admin/accounts/{id}/activate
func (h *AdminHandler) ActivateAccount(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	if err := h.accounts.ActivateAccount(r.Context(), userID); err != nil {
		respondWithAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteAccount handles DELETE /api/admin/accounts/{id}
func (h *AdminHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	if err := h.accounts.DeleteAccount(r.Context(), userID); err != nil {
		respondWithAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
