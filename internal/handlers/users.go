package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"benchmate/internal/apperr"
	"benchmate/internal/users"
)

func (a *API) handleMe(w http.ResponseWriter, r *http.Request) {
	user, err := a.users.Me(r.Context(), userID(r))
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, "", user)
}

// handleGetUser serves another user's public profile: no email, no hash.
func (a *API) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, apperr.NotFound("User not found"))
		return
	}

	user, err := a.users.Get(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}

	respond(w, http.StatusOK, "", map[string]any{
		"id":        user.ID,
		"name":      user.Name,
		"institute": user.Institute,
		"major":     user.Major,
		"createdAt": user.CreatedAt,
	})
}

func (a *API) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name      *string `json:"name"`
		Institute *string `json:"institute"`
		Major     *string `json:"major"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	user, err := a.users.UpdateProfile(r.Context(), userID(r), users.UpdateProfileInput{
		Name:      req.Name,
		Institute: req.Institute,
		Major:     req.Major,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respond(w, http.StatusOK, "Profile updated", user)
}

func (a *API) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OldPassword string `json:"oldPassword"`
		NewPassword string `json:"newPassword"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	if err := a.users.ChangePassword(r.Context(), userID(r), req.OldPassword, req.NewPassword); err != nil {
		respondError(w, err)
		return
	}

	respond(w, http.StatusOK, "Password changed successfully", nil)
}

func (a *API) handleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	if err := a.users.DeleteAccount(r.Context(), userID(r)); err != nil {
		respondError(w, err)
		return
	}

	http.SetCookie(w, a.sessionCookie("", -1))
	respond(w, http.StatusOK, "Account deleted successfully", nil)
}
