package http

import (
	"net/http"

	"github.com/MKhiriev/go-storefront/internal/logger"
	"github.com/MKhiriev/go-storefront/internal/utils"
	"github.com/MKhiriev/go-storefront/models"
)

// login authenticates the browser session. A session that already carries
// an identity is sent to the product listing instead.
func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	if _, ok := utils.GetUserIDFromContext(ctx); ok {
		http.Redirect(w, r, productsPath, http.StatusSeeOther)
		return
	}

	sess, err := sessionFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req models.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	result := h.services.AuthManager.Authenticate(ctx, sess, req.Login, req.Password)
	switch result.Code {
	case models.AuthSuccess:
		log.Info().Int64("id", result.User.UserID).Msg("user successfully logged in")
		utils.WriteJSON(w, result, http.StatusOK)
	case models.AuthGeneralFailure:
		utils.WriteJSON(w, result, http.StatusInternalServerError)
	default:
		log.Info().Str("login", req.Login).Stringer("code", result.Code).Msg("login rejected")
		utils.WriteJSON(w, result, http.StatusUnauthorized)
	}
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	sess, err := sessionFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.services.AuthManager.ClearIdentity(r.Context(), sess); err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.AuthStatus{}, http.StatusOK)
}

func (h *Handler) authStatus(w http.ResponseWriter, r *http.Request) {
	sess, err := sessionFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	status := models.AuthStatus{Expired: h.services.AuthManager.Expired(sess)}
	if _, ok := utils.GetUserIDFromContext(r.Context()); ok {
		status.HasIdentity = true
		status.UserID = sess.Token.UserID
		status.Login = sess.Token.Login
		status.Name = sess.Token.Name
	}

	utils.WriteJSON(w, status, http.StatusOK)
}
