package handlers

import (
	"net/http"

	"accounts-backend/application/dto"
	"accounts-backend/application/services"
	"accounts-backend/pkg/common"
)

// AuthHandler issues JWT tokens against stored credentials.
type AuthHandler struct {
	users *services.UserService
	auth  *services.AuthService
}

func NewAuthHandler(users *services.UserService, auth *services.AuthService) *AuthHandler {
	return &AuthHandler{users: users, auth: auth}
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) error {
	var req dto.LoginRequest
	if err := decodeBody(r, &req); err != nil {
		return err
	}

	user, err := h.users.ValidateCredentials(r.Context(), req.UserID, req.Password)
	if err != nil {
		return err
	}

	token, err := h.auth.GenerateToken(user)
	if err != nil {
		return err
	}
	return common.RespondJSON(w, http.StatusOK, token)
}
