package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"accounts-backend/application/dto"
	"accounts-backend/application/services"
	"accounts-backend/pkg/common"
	apperrors "accounts-backend/pkg/errors"
	"accounts-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
)

// UserHandler exposes the user management endpoints. All routes require an
// authenticated admin caller; enforcement lives in the middleware chain, not
// here.
type UserHandler struct {
	users *services.UserService
}

func NewUserHandler(users *services.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// GetAll handles GET /users.
func (h *UserHandler) GetAll(w http.ResponseWriter, r *http.Request) error {
	users, err := h.users.GetAllUsers(r.Context())
	if err != nil {
		return err
	}
	return common.RespondJSON(w, http.StatusOK, users)
}

// GetByID handles GET /users/{id}.
func (h *UserHandler) GetByID(w http.ResponseWriter, r *http.Request) error {
	id := chi.URLParam(r, "id")
	user, err := h.users.GetUserByID(r.Context(), id)
	if err != nil {
		return err
	}
	return common.RespondJSON(w, http.StatusOK, user)
}

// Add handles POST /users. A request named "error 500 fake" deliberately
// blows up so the unhandled-failure path stays exercisable end to end.
func (h *UserHandler) Add(w http.ResponseWriter, r *http.Request) error {
	var req dto.UserRequest
	if err := decodeBody(r, &req); err != nil {
		return err
	}

	if strings.EqualFold(req.Name, "error 500 fake") {
		return errors.New("Error 500 adding user. [FAKE] ")
	}

	created, err := h.users.AddUser(r.Context(), req)
	if err != nil {
		return err
	}

	w.Header().Set("Location", "/users/"+created.UserID)
	return common.RespondJSON(w, http.StatusCreated, created)
}

// Update handles PUT /users/{id}. The path id wins over any id in the body.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) error {
	var req dto.UserRequest
	if err := decodeBody(r, &req); err != nil {
		return err
	}
	req.UserID = chi.URLParam(r, "id")

	updated, err := h.users.UpdateUser(r.Context(), req)
	if err != nil {
		return err
	}
	return common.RespondJSON(w, http.StatusOK, updated)
}

// Delete handles DELETE /users/{id}.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) error {
	if err := h.users.DeleteUser(r.Context(), chi.URLParam(r, "id")); err != nil {
		return err
	}
	return common.RespondNoContent(w)
}

// decodeBody parses and validates a JSON request body. Malformed JSON and
// failed field validation both classify as validation failures.
func decodeBody(r *http.Request, dest interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		return apperrors.NewValidationError("Invalid request body.").WithCause(err)
	}
	if err := utils.ValidateStruct(dest); err != nil {
		return apperrors.NewValidationError(err.Error())
	}
	return nil
}
