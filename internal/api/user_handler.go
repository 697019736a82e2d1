package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/taskin/taskin-api/internal/api/shared"
	"github.com/taskin/taskin-api/internal/service"
)

// UserHandler handles user-related API requests.
type UserHandler struct {
	userService *service.UserService
	validator   *validator.Validate
}

// NewUserHandler creates a new UserHandler with the given dependencies.
func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
		validator:   validator.New(),
	}
}

// Login handles POST /api/users. Login is idempotent: a known name resolves
// to the same opaque identifier it always has, an unknown name registers a
// new user.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest

	if err := DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: name is required")
		return
	}

	token, err := h.userService.Login(r.Context(), req.Name)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, LoginResponse{ID: token})
}
