package handler

import (
	"errors"
	"net/http"

	appmw "github.com/gamestash/marketplace-backend/internal/middleware"
	"github.com/gamestash/marketplace-backend/internal/service"
	"github.com/labstack/echo/v4"
)

type ProfileHandler struct {
	svc service.UserService
}

func NewProfileHandler(svc service.UserService) *ProfileHandler {
	return &ProfileHandler{svc: svc}
}

type UpdateProfileRequest struct {
	Username  string  `json:"username" validate:"required,max=150"`
	Email     string  `json:"email" validate:"required,email"`
	AvatarURL *string `json:"avatarUrl"`
}

func (h *ProfileHandler) Get(c echo.Context) error {
	user := appmw.CurrentUser(c)
	if user == nil {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "authentication required"))
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

func (h *ProfileHandler) Update(c echo.Context) error {
	user := appmw.CurrentUser(c)
	if user == nil {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "authentication required"))
	}
	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", err.Error()))
	}
	updated, err := h.svc.UpdateProfile(c.Request().Context(), user, req.Username, req.Email, req.AvatarURL)
	if err != nil {
		if errors.Is(err, service.ErrUsernameTaken) {
			return c.JSON(http.StatusConflict, NewErrorResponse("conflict", "username already taken"))
		}
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", err.Error()))
	}
	return c.JSON(http.StatusOK, toUserResponse(updated))
}
