package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	appmw "github.com/gamestash/marketplace-backend/internal/middleware"
	"github.com/gamestash/marketplace-backend/internal/service"
	"github.com/labstack/echo/v4"
)

// SignatureHeader carries the provider's webhook signature.
const SignatureHeader = "Provider-Signature"

type CheckoutHandler struct {
	svc service.CheckoutService
}

func NewCheckoutHandler(svc service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{svc: svc}
}

type CheckoutOutcomeResponse struct {
	Status string        `json:"status"`
	Item   *ItemResponse `json:"item"`
	Order  *uint64       `json:"orderId,omitempty"`
}

// Checkout creates a provider session for the item and redirects the
// buyer to the provider's payment page.
func (h *CheckoutHandler) Checkout(c echo.Context) error {
	user := appmw.CurrentUser(c)
	if user == nil {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "authentication required"))
	}
	itemID, err := strconv.ParseUint(c.Param("item_id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid item id"))
	}
	url, err := h.svc.CreateSession(c.Request().Context(), itemID, user)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "item not found"))
		case errors.Is(err, service.ErrProvider):
			return c.JSON(http.StatusBadGateway, NewErrorResponse("provider_error", "failed to start checkout"))
		default:
			return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to start checkout"))
		}
	}
	return c.Redirect(http.StatusSeeOther, url)
}

// Success finalizes the purchase after the provider redirects the buyer
// back. An unknown item or an anonymous caller is not an error here:
// the outcome stays neutral and nothing is recorded.
func (h *CheckoutHandler) Success(c echo.Context) error {
	var itemID uint64
	if raw := c.QueryParam("item_id"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 64); err == nil {
			itemID = id
		}
	}
	item, order, err := h.svc.CompleteSuccess(c.Request().Context(), itemID, appmw.CurrentUser(c))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to finalize purchase"))
	}
	resp := CheckoutOutcomeResponse{Status: "success"}
	if item != nil {
		ir := toItemResponse(item)
		resp.Item = &ir
	}
	if order != nil {
		resp.Order = &order.ID
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *CheckoutHandler) Cancel(c echo.Context) error {
	return c.JSON(http.StatusOK, CheckoutOutcomeResponse{Status: "canceled"})
}

// Webhook verifies and acknowledges provider events. An invalid
// signature is the only condition rejected; every verified event is
// acknowledged whatever its type.
func (h *CheckoutHandler) Webhook(c echo.Context) error {
	payload, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "unreadable payload"))
	}
	if err := h.svc.HandleWebhook(c.Request().Context(), payload, c.Request().Header.Get(SignatureHeader)); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("invalid_signature", "webhook signature verification failed"))
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "success"})
}
