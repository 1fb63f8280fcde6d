package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	appmw "github.com/gamestash/marketplace-backend/internal/middleware"
	"github.com/gamestash/marketplace-backend/internal/model"
	"github.com/gamestash/marketplace-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type ItemHandler struct {
	svc service.ItemService
}

func NewItemHandler(svc service.ItemService) *ItemHandler {
	return &ItemHandler{svc: svc}
}

type ItemResponse struct {
	ID             uint64          `json:"id"`
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	Price          decimal.Decimal `json:"price"`
	ImageURL       *string         `json:"imageUrl,omitempty"`
	SellerID       uint64          `json:"sellerId"`
	SellerUsername string          `json:"sellerUsername"`
	CategoryID     uint64          `json:"categoryId"`
	CategoryName   string          `json:"categoryName"`
	GameName       string          `json:"gameName"`
	Status         string          `json:"status"`
	CreatedAt      string          `json:"createdAt"`
	UpdatedAt      string          `json:"updatedAt"`
}

type ItemListResponse struct {
	Items []ItemResponse `json:"items"`
}

type CreateItemRequest struct {
	Title       string          `json:"title" validate:"required,max=120"`
	Description string          `json:"description" validate:"required"`
	Price       decimal.Decimal `json:"price" validate:"required"`
	CategoryID  uint64          `json:"categoryId" validate:"required"`
	ImageURL    *string         `json:"imageUrl"`
}

func toItemResponse(item *model.Item) ItemResponse {
	return ItemResponse{
		ID:             item.ID,
		Title:          item.Title,
		Description:    item.Description,
		Price:          item.Price,
		ImageURL:       item.ImageURL,
		SellerID:       item.SellerID,
		SellerUsername: item.Seller.Username,
		CategoryID:     item.CategoryID,
		CategoryName:   item.Category.Name,
		GameName:       item.Category.Game.Name,
		Status:         string(item.Status),
		CreatedAt:      item.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      item.UpdatedAt.Format(time.RFC3339),
	}
}

func toItemListResponse(items []model.Item) ItemListResponse {
	resp := ItemListResponse{Items: make([]ItemResponse, 0, len(items))}
	for i := range items {
		resp.Items = append(resp.Items, toItemResponse(&items[i]))
	}
	return resp
}

func (h *ItemHandler) List(c echo.Context) error {
	items, err := h.svc.ListActive(c.Request().Context(), c.QueryParam("game"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch items"))
	}
	return c.JSON(http.StatusOK, toItemListResponse(items))
}

func (h *ItemHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid id"))
	}
	item, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "item not found"))
		}
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch item"))
	}
	return c.JSON(http.StatusOK, toItemResponse(item))
}

func (h *ItemHandler) Create(c echo.Context) error {
	user := appmw.CurrentUser(c)
	if user == nil {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "authentication required"))
	}
	var req CreateItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", err.Error()))
	}
	item, err := h.svc.Create(c.Request().Context(), user, req.Title, req.Description, req.Price, req.CategoryID, req.ImageURL)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", err.Error()))
	}
	return c.JSON(http.StatusCreated, toItemResponse(item))
}

func (h *ItemHandler) ListMine(c echo.Context) error {
	user := appmw.CurrentUser(c)
	if user == nil {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "authentication required"))
	}
	items, err := h.svc.ListMine(c.Request().Context(), user.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch items"))
	}
	return c.JSON(http.StatusOK, toItemListResponse(items))
}

func (h *ItemHandler) ListPurchased(c echo.Context) error {
	user := appmw.CurrentUser(c)
	if user == nil {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "authentication required"))
	}
	items, err := h.svc.ListPurchases(c.Request().Context(), user.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch purchases"))
	}
	return c.JSON(http.StatusOK, toItemListResponse(items))
}
