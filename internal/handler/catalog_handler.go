package handler

import (
	"net/http"
	"strconv"

	"github.com/gamestash/marketplace-backend/internal/model"
	"github.com/gamestash/marketplace-backend/internal/service"
	"github.com/labstack/echo/v4"
)

type CatalogHandler struct {
	svc service.CatalogService
}

func NewCatalogHandler(svc service.CatalogService) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

type GameResponse struct {
	ID       uint64  `json:"id"`
	Name     string  `json:"name"`
	Slug     string  `json:"slug"`
	ImageURL *string `json:"imageUrl,omitempty"`
}

type CategoryResponse struct {
	ID     uint64 `json:"id"`
	Name   string `json:"name"`
	Slug   string `json:"slug"`
	GameID uint64 `json:"gameId"`
}

func toGameResponse(g *model.Game) GameResponse {
	return GameResponse{
		ID:       g.ID,
		Name:     g.Name,
		Slug:     g.Slug,
		ImageURL: g.ImageURL,
	}
}

func toCategoryResponse(cat *model.Category) CategoryResponse {
	return CategoryResponse{
		ID:     cat.ID,
		Name:   cat.Name,
		Slug:   cat.Slug,
		GameID: cat.GameID,
	}
}

func (h *CatalogHandler) ListGames(c echo.Context) error {
	games, err := h.svc.ListGames(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch games"))
	}
	resp := make([]GameResponse, 0, len(games))
	for i := range games {
		resp = append(resp, toGameResponse(&games[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *CatalogHandler) ListCategories(c echo.Context) error {
	var gameID uint64
	if raw := c.QueryParam("game_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid game_id"))
		}
		gameID = id
	}
	categories, err := h.svc.ListCategories(c.Request().Context(), gameID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch categories"))
	}
	resp := make([]CategoryResponse, 0, len(categories))
	for i := range categories {
		resp = append(resp, toCategoryResponse(&categories[i]))
	}
	return c.JSON(http.StatusOK, resp)
}
