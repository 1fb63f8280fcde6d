package server

import (
	"net/http"
	"strings"

	"github.com/gamestash/marketplace-backend/internal/config"
	"github.com/gamestash/marketplace-backend/internal/handler"
	appmw "github.com/gamestash/marketplace-backend/internal/middleware"
	"github.com/gamestash/marketplace-backend/internal/payment"
	"github.com/gamestash/marketplace-backend/internal/repository"
	"github.com/gamestash/marketplace-backend/internal/service"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"
)

type Server struct {
	e *echo.Echo
}

type payloadValidator struct {
	validate *validator.Validate
}

func (v *payloadValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

func New(db *gorm.DB, cfg *config.Config, provider payment.Provider) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Validator = &payloadValidator{validate: validator.New()}
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		AllowOriginFunc: func(origin string) (bool, error) {
			low := strings.ToLower(origin)
			if strings.HasPrefix(low, "http://localhost:") || strings.HasPrefix(low, "http://127.0.0.1:") ||
				strings.HasPrefix(low, "https://localhost:") || strings.HasPrefix(low, "https://127.0.0.1:") {
				return true, nil
			}
			return false, nil
		},
	}))

	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewTokenRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)
	itemRepo := repository.NewItemRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	userSvc := service.NewUserService(userRepo, tokenRepo)
	catalogSvc := service.NewCatalogService(catalogRepo)
	itemSvc := service.NewItemService(itemRepo)
	checkoutSvc := service.NewCheckoutService(provider, itemRepo, orderRepo, cfg.CheckoutSuccessURL, cfg.CheckoutCancelURL)

	authHandler := handler.NewAuthHandler(userSvc)
	profileHandler := handler.NewProfileHandler(userSvc)
	catalogHandler := handler.NewCatalogHandler(catalogSvc)
	itemHandler := handler.NewItemHandler(itemSvc)
	checkoutHandler := handler.NewCheckoutHandler(checkoutSvc)

	authMw := appmw.NewAuthMiddleware(tokenRepo)
	e.Use(authMw.ResolveIdentity)

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"ok": "true"})
	})

	api := e.Group("/api")
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/logout", authHandler.Logout, authMw.RequireAuth)
	api.GET("/profile", profileHandler.Get, authMw.RequireAuth)
	api.PUT("/profile", profileHandler.Update, authMw.RequireAuth)

	api.GET("/games", catalogHandler.ListGames)
	api.GET("/categories", catalogHandler.ListCategories)

	api.GET("/items", itemHandler.List)
	api.POST("/items/create", itemHandler.Create, authMw.RequireAuth)
	api.GET("/items/my", itemHandler.ListMine, authMw.RequireAuth)
	api.GET("/items/purchased", itemHandler.ListPurchased, authMw.RequireAuth)
	api.GET("/items/:id", itemHandler.Get)

	checkout := e.Group("/checkout")
	checkout.GET("/success", checkoutHandler.Success)
	checkout.GET("/cancel", checkoutHandler.Cancel)
	checkout.POST("/webhook", checkoutHandler.Webhook)
	checkout.GET("/:item_id", checkoutHandler.Checkout, authMw.RequireAuth)

	return &Server{e: e}
}

func (s *Server) Start(addr string) error {
	return s.e.Start(addr)
}

// Echo exposes the underlying router, used by tests to serve requests
// without binding a port.
func (s *Server) Echo() *echo.Echo {
	return s.e
}
