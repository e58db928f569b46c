package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/markethub/backend/internal/infrastructure/auth"
	"github.com/markethub/backend/internal/infrastructure/config"
	"github.com/markethub/backend/internal/infrastructure/logger"
	"github.com/markethub/backend/internal/interfaces/http/handler"
	"github.com/markethub/backend/internal/interfaces/http/middleware"
)

// Config wires the handlers and cross-cutting dependencies the router needs.
type Config struct {
	JWTService  *auth.JWTService
	HTTP        config.HTTPConfig
	MaxFeedSize int64
	Logger      *zap.Logger

	System   *handler.SystemHandler
	Auth     *handler.AuthHandler
	Catalog  *handler.CatalogHandler
	Cart     *handler.CartHandler
	Order    *handler.OrderHandler
	Contact  *handler.ContactHandler
	Supplier *handler.SupplierHandler
}

// New builds the gin engine with all middleware and routes registered.
func New(cfg Config) *gin.Engine {
	engine := gin.New()

	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.CORS(middleware.CORSConfig{
		AllowOrigins: cfg.HTTP.CORSAllowOrigins,
		AllowMethods: cfg.HTTP.CORSAllowMethods,
		AllowHeaders: cfg.HTTP.CORSAllowHeaders,
	}))
	if cfg.HTTP.MaxBodySize > 0 {
		engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	}

	engine.GET("/health", cfg.System.Health)

	api := engine.Group("/api/v1")
	api.Use(middleware.JWTAuth(cfg.JWTService))

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", cfg.Auth.Register)
		authGroup.POST("/login", cfg.Auth.Login)
		authGroup.POST("/refresh", cfg.Auth.Refresh)
		authGroup.GET("/me", cfg.Auth.Me)
	}

	api.GET("/categories", cfg.Catalog.ListCategories)
	api.GET("/products", cfg.Catalog.ListProducts)
	api.GET("/products/:id", cfg.Catalog.GetProduct)

	cart := api.Group("/cart")
	{
		cart.GET("", cfg.Cart.Show)
		cart.POST("/items", cfg.Cart.AddItem)
		cart.DELETE("/items/:id", cfg.Cart.RemoveItem)
		cart.POST("/confirm", cfg.Cart.Confirm)
	}

	orders := api.Group("/orders")
	{
		orders.GET("", cfg.Order.List)
		orders.GET("/:id", cfg.Order.Get)
	}

	contacts := api.Group("/contacts")
	{
		contacts.GET("", cfg.Contact.List)
		contacts.POST("", cfg.Contact.Create)
		contacts.PUT("/:id", cfg.Contact.Update)
		contacts.DELETE("/:id", cfg.Contact.Delete)
	}

	supplier := api.Group("/supplier")
	supplier.Use(middleware.RequireRole("supplier"))
	{
		supplier.GET("/state", cfg.Supplier.GetState)
		supplier.PUT("/state", cfg.Supplier.UpdateState)

		pricelist := supplier.Group("")
		if cfg.MaxFeedSize > 0 {
			pricelist.Use(middleware.BodyLimit(cfg.MaxFeedSize))
		}
		pricelist.POST("/pricelist", cfg.Supplier.UploadPricelist)
	}

	return engine
}
