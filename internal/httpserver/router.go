package httpserver

import (
	"context"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/zakaria-baami/marketplace-backend-sub001/internal/domain"
	productrepo "github.com/zakaria-baami/marketplace-backend-sub001/internal/repository/product"
	boutiqueservice "github.com/zakaria-baami/marketplace-backend-sub001/internal/service/boutique"
)

// CartService is the cart surface consumed by handlers.
type CartService interface {
	Get(ctx context.Context, buyerID string) (*domain.Cart, error)
	AddProduct(ctx context.Context, buyerID, productID string, quantity int) (*domain.Cart, error)
	ChangeQuantity(ctx context.Context, buyerID, lineID string, quantity int) (*domain.Cart, error)
	Snapshot(ctx context.Context, buyerID string) (*domain.PricedCart, error)
}

type OrderService interface {
	Checkout(ctx context.Context, buyerID string, cart domain.PricedCart) (*domain.Order, error)
	Cancel(ctx context.Context, buyerID, orderID string) (*domain.Order, error)
	Advance(ctx context.Context, orderID string, next domain.OrderStatus) (*domain.Order, error)
	Get(ctx context.Context, buyerID, orderID string) (*domain.Order, error)
	ListMine(ctx context.Context, buyerID string) ([]domain.Order, error)
}

type BoutiqueService interface {
	Create(ctx context.Context, sellerID string, in boutiqueservice.CreateInput) (*domain.Boutique, error)
	ChangeTemplate(ctx context.Context, sellerID, boutiqueID, templateID string) (*domain.Boutique, error)
	Get(ctx context.Context, boutiqueID string) (*domain.Boutique, error)
	AuthorizeOwner(ctx context.Context, callerID, boutiqueID string) (*domain.Boutique, error)
	ListTemplates(ctx context.Context) ([]domain.Template, error)
}

type StatsService interface {
	Aggregate(ctx context.Context, boutiqueID string, period domain.Period) (*domain.SellerStats, error)
}

// ProductCatalog is satisfied by the product repository.
type ProductCatalog interface {
	ListByBoutique(ctx context.Context, boutiqueID string) ([]domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, in productrepo.CreateProductInput) (*domain.Product, error)
}

// Deps carries the services the router needs.
type Deps struct {
	CartSvc     CartService
	OrderSvc    OrderService
	BoutiqueSvc BoutiqueService
	StatsSvc    StatsService
	Products    ProductCatalog
}

// buildRouter wires routes for the API. Authentication is handled upstream;
// the caller identity arrives in the X-User-ID header.
func buildRouter(logger *zap.Logger, db *pgxpool.Pool, deps Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(logger), cors.Default())

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.GET("/carts/mine", requireIdentity, getCartHandler(deps.CartSvc))
	router.POST("/carts/mine/lines", requireIdentity, addCartLineHandler(deps.CartSvc))
	router.PUT("/carts/mine/lines/:lineId", requireIdentity, changeCartLineHandler(deps.CartSvc))
	router.POST("/carts/mine/snapshot", requireIdentity, snapshotCartHandler(deps.CartSvc))

	router.POST("/orders", requireIdentity, checkoutHandler(deps.CartSvc, deps.OrderSvc))
	router.GET("/orders", requireIdentity, listOrdersHandler(deps.OrderSvc))
	router.GET("/orders/:id", requireIdentity, getOrderHandler(deps.OrderSvc))
	router.POST("/orders/:id/cancel", requireIdentity, cancelOrderHandler(deps.OrderSvc))
	router.POST("/orders/:id/status", requireIdentity, advanceOrderHandler(deps.OrderSvc))

	router.GET("/templates", listTemplatesHandler(deps.BoutiqueSvc))
	router.POST("/boutiques", requireIdentity, createBoutiqueHandler(deps.BoutiqueSvc))
	router.GET("/boutiques/:id", getBoutiqueHandler(deps.BoutiqueSvc))
	router.PUT("/boutiques/:id", requireIdentity, changeTemplateHandler(deps.BoutiqueSvc))
	router.GET("/boutiques/:id/statistiques", requireIdentity, statsHandler(deps.BoutiqueSvc, deps.StatsSvc))
	router.GET("/boutiques/:id/products", listProductsHandler(deps.Products))
	router.POST("/boutiques/:id/products", requireIdentity, createProductHandler(deps.BoutiqueSvc, deps.Products))
	router.GET("/products/:id", getProductHandler(deps.Products))

	return router
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(c *gin.Context) {
		c.Next()
		logger.Debug("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()))
	}
}
