package httpserver

import (
	"context"
	"errors"
	"io"
	"log"
	"time"

	"greencart/internal/domain"
	"greencart/internal/metrics"
	ordersvc "greencart/internal/service/order"
	usersvc "greencart/internal/service/user"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

type userService interface {
	Register(ctx context.Context, in usersvc.RegisterInput) (*domain.User, string, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
	Logout(ctx context.Context, token string) error
	LookupByToken(ctx context.Context, token string) (*domain.User, error)
}

type sellerService interface {
	Login(ctx context.Context, email, password string) (string, error)
	Logout(ctx context.Context, token string) error
	Authenticate(ctx context.Context, token string) error
}

type productService interface {
	List(ctx context.Context, inStockOnly bool) ([]domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
}

type cartService interface {
	Get(ctx context.Context, userID string) (domain.CartItems, error)
	Update(ctx context.Context, userID string, items domain.CartItems) (domain.CartItems, error)
}

type orderService interface {
	PlaceCOD(ctx context.Context, in ordersvc.PlaceInput) (*domain.Order, error)
	PlaceOnline(ctx context.Context, in ordersvc.PlaceInput) (*ordersvc.OnlinePlacement, error)
	VerifyPayment(ctx context.Context, in ordersvc.VerifyInput) (*domain.Order, error)
	ListForUser(ctx context.Context, userID string) ([]domain.Order, error)
	ListAll(ctx context.Context) ([]domain.Order, error)
}

// Deps carries the services and HTTP settings the router needs.
type Deps struct {
	UserSvc    userService
	SellerSvc  sellerService
	ProductSvc productService
	CartSvc    cartService
	OrderSvc   orderService
	Metrics    *metrics.Registry

	AllowedOrigins []string
	SecureCookies  bool
	SessionTTL     time.Duration
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) (*gin.Engine, error) {
	if deps.UserSvc == nil || deps.SellerSvc == nil || deps.ProductSvc == nil || deps.CartSvc == nil || deps.OrderSvc == nil {
		return nil, errors.New("httpserver: missing service dependency")
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if deps.SessionTTL <= 0 {
		deps.SessionTTL = 7 * 24 * time.Hour
	}

	if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	if len(deps.AllowedOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     deps.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))
	if deps.Metrics != nil {
		router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	h := &handlers{deps: deps, logger: logger}
	authUser := userAuthMiddleware(deps.UserSvc)
	authSeller := sellerAuthMiddleware(deps.SellerSvc)

	api := router.Group("/api")

	users := api.Group("/user")
	users.POST("/register", h.register)
	users.POST("/login", h.login)
	users.GET("/is-auth", authUser, h.isAuth)
	users.GET("/logout", authUser, h.logout)

	seller := api.Group("/seller")
	seller.POST("/login", h.sellerLogin)
	seller.GET("/is-auth", authSeller, h.sellerIsAuth)
	seller.GET("/logout", authSeller, h.sellerLogout)

	products := api.Group("/product")
	products.GET("/list", h.listProducts)
	products.GET("/:id", h.getProduct)

	cart := api.Group("/cart", authUser)
	cart.GET("", h.getCart)
	cart.POST("/update", h.updateCart)

	orders := api.Group("/order")
	orders.POST("/cod", authUser, h.placeCOD)
	orders.POST("/razorpay", authUser, h.placeOnline)
	orders.POST("/razorpay/verify", authUser, h.verifyPayment)
	orders.GET("/user", authUser, h.userOrders)
	orders.GET("/seller", authSeller, h.sellerOrders)

	return router, nil
}

type handlers struct {
	deps   Deps
	logger *log.Logger
}
