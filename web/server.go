package web

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/janenicoldelacruz-web/lakson-inventory/stock"
	"github.com/janenicoldelacruz-web/lakson-inventory/web/handlers"
	"github.com/janenicoldelacruz-web/lakson-inventory/web/middleware"
)

// Server represents the web server
type Server struct {
	app *fiber.App
}

// NewServer creates a new Fiber server wired to the stock engine
func NewServer(engine *stock.Engine, rdb *redis.Client, log *logrus.Logger) *Server {
	handlers.Init(engine, rdb, log)

	app := fiber.New(fiber.Config{
		AppName:      "lakson-inventory",
		ErrorHandler: errorHandler(log),
	})

	// Middleware
	app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
	}))
	app.Use(cors.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path} ${error}\n",
	}))
	app.Use(middleware.Actor())

	// Setup routes
	setupRoutes(app)

	return &Server{app: app}
}

// Start starts the server
func (s *Server) Start(port string) error {
	return s.app.Listen(":" + port)
}

// Shutdown gracefully stops the server
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// App exposes the underlying fiber app (used by tests)
func (s *Server) App() *fiber.App {
	return s.app
}

// errorHandler maps the stock error taxonomy onto HTTP statuses. Every
// response body is {"error": ..., "kind": ...} so clients can branch without
// string matching.
func errorHandler(log *logrus.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		kind := "internal"

		var fiberErr *fiber.Error
		var validationErr *stock.ValidationError
		var stockErr *stock.InsufficientStockError
		var persistErr *stock.PersistenceError

		switch {
		case errors.As(err, &fiberErr):
			code = fiberErr.Code
			kind = "http"
		case errors.As(err, &validationErr):
			code = fiber.StatusUnprocessableEntity
			kind = "validation"
		case errors.Is(err, stock.ErrInvalidUnit):
			code = fiber.StatusUnprocessableEntity
			kind = "invalid_unit"
		case errors.As(err, &stockErr):
			code = fiber.StatusConflict
			kind = "insufficient_stock"
		case errors.Is(err, stock.ErrLockTimeout):
			code = fiber.StatusLocked
			kind = "lock_timeout"
		case errors.Is(err, stock.ErrBatchOverdraw):
			code = fiber.StatusInternalServerError
			kind = "internal"
		case errors.As(err, &persistErr):
			code = fiber.StatusServiceUnavailable
			kind = "persistence"
		}

		if code >= fiber.StatusInternalServerError {
			log.WithError(err).Errorf("%s %s failed", c.Method(), c.Path())
		}

		resp := fiber.Map{"error": err.Error(), "kind": kind}
		if stockErr != nil {
			resp["shortfall"] = stockErr.Shortfall()
			resp["unit"] = stockErr.Unit
		}
		return c.Status(code).JSON(resp)
	}
}

// setupRoutes configures all application routes
func setupRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Public product list (web + mobile)
	api.Get("/products", handlers.PublicProductList)
	api.Get("/categories", handlers.CategoryAll)

	owner := api.Group("/owner")

	// Product catalog
	owner.Get("/products", handlers.ProductList)
	owner.Post("/products", handlers.ProductCreate)
	owner.Get("/products/:id", handlers.ProductView)
	owner.Put("/products/:id", handlers.ProductUpdate)
	owner.Delete("/products/:id", handlers.ProductDelete)

	// Category management
	owner.Get("/product-categories", handlers.CategoryList)
	owner.Post("/product-categories", handlers.CategoryCreate)
	owner.Put("/product-categories/:id", handlers.CategoryUpdate)
	owner.Delete("/product-categories/:id", handlers.CategoryDelete)

	// Brands
	owner.Get("/brands", handlers.BrandList)

	// Transactions: purchases are the only stock-in, sales the only stock-out
	owner.Get("/purchases", handlers.PurchaseList)
	owner.Get("/purchases/:id", handlers.PurchaseView)
	owner.Post("/purchases", handlers.PurchaseCreate)

	owner.Get("/sales", handlers.SaleList)
	owner.Get("/sales/:id", handlers.SaleView)
	owner.Post("/sales", handlers.SaleCreate)
	owner.Post("/online-orders", handlers.OnlineOrderCreate)

	// Inventory
	owner.Get("/inventory/stock", handlers.StockReport)
	owner.Get("/inventory/movements", handlers.StockMovementList)
	owner.Get("/inventory/batches", handlers.BatchList)

	// Dashboard and analytics
	owner.Get("/dashboard", handlers.DashboardSummary)
	owner.Get("/analytics/summary", handlers.AnalyticsSummary)
	owner.Get("/analytics/sales-monthly", handlers.SalesMonthly)
}
