package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/janenicoldelacruz-web/lakson-inventory/stock"
)

var (
	engine   *stock.Engine
	rdb      *redis.Client
	log      *logrus.Logger
	validate = validator.New()
)

// Init wires the handler package to its collaborators. Must be called once
// before routes are served.
func Init(e *stock.Engine, client *redis.Client, l *logrus.Logger) {
	engine = e
	rdb = client
	log = l
}

// actorFrom returns the request actor set by the middleware.
func actorFrom(c *fiber.Ctx) string {
	if actor, ok := c.Locals("actor").(string); ok && actor != "" {
		return actor
	}
	return "owner"
}

// parseBody decodes and validates a JSON request body.
func parseBody(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "malformed request body: "+err.Error())
	}
	if err := validate.Struct(out); err != nil {
		return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	}
	return nil
}

// requestUnit normalizes a request-supplied unit string by the same parser
// the core uses, so aliases like "sacks" and "pcs" are accepted everywhere.
// A blank unit stays blank; the engine fills in the product's default.
func requestUnit(raw string) (stock.DisplayUnit, error) {
	if raw == "" {
		return "", nil
	}
	return stock.ParseDisplayUnit(raw)
}

// pagination reads page/per_page query parameters with the API's defaults.
func pagination(c *fiber.Ctx) (page, perPage, offset int) {
	page = c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	perPage = c.QueryInt("per_page", 15)
	if perPage < 1 || perPage > 100 {
		perPage = 15
	}
	return page, perPage, (page - 1) * perPage
}

// paginated is the standard list envelope.
func paginated(c *fiber.Ctx, data interface{}, page, perPage int, total int64) error {
	lastPage := (total + int64(perPage) - 1) / int64(perPage)
	return c.JSON(fiber.Map{
		"data":      data,
		"page":      page,
		"per_page":  perPage,
		"total":     total,
		"last_page": lastPage,
	})
}
