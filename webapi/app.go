// Package webapi wires the HTTP surface of the accounts service:
// - accounttype: account type template endpoints
// - account: account, solve and value endpoints
// - common: response envelopes, problem details and request binding
package webapi

import (
	"time"

	"github.com/amirasaad/accounts/pkg/app"
	"github.com/amirasaad/accounts/pkg/config"
	"github.com/amirasaad/accounts/pkg/middleware"
	accountweb "github.com/amirasaad/accounts/webapi/account"
	accounttypeweb "github.com/amirasaad/accounts/webapi/accounttype"
	"github.com/amirasaad/accounts/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewApp builds the fiber application serving a.
func NewApp(a *app.App) *fiber.App {
	fiberCfg := fiber.Config{
		AppName: "accounts",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return common.ProblemDetailsJSON(c, "Internal Server Error", err)
		},
		// c.IP() reads ProxyHeader only for peers listed in TrustedProxies.
		EnableTrustedProxyCheck: true,
		EnableIPValidation:      true,
	}
	if srv := a.Config.Server; srv != nil {
		fiberCfg.ProxyHeader = srv.ProxyHeader
		fiberCfg.TrustedProxies = srv.TrustedProxies
	}
	fiberApp := fiber.New(fiberCfg)

	fiberApp.Use(recover.New())
	fiberApp.Use(requestid.New(requestid.Config{
		Header:    fiber.HeaderXRequestID,
		Generator: uuid.NewString,
	}))
	fiberApp.Use(middleware.Metrics())
	fiberApp.Use(newLimiter(a.Config.RateLimit))
	fiberApp.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))

	fiberApp.Get("/status", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "OK"})
	})
	fiberApp.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	protected := middleware.JwtProtected(a.Config.Auth)
	accounttypeweb.Routes(fiberApp, a.AccountTypeService, protected)
	accountweb.Routes(fiberApp, a.AccountService, protected)
	return fiberApp
}

func newLimiter(cfg *config.RateLimit) fiber.Handler {
	maxRequests, window := 100, time.Minute
	if cfg != nil {
		if cfg.MaxRequests > 0 {
			maxRequests = cfg.MaxRequests
		}
		if cfg.Window > 0 {
			window = cfg.Window
		}
	}
	return limiter.New(limiter.Config{
		Max:        maxRequests,
		Expiration: window,
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/status" || c.Path() == "/metrics"
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return common.ErrorResponseJSON(c, fiber.StatusTooManyRequests, "Too Many Requests", "Rate limit exceeded")
		},
	})
}
