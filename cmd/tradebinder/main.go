package main

import (
	"io"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"tradebinder/internal/config"
	"tradebinder/internal/http/handlers"
	applog "tradebinder/internal/log"
	"tradebinder/internal/repos"
	"tradebinder/internal/services"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			mw := io.MultiWriter(os.Stdout, f)
			log.SetOutput(mw)
		}
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	userRepo := repos.NewUserRepo(db)
	authSvc := &services.AuthService{Users: userRepo, Secret: cfg.JWTSecret}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "something went wrong",
			})
		},
	})
	// Global body size guard
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(limiter.New(limiter.Config{
		Max:        60,
		Expiration: time.Minute,
	}))

	// ---------- Routes ----------
	deps := handlers.NewDeps(db, authSvc)

	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })

	api := app.Group("/api/v1")

	api.Post("/auth/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "too many attempts, try again later"})
		},
	}), deps.AuthHandler.Login)

	api.Get("/cards", deps.CardHandler.Search)

	authed := api.Group("", handlers.RequireUser(authSvc))

	authed.Get("/collection", deps.CollectionHandler.List)
	authed.Post("/collection", deps.CollectionHandler.Add)
	authed.Post("/collection/remove", deps.CollectionHandler.Remove)

	authed.Get("/wishlist", deps.WishlistHandler.List)
	authed.Post("/wishlist", deps.WishlistHandler.Save)
	authed.Post("/wishlist/delete", deps.WishlistHandler.Unsave)

	authed.Post("/trades", deps.TradeHandler.Propose)
	authed.Get("/trades", deps.TradeHandler.List)
	authed.Get("/trades/:id", deps.TradeHandler.Get)
	authed.Post("/trades/:id/respond", deps.TradeHandler.Respond)
	authed.Post("/trades/:id/cancel", deps.TradeHandler.Cancel)
	authed.Post("/trades/:id/settle", deps.TradeHandler.Settle)

	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	})

	// Expiry sweeper: stale pending trades become EXPIRED instead of sitting
	// open forever. Transitions also check expiry lazily, so the sweep is a
	// backstop, not a correctness requirement.
	go func() {
		ticker := time.NewTicker(cfg.SweepInterval)
		defer ticker.Stop()
		for range ticker.C {
			n, err := deps.TradeService.SweepExpired(time.Now())
			if err != nil {
				applog.Error(nil, "trade.sweep.fail", err, nil)
				continue
			}
			if n > 0 {
				applog.Info(nil, "trade.sweep", map[string]any{"expired": n})
			}
		}
	}()

	log.Fatal(app.Listen(":" + cfg.Port))
}
