package main

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"go.uber.org/zap"

	"github.com/xavihachem/backonyxia/internal/admin"
	"github.com/xavihachem/backonyxia/internal/city"
	"github.com/xavihachem/backonyxia/internal/config"
	"github.com/xavihachem/backonyxia/internal/database"
	"github.com/xavihachem/backonyxia/internal/language"
	"github.com/xavihachem/backonyxia/internal/order"
	"github.com/xavihachem/backonyxia/internal/product"
	"github.com/xavihachem/backonyxia/internal/upload"
)

// main wires dependencies and starts the HTTP server.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}

	var logger *zap.Logger
	if cfg.Development() {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		log.Fatalf("could not build logger: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()
	client, db, err := database.Connect(ctx, cfg)
	if err != nil {
		logger.Fatal("could not connect to MongoDB", zap.Error(err))
	}
	defer client.Disconnect(ctx)

	if err := database.EnsureIndexes(ctx, db, cfg.SessionTTL); err != nil {
		logger.Fatal("could not create indexes", zap.Error(err))
	}
	logger.Info("connected to MongoDB", zap.String("database", cfg.MongoDatabase))

	uploads, err := upload.NewStore(cfg.UploadDir, logger)
	if err != nil {
		logger.Fatal("could not prepare upload directory", zap.Error(err))
	}

	sessionStore := admin.NewMongoSessionStore(db, database.SessionsCollection)
	adminService := admin.NewService(sessionStore, cfg.AdminUsername, cfg.AdminPassword)
	adminHandler := admin.NewHandler(adminService, logger, cfg.SessionTTL, !cfg.Development())

	orderService := order.NewService(order.NewMongoRepository(db, database.OrdersCollection))
	orderHandler := order.NewHandler(orderService, logger, cfg.Development())

	productService := product.NewService(product.NewMongoRepository(db, database.ProductsCollection))
	productHandler := product.NewHandler(productService, uploads, logger, cfg.Development())

	cityService := city.NewService(city.NewMongoRepository(db, database.CitiesCollection), logger)
	cityHandler := city.NewHandler(cityService, logger, cfg.Development())

	languageHandler := language.NewHandler(language.NewMongoRepository(db, database.LanguagesCollection), logger)

	uploadHandler := upload.NewHandler(uploads)

	// seed the fee table before taking traffic
	if _, count, err := cityService.EnsureSeeded(ctx); err != nil {
		logger.Error("could not seed city fee table", zap.Error(err))
	} else {
		logger.Info("city fee table ready", zap.Int("count", count))
	}

	app := fiber.New(fiber.Config{
		BodyLimit: cfg.BodyLimit,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With, X-Request-ID, X-Client-Timestamp",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	app.Use(func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		logger.Info("request",
			zap.String("method", c.Method()),
			zap.String("path", c.OriginalURL()),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("took", time.Since(start)))
		return err
	})

	app.Get("/test", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "API is working!"})
	})

	adminHandler.RegisterPublicRoutes(app)
	orderHandler.RegisterPublicRoutes(app)
	productHandler.RegisterPublicRoutes(app)
	cityHandler.RegisterPublicRoutes(app)
	languageHandler.RegisterPublicRoutes(app)

	guard := adminHandler.RequireAuth()
	orderHandler.RegisterAdminRoutes(app, guard)
	productHandler.RegisterAdminRoutes(app, guard)
	cityHandler.RegisterAdminRoutes(app, guard)
	uploadHandler.RegisterAdminRoutes(app, guard)

	app.Static(upload.URLPrefix, uploads.Dir())

	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Route not found"})
	})

	logger.Info("server starting", zap.String("port", cfg.Port))
	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
