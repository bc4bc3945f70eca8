package main

import (
	"log/slog"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/joho/godotenv"

	"github.com/chandrashekar-chandu/nature-market/cache"
	"github.com/chandrashekar-chandu/nature-market/configs"
	cartController "github.com/chandrashekar-chandu/nature-market/controllers/cart"
	orderController "github.com/chandrashekar-chandu/nature-market/controllers/orders"
	productsController "github.com/chandrashekar-chandu/nature-market/controllers/products"
	userController "github.com/chandrashekar-chandu/nature-market/controllers/user"
	"github.com/chandrashekar-chandu/nature-market/logging"
	"github.com/chandrashekar-chandu/nature-market/routes"
	"github.com/chandrashekar-chandu/nature-market/services"
	"github.com/chandrashekar-chandu/nature-market/store"
)

func main() {
	_ = godotenv.Load()
	logging.Init()

	secret := configs.JWTSecret()
	if secret == "" {
		slog.Error("JWT_SECRET is not set")
		os.Exit(1)
	}

	client, err := configs.ConnectDB(configs.MongoURI())
	if err != nil {
		slog.Error("mongo connection failed", "error", err)
		os.Exit(1)
	}
	slog.Info("connected to MongoDB", "database", configs.MongoDatabase())

	users := store.NewMongoUserStore(configs.GetCollection(client, "users"))
	products := store.NewMongoProductStore(configs.GetCollection(client, "products"))
	orders := store.NewMongoOrderStore(configs.GetCollection(client, "orders"))

	// Multi-document transactions need a replica set; standalone deployments
	// fall back to sequential writes with the version-guarded cart clear.
	var txn store.TxnRunner = store.NoTxn{}
	if configs.Env("MONGO_TXN", "false") == "true" {
		txn = store.NewMongoTxn(client)
	}

	var productCache cache.Cache
	if addr := configs.RedisAddr(); addr != "" {
		productCache = cache.NewRedisCache(addr, "naturemart")
		slog.Info("product cache enabled", "addr", addr)
	}

	auth := services.NewAuthService(users, []byte(secret))
	catalog := services.NewCatalogService(products, productCache)
	cartSvc := services.NewCartService(users, products)
	orderSvc := services.NewOrderService(users, products, orders, txn, configs.ShippingFee())

	app := fiber.New()
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(cors.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})

	routes.UserRoute(app, userController.NewUserController(auth), auth)
	routes.ProductsRoute(app, productsController.NewProductsController(catalog), auth)
	routes.CartRoutes(app, cartController.NewCartController(cartSvc), auth)
	routes.OrderRoutes(app, orderController.NewOrderController(orderSvc), auth)

	port := configs.Env("PORT", "5000")
	slog.Info("server listening", "port", port)
	if err := app.Listen(":" + port); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
