// Seeds the demo catalogue and ensures indexes. Destructive: drops every
// existing product first.
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/chandrashekar-chandu/nature-market/configs"
	"github.com/chandrashekar-chandu/nature-market/logging"
	"github.com/chandrashekar-chandu/nature-market/models"
	"github.com/chandrashekar-chandu/nature-market/store"
)

var products = []models.Product{
	// Vegetables
	{Name: "Fresh Tomatoes", Price: 40, Image: "/src/assets/veg1.jpg", Category: models.CategoryVegetables, Description: "Organic red tomatoes"},
	{Name: "Green Lettuce", Price: 25, Image: "/src/assets/veg2.jpg", Category: models.CategoryVegetables, Description: "Crisp green lettuce"},
	{Name: "Carrots", Price: 30, Image: "/src/assets/veg3.jpg", Category: models.CategoryVegetables, Description: "Fresh orange carrots"},

	// Dairy
	{Name: "Fresh Milk", Price: 60, Image: "/src/assets/d1.jpg", Category: models.CategoryDairy, Description: "Pure cow milk"},
	{Name: "Cheese Block", Price: 120, Image: "/src/assets/d2.jpg", Category: models.CategoryDairy, Description: "Cheddar cheese"},
	{Name: "Butter", Price: 80, Image: "/src/assets/d3.jpg", Category: models.CategoryDairy, Description: "Fresh butter"},

	// Ice cream
	{Name: "Vanilla Ice Cream", Price: 150, Image: "/src/assets/ice1.jpg", Category: models.CategoryIcecream, Description: "Creamy vanilla flavor"},
	{Name: "Chocolate Ice Cream", Price: 160, Image: "/src/assets/ice2.jpg", Category: models.CategoryIcecream, Description: "Rich chocolate flavor"},
	{Name: "Strawberry Ice Cream", Price: 155, Image: "/src/assets/ice3.jpg", Category: models.CategoryIcecream, Description: "Fresh strawberry flavor"},

	// General
	{Name: "Organic Honey", Price: 200, Image: "/src/assets/pic1.jpg", Category: models.CategoryGeneral, Description: "Pure organic honey"},
	{Name: "Green Tea", Price: 180, Image: "/src/assets/pic2.jpg", Category: models.CategoryGeneral, Description: "Premium green tea"},
	{Name: "Herbal Oil", Price: 250, Image: "/src/assets/pic3.jpg", Category: models.CategoryGeneral, Description: "Natural herbal oil"},
}

func main() {
	_ = godotenv.Load()
	logging.Init()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	client, err := configs.ConnectDB(configs.MongoURI())
	if err != nil {
		slog.Error("mongo connection failed", "error", err)
		os.Exit(1)
	}
	defer client.Disconnect(ctx)

	userStore := store.NewMongoUserStore(configs.GetCollection(client, "users"))
	if err := userStore.EnsureIndexes(ctx); err != nil {
		slog.Error("index creation failed", "error", err)
		os.Exit(1)
	}

	coll := configs.GetCollection(client, "products")
	productStore := store.NewMongoProductStore(coll)
	if _, err := coll.DeleteMany(ctx, bson.M{}); err != nil {
		slog.Error("catalogue wipe failed", "error", err)
		os.Exit(1)
	}
	for i := range products {
		products[i].Stock = models.DefaultStock
		if err := productStore.Create(ctx, &products[i]); err != nil {
			slog.Error("seed insert failed", "product", products[i].Name, "error", err)
			os.Exit(1)
		}
	}

	slog.Info("database seeded", "products", len(products))
}
