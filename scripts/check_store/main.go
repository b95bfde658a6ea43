package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"food-fridge/internal/config"
	"food-fridge/internal/database"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
)

// check_store connects to the store named by STORE_DRIVER and reports how
// many food items it holds.
func main() {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger := zerolog.Nop()

	switch cfg.Store.Driver {
	case config.StoreDriverPostgres:
		pool, err := database.NewPool(ctx, cfg.Database, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Unable to connect to database: %v\n", err)
			os.Exit(1)
		}
		defer pool.Close()

		var dbName string
		if err := pool.QueryRow(ctx, "SELECT current_database()").Scan(&dbName); err != nil {
			fmt.Fprintf(os.Stderr, "QueryRow failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Successfully connected to database: %s\n", dbName)

		var count int64
		if err := pool.QueryRow(ctx, "SELECT COUNT(*) FROM foods").Scan(&count); err != nil {
			fmt.Fprintf(os.Stderr, "Count failed (has the server run its migrations?): %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("foods: %d rows\n", count)

	case config.StoreDriverMongo:
		client, err := database.NewMongoClient(ctx, cfg.Mongo, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Unable to connect to mongo: %v\n", err)
			os.Exit(1)
		}
		defer client.Disconnect(context.Background())

		fmt.Printf("Successfully connected to database: %s\n", cfg.Mongo.Database)

		count, err := client.Database(cfg.Mongo.Database).Collection(cfg.Mongo.Collection).CountDocuments(ctx, bson.M{})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Count failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("%s: %d documents\n", cfg.Mongo.Collection, count)
	}
}
