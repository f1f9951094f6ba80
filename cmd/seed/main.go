// Seeds the catalog with the three canonical example books. Inserts are
// idempotent: a book whose edition is already cataloged is skipped.
package main

import (
	"context"
	"log"
	"os"
	"time"

	"bookcatalog/internal/catalog"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

var seedBooks = []catalog.Book{
	{
		Title:   "The Vortex",
		Author:  "José Eustasio Rivera",
		Edition: "958-30-0804-4",
		Pages:   "292",
		Year:    "1924",
	},
	{
		Title:   "Frankenstein",
		Author:  "Mary Shelley",
		Edition: "978-3-649-64609-9",
		Pages:   "280",
		Year:    "1818",
	},
	{
		Title:   "The Black Cat",
		Author:  "Edgar Allan Poe",
		Edition: "978-3-99168-238-7",
		Pages:   "280",
		Year:    "1843",
	},
}

func main() {
	_ = godotenv.Load(".env.local")

	uri := os.Getenv("DATABASE_URI")
	if uri == "" {
		log.Fatal("missing required environment variable: DATABASE_URI")
	}
	databaseName := os.Getenv("DB_NAME")
	if databaseName == "" {
		databaseName = "bookcatalog"
	}

	ctx := context.Background()

	client, err := mongo.Connect(options.Client().ApplyURI(uri).SetServerSelectionTimeout(5 * time.Second))
	if err != nil {
		log.Fatalf("cannot create mongo client: %v", err)
	}
	defer func() { _ = client.Disconnect(ctx) }()

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		log.Fatalf("cannot ping mongo: %v", err)
	}

	repo := catalog.NewMongoRepo(client.Database(databaseName).Collection("information"))

	for _, b := range seedBooks {
		exists, err := repo.Exists(ctx, map[string]string{catalog.FieldEdition: b.Edition})
		if err != nil {
			log.Fatalf("existence check for %q: %v", b.Title, err)
		}
		if exists {
			log.Printf("skipping %q: edition %s already cataloged", b.Title, b.Edition)
			continue
		}
		id, err := repo.Insert(ctx, b)
		if err != nil {
			log.Fatalf("insert %q: %v", b.Title, err)
		}
		log.Printf("inserted %q id=%s", b.Title, id)
	}
}
