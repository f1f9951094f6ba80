package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"bookcatalog/internal/catalog"
	"bookcatalog/internal/httpx"
	"bookcatalog/internal/web"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

const maxBodyBytes = 1 << 20

func main() {
	_ = godotenv.Load(".env.local")

	serverAddress := getEnv("APP_ADDR", ":3030")
	databaseURI := mustGetEnv("DATABASE_URI")
	databaseName := getEnv("DB_NAME", "bookcatalog")
	policyName := getEnv("CATALOG_POLICY", "edition")

	policy, err := catalog.PolicyFromName(policyName)
	if err != nil {
		log.Fatalf("bad CATALOG_POLICY: %v", err)
	}

	client := mustOpenMongo(databaseURI)
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Printf("mongo disconnect: %v", err)
		}
	}()

	collection := client.Database(databaseName).Collection("information")
	repo := catalog.NewMongoRepo(collection)
	service := catalog.NewService(repo, policy)

	apiHandler := catalog.NewHTTPHandler(service)
	webHandler, err := web.NewHandler(service)
	if err != nil {
		log.Fatalf("cannot build views: %v", err)
	}

	router := http.NewServeMux()

	router.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()
		if err := client.Ping(ctx, readpref.Primary()); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.HandleFunc("GET /{$}", webHandler.Index)
	router.HandleFunc("GET /books", webHandler.Books)
	router.HandleFunc("GET /authors", webHandler.Authors)
	router.HandleFunc("GET /years", webHandler.Years)
	router.HandleFunc("GET /search", webHandler.Search)

	router.HandleFunc("GET /api/books", apiHandler.List)
	router.HandleFunc("POST /api/books", apiHandler.Create)
	router.HandleFunc("PUT /api/books/{id}", apiHandler.Update)
	router.HandleFunc("DELETE /api/books/{id}", apiHandler.Delete)

	handler := httpx.RequestIDMiddleware(
		httpx.AccessLogMiddleware(
			httpx.RecoveryMiddleware(
				httpx.RequestSizeLimitMiddleware(maxBodyBytes)(router))))

	httpServer := &http.Server{
		Addr:         serverAddress,
		Handler:      handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Printf("starting server addr=%s policy=%s", serverAddress, policyName)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func mustGetEnv(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	log.Fatalf("missing required environment variable: %s", key)
	return ""
}

// mustOpenMongo connects and pings the server. Serving never starts against an
// unreachable store.
func mustOpenMongo(uri string) *mongo.Client {
	client, err := mongo.Connect(options.Client().ApplyURI(uri).SetServerSelectionTimeout(5 * time.Second))
	if err != nil {
		log.Fatalf("cannot create mongo client: %v", err)
	}
	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		log.Fatalf("cannot ping mongo (%s): %v", redactURI(uri), err)
	}
	log.Println("database connection OK")
	return client
}

func redactURI(uri string) string {
	const marker = "://"
	start := strings.Index(uri, marker)
	if start < 0 {
		return uri
	}
	start += len(marker)
	end := strings.Index(uri[start:], "@")
	if end < 0 {
		return uri
	}
	return uri[:start] + "***" + uri[start+end:]
}
