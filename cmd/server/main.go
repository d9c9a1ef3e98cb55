package main

import (
	"context"
	"courier-route-service/internal/adapters/cache"
	"courier-route-service/internal/adapters/csvio"
	"courier-route-service/internal/adapters/repositories"
	"courier-route-service/internal/api"
	"courier-route-service/internal/config"
	"courier-route-service/internal/ports"
	"courier-route-service/internal/services"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"
)

// main is the application composition root.
// It wires concrete adapters (SQLite, Redis) behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatal(err)
	}

	dbPath := getEnv("DB_PATH", "data/stops.db")
	seedPath := os.Getenv("SEED_PATH")
	port := getEnv("PORT", strconv.Itoa(cfg.Server.Port))

	db, err := openDB(dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := repositories.InitSchema(db); err != nil {
		log.Fatal(err)
	}

	// Optional CSV seed for local runs; the dbtool handles real imports.
	if seedPath != "" {
		if err := seedStops(context.Background(), db, seedPath); err != nil {
			log.Fatal(err)
		}
	}

	var planCache ports.PlanCache
	if cfg.Cache.RedisURL != "" {
		rc, err := cache.NewRedisPlanCacheFromURL(cfg.Cache.RedisURL)
		if err != nil {
			log.Fatal(err)
		}
		planCache = rc
		log.Println("Plan cache enabled (redis)")
	}

	repo := repositories.NewSqliteStopRepository(db)
	router := api.NewRouter(repo, planCache, cfg)

	// Write timeout leaves room for large optimization requests.
	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func openDB(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("openDB: open sqlite database %q: %w", dbPath, err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("openDB: verify sqlite connection to %q: %w", dbPath, err)
	}

	return db, nil
}

func seedStops(ctx context.Context, db *sql.DB, seedPath string) error {
	src := csvio.NewFileRowSource(seedPath)
	repo := repositories.NewSqliteStopRepository(db)

	saved, rejected, err := services.ImportStops(ctx, src, repo)
	if err != nil {
		return err
	}

	if len(rejected) > 0 {
		log.Printf("Seed: skipped %d invalid rows", len(rejected))
	}
	log.Printf("Seed: loaded %d stops from %s", saved, seedPath)
	return nil
}
