package main

import (
	"context"
	"courier-route-service/internal/adapters/csvio"
	"courier-route-service/internal/adapters/repositories"
	"courier-route-service/internal/platform/db"
	"courier-route-service/internal/services"
	"database/sql"
	"log"
	"os"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
)

// dbtool prepares a Postgres instance for the server: it creates the schema
// and imports delivery stops from a CSV file.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	conn, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	seedPath := getEnv("SEED_PATH", "data/deliveries.csv")
	if err := initAndSeed(context.Background(), conn, seedPath); err != nil {
		log.Fatal(err)
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func initAndSeed(ctx context.Context, conn *sql.DB, seedPath string) error {
	log.Println("Initializing database schema...")
	if err := repositories.InitSchema(conn); err != nil {
		return err
	}
	log.Println("Schema ready.")

	log.Println("Importing delivery stops...")
	src := csvio.NewFileRowSource(seedPath)
	repo := repositories.NewSQLStopRepository(conn)

	saved, rejected, err := services.ImportStops(ctx, src, repo)
	if err != nil {
		return err
	}
	for _, rej := range rejected {
		log.Printf("Skipping row %d: %s", rej.RowIndex, rej.Detail)
	}
	log.Printf("Import complete: %d stops saved, %d rows skipped.", saved, len(rejected))

	return nil
}
