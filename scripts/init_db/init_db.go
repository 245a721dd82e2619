package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"
)

// Creates the sensor_readings table. Run once before starting the service.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using system environment variables")
	}

	dsn := os.Getenv("MOVETRACK_POSTGRES_DSN")
	if dsn == "" {
		log.Fatal("MOVETRACK_POSTGRES_DSN is required")
	}

	ctx := context.Background()
	conn, err := pgx.Connect(ctx, dsn)
	if err != nil {
		log.Fatalf("connection failed: %v", err)
	}
	defer conn.Close(ctx)

	const schema = `
		CREATE TABLE IF NOT EXISTS sensor_readings (
			id           BIGSERIAL PRIMARY KEY,
			operator     TEXT,
			operator_id  BIGINT,
			drive_status TEXT,
			gps_count    INTEGER,
			lat          DOUBLE PRECISION,
			lng          DOUBLE PRECISION,

			-- normalized instant; NULL when the sensor timestamp failed to parse
			time         TIMESTAMPTZ,
			-- original timestamp string, kept verbatim even when unparsable
			time_str     TEXT,

			speed        DOUBLE PRECISION,
			heading      DOUBLE PRECISION
		);
	`
	if _, err := conn.Exec(ctx, schema); err != nil {
		log.Fatalf("create sensor_readings: %v", err)
	}

	const index = `
		CREATE INDEX IF NOT EXISTS idx_sensor_readings_operator_time
		ON sensor_readings (operator_id, time DESC);
	`
	if _, err := conn.Exec(ctx, index); err != nil {
		log.Fatalf("create index: %v", err)
	}

	fmt.Println("database initialised")
}
