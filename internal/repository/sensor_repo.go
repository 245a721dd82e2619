package repository

import (
	"context"
	"database/sql"

	"movetrack/internal/models"
)

// SensorRepository persists GPS readings. The wire field operatorName
// maps to the operator column; the short name is the storage convention.
type SensorRepository struct {
	db *sql.DB
}

// NewSensorRepository returns repository.
func NewSensorRepository(db *sql.DB) *SensorRepository {
	return &SensorRepository{db: db}
}

// Save inserts one reading and fills in the generated identifier.
// Rows are append-only; this pipeline never updates or deletes them.
func (r *SensorRepository) Save(ctx context.Context, record *models.SensorRecord) (int64, error) {
	const query = `
		INSERT INTO sensor_readings (operator, operator_id, drive_status, gps_count, lat, lng, time, time_str, speed, heading)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query,
		record.Operator,
		record.OperatorID,
		record.DriveStatus,
		record.GPSCount,
		record.Lat,
		record.Lng,
		record.Time,
		record.TimeStr,
		record.Speed,
		record.Heading,
	).Scan(&record.ID)
	if err != nil {
		return 0, err
	}
	return record.ID, nil
}
