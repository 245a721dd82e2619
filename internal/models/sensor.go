package models

import "time"

// SensorReading is a single GPS reading as published by a field sensor.
// Numeric fields are pointers: sensors routinely omit values, and an
// absent value must stay distinguishable from zero.
type SensorReading struct {
	ID           *int64   `json:"id,omitempty"`
	OperatorName string   `json:"operatorName,omitempty"`
	OperatorID   *int64   `json:"operatorId,omitempty"`
	DriveStatus  string   `json:"driveStatus,omitempty"`
	GPSCount     *int     `json:"gpsCount,omitempty"`
	Lat          *float64 `json:"lat,omitempty"`
	Lng          *float64 `json:"lng,omitempty"`
	TimeStamp    *string  `json:"timeStamp,omitempty"`
	Speed        *float64 `json:"speed,omitempty"`
	Heading      *float64 `json:"heading,omitempty"`
}

// SensorRecord is the durable storage form of a reading. ID is assigned
// by Postgres on insert and is unrelated to any sensor-supplied id.
// Time is nil whenever the raw timestamp failed to parse; TimeStr keeps
// the original string verbatim either way.
type SensorRecord struct {
	ID          int64      `db:"id"`
	Operator    string     `db:"operator"`
	OperatorID  *int64     `db:"operator_id"`
	DriveStatus string     `db:"drive_status"`
	GPSCount    *int       `db:"gps_count"`
	Lat         *float64   `db:"lat"`
	Lng         *float64   `db:"lng"`
	Time        *time.Time `db:"time"`
	TimeStr     *string    `db:"time_str"`
	Speed       *float64   `db:"speed"`
	Heading     *float64   `db:"heading"`
}
