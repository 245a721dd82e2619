package pipeline

import (
	"context"
	"encoding/json"
	"strconv"

	"go.uber.org/zap"

	"movetrack/internal/metrics"
	"movetrack/internal/models"
)

// RecordStore is the persistence sink. Save writes one durable row and
// returns the storage-assigned identifier.
type RecordStore interface {
	Save(ctx context.Context, record *models.SensorRecord) (int64, error)
}

// Broadcaster fans a serialized reading out to the live subscribers of
// one operator key and reports how many received it.
type Broadcaster interface {
	Publish(key string, payload []byte) int
}

// LatestCache keeps the most recent reading per operator for dashboard
// catch-up. Optional; failures are never pipeline failures.
type LatestCache interface {
	SetLatest(ctx context.Context, key string, payload []byte) error
}

// Processor runs one sensor payload through decode, timestamp
// normalization, persistence and live broadcast, in that order.
// It holds no per-message state and is safe for concurrent use.
type Processor struct {
	store  RecordStore
	hub    Broadcaster
	cache  LatestCache
	logger *zap.Logger
}

// NewProcessor wires the pipeline stages. cache may be nil.
func NewProcessor(store RecordStore, hub Broadcaster, cache LatestCache, logger *zap.Logger) *Processor {
	return &Processor{
		store:  store,
		hub:    hub,
		cache:  cache,
		logger: logger,
	}
}

// Process handles one raw payload end to end. Every failure is logged
// here and returned typed; callers must not escalate it — a bad message
// never stops the stream. Persistence strictly precedes broadcast: a
// reading may be stored without being broadcast, never the reverse.
func (p *Processor) Process(ctx context.Context, payload []byte) error {
	metrics.MessagesReceived.Inc()

	reading, err := Decode(payload)
	if err != nil {
		metrics.DecodeFailures.Inc()
		p.logger.Error("dropping undecodable sensor payload",
			zap.ByteString("payload", payload),
			zap.Error(err))
		return err
	}

	normalized, raw := NormalizeTimestamp(reading.TimeStamp)
	if raw != nil && normalized == nil {
		metrics.TimestampWarnings.Inc()
		p.logger.Warn("sensor reading has unparsable timestamp, storing raw string only",
			zap.String("time_str", *raw),
			zap.Int64p("operator_id", reading.OperatorID))
	}

	record := &models.SensorRecord{
		Operator:    reading.OperatorName,
		OperatorID:  reading.OperatorID,
		DriveStatus: reading.DriveStatus,
		GPSCount:    reading.GPSCount,
		Lat:         reading.Lat,
		Lng:         reading.Lng,
		Time:        normalized,
		TimeStr:     raw,
		Speed:       reading.Speed,
		Heading:     reading.Heading,
	}

	id, err := p.store.Save(ctx, record)
	if err != nil {
		metrics.PersistFailures.Inc()
		perr := &PersistError{Err: err}
		p.logger.Error("dropping sensor reading, storage write failed",
			zap.Int64p("operator_id", reading.OperatorID),
			zap.Error(perr))
		return perr
	}
	metrics.RecordsStored.Inc()

	p.distribute(ctx, reading, id)
	return nil
}

// distribute pushes the decoded reading (original wire values, not the
// storage row) to live subscribers and the latest-position cache.
func (p *Processor) distribute(ctx context.Context, reading *models.SensorReading, storageID int64) {
	if reading.OperatorID == nil {
		p.logger.Warn("sensor reading has no operator id, skipping live broadcast",
			zap.Int64("storage_id", storageID))
		return
	}
	key := strconv.FormatInt(*reading.OperatorID, 10)

	payload, err := json.Marshal(reading)
	if err != nil {
		p.logger.Error("failed to serialize reading for broadcast",
			zap.String("operator_key", key),
			zap.Error(err))
		return
	}

	p.hub.Publish(key, payload)

	if p.cache != nil {
		if err := p.cache.SetLatest(ctx, key, payload); err != nil {
			p.logger.Warn("failed to cache latest reading",
				zap.String("operator_key", key),
				zap.Error(err))
		}
	}
}
