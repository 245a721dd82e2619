package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	MessagesReceived = promauto.NewCounter(prometheus.CounterOpts{
		Name: "movetrack_messages_received_total",
		Help: "Sensor payloads handed to the pipeline",
	})
	DecodeFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "movetrack_decode_failures_total",
		Help: "Payloads rejected as invalid JSON",
	})
	TimestampWarnings = promauto.NewCounter(prometheus.CounterOpts{
		Name: "movetrack_timestamp_warnings_total",
		Help: "Readings stored with an unparsable timestamp",
	})
	RecordsStored = promauto.NewCounter(prometheus.CounterOpts{
		Name: "movetrack_records_stored_total",
		Help: "Rows written to Postgres",
	})
	PersistFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "movetrack_persist_failures_total",
		Help: "Storage writes that failed (message dropped)",
	})
	BroadcastsDelivered = promauto.NewCounter(prometheus.CounterOpts{
		Name: "movetrack_broadcasts_delivered_total",
		Help: "Per-subscriber deliveries of live readings",
	})
	BroadcastDrops = promauto.NewCounter(prometheus.CounterOpts{
		Name: "movetrack_broadcast_drops_total",
		Help: "Deliveries dropped because a subscriber buffer was full",
	})
)
