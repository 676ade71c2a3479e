package handler

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	ordersIngested = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "account_service",
			Subsystem: "kafka_consumer",
			Name:      "orders_ingested_total",
			Help:      "Total number of successfully ingested orders",
		},
	)

	ordersFailed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "account_service",
			Subsystem: "kafka_consumer",
			Name:      "orders_failed_total",
			Help:      "Total number of failed order ingestion attempts",
		},
	)

	ordersDLQ = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "account_service",
			Subsystem: "kafka_consumer",
			Name:      "orders_dlq_total",
			Help:      "Total number of orders written to DLQ",
		},
	)

	commitErrors = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "account_service",
			Subsystem: "kafka_consumer",
			Name:      "commit_errors_total",
			Help:      "Total number of Kafka commit errors",
		},
	)

	defaultSwitches = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "account_service",
			Subsystem: "addresses",
			Name:      "default_switches_total",
			Help:      "Total number of successful default-address switches",
		},
	)
)

func RegisterMetrics() {
	prometheus.MustRegister(
		ordersIngested,
		ordersFailed,
		ordersDLQ,
		commitErrors,

		defaultSwitches,
	)
}
