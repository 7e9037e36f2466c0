package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Subscription manager metrics
var (
	UnderlyingSubscribeCalls = promauto.NewCounter(prometheus.CounterOpts{
		Name: "subscription_underlying_subscribe_calls_total",
		Help: "The total number of subscribe calls issued to the provider",
	})

	UnderlyingUnsubscribeCalls = promauto.NewCounter(prometheus.CounterOpts{
		Name: "subscription_underlying_unsubscribe_calls_total",
		Help: "The total number of unsubscribe calls issued to the provider",
	})

	SubscriptionRollbacks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "subscription_rollbacks_total",
		Help: "The number of subscriptions rolled back after a failed provider call",
	})

	ActiveSubscriptions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "subscription_active_listeners",
		Help: "The number of logical subscriptions currently registered",
	})

	EventsDispatched = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "subscription_events_dispatched_total",
		Help: "The number of provider events fanned out, by event name",
	}, []string{"event"})
)

// Provider metrics
var (
	ProviderRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "provider_requests_total",
		Help: "The number of requests sent to the provider, by method",
	}, []string{"method"})

	ProviderRequestErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "provider_request_errors_total",
		Help: "The number of failed provider requests, by method",
	}, []string{"method"})

	ProviderSubscriptions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "provider_contract_subscriptions",
		Help: "The number of contract subscriptions the provider reports",
	})

	ProviderDisconnects = promauto.NewCounter(prometheus.CounterOpts{
		Name: "provider_disconnects_total",
		Help: "The number of disconnected events received from the provider",
	})
)

// Contract state metrics
var (
	ContractBalance = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "contract_balance",
		Help: "The last reported balance of a watched contract, in nano units",
	}, []string{"address"})

	ContractStateChanges = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "contract_state_changes_total",
		Help: "The number of state changes received for a watched contract",
	}, []string{"address"})
)

// History metrics
var (
	MergedTransactions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "history_merged_transactions_total",
		Help: "The total number of transactions merged into cached histories",
	})

	CachedTransactions = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "history_cached_transactions",
		Help: "The number of transactions cached per tracked address",
	}, []string{"address"})
)
