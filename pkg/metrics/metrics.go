package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	StoreOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "editfolio", Name: "store_ops_total", Help: "Document store writes by collection and operation."},
		[]string{"collection", "op"},
	)
	SnapshotsDelivered = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "editfolio", Name: "snapshots_delivered_total", Help: "Full collection snapshots delivered to listeners."},
		[]string{"collection"},
	)
	ActiveListeners = prometheus.NewGauge(
		prometheus.GaugeOpts{Namespace: "editfolio", Name: "active_listeners", Help: "Currently registered realtime listeners."},
	)
	RelayDispatches = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "editfolio", Name: "relay_dispatches_total", Help: "Contact relay dispatch attempts by channel and outcome."},
		[]string{"channel", "outcome"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(StoreOps)
	reg.MustRegister(SnapshotsDelivered)
	reg.MustRegister(ActiveListeners)
	reg.MustRegister(RelayDispatches)
}
