package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RoomsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "conclave_rooms_created_total",
		Help: "Number of rooms created.",
	})

	RoomsDestroyed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "conclave_rooms_destroyed_total",
		Help: "Number of rooms removed by cleanup or sweep.",
	})

	ActiveRooms = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "conclave_active_rooms",
		Help: "Rooms currently live in the registry.",
	})

	SignalsRelayed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "conclave_signals_relayed_total",
		Help: "WebRTC offers, answers and ICE candidates relayed.",
	})

	ChatMessages = promauto.NewCounter(prometheus.CounterOpts{
		Name: "conclave_chat_messages_total",
		Help: "Chat messages broadcast to rooms.",
	})

	UsersKicked = promauto.NewCounter(prometheus.CounterOpts{
		Name: "conclave_users_kicked_total",
		Help: "Participants removed by a host.",
	})
)

// Handler exposes Prometheus metrics at /metrics
func Handler() http.Handler {
	return promhttp.Handler()
}
