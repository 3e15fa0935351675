package observability

import (
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	frames = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fdfswire",
			Subsystem: "frame",
			Name:      "total",
			Help:      "Frames written or read.",
		},
		[]string{"direction", "command"},
	)
	frameBytes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fdfswire",
			Subsystem: "frame",
			Name:      "bytes_total",
			Help:      "Frame bytes written or read, header included.",
		},
		[]string{"direction", "command"},
	)
	statusFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fdfswire",
			Subsystem: "response",
			Name:      "status_failures_total",
			Help:      "Responses carrying a nonzero status.",
		},
		[]string{"command", "status"},
	)
	codecErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fdfswire",
			Subsystem: "codec",
			Name:      "errors_total",
			Help:      "Codec failures by error kind.",
		},
		[]string{"kind"},
	)
)

const (
	DirectionOut = "out"
	DirectionIn  = "in"
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(frames, frameBytes, statusFailures, codecErrors)
	})
}

func RecordFrame(direction, command string, size int) {
	RegisterMetrics()
	frames.WithLabelValues(direction, command).Inc()
	frameBytes.WithLabelValues(direction, command).Add(float64(size))
}

func RecordStatusFailure(command string, status uint8) {
	RegisterMetrics()
	statusFailures.WithLabelValues(command, strconv.Itoa(int(status))).Inc()
}

func RecordError(kind string) {
	RegisterMetrics()
	codecErrors.WithLabelValues(kind).Inc()
}
