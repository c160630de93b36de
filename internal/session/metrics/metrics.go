package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Login paths, used as the "path" label value.
const (
	PathProvider     = "provider"
	PathDirectory    = "directory"
	PathDemoFallback = "demo_fallback"
)

// Metrics holds the session-feature Prometheus metrics.
type Metrics struct {
	Logins           *prometheus.CounterVec
	Registrations    prometheus.Counter
	OTPIssued        prometheus.Counter
	OTPVerifications *prometheus.CounterVec
	SessionActive    prometheus.Gauge
}

// New creates and registers the session metrics on the given registerer.
// Tests pass a fresh registry to avoid duplicate registration.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Logins: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "cabinet_session_logins_total",
			Help: "Login attempts by resolution path and result",
		}, []string{"path", "result"}),
		Registrations: factory.NewCounter(prometheus.CounterOpts{
			Name: "cabinet_session_registrations_total",
			Help: "Successful registrations",
		}),
		OTPIssued: factory.NewCounter(prometheus.CounterOpts{
			Name: "cabinet_session_otp_issued_total",
			Help: "Verification codes issued",
		}),
		OTPVerifications: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "cabinet_session_otp_verifications_total",
			Help: "Verification code checks by result",
		}, []string{"result"}),
		SessionActive: factory.NewGauge(prometheus.GaugeOpts{
			Name: "cabinet_session_active",
			Help: "Whether a session is currently active (0 or 1)",
		}),
	}
}

// ObserveLogin records a login attempt outcome.
func (m *Metrics) ObserveLogin(path string, success bool) {
	result := "failure"
	if success {
		result = "success"
	}
	m.Logins.WithLabelValues(path, result).Inc()
}

// ObserveOTP records a verification check outcome.
func (m *Metrics) ObserveOTP(result string) {
	m.OTPVerifications.WithLabelValues(result).Inc()
}
