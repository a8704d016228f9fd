package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the domain counters of the upload form.
type Metrics struct {
	Submissions   *prometheus.CounterVec
	Lookups       *prometheus.CounterVec
	UploadLatency prometheus.Histogram
	OpenForms     prometheus.Gauge
}

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Submissions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "upload_form_submissions_total",
				Help: "Submit attempts by outcome.",
			},
			[]string{"outcome"},
		),
		Lookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "employee_lookups_total",
				Help: "Display name lookups by result.",
			},
			[]string{"result"},
		),
		UploadLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "upload_documents_duration_seconds",
			Help:    "Latency of the remote multipart upload.",
			Buckets: prometheus.DefBuckets,
		}),
		OpenForms: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "upload_forms_open",
			Help: "Upload forms currently held in memory.",
		}),
	}

	for _, c := range []prometheus.Collector{m.Submissions, m.Lookups, m.UploadLatency, m.OpenForms} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Submission counts one submit attempt. Safe on a nil receiver.
func (m *Metrics) Submission(outcome string) {
	if m == nil {
		return
	}
	m.Submissions.WithLabelValues(outcome).Inc()
}

// Lookup counts one display name lookup. Safe on a nil receiver.
func (m *Metrics) Lookup(result string) {
	if m == nil {
		return
	}
	m.Lookups.WithLabelValues(result).Inc()
}

// ObserveUpload records the duration of one remote upload. Safe on a nil receiver.
func (m *Metrics) ObserveUpload(seconds float64) {
	if m == nil {
		return
	}
	m.UploadLatency.Observe(seconds)
}

// SetOpenForms reports the registry size. Safe on a nil receiver.
func (m *Metrics) SetOpenForms(n int) {
	if m == nil {
		return
	}
	m.OpenForms.Set(float64(n))
}
