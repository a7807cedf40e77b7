package validation

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	chartValidations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "orgchart",
		Subsystem: "validation",
		Name:      "runs_total",
		Help:      "Total number of chart validation runs broken down by sector and outcome.",
	}, []string{"sector", "outcome"})

	chartFindings = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "orgchart",
		Subsystem: "validation",
		Name:      "findings_total",
		Help:      "Total number of validation findings broken down by sector and severity.",
	}, []string{"sector", "severity"})
)

func recordValidation(sector string, r *Result) {
	if sector == "" {
		sector = "UNKNOWN"
	}
	outcome := "valid"
	if !r.Valid {
		outcome = "invalid"
	}
	chartValidations.WithLabelValues(sector, outcome).Inc()
	chartFindings.WithLabelValues(sector, string(SeverityError)).Add(float64(len(r.Errors)))
	chartFindings.WithLabelValues(sector, string(SeverityWarning)).Add(float64(len(r.Warnings)))
	chartFindings.WithLabelValues(sector, string(SeverityInfo)).Add(float64(len(r.Recommendations)))
}
