package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Latency of the curation Review HTTP handler
	ReviewDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "curation_review_latency_seconds",
		Help:    "Latency of product review handler",
		Buckets: prometheus.DefBuckets,
	})

	// Reviews completed, labelled by outcome (approved/rejected)
	ReviewsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "curation_reviews_total",
		Help: "Total product reviews completed",
	}, []string{"outcome"})

	// Points credited, labelled by ledger (seller/curator)
	PointsAwardedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "curation_points_awarded_total",
		Help: "Total points credited to users",
	}, []string{"ledger"})

	// Products submitted by sellers
	SubmissionsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "curation_submissions_total",
		Help: "Total products submitted for curation",
	})
)

func Init() {
	prometheus.MustRegister(
		ReviewDuration,
		ReviewsTotal,
		PointsAwardedTotal,
		SubmissionsTotal,
	)
}
