package model

const (
	MetricCPUUtilization    = "CPUUtilization"
	MetricMemoryUtilization = "MemoryUtilization"

	// MetricStatusComplete is the status of a series with no missing data
	MetricStatusComplete = "Complete"
)

// MetricQuery identifies one utilization series. ID is opaque and only used
// to pair the query with its result.
type MetricQuery struct {
	ID      string
	Cluster string
	Service string
	Metric  string
}

// MetricSeries is the result of a MetricQuery. A query may yield several
// series (one per page), all sharing the query ID.
type MetricSeries struct {
	ID       string
	Label    string
	Values   []float64
	Status   string
	Messages []string
}
