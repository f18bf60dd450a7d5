package datadogsink

import (
	"context"
	"net/http"
	"time"

	"github.com/DataDog/datadog-api-client-go/v2/api/datadogV2"
)

// metricsSubmitter is the subset of datadogV2.MetricsApi used by the sink
type metricsSubmitter interface {
	SubmitMetrics(ctx context.Context, body datadogV2.MetricPayload, o ...datadogV2.SubmitMetricsOptionalParameters) (datadogV2.IntakePayloadAccepted, *http.Response, error)
}

type service struct {
	api    metricsSubmitter
	apiKey string
	prefix string
	now    func() time.Time
}
