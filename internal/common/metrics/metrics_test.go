package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRemedyFallbacks_Increment(t *testing.T) {
	before := testutil.ToFloat64(RemedyFallbacks.WithLabelValues(FallbackRemedies))
	RemedyFallbacks.WithLabelValues(FallbackRemedies).Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(RemedyFallbacks.WithLabelValues(FallbackRemedies)))
}

func TestHTTPRequests_Labels(t *testing.T) {
	HTTPRequests.WithLabelValues("/generate-remedies", "POST", "200").Inc()
	assert.GreaterOrEqual(t, testutil.ToFloat64(HTTPRequests.WithLabelValues("/generate-remedies", "POST", "200")), float64(1))
}
