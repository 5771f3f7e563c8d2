package prometheus_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/livekit/livekit-stage/pkg/telemetry/prometheus"
)

func TestStageMetrics(t *testing.T) {
	prometheus.Init("test-node")
	// second init is a no-op
	prometheus.Init("test-node")

	attempts, success := prometheus.ConnectStats()
	prometheus.RecordConnectAttempt()
	prometheus.RecordConnectResult("success", 20*time.Millisecond)
	prometheus.RecordConnectAttempt()
	prometheus.RecordConnectResult("failure", 0)

	a, s := prometheus.ConnectStats()
	require.Equal(t, attempts+2, a)
	require.Equal(t, success+1, s)

	prometheus.SetParticipants(3)
	require.Equal(t, int32(3), prometheus.ParticipantCount())

	prometheus.RecordSeatOperation("claim", nil)
	prometheus.RecordSeatOperation("claim", errors.New("occupied"))
	prometheus.RecordPublish("video", "success")
	prometheus.RecordCredential(nil)
	prometheus.SetSeatsOccupied("stage", 2)
}
