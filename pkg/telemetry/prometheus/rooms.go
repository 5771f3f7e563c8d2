// Copyright 2023 LiveKit, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package prometheus

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/atomic"
)

var (
	participantCurrent atomic.Int32
	connectAttempts    atomic.Int32
	connectSuccess     atomic.Int32

	promNodeInfo           prometheus.Gauge
	promConnectCounter     = newCounterVec("connect_counter", "result")
	promPublishCounter     = newCounterVec("publish_counter", "kind", "result")
	promSeatCounter        = newCounterVec("seat_operation_counter", "operation", "result")
	promCredentialCounter  = newCounterVec("credential_counter", "result")
	promParticipantCurrent = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: livekitNamespace,
		Subsystem: stageSubsystem,
		Name:      "participant_total",
	})
	promSeatsOccupied = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: livekitNamespace,
		Subsystem: stageSubsystem,
		Name:      "seats_occupied",
	}, []string{"room"})
	promConnectTime = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: livekitNamespace,
		Subsystem: stageSubsystem,
		Name:      "connect_time_ms",
		Buckets:   prometheus.ExponentialBucketsRange(50, 20000, 12),
	})
)

func newCounterVec(name string, labels ...string) *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: livekitNamespace,
		Subsystem: stageSubsystem,
		Name:      name,
	}, labels)
}

func RecordConnectAttempt() {
	connectAttempts.Inc()
	promConnectCounter.WithLabelValues("attempt").Inc()
}

func RecordConnectResult(result string, d time.Duration) {
	promConnectCounter.WithLabelValues(result).Inc()
	if result == "success" {
		connectSuccess.Inc()
		promConnectTime.Observe(float64(d.Milliseconds()))
	}
}

func RecordPublish(kind, result string) {
	promPublishCounter.WithLabelValues(kind, result).Inc()
}

func RecordSeatOperation(operation string, err error) {
	promSeatCounter.WithLabelValues(operation, resultOf(err)).Inc()
}

func RecordCredential(err error) {
	promCredentialCounter.WithLabelValues(resultOf(err)).Inc()
}

func SetParticipants(n int) {
	participantCurrent.Store(int32(n))
	promParticipantCurrent.Set(float64(n))
}

func SetSeatsOccupied(room string, n int) {
	promSeatsOccupied.WithLabelValues(room).Set(float64(n))
}

// ConnectStats returns attempts and successes since start.
func ConnectStats() (int32, int32) {
	return connectAttempts.Load(), connectSuccess.Load()
}

func ParticipantCount() int32 {
	return participantCurrent.Load()
}

func resultOf(err error) string {
	if err != nil {
		return "failure"
	}
	return "success"
}
