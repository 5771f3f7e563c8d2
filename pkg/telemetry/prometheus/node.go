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
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/atomic"
)

const (
	livekitNamespace string = "livekit"
	stageSubsystem   string = "stage"
)

var (
	initialized atomic.Bool
)

// Init registers the stage collectors with the default registry. Collectors are usable
// before Init; they are only exported once registered.
func Init(nodeID string) {
	if initialized.Swap(true) {
		return
	}

	promNodeInfo = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace:   livekitNamespace,
		Subsystem:   stageSubsystem,
		Name:        "node_info",
		ConstLabels: prometheus.Labels{"node_id": nodeID},
	})
	promNodeInfo.Set(1)

	prometheus.MustRegister(promNodeInfo)
	prometheus.MustRegister(promConnectCounter)
	prometheus.MustRegister(promConnectTime)
	prometheus.MustRegister(promPublishCounter)
	prometheus.MustRegister(promSeatCounter)
	prometheus.MustRegister(promParticipantCurrent)
	prometheus.MustRegister(promSeatsOccupied)
	prometheus.MustRegister(promCredentialCounter)
}
