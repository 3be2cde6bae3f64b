// Copyright 2025 Vantage Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// NotificationDelivered counts notifications persisted and delivered,
// labeled by delivery channel (inbox/webhook).
var NotificationDelivered = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "vantage",
	Subsystem: "notification",
	Name:      "delivered_total",
	Help:      "Total number of notifications delivered.",
}, []string{"channel"})

// NotificationFailed counts notification deliveries that failed,
// labeled by delivery channel.
var NotificationFailed = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "vantage",
	Subsystem: "notification",
	Name:      "failed_total",
	Help:      "Total number of notification deliveries that failed.",
}, []string{"channel"})

// MutationDenied counts mutation attempts rejected by the access model,
// labeled by denial reason.
var MutationDenied = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "vantage",
	Subsystem: "access",
	Name:      "mutation_denied_total",
	Help:      "Total number of mutations denied by the access model.",
}, []string{"reason"})

// StatusTransitionRejected counts Kanban moves rejected by the project
// status state machine.
var StatusTransitionRejected = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "vantage",
	Subsystem: "project",
	Name:      "status_transition_rejected_total",
	Help:      "Total number of rejected project status transitions.",
})
