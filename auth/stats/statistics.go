// Copyright (C) 2024 Christian Rößner
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.

package stats

import (
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/common/expfmt"
)

var (
	// AuthResultsCounter counts finished dispatch passes by final result.
	AuthResultsCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "elevate_auth_results_total",
			Help: "Number of finished authentication dispatches by result.",
		},
		[]string{"result"})

	// BackendOutcomeCounter counts backend operations by backend, operation
	// and outcome.
	BackendOutcomeCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "elevate_backend_outcomes_total",
			Help: "Number of backend operations by backend, operation and outcome.",
		},
		[]string{"backend", "operation", "outcome"})
)

// Dump writes every registered metric to w in the text exposition format.
// The CLI has no listener to scrape, so this is how a short-lived process
// surfaces its counters.
func Dump(w io.Writer) error {
	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		return err
	}

	encoder := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))

	for _, family := range families {
		if err := encoder.Encode(family); err != nil {
			return err
		}
	}

	return nil
}
