// Copyright (c) 2025 The Umbrella Network developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/umbrella-network/umbledger/metrics"
)

var (
	metricRequests = metrics.LazyLoadCounterVec("api_request_count", []string{"name", "code", "method"})
	metricDuration = metrics.LazyLoadHistogramVec("api_duration_ms", []string{"name", "code", "method"}, metrics.BucketHTTPReqs)
	metricInFlight = metrics.LazyLoadGauge("api_requests_in_flight")
)

// Metrics counts and times requests by route name. Routes without a name, such as
// /metrics itself, are not measured.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route := mux.CurrentRoute(r)
		if route == nil || route.GetName() == "" {
			next.ServeHTTP(w, r)
			return
		}

		metricInFlight().Add(1)
		defer metricInFlight().Add(-1)

		start := time.Now()
		rec := newStatusRecorder(w)
		next.ServeHTTP(rec, r)

		labels := map[string]string{
			"name":   route.GetName(),
			"code":   strconv.Itoa(rec.status),
			"method": r.Method,
		}
		metricRequests().AddWithLabel(1, labels)
		metricDuration().ObserveWithLabels(time.Since(start).Milliseconds(), labels)
	})
}
