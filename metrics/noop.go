// Copyright (c) 2025 The Umbrella Network developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metrics

import "net/http"

// noop is both the disabled metrics service and every meter it hands out.
type noop struct{}

func defaultNoopMetrics() Metrics { return noop{} }

func (noop) GetOrCreateCountMeter(string) CountMeter                 { return noop{} }
func (noop) GetOrCreateCountVecMeter(string, []string) CountVecMeter { return noop{} }
func (noop) GetOrCreateGaugeMeter(string) GaugeMeter                 { return noop{} }

func (noop) GetOrCreateHistogramVecMeter(string, []string, []int64) HistogramVecMeter {
	return noop{}
}

// GetOrCreateHandler answers every request with 503 until metrics are initialized.
func (noop) GetOrCreateHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "metrics are disabled", http.StatusServiceUnavailable)
	})
}

func (noop) ObserveWithLabels(int64, map[string]string) {}
func (noop) AddWithLabel(int64, map[string]string)      {}
func (noop) Add(int64)                                  {}
func (noop) Set(int64)                                  {}
