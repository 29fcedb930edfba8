/*
 *     Copyright 2025 The Forecaster Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *      http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/salesforecast/forecaster/forecaster/config"
	"github.com/salesforecast/forecaster/pkg/types"
	"github.com/salesforecast/forecaster/version"
)

// Variables declared for metrics.
var (
	ForecastCount = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: types.MetricsNamespace,
		Subsystem: types.ForecasterMetricsName,
		Name:      "forecast_total",
		Help:      "Counter of the number of the forecast.",
	})

	ForecastFailureCount = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: types.MetricsNamespace,
		Subsystem: types.ForecasterMetricsName,
		Name:      "forecast_failure_total",
		Help:      "Counter of the number of failed of the forecast.",
	}, []string{"kind"})

	ForecastUnits = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: types.MetricsNamespace,
		Subsystem: types.ForecasterMetricsName,
		Name:      "forecast_units",
		Help:      "Histogram of the forecast units.",
		Buckets:   prometheus.ExponentialBuckets(10, 4, 8),
	})

	LoadModelCount = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: types.MetricsNamespace,
		Subsystem: types.ForecasterMetricsName,
		Name:      "load_model_total",
		Help:      "Counter of the number of the model load.",
	}, []string{"path"})

	LoadModelFailureCount = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: types.MetricsNamespace,
		Subsystem: types.ForecasterMetricsName,
		Name:      "load_model_failure_total",
		Help:      "Counter of the number of failed of the model load.",
	}, []string{"path"})

	VersionGauge = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: types.MetricsNamespace,
		Subsystem: types.ForecasterMetricsName,
		Name:      "version",
		Help:      "Version info of the service.",
	}, []string{"major", "minor", "git_version", "git_commit", "platform", "build_time", "go_version", "go_tags", "go_gcflags"})
)

func New(cfg *config.MetricsConfig) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	VersionGauge.WithLabelValues(version.Major, version.Minor, version.GitVersion, version.GitCommit, version.Platform, version.BuildTime, version.GoVersion, version.Gotags, version.Gogcflags).Set(1)
	return &http.Server{
		Addr:    cfg.Addr,
		Handler: mux,
	}
}
