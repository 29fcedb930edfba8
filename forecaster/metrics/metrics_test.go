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
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/salesforecast/forecaster/forecaster/config"
)

func TestNew(t *testing.T) {
	ForecastCount.Inc()
	ForecastFailureCount.WithLabelValues("MissingField").Inc()

	svr := New(&config.MetricsConfig{Enable: true, Addr: ":8000"})
	assert := assert.New(t)
	assert.Equal(":8000", svr.Addr)

	w := httptest.NewRecorder()
	svr.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(http.StatusOK, w.Code)
	assert.Contains(w.Body.String(), "sales_forecaster_forecast_total")
	assert.Contains(w.Body.String(), `sales_forecaster_forecast_failure_total{kind="MissingField"}`)
	assert.Contains(w.Body.String(), "sales_forecaster_version")
}
