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

package middlewares

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/salesforecast/forecaster/forecaster/gateway"
	"github.com/salesforecast/forecaster/forecaster/service"
	"github.com/salesforecast/forecaster/forecaster/translator"
)

func mockErrorRouter(err error) *gin.Engine {
	r := gin.New()
	r.Use(Error())
	r.GET("/", func(c *gin.Context) {
		c.Error(err) // nolint: errcheck
	})
	return r
}

func TestMiddlewares_Error(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		expect func(t *testing.T, w *httptest.ResponseRecorder)
	}{
		{
			name: "missing field",
			err:  &translator.MissingFieldError{Field: "lag_7"},
			expect: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert := assert.New(t)
				assert.Equal(http.StatusUnprocessableEntity, w.Code)

				var resp ErrorResponse
				assert.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal(translator.MissingFieldKind, resp.Kind)
				assert.Contains(resp.Message, "lag_7")
			},
		},
		{
			name: "invalid type",
			err:  &translator.InvalidTypeError{Field: "Price", RawValue: "abc"},
			expect: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert := assert.New(t)
				assert.Equal(http.StatusUnprocessableEntity, w.Code)

				var resp ErrorResponse
				assert.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal(translator.InvalidTypeKind, resp.Kind)
				assert.Contains(resp.Message, `"abc"`)
				assert.Contains(resp.Message, "Price")
			},
		},
		{
			name: "prediction error",
			err:  fmt.Errorf("forecast: %w", &gateway.PredictionError{Cause: errors.New("foo")}),
			expect: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert := assert.New(t)
				assert.Equal(http.StatusInternalServerError, w.Code)

				var resp ErrorResponse
				assert.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal(gateway.PredictionErrorKind, resp.Kind)
			},
		},
		{
			name: "service unavailable",
			err:  &gateway.ServiceUnavailableError{State: gateway.StateUnloaded},
			expect: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert := assert.New(t)
				assert.Equal(http.StatusServiceUnavailable, w.Code)

				var resp ErrorResponse
				assert.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal(gateway.ServiceUnavailableKind, resp.Kind)
			},
		},
		{
			name: "unknown error",
			err:  errors.New("foo"),
			expect: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert := assert.New(t)
				assert.Equal(http.StatusInternalServerError, w.Code)

				var resp ErrorResponse
				assert.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal(service.UnknownKind, resp.Kind)
				assert.NotContains(resp.Message, "foo")
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			mockErrorRouter(tc.err).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
			tc.expect(t, w)
		})
	}
}

func TestMiddlewares_RequestID(t *testing.T) {
	tests := []struct {
		name   string
		header string
		expect func(t *testing.T, w *httptest.ResponseRecorder, requestID string)
	}{
		{
			name:   "generate request id",
			header: "",
			expect: func(t *testing.T, w *httptest.ResponseRecorder, requestID string) {
				assert := assert.New(t)
				assert.Len(requestID, 36)
				assert.Equal(requestID, w.Header().Get(HeaderRequestID))
			},
		},
		{
			name:   "reuse request id",
			header: "foo",
			expect: func(t *testing.T, w *httptest.ResponseRecorder, requestID string) {
				assert := assert.New(t)
				assert.Equal("foo", requestID)
				assert.Equal("foo", w.Header().Get(HeaderRequestID))
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var requestID string
			r := gin.New()
			r.Use(RequestID())
			r.GET("/", func(c *gin.Context) {
				requestID = service.RequestIDFromContext(c.Request.Context())
				c.Status(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set(HeaderRequestID, tc.header)
			}

			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			tc.expect(t, w, requestID)
		})
	}
}

func TestStatusOf(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(http.StatusUnprocessableEntity, StatusOf(translator.MissingFieldKind))
	assert.Equal(http.StatusUnprocessableEntity, StatusOf(translator.InvalidTypeKind))
	assert.Equal(http.StatusInternalServerError, StatusOf(gateway.PredictionErrorKind))
	assert.Equal(http.StatusServiceUnavailable, StatusOf(gateway.ServiceUnavailableKind))
	assert.Equal(http.StatusInternalServerError, StatusOf(service.UnknownKind))
}
