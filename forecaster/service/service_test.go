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

package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/salesforecast/forecaster/forecaster/gateway"
	"github.com/salesforecast/forecaster/forecaster/gateway/mocks"
	"github.com/salesforecast/forecaster/forecaster/schema"
	"github.com/salesforecast/forecaster/forecaster/translator"
)

var mockSubmission = translator.RawSubmission{
	"Price":              "35.0",
	"Discount":           "10",
	"Competitor Pricing": "34.0",
	"Demand Forecast":    "150.0",
	"Holiday/Promotion":  "1",
	"dayofweek":          "1",
	"dayofyear":          "120",
	"weekofyear":         "17",
	"month":              "4",
	"year":               "2025",
	"lag_1":              "15000",
	"lag_7":              "14500",
	"lag_30":             "16000",
	"rolling_mean_7":     "15200",
}

func copySubmission(mutate func(raw translator.RawSubmission)) translator.RawSubmission {
	raw := translator.RawSubmission{}
	for k, v := range mockSubmission {
		raw[k] = v
	}

	mutate(raw)
	return raw
}

func TestService_Forecast(t *testing.T) {
	tests := []struct {
		name   string
		raw    translator.RawSubmission
		mock   func(m *mocks.MockGatewayMockRecorder)
		expect func(t *testing.T, forecast *Forecast, err error)
	}{
		{
			name: "forecast",
			raw:  mockSubmission,
			mock: func(m *mocks.MockGatewayMockRecorder) {
				gomock.InOrder(
					m.Ready().Return(true).Times(1),
					m.Schema().Return(schema.Retail()).Times(1),
					m.Predict(gomock.Any(), gomock.Len(14)).Return(int64(15320), nil).Times(1),
				)
			},
			expect: func(t *testing.T, forecast *Forecast, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.Equal(int64(15320), forecast.Units)
			},
		},
		{
			name: "gateway is unloaded",
			raw:  mockSubmission,
			mock: func(m *mocks.MockGatewayMockRecorder) {
				m.Ready().Return(false).Times(1)
				m.State().Return(gateway.StateUnloaded).Times(1)
				m.Schema().Times(0)
				m.Predict(gomock.Any(), gomock.Any()).Times(0)
			},
			expect: func(t *testing.T, forecast *Forecast, err error) {
				assert := assert.New(t)
				var serr *gateway.ServiceUnavailableError
				assert.ErrorAs(err, &serr)
				assert.Nil(forecast)
				assert.Equal(gateway.ServiceUnavailableKind, KindOf(err))
			},
		},
		{
			name: "missing field",
			raw: copySubmission(func(raw translator.RawSubmission) {
				delete(raw, "lag_7")
			}),
			mock: func(m *mocks.MockGatewayMockRecorder) {
				m.Ready().Return(true).Times(1)
				m.Schema().Return(schema.Retail()).Times(1)
				m.Predict(gomock.Any(), gomock.Any()).Times(0)
			},
			expect: func(t *testing.T, forecast *Forecast, err error) {
				assert := assert.New(t)
				var merr *translator.MissingFieldError
				assert.ErrorAs(err, &merr)
				assert.Equal("lag_7", merr.Field)
				assert.Equal(translator.MissingFieldKind, KindOf(err))
			},
		},
		{
			name: "invalid type",
			raw: copySubmission(func(raw translator.RawSubmission) {
				raw["Price"] = "abc"
			}),
			mock: func(m *mocks.MockGatewayMockRecorder) {
				m.Ready().Return(true).Times(1)
				m.Schema().Return(schema.Retail()).Times(1)
				m.Predict(gomock.Any(), gomock.Any()).Times(0)
			},
			expect: func(t *testing.T, forecast *Forecast, err error) {
				assert := assert.New(t)
				var ierr *translator.InvalidTypeError
				assert.ErrorAs(err, &ierr)
				assert.Equal("Price", ierr.Field)
				assert.Equal("abc", ierr.RawValue)
				assert.Equal(translator.InvalidTypeKind, KindOf(err))
			},
		},
		{
			name: "prediction failed",
			raw:  mockSubmission,
			mock: func(m *mocks.MockGatewayMockRecorder) {
				m.Ready().Return(true).Times(1)
				m.Schema().Return(schema.Retail()).Times(1)
				m.Predict(gomock.Any(), gomock.Any()).Return(int64(0), &gateway.PredictionError{Cause: errors.New("foo")}).Times(1)
			},
			expect: func(t *testing.T, forecast *Forecast, err error) {
				assert := assert.New(t)
				assert.Nil(forecast)
				assert.Equal(gateway.PredictionErrorKind, KindOf(err))
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctl := gomock.NewController(t)
			defer ctl.Finish()
			g := mocks.NewMockGateway(ctl)
			tc.mock(g.EXPECT())

			svc := New(g)
			forecast, err := svc.Forecast(ContextWithRequestID(context.Background(), "foo"), tc.raw)
			tc.expect(t, forecast, err)
		})
	}
}

func TestService_ForecastEndToEnd(t *testing.T) {
	g := gateway.New()
	assert.NoError(t, g.Load("../models/testdata/retail_linear.json"))

	svc := New(g)
	assert.True(t, svc.Ready())
	assert.True(t, svc.Schema().Equal(schema.Retail()))

	forecast, err := svc.Forecast(context.Background(), mockSubmission)
	assert.NoError(t, err)
	assert.Equal(t, int64(15320), forecast.Units)
}

func TestKindOf(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(UnknownKind, KindOf(errors.New("foo")))
	assert.Equal(translator.MissingFieldKind, KindOf(&translator.MissingFieldError{Field: "foo"}))
	assert.Equal(gateway.PredictionErrorKind, KindOf(fmt.Errorf("foo: %w", &gateway.PredictionError{})))
}
