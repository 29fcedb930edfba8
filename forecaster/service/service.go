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

//go:generate mockgen -destination mocks/service_mock.go -source service.go -package mocks

package service

import (
	"context"
	"errors"

	logger "github.com/salesforecast/forecaster/internal/fclog"
	"github.com/salesforecast/forecaster/forecaster/gateway"
	"github.com/salesforecast/forecaster/forecaster/metrics"
	"github.com/salesforecast/forecaster/forecaster/schema"
	"github.com/salesforecast/forecaster/forecaster/translator"
)

// UnknownKind labels failures that carry no kind.
const UnknownKind = "Unknown"

// Forecast is the result of a successful prediction request.
type Forecast struct {
	// Units is the predicted number of units sold.
	Units int64 `json:"units"`
}

// KindError is implemented by every error surfaced to users.
type KindError interface {
	error
	Kind() string
}

// KindOf returns the kind of err, or UnknownKind.
func KindOf(err error) string {
	var kerr KindError
	if errors.As(err, &kerr) {
		return kerr.Kind()
	}

	return UnknownKind
}

// Service is the interface used for forecast requests.
type Service interface {
	// Forecast translates the raw submission and predicts with the loaded model.
	Forecast(ctx context.Context, raw translator.RawSubmission) (*Forecast, error)

	// Schema returns the feature schema, nil until the model is loaded.
	Schema() *schema.Schema

	// Ready reports whether forecasts can be served.
	Ready() bool
}

type service struct {
	gateway gateway.Gateway
}

// New returns a service backed by the gateway.
func New(g gateway.Gateway) Service {
	return &service{gateway: g}
}

func (s *service) Forecast(ctx context.Context, raw translator.RawSubmission) (*Forecast, error) {
	metrics.ForecastCount.Inc()

	if !s.gateway.Ready() {
		err := &gateway.ServiceUnavailableError{State: s.gateway.State()}
		s.fail(ctx, err)
		return nil, err
	}

	vector, err := translator.Translate(s.gateway.Schema(), raw)
	if err != nil {
		s.fail(ctx, err)
		return nil, err
	}

	units, err := s.gateway.Predict(ctx, vector)
	if err != nil {
		s.fail(ctx, err)
		return nil, err
	}

	metrics.ForecastUnits.Observe(float64(units))
	logger.WithRequest(RequestIDFromContext(ctx)).Debugf("forecast %d units", units)
	return &Forecast{Units: units}, nil
}

func (s *service) Schema() *schema.Schema {
	return s.gateway.Schema()
}

func (s *service) Ready() bool {
	return s.gateway.Ready()
}

func (s *service) fail(ctx context.Context, err error) {
	kind := KindOf(err)
	metrics.ForecastFailureCount.WithLabelValues(kind).Inc()

	log := logger.WithRequest(RequestIDFromContext(ctx)).With("kind", kind)
	if kind == gateway.PredictionErrorKind || kind == UnknownKind {
		log.Errorf("forecast failed: %s", err.Error())
		return
	}

	log.Warnf("forecast rejected: %s", err.Error())
}
