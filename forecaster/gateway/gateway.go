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

//go:generate mockgen -destination mocks/gateway_mock.go -source gateway.go -package mocks

package gateway

import (
	"context"
	"fmt"
	"math"

	"github.com/looplab/fsm"

	logger "github.com/salesforecast/forecaster/internal/fclog"
	"github.com/salesforecast/forecaster/forecaster/models"
	"github.com/salesforecast/forecaster/forecaster/schema"
)

const (
	// Gateway has no model.
	StateUnloaded = "Unloaded"

	// Gateway holds a model and accepts predictions.
	StateReady = "Ready"
)

const (
	// Model artifact is loaded.
	EventLoad = "Load"
)

// LoaderFunc reads a model artifact from path.
type LoaderFunc func(path string) (models.Predictor, *schema.Schema, error)

// Gateway is the interface used for model gateway.
type Gateway interface {
	// Load loads the model artifact at path, a gateway loads only once.
	Load(path string) error

	// Ready reports whether the model is loaded.
	Ready() bool

	// State returns the current state.
	State() string

	// Schema returns the feature schema of the loaded model.
	Schema() *schema.Schema

	// Predict returns the forecast in whole units.
	Predict(ctx context.Context, vector schema.FeatureVector) (int64, error)
}

// gateway implements Gateway.
type gateway struct {
	fsm       *fsm.FSM
	loader    LoaderFunc
	predictor models.Predictor
	schema    *schema.Schema
}

// Option is a functional option for configuring the gateway.
type Option func(g *gateway)

// WithLoader sets the artifact loader of gateway.
func WithLoader(loader LoaderFunc) Option {
	return func(g *gateway) {
		g.loader = loader
	}
}

// New returns an unloaded gateway.
func New(options ...Option) Gateway {
	g := &gateway{
		loader: models.Load,
	}

	g.fsm = fsm.NewFSM(
		StateUnloaded,
		fsm.Events{
			{Name: EventLoad, Src: []string{StateUnloaded}, Dst: StateReady},
		},
		fsm.Callbacks{
			EventLoad: func(e *fsm.Event) {
				logger.Infof("gateway state is %s", e.FSM.Current())
			},
		},
	)

	for _, opt := range options {
		opt(g)
	}

	return g
}

func (g *gateway) Load(path string) error {
	if !g.fsm.Can(EventLoad) {
		return fmt.Errorf("gateway can not load %s in state %s", path, g.fsm.Current())
	}

	predictor, s, err := g.loader(path)
	if err != nil {
		return fmt.Errorf("load model %s: %w", path, err)
	}

	g.predictor = predictor
	g.schema = s
	return g.fsm.Event(EventLoad)
}

func (g *gateway) Ready() bool {
	return g.fsm.Is(StateReady)
}

func (g *gateway) State() string {
	return g.fsm.Current()
}

func (g *gateway) Schema() *schema.Schema {
	return g.schema
}

func (g *gateway) Predict(ctx context.Context, vector schema.FeatureVector) (int64, error) {
	if !g.Ready() {
		return 0, &ServiceUnavailableError{State: g.State()}
	}

	if !vector.Conforms(g.schema) {
		return 0, &PredictionError{Cause: fmt.Errorf("vector of %d values does not conform to schema of %d features", len(vector), g.schema.Len())}
	}

	out, err := g.predict(ctx, vector.Float64s())
	if err != nil {
		logger.ModelLogger.Warnf("predict failed: %s", err.Error())
		return 0, &PredictionError{Cause: err}
	}

	if math.IsNaN(out) || math.IsInf(out, 0) {
		return 0, &PredictionError{Cause: fmt.Errorf("model returned %v", out)}
	}

	units := math.RoundToEven(out)
	if units < 0 {
		logger.ModelLogger.Debugf("clamp forecast %v to zero", out)
		return 0, nil
	}

	// float64(math.MaxInt64) rounds up to 2^63, which int64 can not hold.
	if units >= math.MaxInt64 {
		return 0, &PredictionError{Cause: fmt.Errorf("model returned %v, out of range", out)}
	}

	return int64(units), nil
}

// predict calls the model and turns a panic into an error.
func (g *gateway) predict(ctx context.Context, x []float64) (out float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("model panic: %v", r)
		}
	}()

	return g.predictor.Predict(ctx, x)
}
