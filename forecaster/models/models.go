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

//go:generate mockgen -destination mocks/predictor_mock.go -source models.go -package mocks

package models

import "context"

const (
	// TypeLinearRegression is the artifact type of linear regression model.
	TypeLinearRegression = "linear_regression"

	// TypeRemote is the artifact type of a model served by an external inference endpoint.
	TypeRemote = "remote"
)

// Predictor is the capability every loaded model exposes.
type Predictor interface {
	// Predict returns the raw model output for the ordered feature values.
	Predict(context.Context, []float64) (float64, error)
}
