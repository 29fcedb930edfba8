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

package gateway

import "fmt"

const (
	PredictionErrorKind    = "PredictionError"
	ServiceUnavailableKind = "ServiceUnavailable"
)

// PredictionError is returned when the loaded model fails to produce a forecast.
type PredictionError struct {
	Cause error
}

func (e *PredictionError) Error() string {
	return fmt.Sprintf("an error occurred during prediction: %s", e.Cause)
}

func (e *PredictionError) Unwrap() error {
	return e.Cause
}

func (e *PredictionError) Kind() string {
	return PredictionErrorKind
}

// ServiceUnavailableError is returned when no model is loaded.
type ServiceUnavailableError struct {
	State string
}

func (e *ServiceUnavailableError) Error() string {
	return fmt.Sprintf("model not loaded, gateway is %s", e.State)
}

func (e *ServiceUnavailableError) Kind() string {
	return ServiceUnavailableKind
}
