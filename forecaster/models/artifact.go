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

package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"

	"github.com/sjwhitworth/golearn/base"

	"github.com/salesforecast/forecaster/forecaster/schema"
)

// Artifact is the serialized form of a trained model and the feature metadata it was fit on.
type Artifact struct {
	// Type of model, linear_regression or remote.
	Type string `json:"type"`

	// Target is the name of the predicted value.
	Target string `json:"target,omitempty"`

	// Features in training order.
	Features []schema.Field `json:"features"`

	// Model parameters, used by linear_regression.
	Model json.RawMessage `json:"model,omitempty"`

	// Endpoint of the inference service, used by remote.
	Endpoint string `json:"endpoint,omitempty"`
}

// Load reads the artifact at path and returns its predictor and feature schema.
func Load(path string) (Predictor, *schema.Schema, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	return Decode(file)
}

// Decode reads an artifact and returns its predictor and feature schema.
func Decode(r io.Reader) (Predictor, *schema.Schema, error) {
	var artifact Artifact
	if err := json.NewDecoder(r).Decode(&artifact); err != nil {
		return nil, nil, fmt.Errorf("decode artifact: %w", err)
	}

	s, err := schema.New(artifact.Features...)
	if err != nil {
		return nil, nil, fmt.Errorf("artifact features: %w", err)
	}

	switch artifact.Type {
	case TypeLinearRegression:
		p, err := decodeLinearRegression(artifact, s)
		if err != nil {
			return nil, nil, err
		}

		return p, s, nil
	case TypeRemote:
		if _, err := url.ParseRequestURI(artifact.Endpoint); err != nil {
			return nil, nil, fmt.Errorf("remote model requires parameter endpoint: %w", err)
		}

		return NewRemote(artifact.Endpoint, s.Names()), s, nil
	}

	return nil, nil, fmt.Errorf("unknown model type %q", artifact.Type)
}

func decodeLinearRegression(artifact Artifact, s *schema.Schema) (*LinearRegression, error) {
	if len(artifact.Model) == 0 {
		return nil, errors.New("linear_regression model requires parameter model")
	}

	lr := &LinearRegression{}
	if err := json.Unmarshal(artifact.Model, lr); err != nil {
		return nil, fmt.Errorf("decode linear_regression model: %w", err)
	}

	if lr.Cls == nil && artifact.Target != "" {
		lr.Cls = base.NewFloatAttribute(artifact.Target)
	}

	if err := lr.Validate(); err != nil {
		return nil, err
	}

	names := lr.AttributeNames()
	if len(names) != s.Len() {
		return nil, fmt.Errorf("model has %d attrs, features have %d", len(names), s.Len())
	}

	for i, name := range names {
		if name != s.Field(i).Name {
			return nil, fmt.Errorf("model attr %d is %q, feature is %q", i, name, s.Field(i).Name)
		}
	}

	return lr, nil
}
