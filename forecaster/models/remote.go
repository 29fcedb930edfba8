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
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"github.com/docker/go-units"
	"github.com/go-http-utils/headers"
)

const (
	// DefaultRemoteTimeout is the default timeout of an inference call.
	DefaultRemoteTimeout = 30 * time.Second

	// maxRemoteErrorBody bounds the error body kept from a failed inference call.
	maxRemoteErrorBody = 512

	// maxRemoteResponseBody bounds the body decoded from a successful inference call.
	maxRemoteResponseBody = 1 * units.MiB
)

// RemoteRequest is the body posted to the inference endpoint.
type RemoteRequest struct {
	Features map[string]float64 `json:"features"`
	Vector   []float64          `json:"vector"`
}

// RemoteResponse is the body returned by the inference endpoint.
type RemoteResponse struct {
	Prediction *float64 `json:"prediction"`
}

// RemoteOption is a functional option for configuring the remote predictor.
type RemoteOption func(r *Remote)

// WithHTTPClient sets the http client of remote predictor.
func WithHTTPClient(client *http.Client) RemoteOption {
	return func(r *Remote) {
		r.client = client
	}
}

// Remote predicts by calling an external inference endpoint.
type Remote struct {
	endpoint string
	names    []string
	client   *http.Client
}

// NewRemote returns a predictor posting features named by names to endpoint.
func NewRemote(endpoint string, names []string, options ...RemoteOption) *Remote {
	r := &Remote{
		endpoint: endpoint,
		names:    names,
		client:   &http.Client{Timeout: DefaultRemoteTimeout},
	}

	for _, opt := range options {
		opt(r)
	}

	return r
}

// Predict posts the values to the inference endpoint and returns its prediction.
func (r *Remote) Predict(ctx context.Context, x []float64) (float64, error) {
	if len(x) != len(r.names) {
		return 0, fmt.Errorf("model expects %d values, got %d", len(r.names), len(x))
	}

	features := make(map[string]float64, len(x))
	for i, name := range r.names {
		features[name] = x[i]
	}

	body, err := json.Marshal(RemoteRequest{Features: features, Vector: x})
	if err != nil {
		return 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewReader(body))
	if err != nil {
		return 0, err
	}
	req.Header.Set(headers.ContentType, "application/json")
	req.Header.Set(headers.Accept, "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxRemoteErrorBody))
		return 0, fmt.Errorf("inference endpoint returned %d: %s", resp.StatusCode, bytes.TrimSpace(msg))
	}

	var out RemoteResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxRemoteResponseBody)).Decode(&out); err != nil {
		return 0, fmt.Errorf("decode inference response: %w", err)
	}

	if out.Prediction == nil {
		return 0, errors.New("inference response has no prediction")
	}

	if math.IsNaN(*out.Prediction) || math.IsInf(*out.Prediction, 0) {
		return 0, errors.New("inference response is not finite")
	}

	return *out.Prediction, nil
}
