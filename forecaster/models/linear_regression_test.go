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
	"context"
	"encoding/json"
	"testing"

	"github.com/sjwhitworth/golearn/base"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinearRegression_Predict(t *testing.T) {
	tests := []struct {
		name   string
		model  *LinearRegression
		x      []float64
		expect func(t *testing.T, out float64, err error)
	}{
		{
			name:  "predict",
			model: NewLinearRegression([]string{"a", "b"}, "y", 1.5, []float64{2, -1}),
			x:     []float64{10, 4},
			expect: func(t *testing.T, out float64, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.Equal(17.5, out)
			},
		},
		{
			name:  "no fitted model",
			model: &LinearRegression{},
			x:     []float64{1},
			expect: func(t *testing.T, out float64, err error) {
				assert := assert.New(t)
				assert.EqualError(err, "no fitted model")
			},
		},
		{
			name:  "values length mismatch",
			model: NewLinearRegression([]string{"a", "b"}, "y", 0, []float64{1, 1}),
			x:     []float64{1, 2, 3},
			expect: func(t *testing.T, out float64, err error) {
				assert := assert.New(t)
				assert.EqualError(err, "model expects 2 values, got 3")
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out, err := tc.model.Predict(context.Background(), tc.x)
			tc.expect(t, out, err)
		})
	}
}

func TestLinearRegression_PredictGridResolvesByName(t *testing.T) {
	lr := NewLinearRegression([]string{"a", "b"}, "y", 0, []float64{1, 100})

	// Grid columns are deliberately in the opposite order of the model attrs.
	inst := base.NewDenseInstances()
	bSpec := inst.AddAttribute(base.NewFloatAttribute("b"))
	aSpec := inst.AddAttribute(base.NewFloatAttribute("a"))
	cls := base.NewFloatAttribute("y")
	inst.AddAttribute(cls)
	require.NoError(t, inst.AddClassAttribute(cls))
	require.NoError(t, inst.Extend(1))
	inst.Set(aSpec, 0, base.PackFloatToBytes(2))
	inst.Set(bSpec, 0, base.PackFloatToBytes(3))

	out, err := lr.PredictGrid(inst)
	require.NoError(t, err)
	spec, err := out.GetAttribute(out.AllAttributes()[0])
	require.NoError(t, err)
	assert.Equal(t, 302.0, base.UnpackBytesToFloat(out.Get(spec, 0)))
}

func TestLinearRegression_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mock   func(lr *LinearRegression)
		expect func(t *testing.T, err error)
	}{
		{
			name: "valid model",
			mock: func(lr *LinearRegression) {},
			expect: func(t *testing.T, err error) {
				assert.NoError(t, err)
			},
		},
		{
			name: "model requires parameter cls",
			mock: func(lr *LinearRegression) {
				lr.Cls = nil
			},
			expect: func(t *testing.T, err error) {
				assert.EqualError(t, err, "model requires parameter cls")
			},
		},
		{
			name: "model requires parameter attrs",
			mock: func(lr *LinearRegression) {
				lr.Attrs = nil
				lr.RegressionCoefficients = nil
			},
			expect: func(t *testing.T, err error) {
				assert.EqualError(t, err, "model requires parameter attrs")
			},
		},
		{
			name: "coefficients mismatch",
			mock: func(lr *LinearRegression) {
				lr.RegressionCoefficients = []float64{1}
			},
			expect: func(t *testing.T, err error) {
				assert.EqualError(t, err, "model has 1 regression coefficients for 2 attrs")
			},
		},
		{
			name: "unnamed attr",
			mock: func(lr *LinearRegression) {
				lr.Attrs[1] = base.NewFloatAttribute("")
			},
			expect: func(t *testing.T, err error) {
				assert.EqualError(t, err, "attr 1 requires parameter name")
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			lr := NewLinearRegression([]string{"a", "b"}, "y", 0, []float64{1, 2})
			tc.mock(lr)
			tc.expect(t, lr.Validate())
		})
	}
}

func TestLinearRegression_JSON(t *testing.T) {
	assert := assert.New(t)
	lr := NewLinearRegression([]string{"Price", "lag_1"}, "Units Sold", 3.25, []float64{-1.5, 0.75})

	data, err := json.Marshal(lr)
	assert.NoError(err)

	decoded := &LinearRegression{}
	assert.NoError(json.Unmarshal(data, decoded))
	assert.True(decoded.Fitted)
	assert.Equal(3.25, decoded.Disturbance)
	assert.Equal([]float64{-1.5, 0.75}, decoded.RegressionCoefficients)
	assert.Equal([]string{"Price", "lag_1"}, decoded.AttributeNames())
	assert.Equal("Units Sold", decoded.Cls.Name)
	assert.Equal(lr.Attrs[0].Precision, decoded.Attrs[0].Precision)
}
