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
	"errors"
	"fmt"

	"github.com/mitchellh/mapstructure"
	"github.com/sjwhitworth/golearn/base"
)

// LinearRegression linear regression model struct.
type LinearRegression struct {
	Fitted                 bool                   `json:"fitted" mapstructure:"fitted"`
	Disturbance            float64                `json:"disturbance" mapstructure:"disturbance"`
	RegressionCoefficients []float64              `json:"regression_coefficients" mapstructure:"regression_coefficients"`
	Attrs                  []*base.FloatAttribute `json:"attrs" mapstructure:"attrs"`
	Cls                    *base.FloatAttribute   `json:"cls" mapstructure:"cls"`
}

// NewLinearRegression returns a fitted linear regression over the named attributes.
func NewLinearRegression(names []string, target string, disturbance float64, coefficients []float64) *LinearRegression {
	attrs := make([]*base.FloatAttribute, len(names))
	for i, name := range names {
		attrs[i] = base.NewFloatAttribute(name)
	}

	return &LinearRegression{
		Fitted:                 true,
		Disturbance:            disturbance,
		RegressionCoefficients: coefficients,
		Attrs:                  attrs,
		Cls:                    base.NewFloatAttribute(target),
	}
}

// AttributeNames returns the names of attributes in coefficient order.
func (lr *LinearRegression) AttributeNames() []string {
	names := make([]string, len(lr.Attrs))
	for i, a := range lr.Attrs {
		names[i] = a.Name
	}

	return names
}

// Validate checks the model parameters are complete.
func (lr *LinearRegression) Validate() error {
	if !lr.Fitted {
		return errors.New("no fitted model")
	}

	if lr.Cls == nil {
		return errors.New("model requires parameter cls")
	}

	if len(lr.Attrs) == 0 {
		return errors.New("model requires parameter attrs")
	}

	if len(lr.RegressionCoefficients) != len(lr.Attrs) {
		return fmt.Errorf("model has %d regression coefficients for %d attrs", len(lr.RegressionCoefficients), len(lr.Attrs))
	}

	for i, a := range lr.Attrs {
		if a == nil || a.Name == "" {
			return fmt.Errorf("attr %d requires parameter name", i)
		}
	}

	return nil
}

// Predict uses parameters of model to predict the values provided.
func (lr *LinearRegression) Predict(ctx context.Context, x []float64) (float64, error) {
	if !lr.Fitted {
		return 0, errors.New("no fitted model")
	}

	if len(x) != len(lr.Attrs) {
		return 0, fmt.Errorf("model expects %d values, got %d", len(lr.Attrs), len(x))
	}

	inst, err := lr.instances(x)
	if err != nil {
		return 0, err
	}

	out, err := lr.PredictGrid(inst)
	if err != nil {
		return 0, err
	}

	attrSpec, err := out.GetAttribute(out.AllAttributes()[0])
	if err != nil {
		return 0, err
	}

	return base.UnpackBytesToFloat(out.Get(attrSpec, 0)), nil
}

// PredictGrid predicts every row of the grid, attributes are resolved by name.
func (lr *LinearRegression) PredictGrid(X base.FixedDataGrid) (base.FixedDataGrid, error) {
	ret := base.GeneratePredictionVector(X)
	attrs := make([]base.Attribute, len(lr.Attrs))
	for idx, a := range lr.Attrs {
		attrs[idx] = a
	}
	attrSpecs := base.ResolveAttributes(X, attrs)
	clsSpec, err := ret.GetAttribute(lr.Cls)
	if err != nil {
		return nil, err
	}

	err = X.MapOverRows(attrSpecs, func(row [][]byte, i int) (bool, error) {
		var prediction = lr.Disturbance
		for j, r := range row {
			prediction += base.UnpackBytesToFloat(r) * lr.RegressionCoefficients[j]
		}

		ret.Set(clsSpec, i, base.PackFloatToBytes(prediction))
		return true, nil
	})
	if err != nil {
		return nil, err
	}

	return ret, nil
}

// instances packs one row of values into a dense grid named after the model attributes.
func (lr *LinearRegression) instances(x []float64) (*base.DenseInstances, error) {
	inst := base.NewDenseInstances()
	specs := make([]base.AttributeSpec, len(lr.Attrs))
	for i, a := range lr.Attrs {
		specs[i] = inst.AddAttribute(base.NewFloatAttribute(a.Name))
	}

	cls := base.NewFloatAttribute(lr.Cls.Name)
	inst.AddAttribute(cls)
	if err := inst.AddClassAttribute(cls); err != nil {
		return nil, err
	}

	if err := inst.Extend(1); err != nil {
		return nil, err
	}

	for i, spec := range specs {
		inst.Set(spec, 0, base.PackFloatToBytes(x[i]))
	}

	return inst, nil
}

func (lr *LinearRegression) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{
		"fitted":                  lr.Fitted,
		"disturbance":             lr.Disturbance,
		"regression_coefficients": lr.RegressionCoefficients,
		"attrs":                   lr.marshalFloatAttributes(),
		"cls":                     marshalFloatAttribute(lr.Cls),
	})
}

func marshalFloatAttribute(f *base.FloatAttribute) map[string]any {
	if f == nil {
		return nil
	}

	return map[string]any{
		"name":      f.Name,
		"precision": f.Precision,
	}
}

func (lr *LinearRegression) marshalFloatAttributes() []map[string]any {
	ans := make([]map[string]any, len(lr.Attrs))
	for idx, attr := range lr.Attrs {
		ans[idx] = marshalFloatAttribute(attr)
	}

	return ans
}

func (lr *LinearRegression) UnmarshalJSON(data []byte) error {
	var d map[string]any
	if err := json.Unmarshal(data, &d); err != nil {
		return err
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused: false,
		Result:      lr,
	})
	if err != nil {
		return err
	}

	return decoder.Decode(d)
}
