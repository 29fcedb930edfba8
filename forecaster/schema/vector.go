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

package schema

import "strconv"

// Value is a single typed feature value.
type Value struct {
	Kind  Kind
	Int   int64
	Float float64
}

// IntValue returns an integer value.
func IntValue(v int64) Value {
	return Value{Kind: KindInteger, Int: v}
}

// FloatValue returns a floating-point value.
func FloatValue(v float64) Value {
	return Value{Kind: KindFloat, Float: v}
}

// Float64 returns the value as float64.
func (v Value) Float64() float64 {
	if v.Kind == KindInteger {
		return float64(v.Int)
	}

	return v.Float
}

// String formats the value in its kind.
func (v Value) String() string {
	if v.Kind == KindInteger {
		return strconv.FormatInt(v.Int, 10)
	}

	return strconv.FormatFloat(v.Float, 'f', -1, 64)
}

// FeatureVector holds one value per schema field, in schema order.
type FeatureVector []Value

// Float64s returns the vector as model input.
func (fv FeatureVector) Float64s() []float64 {
	xs := make([]float64, len(fv))
	for i, v := range fv {
		xs[i] = v.Float64()
	}

	return xs
}

// Conforms reports whether the vector matches the schema length and kinds.
func (fv FeatureVector) Conforms(s *Schema) bool {
	if len(fv) != s.Len() {
		return false
	}

	for i, v := range fv {
		if v.Kind != s.Field(i).Kind {
			return false
		}
	}

	return true
}
