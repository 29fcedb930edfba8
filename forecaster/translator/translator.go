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

package translator

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/salesforecast/forecaster/forecaster/schema"
)

// RawSubmission is the untyped field-name to field-value input of a forecast request.
type RawSubmission map[string]string

// Translate maps the submission into a feature vector ordered by the schema.
// Keys unknown to the schema are ignored.
func Translate(s *schema.Schema, raw RawSubmission) (schema.FeatureVector, error) {
	vector := make(schema.FeatureVector, s.Len())
	for i := 0; i < s.Len(); i++ {
		field := s.Field(i)
		text, ok := raw[field.Name]
		if !ok {
			return nil, &MissingFieldError{Field: field.Name}
		}

		value, err := parse(field.Kind, text)
		if err != nil {
			return nil, &InvalidTypeError{
				Field:    field.Name,
				RawValue: text,
				Expected: field.Kind.String(),
				Err:      err,
			}
		}

		vector[i] = value
	}

	return vector, nil
}

// parse converts text into a value of the given kind.
func parse(kind schema.Kind, text string) (schema.Value, error) {
	text = strings.TrimSpace(text)
	switch kind {
	case schema.KindInteger:
		v, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return schema.Value{}, err
		}

		return schema.IntValue(v), nil
	case schema.KindFloat:
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return schema.Value{}, err
		}

		if math.IsNaN(v) || math.IsInf(v, 0) {
			return schema.Value{}, errors.New("value is not finite")
		}

		return schema.FloatValue(v), nil
	}

	return schema.Value{}, errors.New("unsupported feature kind")
}
