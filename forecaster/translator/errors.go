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

import "fmt"

const (
	// MissingFieldKind is the error kind of a required feature absent from the submission.
	MissingFieldKind = "MissingField"

	// InvalidTypeKind is the error kind of a feature not parseable as its declared kind.
	InvalidTypeKind = "InvalidType"
)

// MissingFieldError is returned when a schema field is absent from the submission.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing input feature: %q", e.Field)
}

// Kind returns the error kind.
func (e *MissingFieldError) Kind() string {
	return MissingFieldKind
}

// InvalidTypeError is returned when a field value is not parseable as its declared kind.
// RawValue keeps the submitted text untouched.
type InvalidTypeError struct {
	Field    string
	RawValue string
	Expected string
	Err      error
}

func (e *InvalidTypeError) Error() string {
	return fmt.Sprintf("invalid value %q for input feature %q: expected %s", e.RawValue, e.Field, e.Expected)
}

func (e *InvalidTypeError) Unwrap() error {
	return e.Err
}

// Kind returns the error kind.
func (e *InvalidTypeError) Kind() string {
	return InvalidTypeKind
}
