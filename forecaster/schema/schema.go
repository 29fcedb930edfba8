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

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"
)

// Kind is the numeric kind of a feature.
type Kind int

const (
	// KindInteger is a base-10 integer feature.
	KindInteger Kind = iota + 1

	// KindFloat is a floating-point feature.
	KindFloat
)

const (
	// KindIntegerName is the name of integer kind.
	KindIntegerName = "integer"

	// KindFloatName is the name of floating-point kind.
	KindFloatName = "float"
)

// String returns the name of kind.
func (k Kind) String() string {
	switch k {
	case KindInteger:
		return KindIntegerName
	case KindFloat:
		return KindFloatName
	}

	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind parses kind by name.
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case KindIntegerName, "int":
		return KindInteger, nil
	case KindFloatName, "floating-point", "double":
		return KindFloat, nil
	}

	return 0, fmt.Errorf("unknown feature kind %q", name)
}

func (k Kind) MarshalText() ([]byte, error) {
	if !k.valid() {
		return nil, fmt.Errorf("invalid feature kind %d", int(k))
	}

	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	kind, err := ParseKind(string(text))
	if err != nil {
		return err
	}

	*k = kind
	return nil
}

func (k *Kind) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return errors.New("invalid feature kind")
	}

	return k.UnmarshalText([]byte(node.Value))
}

func (k Kind) valid() bool {
	return k == KindInteger || k == KindFloat
}

// Field is a named feature the model was fit on.
type Field struct {
	Name string `json:"name" yaml:"name" mapstructure:"name"`
	Kind Kind   `json:"kind" yaml:"kind" mapstructure:"kind"`
}

// Schema is the fixed, ordered list of features a model requires.
// It is immutable once created.
type Schema struct {
	fields []Field
	index  map[string]int
}

// New returns a schema holding fields in the given order.
func New(fields ...Field) (*Schema, error) {
	var errs *multierror.Error
	if len(fields) == 0 {
		errs = multierror.Append(errs, errors.New("schema requires at least one field"))
	}

	index := make(map[string]int, len(fields))
	for i, f := range fields {
		if f.Name == "" {
			errs = multierror.Append(errs, fmt.Errorf("field %d requires parameter name", i))
			continue
		}

		if !f.Kind.valid() {
			errs = multierror.Append(errs, fmt.Errorf("field %q has invalid kind %d", f.Name, int(f.Kind)))
		}

		if _, ok := index[f.Name]; ok {
			errs = multierror.Append(errs, fmt.Errorf("field %q is duplicated", f.Name))
			continue
		}
		index[f.Name] = i
	}

	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}

	s := &Schema{
		fields: make([]Field, len(fields)),
		index:  index,
	}
	copy(s.fields, fields)
	return s, nil
}

// Len returns the number of fields.
func (s *Schema) Len() int {
	return len(s.fields)
}

// Field returns the field at position i.
func (s *Schema) Field(i int) Field {
	return s.fields[i]
}

// Fields returns a copy of the ordered fields.
func (s *Schema) Fields() []Field {
	return slices.Clone(s.fields)
}

// Names returns the ordered field names.
func (s *Schema) Names() []string {
	names := make([]string, len(s.fields))
	for i, f := range s.fields {
		names[i] = f.Name
	}

	return names
}

// Index returns the position of the named field.
func (s *Schema) Index(name string) (int, bool) {
	i, ok := s.index[name]
	return i, ok
}

// Equal reports whether both schemas have the same fields in the same order.
func (s *Schema) Equal(o *Schema) bool {
	if s == nil || o == nil {
		return s == o
	}

	return slices.Equal(s.fields, o.fields)
}
