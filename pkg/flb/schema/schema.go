// SPDX-License-Identifier: Apache-2.0
/*
Copyright (C) 2024 The Fluent Bit Go Plugin SDK Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package schema validates the properties of an output instance against
// a JSON Schema (https://json-schema.org/).
//
// Fluent Bit does not let a plugin enumerate its properties, so the
// top-level "properties" of the schema are the keys that get looked up.
// Property values are always strings: use "pattern" or "enum" to
// constrain them, for example:
//
//	{
//	  "type": "object",
//	  "properties": {
//	    "format": {"type": "string", "enum": ["json", "msgpack"]},
//	    "port":   {"type": "string", "pattern": "^[0-9]+$"}
//	  },
//	  "required": ["format"]
//	}
package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/fluentbit-go/plugin-sdk-go/pkg/flb"
)

var errNoProperties = errors.New("schema does not declare any property")

// Schema is a compiled JSON Schema for the properties of a plugin.
type Schema struct {
	schema *gojsonschema.Schema
	keys   []string
}

// Compile parses and compiles the JSON Schema in src.
func Compile(src string) (*Schema, error) {
	var decl struct {
		Properties map[string]json.RawMessage `json:"properties"`
	}
	if err := json.Unmarshal([]byte(src), &decl); err != nil {
		return nil, fmt.Errorf("parsing schema: %w", err)
	}
	if len(decl.Properties) == 0 {
		return nil, errNoProperties
	}

	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(src))
	if err != nil {
		return nil, fmt.Errorf("compiling schema: %w", err)
	}

	keys := make([]string, 0, len(decl.Properties))
	for k := range decl.Properties {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return &Schema{schema: s, keys: keys}, nil
}

// Keys returns the sorted names of the properties declared by the schema.
func (s *Schema) Keys() []string {
	return s.keys
}

// Validate reads every declared property from config and validates the
// resulting object. The returned error lists all the violations.
func (s *Schema) Validate(config flb.Config) error {
	doc := make(map[string]interface{}, len(s.keys))
	for _, k := range s.keys {
		if v, ok := config.Property(k); ok {
			doc[k] = v
		}
	}

	res, err := s.schema.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return fmt.Errorf("validating properties: %w", err)
	}
	if res.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("invalid properties: %s", strings.Join(msgs, "; "))
}
