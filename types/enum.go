/*
 * Copyright 2025 tomoncle.
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package types

import "slices"

// IllegalName is returned by enum parsers for unknown input.
const IllegalName = "unknown"

// BaseEnum represents the enum contract shared by every persisted
// classification field. Values are stored as their String form.
type BaseEnum interface {
	IsValid() bool
	String() string
}

// ValidEnum reports whether v is one of the allowed values.
func ValidEnum[E ~string](v E, allowed ...E) bool {
	return slices.Contains(allowed, v)
}

// ParseEnum converts raw input into E, returning false for values outside allowed.
func ParseEnum[E ~string](raw string, allowed ...E) (E, bool) {
	v := E(raw)
	if ValidEnum(v, allowed...) {
		return v, true
	}
	return E(IllegalName), false
}

// Status is the lifecycle flag carried by every record.
type Status string

const (
	StatusActive   Status = "ativo"
	StatusInactive Status = "inativo"
)

func (s Status) IsValid() bool  { return ValidEnum(s, StatusActive, StatusInactive) }
func (s Status) String() string { return string(s) }

// Fields is a partial update: column name to new value.
type Fields map[string]interface{}
