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

package repository

import "github.com/cockroachdb/errors"

var (
	// ErrValidation marks input rejected before reaching the store.
	ErrValidation = errors.New("validation failed")

	// ErrProtectedField is returned by Update for identity, audit and
	// lifecycle columns, which only Insert, SoftDelete and Restore may set.
	ErrProtectedField = errors.New("protected field")

	ErrUnknownField = errors.New("unknown field")
)

func validationError(err error, format string, args ...interface{}) error {
	return errors.Mark(errors.Wrapf(err, format, args...), ErrValidation)
}
