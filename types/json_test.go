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

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJsonObjectValueAndScan(t *testing.T) {
	v, err := JsonObject{"theme": "dark", "email": true}.Value()
	require.NoError(t, err)
	assert.JSONEq(t, `{"theme":"dark","email":true}`, v.(string))

	var nilObject JsonObject
	v, err = nilObject.Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	var scanned JsonObject
	require.NoError(t, scanned.Scan([]byte(`{"fields":[]}`)))
	assert.Equal(t, []interface{}{}, scanned["fields"])

	require.NoError(t, scanned.Scan(nil))
	assert.Nil(t, scanned)

	assert.Error(t, scanned.Scan(42))
	assert.Error(t, scanned.Scan(`{broken`))
}

func TestJsonArrayScan(t *testing.T) {
	var attachments JsonArray
	require.NoError(t, attachments.Scan(`[{"name":"evidencia.png","size":1024}]`))
	require.Len(t, attachments, 1)
	assert.Equal(t, "evidencia.png", attachments[0]["name"])

	v, err := attachments.Value()
	require.NoError(t, err)
	assert.JSONEq(t, `[{"name":"evidencia.png","size":1024}]`, v.(string))
}

func TestParseEnum(t *testing.T) {
	s, ok := ParseEnum("inativo", StatusActive, StatusInactive)
	assert.True(t, ok)
	assert.Equal(t, StatusInactive, s)

	s, ok = ParseEnum("removido", StatusActive, StatusInactive)
	assert.False(t, ok)
	assert.Equal(t, Status(IllegalName), s)
	assert.False(t, s.IsValid())
}
