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

package entity

import (
	"reflect"
	"time"

	"github.com/samber/lo"
	"github.com/uptrace/bun/schema"

	"github.com/tomoncle/chamados/types"
)

const dateLayout = "2006-01-02"

var (
	timeType = reflect.TypeOf(time.Time{})

	// never leave the store
	hiddenColumns = []string{"user_password"}
)

// ToMap projects a record of table into column name -> plain value: enums
// become their string value, timestamps RFC 3339 strings, date columns
// YYYY-MM-DD and JSON columns their decoded value. Only the columns bun maps
// for the table are included, so relations never are.
func ToMap(table *schema.Table, model interface{}) map[string]interface{} {
	out := make(map[string]interface{})
	v := reflect.ValueOf(model)
	for v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return out
		}
		v = v.Elem()
	}
	if table == nil || v.Type() != table.Type {
		return out
	}
	for _, f := range table.Fields {
		if lo.Contains(hiddenColumns, f.Name) {
			continue
		}
		out[f.Name] = plainValue(f.Value(v), f.UserSQLType == "date")
	}
	return out
}

// ToMaps projects every record of a result set.
func ToMaps[T any](table *schema.Table, models []*T) []map[string]interface{} {
	return lo.Map(models, func(m *T, _ int) map[string]interface{} { return ToMap(table, m) })
}

func plainValue(v reflect.Value, isDate bool) interface{} {
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	if v.Type() == timeType {
		ts := v.Interface().(time.Time)
		if ts.IsZero() {
			return nil
		}
		if isDate {
			return ts.Format(dateLayout)
		}
		return ts.Format(time.RFC3339Nano)
	}
	switch x := v.Interface().(type) {
	case types.JsonObject:
		if x == nil {
			return nil
		}
		return map[string]interface{}(x)
	case types.JsonArray:
		if x == nil {
			return nil
		}
		return lo.Map(x, func(o types.JsonObject, _ int) interface{} { return map[string]interface{}(o) })
	}
	if v.Kind() == reflect.String {
		return v.String()
	}
	return v.Interface()
}
