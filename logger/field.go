// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package logger

import (
	"fmt"
)

const (
	// UUIDKey is the field holding the identity tag of the emitting Logger.
	UUIDKey = "uuid"

	// extraValueKey collects a trailing key passed without its value.
	extraValueKey = "EXTRA_VALUE_AT_END"
)

// Field is a single key/value pair attached to a record.
type Field struct {
	Key   string
	Value any
}

// Fields is an ordered mapping from key to value. Keys are unique.
type Fields []Field

// FieldsFromArgs builds Fields from alternating key/value pairs.
// A later pair with an already seen key replaces the earlier value in place.
func FieldsFromArgs(args ...any) Fields {
	fields := make(Fields, 0, len(args)/2+1)
	for i := 0; i < len(args); i += 2 {
		if i+1 == len(args) {
			fields = fields.Set(extraValueKey, args[i])
			break
		}

		key, ok := args[i].(string)
		if !ok {
			key = fmt.Sprint(args[i])
		}
		fields = fields.Set(key, args[i+1])
	}
	return fields
}

// Set assigns value to key, keeping the position of an existing key.
func (f Fields) Set(key string, value any) Fields {
	if idx := f.index(key); idx >= 0 {
		f[idx].Value = value
		return f
	}
	return append(f, Field{Key: key, Value: value})
}

// Append assigns value to key and moves the key to the end.
func (f Fields) Append(key string, value any) Fields {
	return append(f.Delete(key), Field{Key: key, Value: value})
}

// Delete removes key if present.
func (f Fields) Delete(key string) Fields {
	idx := f.index(key)
	if idx < 0 {
		return f
	}
	return append(f[:idx:idx], f[idx+1:]...)
}

// Replace swaps the field stored under oldKey for newKey holding value,
// keeping its position. A field already stored under newKey is dropped.
func (f Fields) Replace(oldKey, newKey string, value any) Fields {
	if oldKey != newKey {
		f = f.Delete(newKey)
	}
	idx := f.index(oldKey)
	if idx < 0 {
		return append(f, Field{Key: newKey, Value: value})
	}

	replaced := make(Fields, len(f))
	copy(replaced, f)
	replaced[idx] = Field{Key: newKey, Value: value}
	return replaced
}

// Get returns the value stored under key.
func (f Fields) Get(key string) (any, bool) {
	if idx := f.index(key); idx >= 0 {
		return f[idx].Value, true
	}
	return nil, false
}

// Merge returns a new Fields with the pairs of other set over f.
func (f Fields) Merge(other Fields) Fields {
	merged := make(Fields, len(f), len(f)+len(other))
	copy(merged, f)
	for _, field := range other {
		merged = merged.Set(field.Key, field.Value)
	}
	return merged
}

// Args flattens f into alternating key/value pairs.
func (f Fields) Args() []any {
	args := make([]any, 0, len(f)*2)
	for _, field := range f {
		args = append(args, field.Key, field.Value)
	}
	return args
}

// Map returns f as an unordered map.
func (f Fields) Map() map[string]any {
	m := make(map[string]any, len(f))
	for _, field := range f {
		m[field.Key] = field.Value
	}
	return m
}

func (f Fields) index(key string) int {
	for i, field := range f {
		if field.Key == key {
			return i
		}
	}
	return -1
}
