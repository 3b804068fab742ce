// Copyright 2020-2021 Dolthub, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package bsonpath

// Field is one (name, Value) pair of an Object, in insertion order.
type Field struct {
	Name  string
	Value Value
}

// Document is an ordered keyed container of fields. Field order is
// insertion order, matching the BSON object model: iteration and
// serialization must reproduce it, but lookup is still O(1) via the
// accompanying index.
type Document struct {
	fields []Field
	index  map[string]int
}

// NewDocument builds a Document from fields in the given order. Later
// duplicate names overwrite the value at the first occurrence's
// position, matching typical BSON decoding behavior.
func NewDocument(fields ...Field) *Document {
	d := &Document{
		fields: make([]Field, 0, len(fields)),
		index:  make(map[string]int, len(fields)),
	}
	for _, f := range fields {
		d.Set(f.Name, f.Value)
	}
	return d
}

// Set inserts or overwrites a field, preserving original insertion
// position on overwrite.
func (d *Document) Set(name string, v Value) {
	if i, ok := d.index[name]; ok {
		d.fields[i].Value = v
		return
	}
	d.index[name] = len(d.fields)
	d.fields = append(d.fields, Field{Name: name, Value: v})
}

// Get returns the field's value and whether it is present. A present
// field holding Null is still "present"; an absent field reports
// (Value{}, false) and callers should treat that as Missing.
func (d *Document) Get(name string) (Value, bool) {
	if d == nil {
		return Value{}, false
	}
	i, ok := d.index[name]
	if !ok {
		return Value{}, false
	}
	return d.fields[i].Value, true
}

// Fields returns the fields in insertion order. Callers must not mutate
// the returned slice.
func (d *Document) Fields() []Field {
	if d == nil {
		return nil
	}
	return d.fields
}

// Len returns the number of fields.
func (d *Document) Len() int {
	if d == nil {
		return 0
	}
	return len(d.fields)
}
