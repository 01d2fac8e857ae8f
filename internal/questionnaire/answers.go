package questionnaire

import (
	"bytes"
	"encoding/json"
)

// AnswerSet maps every field name to its current value. All fields are
// always present; values are only ever overwritten.
type AnswerSet struct {
	values map[string]string
}

// NewAnswerSet returns an answer set with every field set to "".
func NewAnswerSet() AnswerSet {
	values := make(map[string]string, len(fields))
	for _, f := range fields {
		values[f.Name] = ""
	}
	return AnswerSet{values: values}
}

// Set overwrites one field. Unknown names are ignored and reported as false.
func (a *AnswerSet) Set(name, value string) bool {
	if !IsField(name) {
		return false
	}
	if a.values == nil {
		*a = NewAnswerSet()
	}
	a.values[name] = value
	return true
}

// Get returns the value of a field, "" when unset or unknown.
func (a AnswerSet) Get(name string) string {
	return a.values[name]
}

// Len returns the number of keys, which is always len(FieldNames()).
func (a AnswerSet) Len() int {
	if a.values == nil {
		return len(fields)
	}
	return len(a.values)
}

// Map returns a copy of the answers keyed by field name.
func (a AnswerSet) Map() map[string]string {
	out := make(map[string]string, len(fields))
	for _, f := range fields {
		out[f.Name] = a.values[f.Name]
	}
	return out
}

// Clone returns an independent copy.
func (a AnswerSet) Clone() AnswerSet {
	return AnswerSet{values: a.Map()}
}

// Answered counts the fields with a non-empty value.
func (a AnswerSet) Answered() int {
	n := 0
	for _, v := range a.values {
		if v != "" {
			n++
		}
	}
	return n
}

// FromMap builds an answer set from m, ignoring keys that are not fields.
func FromMap(m map[string]string) AnswerSet {
	a := NewAnswerSet()
	for k, v := range m {
		a.Set(k, v)
	}
	return a
}

// MarshalJSON writes every field in canonical order, empty strings included.
func (a AnswerSet) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(f.Name)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(a.values[f.Name])
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON accepts an object of string values; unknown keys are dropped.
func (a *AnswerSet) UnmarshalJSON(data []byte) error {
	var m map[string]string
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	*a = FromMap(m)
	return nil
}
