package stripe

import (
	"bytes"
	"encoding/json"
)

// Expandable is a reference to another object that the server returns as a
// bare id unless the request asked to expand it.
type Expandable[T any] struct {
	ID    string
	Value *T
}

// IsExpanded reports whether the full object was returned.
func (e *Expandable[T]) IsExpanded() bool { return e != nil && e.Value != nil }

func (e *Expandable[T]) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		e.Value = nil
		return json.Unmarshal(data, &e.ID)
	}
	v := new(T)
	if err := json.Unmarshal(data, v); err != nil {
		return err
	}
	e.Value = v
	if o, ok := any(v).(Object); ok {
		e.ID = o.ObjectID()
	}
	return nil
}

func (e Expandable[T]) MarshalJSON() ([]byte, error) {
	if e.Value != nil {
		return json.Marshal(e.Value)
	}
	return json.Marshal(e.ID)
}
