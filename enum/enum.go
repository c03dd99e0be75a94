// Package enum implements the string-enum codec shared by every generated
// wire enum.
//
// A wire enum is a named string type whose known cases are declared as
// constants. Each enum owns a [Set] that decodes wire strings back into
// cases. Sets come in two flavors:
//
//   - Strict sets reject unrecognized strings with a [*ParseError]. Use them
//     where the server's enumeration is authoritative.
//   - Permissive sets map unrecognized strings to a designated unknown case
//     and never fail. Use them where the server may add cases over time.
//
// The unknown case of a permissive set is conventionally the zero value of
// the type, so it cannot collide with any wire string. It must never be sent
// back to the server; [Set.Known] reports false for it and the form encoder
// refuses to emit it.
package enum

import (
	"encoding/json"
	"fmt"
)

// ParseError is returned when a strict set is asked to decode a string that
// is not one of its cases.
type ParseError struct {
	// Enum is the name of the enum type.
	Enum string
	// Value is the offending wire string.
	Value string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("enum: %q is not a valid %s", e.Value, e.Enum)
}

// Set is the decode table for one wire enum.
// A Set is immutable after construction and safe for concurrent use.
type Set[T ~string] struct {
	name       string
	values     []T
	index      map[string]T
	permissive bool
	unknown    T
}

// Strict returns a set that rejects strings outside values.
func Strict[T ~string](name string, values ...T) *Set[T] {
	return newSet(name, false, *new(T), values)
}

// Permissive returns a set that decodes strings outside values to unknown.
// unknown must not be one of values.
func Permissive[T ~string](name string, unknown T, values ...T) *Set[T] {
	for _, v := range values {
		if v == unknown {
			panic(fmt.Sprintf("enum: %s: unknown case %q is also a known case", name, string(unknown)))
		}
	}
	return newSet(name, true, unknown, values)
}

func newSet[T ~string](name string, permissive bool, unknown T, values []T) *Set[T] {
	s := &Set[T]{
		name:       name,
		values:     make([]T, 0, len(values)),
		index:      make(map[string]T, len(values)),
		permissive: permissive,
		unknown:    unknown,
	}
	for _, v := range values {
		if _, dup := s.index[string(v)]; dup {
			panic(fmt.Sprintf("enum: %s: duplicate case %q", name, string(v)))
		}
		s.index[string(v)] = v
		s.values = append(s.values, v)
	}
	return s
}

// Name returns the enum type name used in errors.
func (s *Set[T]) Name() string { return s.name }

// Permissive reports whether unrecognized strings decode to the unknown case.
func (s *Set[T]) Permissive() bool { return s.permissive }

// Unknown returns the unknown case. For strict sets it is the zero value and
// carries no meaning.
func (s *Set[T]) Unknown() T { return s.unknown }

// Values returns the known cases in declaration order.
func (s *Set[T]) Values() []T {
	out := make([]T, len(s.values))
	copy(out, s.values)
	return out
}

// Known reports whether v is one of the declared cases.
func (s *Set[T]) Known(v T) bool {
	_, ok := s.index[string(v)]
	return ok
}

// Parse decodes a wire string.
func (s *Set[T]) Parse(wire string) (T, error) {
	if v, ok := s.index[wire]; ok {
		return v, nil
	}
	if s.permissive {
		return s.unknown, nil
	}
	return *new(T), &ParseError{Enum: s.name, Value: wire}
}

// MustParse is like Parse but panics on error. It is intended for
// initializing package-level values from literals.
func (s *Set[T]) MustParse(wire string) T {
	v, err := s.Parse(wire)
	if err != nil {
		panic(err)
	}
	return v
}

// UnmarshalJSON decodes a JSON string into dst using Parse.
// Generated enum types forward their UnmarshalJSON method here.
func (s *Set[T]) UnmarshalJSON(data []byte, dst *T) error {
	var wire string
	if err := json.Unmarshal(data, &wire); err != nil {
		return fmt.Errorf("enum: decoding %s: %w", s.name, err)
	}
	v, err := s.Parse(wire)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}
