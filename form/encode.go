// Package form flattens parameter records into the bracketed
// application/x-www-form-urlencoded convention used by the API.
//
// Records are structs whose fields carry a `form:"wire_name"` tag. The Go
// type of a field decides its presence:
//
//   - pointers, slices, maps and interfaces are optional and emit nothing
//     when nil;
//   - every other field is required and is always emitted.
//
// A present but empty slice or map emits the bare key with an empty value
// ("metadata="), which endpoints treat as "clear this on the server". The
// ",omitempty" tag option drops an empty string instead.
//
// Nested records emit parent[child]. Slices of scalars emit repeated
// parent[] keys in order; slices of records or maps emit parent[0][child]
// so each element's fields stay grouped. Map entries emit parent[key] with
// keys sorted. time.Time encodes as Unix seconds.
package form

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Marshaler is implemented by values that pick their own wire string, such
// as unions of a keyword and a timestamp.
type Marshaler interface {
	MarshalForm() (string, error)
}

// knower is implemented by wire enums. A value reporting false is not a
// declared case and is never sent.
type knower interface {
	Known() bool
}

var (
	// ErrUnknownValue is reported for enum values that are not declared
	// cases, including the unknown case of permissive enums.
	ErrUnknownValue = errors.New("form: value is not a known enum case")

	// ErrUnsupportedType is reported for fields the encoder cannot flatten.
	ErrUnsupportedType = errors.New("form: unsupported type")
)

// EncodeError records which key failed to encode.
type EncodeError struct {
	Key string
	Err error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("form: encoding %s: %v", e.Key, e.Err)
}

func (e *EncodeError) Unwrap() error {
	return e.Err
}

var (
	marshalerType = reflect.TypeFor[Marshaler]()
	timeType      = reflect.TypeFor[time.Time]()
)

// Encode flattens a record into ordered pairs. v may be nil, a Values
// (which is copied), a struct, a map, or a pointer to either.
func Encode(v any) (Values, error) {
	if v == nil {
		return Values{}, nil
	}
	if vals, ok := v.(Values); ok {
		return vals.Clone(), nil
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return Values{}, nil
		}
		rv = rv.Elem()
	}

	e := &encoder{out: Values{}}
	switch rv.Kind() {
	case reflect.Struct:
		if err := e.encodeStruct("", rv); err != nil {
			return nil, err
		}
	case reflect.Map:
		if err := e.encodeMapEntries("", rv); err != nil {
			return nil, err
		}
	default:
		return nil, &EncodeError{Key: rv.Type().String(), Err: ErrUnsupportedType}
	}
	return e.out, nil
}

type encoder struct {
	out Values
}

func (e *encoder) add(key, value string) {
	e.out = append(e.out, Pair{Key: key, Value: value})
}

func joinKey(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "[" + name + "]"
}

func (e *encoder) encodeStruct(prefix string, rv reflect.Value) error {
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		tag := parseTag(sf.Tag.Get("form"))
		if tag.skip {
			continue
		}

		fv := rv.Field(i)
		if sf.Anonymous && tag.name == "" {
			ft := sf.Type
			if ft.Kind() == reflect.Pointer {
				if fv.IsNil() {
					continue
				}
				fv = fv.Elem()
				ft = ft.Elem()
			}
			if ft.Kind() == reflect.Struct {
				if err := e.encodeStruct(prefix, fv); err != nil {
					return err
				}
				continue
			}
		}
		if !sf.IsExported() || tag.name == "" {
			continue
		}

		if err := e.encodeValue(joinKey(prefix, tag.name), fv, tag); err != nil {
			return err
		}
	}
	return nil
}

func (e *encoder) encodeValue(key string, v reflect.Value, tag tagOptions) error {
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}

	if m, ok := asMarshaler(v); ok {
		s, err := m.MarshalForm()
		if err != nil {
			return &EncodeError{Key: key, Err: err}
		}
		if tag.omitEmpty && s == "" {
			return nil
		}
		e.add(key, s)
		return nil
	}

	if v.Type() == timeType {
		e.add(key, strconv.FormatInt(v.Interface().(time.Time).Unix(), 10))
		return nil
	}

	switch v.Kind() {
	case reflect.String:
		if k, ok := v.Interface().(knower); ok && !k.Known() {
			return &EncodeError{Key: key, Err: fmt.Errorf("%w: %s(%q)", ErrUnknownValue, v.Type().Name(), v.String())}
		}
		if tag.omitEmpty && v.Len() == 0 {
			return nil
		}
		e.add(key, v.String())
	case reflect.Bool:
		e.add(key, strconv.FormatBool(v.Bool()))
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		e.add(key, strconv.FormatInt(v.Int(), 10))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		e.add(key, strconv.FormatUint(v.Uint(), 10))
	case reflect.Float32, reflect.Float64:
		e.add(key, strconv.FormatFloat(v.Float(), 'f', -1, v.Type().Bits()))
	case reflect.Struct:
		return e.encodeStruct(key, v)
	case reflect.Slice:
		if v.IsNil() {
			return nil
		}
		return e.encodeSequence(key, v)
	case reflect.Array:
		return e.encodeSequence(key, v)
	case reflect.Map:
		if v.IsNil() {
			return nil
		}
		if v.Len() == 0 {
			e.add(key, "")
			return nil
		}
		return e.encodeMapEntries(key, v)
	default:
		return &EncodeError{Key: key, Err: fmt.Errorf("%w: %s", ErrUnsupportedType, v.Type())}
	}
	return nil
}

func (e *encoder) encodeSequence(key string, v reflect.Value) error {
	if v.Len() == 0 {
		e.add(key, "")
		return nil
	}
	indexed := isComposite(v.Type().Elem())
	for i := 0; i < v.Len(); i++ {
		elemKey := key + "[]"
		if indexed {
			elemKey = key + "[" + strconv.Itoa(i) + "]"
		}
		if err := e.encodeValue(elemKey, v.Index(i), tagOptions{}); err != nil {
			return err
		}
	}
	return nil
}

func (e *encoder) encodeMapEntries(prefix string, v reflect.Value) error {
	if v.Type().Key().Kind() != reflect.String {
		return &EncodeError{Key: prefix, Err: fmt.Errorf("%w: map key %s", ErrUnsupportedType, v.Type().Key())}
	}
	keys := v.MapKeys()
	sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
	for _, k := range keys {
		if err := e.encodeValue(joinKey(prefix, k.String()), v.MapIndex(k), tagOptions{}); err != nil {
			return err
		}
	}
	return nil
}

// isComposite reports whether elements of type t expand to more than one
// key, which requires index bracketing to keep them grouped.
func isComposite(t reflect.Type) bool {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == timeType || t.Implements(marshalerType) || reflect.PointerTo(t).Implements(marshalerType) {
		return false
	}
	switch t.Kind() {
	case reflect.Struct, reflect.Map, reflect.Slice, reflect.Array, reflect.Interface:
		return true
	}
	return false
}

func asMarshaler(v reflect.Value) (Marshaler, bool) {
	if !v.CanInterface() {
		return nil, false
	}
	if m, ok := v.Interface().(Marshaler); ok {
		return m, true
	}
	if v.CanAddr() {
		if m, ok := v.Addr().Interface().(Marshaler); ok {
			return m, true
		}
	}
	return nil, false
}

type tagOptions struct {
	name      string
	omitEmpty bool
	skip      bool
}

func parseTag(tag string) tagOptions {
	if tag == "-" {
		return tagOptions{skip: true}
	}
	name, rest, _ := strings.Cut(tag, ",")
	opts := tagOptions{name: name}
	for rest != "" {
		var opt string
		opt, rest, _ = strings.Cut(rest, ",")
		if opt == "omitempty" {
			opts.omitEmpty = true
		}
	}
	return opts
}
