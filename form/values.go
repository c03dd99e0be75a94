package form

import (
	"net/url"
	"strings"
)

// Pair is one encoded key/value.
type Pair struct {
	Key   string
	Value string
}

// Values is an ordered list of encoded pairs. Unlike url.Values it keeps the
// order in which the encoder produced fields, so a record always serializes
// to the same string.
type Values []Pair

// Lookup returns the first value stored under key.
func (v Values) Lookup(key string) (string, bool) {
	for _, p := range v {
		if p.Key == key {
			return p.Value, true
		}
	}
	return "", false
}

// Get returns the first value stored under key, or "".
func (v Values) Get(key string) string {
	s, _ := v.Lookup(key)
	return s
}

// Has reports whether key is present.
func (v Values) Has(key string) bool {
	_, ok := v.Lookup(key)
	return ok
}

// All returns every value stored under key, in order.
func (v Values) All(key string) []string {
	var out []string
	for _, p := range v {
		if p.Key == key {
			out = append(out, p.Value)
		}
	}
	return out
}

// Add appends a pair.
func (v *Values) Add(key, value string) {
	*v = append(*v, Pair{Key: key, Value: value})
}

// Set replaces every pair stored under key with a single pair. The new pair
// takes the position of the first existing one, or is appended.
func (v *Values) Set(key, value string) {
	out := (*v)[:0:0]
	placed := false
	for _, p := range *v {
		if p.Key != key {
			out = append(out, p)
			continue
		}
		if !placed {
			out = append(out, Pair{Key: key, Value: value})
			placed = true
		}
	}
	if !placed {
		out = append(out, Pair{Key: key, Value: value})
	}
	*v = out
}

// Del removes every pair stored under key.
func (v *Values) Del(key string) {
	out := (*v)[:0:0]
	for _, p := range *v {
		if p.Key != key {
			out = append(out, p)
		}
	}
	*v = out
}

// Clone returns an independent copy.
func (v Values) Clone() Values {
	if v == nil {
		return nil
	}
	out := make(Values, len(v))
	copy(out, v)
	return out
}

// Equal reports whether both lists hold the same pairs in the same order.
func (v Values) Equal(o Values) bool {
	if len(v) != len(o) {
		return false
	}
	for i := range v {
		if v[i] != o[i] {
			return false
		}
	}
	return true
}

// URLValues converts to url.Values. Ordering across keys is lost.
func (v Values) URLValues() url.Values {
	out := make(url.Values, len(v))
	for _, p := range v {
		out[p.Key] = append(out[p.Key], p.Value)
	}
	return out
}

// Encode renders "k=v&k2=v2" in order. Values are escaped as in
// url.QueryEscape except that spaces become %20. Brackets in keys are left
// literal so nested keys stay readable.
func (v Values) Encode() string {
	if len(v) == 0 {
		return ""
	}
	var b strings.Builder
	for i, p := range v {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(escapeKey(p.Key))
		b.WriteByte('=')
		b.WriteString(escape(p.Value))
	}
	return b.String()
}

// Parse decodes an encoded form or query string, keeping pair order.
func Parse(s string) (Values, error) {
	var out Values
	for s != "" {
		var part string
		part, s, _ = strings.Cut(s, "&")
		if part == "" {
			continue
		}
		k, val, _ := strings.Cut(part, "=")
		key, err := url.QueryUnescape(k)
		if err != nil {
			return nil, err
		}
		value, err := url.QueryUnescape(val)
		if err != nil {
			return nil, err
		}
		out = append(out, Pair{Key: key, Value: value})
	}
	return out, nil
}

func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

var bracketUnescaper = strings.NewReplacer("%5B", "[", "%5D", "]")

func escapeKey(s string) string {
	return bracketUnescaper.Replace(escape(s))
}
