package stripe

import (
	"time"
)

// ListParams holds the parameters every list endpoint accepts.
// Embed it in list parameter records.
type ListParams struct {
	EndingBefore  *string  `form:"ending_before"`
	Expand        []string `form:"expand"`
	Limit         *int64   `form:"limit"`
	StartingAfter *string  `form:"starting_after"`
}

// RangeQuery filters a timestamp field by bounds.
type RangeQuery struct {
	Gt  *time.Time `form:"gt"`
	Gte *time.Time `form:"gte"`
	Lt  *time.Time `form:"lt"`
	Lte *time.Time `form:"lte"`
}

// Metadata is the free-form key/value map attached to most objects.
// An empty non-nil map clears all keys on the server.
type Metadata map[string]string

// Currency is a lowercase ISO 4217 currency code.
type Currency string

const (
	CurrencyEUR Currency = "eur"
	CurrencyGBP Currency = "gbp"
	CurrencyUSD Currency = "usd"
)

// String returns a pointer to v.
func String(v string) *string { return &v }

// Int64 returns a pointer to v.
func Int64(v int64) *int64 { return &v }

// Bool returns a pointer to v.
func Bool(v bool) *bool { return &v }

// Time returns a pointer to v.
func Time(v time.Time) *time.Time { return &v }
