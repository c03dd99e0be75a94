package stripe

import (
	"encoding/json"

	"github.com/broady/stripe/enum"
)

// Method is the HTTP verb of an endpoint.
type Method string

const (
	MethodGet    Method = "GET"
	MethodPost   Method = "POST"
	MethodDelete Method = "DELETE"
)

var methods = enum.Strict("Method", MethodGet, MethodPost, MethodDelete)

// ParseMethod decodes an HTTP verb. Only the verbs the API uses are accepted.
func ParseMethod(s string) (Method, error) { return methods.Parse(s) }

func (m Method) String() string { return string(m) }

// Known reports whether m is one of the declared verbs.
func (m Method) Known() bool { return methods.Known(m) }

func (m *Method) UnmarshalJSON(data []byte) error { return methods.UnmarshalJSON(data, m) }

// DefaultPlacement returns where parameters go when the endpoint does not
// say otherwise: the form body for POST, the query string for everything else.
func (m Method) DefaultPlacement() Placement {
	if m == MethodPost {
		return PlacementForm
	}
	return PlacementQuery
}

// Placement says where a request's parameters are serialized.
type Placement string

const (
	PlacementQuery Placement = "query"
	PlacementForm  Placement = "form"
)

var placements = enum.Strict("Placement", PlacementQuery, PlacementForm)

// ParsePlacement decodes a placement name.
func ParsePlacement(s string) (Placement, error) { return placements.Parse(s) }

func (p Placement) String() string { return string(p) }

// Known reports whether p is a declared placement.
func (p Placement) Known() bool { return placements.Known(p) }

func (p Placement) MarshalJSON() ([]byte, error) { return json.Marshal(string(p)) }

func (p *Placement) UnmarshalJSON(data []byte) error { return placements.UnmarshalJSON(data, p) }
