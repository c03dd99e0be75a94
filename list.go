package stripe

// Object is implemented by resources that carry a server-assigned id.
type Object interface {
	ObjectID() string
}

// List is one page of a list endpoint.
type List[T any] struct {
	Object  string `json:"object"`
	Data    []T    `json:"data"`
	HasMore bool   `json:"has_more"`
	URL     string `json:"url"`
}

// Len returns the number of items on the page.
func (l *List[T]) Len() int {
	if l == nil {
		return 0
	}
	return len(l.Data)
}

// Deleted is the response of delete endpoints.
type Deleted struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Deleted bool   `json:"deleted"`
}

func (d *Deleted) ObjectID() string { return d.ID }
