package stripe

import (
	"context"
	"iter"
)

// Cursor parameter names of list endpoints.
const (
	CursorStartingAfter = "starting_after"
	CursorEndingBefore  = "ending_before"
)

type pageState int

const (
	pageInitial pageState = iota
	pageActive
	pageExhausted
)

// ListPaginator walks a list endpoint page by page.
//
// The walk direction comes from the seed parameters: a seed carrying
// ending_before walks backward, using the first item of each page as the
// next cursor. Otherwise the walk moves forward through starting_after,
// using the last item of each page. Between requests only that cursor
// parameter changes.
//
// Once a page reports has_more=false, or comes back empty, the paginator is
// exhausted and never contacts the transport again. A failed request leaves
// the paginator as it was, so the same page can be retried.
//
// A ListPaginator is not safe for concurrent use.
type ListPaginator[T Object] struct {
	req       *Request
	cursorKey string
	state     pageState
}

// NewListPaginator returns a paginator for the GET list endpoint at path,
// seeded with params.
func NewListPaginator[T Object](path string, params any) *ListPaginator[T] {
	return PaginateRequest[T](NewRequest(MethodGet, path).Query(params))
}

// PaginateRequest returns a paginator seeded with req.
func PaginateRequest[T Object](req *Request) *ListPaginator[T] {
	key := CursorStartingAfter
	if _, ok := req.Param(CursorEndingBefore); ok {
		key = CursorEndingBefore
	}
	return &ListPaginator[T]{req: req, cursorKey: key}
}

// Request returns the request the next page will be fetched with.
func (p *ListPaginator[T]) Request() *Request { return p.req }

// Backward reports whether the walk follows ending_before.
func (p *ListPaginator[T]) Backward() bool { return p.cursorKey == CursorEndingBefore }

// Done reports whether the paginator is exhausted.
func (p *ListPaginator[T]) Done() bool { return p.state == pageExhausted }

// NextPage fetches the next page. An exhausted paginator returns an empty
// page without calling t.
func (p *ListPaginator[T]) NextPage(ctx context.Context, t Transport) (*List[T], error) {
	if p.Done() {
		return &List[T]{}, nil
	}
	page, err := SendBlocking[*List[T]](ctx, t, p.req)
	if err != nil {
		return nil, err
	}
	return p.advance(page), nil
}

// NextPageAsync starts fetching the next page. The paginator advances when
// the future resolves; wait for it before asking for another page.
func (p *ListPaginator[T]) NextPageAsync(ctx context.Context, t AsyncTransport) *Future[*List[T]] {
	if p.Done() {
		return resolvedFuture(&List[T]{}, nil)
	}
	return thenFuture(Send[*List[T]](ctx, t, p.req), func(page *List[T], err error) (*List[T], error) {
		if err != nil {
			return nil, err
		}
		return p.advance(page), nil
	})
}

func (p *ListPaginator[T]) advance(page *List[T]) *List[T] {
	if page == nil {
		page = &List[T]{}
	}
	if !page.HasMore || len(page.Data) == 0 {
		p.state = pageExhausted
		return page
	}
	boundary := page.Data[len(page.Data)-1]
	if p.Backward() {
		boundary = page.Data[0]
	}
	p.req = p.req.WithParam(p.cursorKey, boundary.ObjectID())
	p.state = pageActive
	return page
}

// Pages returns a single-pass sequence of the remaining pages. The sequence
// stops after the first error.
func (p *ListPaginator[T]) Pages(ctx context.Context, t Transport) iter.Seq2[*List[T], error] {
	return func(yield func(*List[T], error) bool) {
		for !p.Done() {
			page, err := p.NextPage(ctx, t)
			if err != nil {
				yield(nil, err)
				return
			}
			if !yield(page, nil) {
				return
			}
		}
	}
}

// All returns a single-pass sequence of the remaining items across pages, in
// server order. The sequence stops after the first error.
func (p *ListPaginator[T]) All(ctx context.Context, t Transport) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for page, err := range p.Pages(ctx, t) {
			if err != nil {
				var zero T
				yield(zero, err)
				return
			}
			for _, item := range page.Data {
				if !yield(item, nil) {
					return
				}
			}
		}
	}
}

// Collect drains the paginator. On error it returns the items gathered so far.
func (p *ListPaginator[T]) Collect(ctx context.Context, t Transport) ([]T, error) {
	var items []T
	for item, err := range p.All(ctx, t) {
		if err != nil {
			return items, err
		}
		items = append(items, item)
	}
	return items, nil
}
