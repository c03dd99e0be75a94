// Package stripe is the runtime shared by every generated endpoint of the
// payments API client.
//
// An endpoint invocation is described as data: a [*Request] carries the HTTP
// method, the filled-in path, the encoded parameters and where they go
// (query string or form body). Request builders in the resource packages
// ([github.com/broady/stripe/issuing], [github.com/broady/stripe/tax]) take
// required inputs in their constructor, optional inputs through chainable
// setters, and freeze into a Request with Build.
//
// Requests are executed by a [Transport]. The package never talks HTTP
// itself; [github.com/broady/stripe/client] provides the net/http transport
// and [github.com/broady/stripe/stripetest] provides scripted and in-memory
// ones. Every builder offers two entry points:
//
//	card, err := issuing.NewRetrieveCard("ic_123").SendBlocking(ctx, c)
//
//	fut := issuing.NewRetrieveCard("ic_123").Send(ctx, stripe.Async(c))
//	card, err := fut.Wait(ctx)
//
// Transport errors are returned unchanged by both.
//
// List endpoints also expose Paginate, which returns a [*ListPaginator]
// walking the cursor for you:
//
//	for card, err := range issuing.NewListCards().Limit(10).Paginate().All(ctx, c) {
//	    if err != nil {
//	        return err
//	    }
//	    fmt.Println(card.ID)
//	}
package stripe
