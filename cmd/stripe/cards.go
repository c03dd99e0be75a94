package main

import (
	"fmt"

	"github.com/broady/stripe"
	"github.com/broady/stripe/issuing"
)

type CardsCmd struct {
	List     cardsListCmd     `cmd:"" help:"List cards, newest first."`
	Get      cardsGetCmd      `cmd:"" help:"Retrieve a card."`
	Create   cardsCreateCmd   `cmd:"" help:"Issue a new card."`
	Update   cardsUpdateCmd   `cmd:"" help:"Update a card."`
	Shipping cardsShippingCmd `cmd:"" help:"Advance a test-mode card shipment."`
}

type cardsListCmd struct {
	Cardholder    string `help:"Only cards issued to this cardholder."`
	Status        string `help:"Only cards in this status (active, inactive, canceled)."`
	Type          string `help:"Only physical or virtual cards."`
	Last4         string `help:"Only cards ending in these digits."`
	Limit         int64  `help:"Cards per page." default:"10"`
	StartingAfter string `help:"Cursor: list cards after this id." name:"starting-after"`
	EndingBefore  string `help:"Cursor: list cards before this id." name:"ending-before"`
	All           bool   `help:"Follow has_more and print every matching card."`
}

func (c *cardsListCmd) Run(g *Globals) error {
	b := issuing.NewListCards().Limit(c.Limit)
	if c.Cardholder != "" {
		b.Cardholder(c.Cardholder)
	}
	if c.Status != "" {
		s, err := issuing.ParseCardStatus(c.Status)
		if err != nil {
			return err
		}
		b.Status(s)
	}
	if c.Type != "" {
		t, err := issuing.ParseCardType(c.Type)
		if err != nil {
			return err
		}
		b.Type(t)
	}
	if c.Last4 != "" {
		b.Last4(c.Last4)
	}
	if c.StartingAfter != "" {
		b.StartingAfter(c.StartingAfter)
	}
	if c.EndingBefore != "" {
		b.EndingBefore(c.EndingBefore)
	}

	t, err := g.transport()
	if err != nil {
		return err
	}
	if c.All {
		return g.print(b.Paginate().Collect(g.ctx, t))
	}
	return g.print(b.SendBlocking(g.ctx, t))
}

type cardsGetCmd struct {
	ID     string   `arg:"" help:"Card id."`
	Expand []string `help:"Fields to expand."`
}

func (c *cardsGetCmd) Run(g *Globals) error {
	t, err := g.transport()
	if err != nil {
		return err
	}
	return g.print(issuing.NewRetrieveCard(c.ID).Expand(c.Expand...).SendBlocking(g.ctx, t))
}

type cardsCreateCmd struct {
	Currency   string            `help:"Three-letter currency code." required:""`
	Type       string            `help:"physical or virtual." required:""`
	Cardholder string            `help:"Cardholder id."`
	Status     string            `help:"Initial status (active or inactive)."`
	Metadata   map[string]string `help:"Metadata as key=value; repeatable."`
}

func (c *cardsCreateCmd) Run(g *Globals) error {
	typ, err := issuing.ParseCardType(c.Type)
	if err != nil {
		return err
	}
	b := issuing.NewCreateCard(stripe.Currency(c.Currency), typ)
	if c.Cardholder != "" {
		b.Cardholder(c.Cardholder)
	}
	if c.Status != "" {
		s, err := issuing.ParseCardStatus(c.Status)
		if err != nil {
			return err
		}
		b.Status(s)
	}
	if len(c.Metadata) > 0 {
		b.Metadata(c.Metadata)
	}

	t, err := g.transport()
	if err != nil {
		return err
	}
	return g.print(b.SendBlocking(g.ctx, t))
}

type cardsUpdateCmd struct {
	ID                 string            `arg:"" help:"Card id."`
	Status             string            `help:"New status (active, inactive, canceled)."`
	CancellationReason string            `help:"Why the card is canceled (lost, stolen, design_rejected)." name:"cancellation-reason"`
	Metadata           map[string]string `help:"Metadata as key=value; an empty value deletes the key." xor:"metadata"`
	ClearMetadata      bool              `help:"Remove all metadata." name:"clear-metadata" xor:"metadata"`
	BlockCategory      []string          `help:"Merchant category to block; repeatable." name:"block-category"`
}

func (c *cardsUpdateCmd) Run(g *Globals) error {
	b := issuing.NewUpdateCard(c.ID)
	if c.Status != "" {
		s, err := issuing.ParseCardStatus(c.Status)
		if err != nil {
			return err
		}
		b.Status(s)
	}
	if c.CancellationReason != "" {
		r, err := issuing.ParseCancellationReason(c.CancellationReason)
		if err != nil {
			return err
		}
		b.CancellationReason(r)
	}
	switch {
	case c.ClearMetadata:
		b.Metadata(stripe.Metadata{})
	case len(c.Metadata) > 0:
		b.Metadata(c.Metadata)
	}
	if len(c.BlockCategory) > 0 {
		cats := make([]issuing.MerchantCategory, len(c.BlockCategory))
		for i, name := range c.BlockCategory {
			// Unrecognized names parse to the unknown case, which the
			// encoder refuses with the offending key.
			cats[i] = issuing.ParseMerchantCategory(name)
		}
		b.SpendingControls(issuing.SpendingControlsParams{BlockedCategories: cats})
	}

	t, err := g.transport()
	if err != nil {
		return err
	}
	return g.print(b.SendBlocking(g.ctx, t))
}

type cardsShippingCmd struct {
	Action string `arg:"" help:"ship, deliver, return or fail." enum:"ship,deliver,return,fail"`
	ID     string `arg:"" help:"Card id."`
}

func (c *cardsShippingCmd) Run(g *Globals) error {
	var b *issuing.AdvanceShipping
	switch issuing.ShippingAction(c.Action) {
	case issuing.ShippingActionShip:
		b = issuing.NewShipCard(c.ID)
	case issuing.ShippingActionDeliver:
		b = issuing.NewDeliverCard(c.ID)
	case issuing.ShippingActionReturn:
		b = issuing.NewReturnCard(c.ID)
	case issuing.ShippingActionFail:
		b = issuing.NewFailCard(c.ID)
	default:
		return fmt.Errorf("unknown shipping action %q", c.Action)
	}

	t, err := g.transport()
	if err != nil {
		return err
	}
	return g.print(b.SendBlocking(g.ctx, t))
}
