package enums

type Category string

const (
	CategoryUnknown  Category = ""
	CategoryBakeries Category = "bakeries"
)

func (c Category) Known() bool { return c != CategoryUnknown }

// Plain has an empty constant but no Known method.
type Plain string

const PlainEmpty Plain = ""

type Params struct {
	Blocked []Category
	One     Category
}

func Block(c ...Category) {}

var Default = Params{One: CategoryUnknown}
