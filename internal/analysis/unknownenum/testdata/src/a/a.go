package a

import "enums"

func f() {
	enums.Block(enums.CategoryUnknown) // want `CategoryUnknown is the unknown case of Category and cannot be sent to the API`
	enums.Block(enums.CategoryBakeries)
	enums.Block((enums.CategoryUnknown)) // want `CategoryUnknown is the unknown case of Category`

	_ = enums.Params{One: enums.CategoryUnknown} // want `CategoryUnknown is the unknown case`
	_ = []enums.Category{enums.CategoryBakeries, enums.CategoryUnknown} // want `CategoryUnknown is the unknown case`

	var p enums.Params
	p.One = enums.CategoryUnknown // want `CategoryUnknown is the unknown case`
	p.One = enums.CategoryBakeries

	if p.One == enums.CategoryUnknown {
		return
	}
	switch p.One {
	case enums.CategoryUnknown, enums.CategoryBakeries:
	}

	var s enums.Plain = enums.PlainEmpty
	s = enums.PlainEmpty
	_ = s
}
