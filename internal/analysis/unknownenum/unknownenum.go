// Package unknownenum defines an Analyzer that reports the unknown case of
// a permissive wire enum being placed into request parameters.
//
// Permissive enums decode values the library does not know yet into a
// zero-valued Unknown constant. That constant only exists on the way in:
// the form encoder refuses it at runtime, and this pass catches it at
// compile time wherever it is passed as an argument, stored in a composite
// literal or assigned.
package unknownenum

import (
	"go/ast"
	"go/constant"
	"go/types"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
)

const doc = `report unknown enum cases used as request values

An unknown case is a string constant with an empty value whose named type
has a Known() bool method. Comparing against it is fine; passing it to a
function, storing it in a composite literal or assigning it is reported.`

var Analyzer = &analysis.Analyzer{
	Name:     "unknownenum",
	Doc:      doc,
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      run,
}

func run(pass *analysis.Pass) (any, error) {
	insp := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)

	filter := []ast.Node{
		(*ast.CallExpr)(nil),
		(*ast.CompositeLit)(nil),
		(*ast.AssignStmt)(nil),
	}
	insp.Preorder(filter, func(n ast.Node) {
		switch n := n.(type) {
		case *ast.CallExpr:
			for _, arg := range n.Args {
				check(pass, arg)
			}
		case *ast.CompositeLit:
			for _, elt := range n.Elts {
				if kv, ok := elt.(*ast.KeyValueExpr); ok {
					elt = kv.Value
				}
				check(pass, elt)
			}
		case *ast.AssignStmt:
			for _, rhs := range n.Rhs {
				check(pass, rhs)
			}
		}
	})
	return nil, nil
}

func check(pass *analysis.Pass, expr ast.Expr) {
	var id *ast.Ident
	switch e := ast.Unparen(expr).(type) {
	case *ast.Ident:
		id = e
	case *ast.SelectorExpr:
		id = e.Sel
	default:
		return
	}
	c, ok := pass.TypesInfo.Uses[id].(*types.Const)
	if !ok || c.Pkg() == pass.Pkg {
		// The declaring package registers the case with its enum set.
		return
	}
	named, ok := unknownCase(c)
	if !ok {
		return
	}
	pass.Reportf(expr.Pos(), "%s is the unknown case of %s and cannot be sent to the API", c.Name(), named.Obj().Name())
}

// unknownCase reports whether c is the unknown case of a permissive enum.
func unknownCase(c *types.Const) (*types.Named, bool) {
	named, ok := c.Type().(*types.Named)
	if !ok {
		return nil, false
	}
	basic, ok := named.Underlying().(*types.Basic)
	if !ok || basic.Info()&types.IsString == 0 {
		return nil, false
	}
	if c.Val().Kind() != constant.String || constant.StringVal(c.Val()) != "" {
		return nil, false
	}
	sel := types.NewMethodSet(named).Lookup(nil, "Known")
	if sel == nil {
		return nil, false
	}
	sig, ok := sel.Type().(*types.Signature)
	if !ok || sig.Params().Len() != 0 || sig.Results().Len() != 1 {
		return nil, false
	}
	res, ok := sig.Results().At(0).Type().(*types.Basic)
	return named, ok && res.Kind() == types.Bool
}
