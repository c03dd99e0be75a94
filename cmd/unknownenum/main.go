// Command unknownenum reports unknown enum cases that end up in request
// parameters.
//
//	go run github.com/broady/stripe/cmd/unknownenum ./...
package main

import (
	"golang.org/x/tools/go/analysis/singlechecker"

	"github.com/broady/stripe/internal/analysis/unknownenum"
)

func main() {
	singlechecker.Main(unknownenum.Analyzer)
}
