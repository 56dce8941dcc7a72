/*
Package morph rewrites configuration documents entry by entry, choosing a rule
from the runtime shape of each value.

Text is upper-cased, capitalized or reversed depending on its content, integers
go through an arithmetic rule selected by their key, short sequences and
mappings are rewritten element by element, long sequences keep only their
doubled numbers, and anything else passes through untouched. See package
transform for the exact table.

# Architecture

The rules themselves (packages rules and transform) are pure functions over
value.Map. The Engine in this package adds what a host application needs
around them:

  - Validation: reject documents that don't match a schema.Schema.
  - Observability: structured logs, lifecycle hooks and Prometheus metrics.
  - Storage: publish named results to a ports.ResultStore (memory, file,
    Redis), optionally masked or encrypted at rest.

Adapters expose the Engine over HTTP (pkg/adapters/http) and the Model Context
Protocol (pkg/adapters/mcp); cmd/morph wraps everything in a CLI.

# Usage

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/aretw0/morph"
		"github.com/aretw0/morph/pkg/value"
	)

	func main() {
		eng := morph.New()

		result, err := eng.Transform(context.Background(), value.Map{
			"multiply": value.Integer(12),
			"greeting": value.Text("hello"),
		})
		if err != nil {
			log.Fatal(err)
		}

		fmt.Println(result) // {"greeting": "olleh", "multiply": 24}
	}
*/
package morph
