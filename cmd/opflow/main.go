// Command opflow runs declarative operator pipelines over JSON records.
//
//	opflow run --pipeline adults.yaml --input people.json
//	opflow validate adults.yaml
//	opflow operators
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
