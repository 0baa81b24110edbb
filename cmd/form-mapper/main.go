// Package main provides the CLI entrypoint for form-mapper.
//
// form-mapper derives editable control tree shapes from data models and the
// value shapes those trees yield:
//   - map: print the control tree for a type
//   - extract: print the value a control tree yields
//   - gen: write Go types for the extracted value
//
// Data models come from YAML schema documents, CUE files or Go packages.
package main

import (
	"os"

	"github.com/sirupsen/logrus"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
}
