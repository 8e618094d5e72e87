// Package main is the entry point for the CaseGate service.
package main

import (
	"os"

	_ "go.uber.org/automaxprocs/maxprocs"

	"github.com/caseworks/casegate/internal/casegate"
)

func main() {
	if err := casegate.NewApp().Execute(); err != nil {
		os.Exit(1)
	}
}
