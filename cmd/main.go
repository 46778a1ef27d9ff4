package main

import (
	"os"

	"github.com/soundprediction/gfdminer/cmd/gfdminer"
)

func main() {
	if err := gfdminer.Execute(); err != nil {
		os.Exit(1)
	}
}
