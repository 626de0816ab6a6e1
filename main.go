// The main package for the hotelcrawl executable.
package main

import (
	"github.com/ionian-data/greeka-hotels-crawler/cmd"
)

// main is the entry point of the application.
// It defers all execution to the Cobra CLI library.
func main() {
	cmd.Execute()
}
