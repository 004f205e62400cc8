//go:generate swag init --dir ./,./handlers,./dto --generalInfo main.go --output ../../docs --outputTypes go

package main

import (
	"fmt"
	"os"
)

// @title           Gemma Chat API
// @version         1.0
// @description     Chat front-end that relays session conversations to a local Ollama gemma model
// @BasePath        /
func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
