package main

import (
	"os"

	"github.com/guardrail-dev/guardrail/internal/cmd"
)

func main() {
	os.Exit(cmd.Main(os.Args))
}
