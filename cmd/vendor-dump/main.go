/*
Copyright © 2026 MSP Docs <maintainers@mspdocs.dev>
*/

package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"
)

func main() {
	if err := fang.Execute(context.Background(), rootCmd); err != nil {
		os.Exit(1)
	}
}
