/*
Copyright © 2026 MSP Docs <maintainers@mspdocs.dev>
*/
package main

import (
	"fmt"
	"os"
)

func debugLog(format string, a ...any) {
	if Debug {
		formatted := fmt.Sprintf(format, a...)
		fmt.Fprintf(os.Stderr, "[vendor-dump] %s", formatted)
	}
}
