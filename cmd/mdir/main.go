package main

import (
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"
)

var version = "dev"

func main() {
	// Fall back to UTF-8 when the locale does not name an encoding.
	tcell.SetEncodingFallback(tcell.EncodingFallbackUTF8)

	if err := newRootCmd(runBrowser).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "mdir: %v\n", err)
		os.Exit(1)
	}
}
