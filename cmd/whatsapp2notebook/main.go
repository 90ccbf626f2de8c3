package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/whatsapp-notebooklm/internal/cli"
	"github.com/whatsapp-notebooklm/internal/ui"
)

func main() {
	if err := cli.Execute(); err != nil {
		// Handle unknown command errors specially
		errMsg := err.Error()
		if strings.Contains(errMsg, "unknown command") {
			ui.PrintError("%s", errMsg)
			fmt.Println("\nRun 'whatsapp2notebook --help' for usage.")
		}
		os.Exit(1)
	}
}
