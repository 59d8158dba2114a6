package main

import (
	"os"

	"github.com/Raymond9734/invoices-dashboard/cmd/dashctl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
