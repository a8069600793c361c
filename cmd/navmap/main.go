package main

import (
	"os"

	"legal_dashboard/internal/nav"
)

func main() {
	if err := newRootCmd(nav.DefaultRegistry()).Execute(); err != nil {
		os.Exit(1)
	}
}
