package main

import (
	"fmt"
	"os"

	"focusflow/internal/app"

	"github.com/charmbracelet/x/term"
)

func main() {
	if !term.IsTerminal(os.Stdout.Fd()) {
		fmt.Fprintln(os.Stderr, "focusflow needs an interactive terminal")
		os.Exit(1)
	}

	a, err := app.New()
	if err != nil {
		fmt.Printf("Error starting focusflow: %v\n", err)
		os.Exit(1)
	}
	if err := a.Run(); err != nil {
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
}
