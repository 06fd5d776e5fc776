package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/taskflow/core/internal/client"
	"github.com/taskflow/core/internal/tui"
)

func main() {
	defaultURL := os.Getenv("TASKFLOW_API_URL")
	if defaultURL == "" {
		defaultURL = "http://localhost:8080/api"
	}

	apiURL := flag.String("api", defaultURL, "base URL of the TaskFlow API")
	flag.Parse()

	gateway := client.New(*apiURL)
	vm := client.NewViewModel(gateway)

	app := tui.NewApp(vm)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running application: %v\n", err)
		os.Exit(1)
	}
}
