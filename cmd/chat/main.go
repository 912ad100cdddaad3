package main

import (
	"flag"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"nutrichat/internal/client"
	"nutrichat/internal/tui"
)

func main() {
	defaultURL := os.Getenv("NUTRICHAT_API_URL")
	if defaultURL == "" {
		defaultURL = "http://localhost:8080"
	}
	apiURL := flag.String("api", defaultURL, "Base URL of the nutrichat API server")
	flag.Parse()

	api := client.NewAPI(*apiURL)
	m := tui.New(api)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		log.Fatal(err)
	}
}
