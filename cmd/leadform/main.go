package main

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/spurtek/spurtek-leads/internal/wizard"
	"github.com/spurtek/spurtek-leads/internal/wizard/client"
	"github.com/spurtek/spurtek-leads/pkg/logging"
)

var (
	apiURL   string
	timeout  time.Duration
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "leadform",
	Short: "Fill in the Spurtek contact form from the terminal",
	Long: `leadform walks through the three-step Spurtek contact form
(industry, details, contact information) and submits it to the lead-intake API.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := logging.NewWithWriter(os.Stderr, logLevel, logging.FormatText)
		c := client.New(client.Config{
			BaseURL: apiURL,
			Timeout: timeout,
			Logger:  logger,
		})
		final, err := tea.NewProgram(newModel(wizard.New(), c), tea.WithAltScreen()).Run()
		if err != nil {
			return fmt.Errorf("leadform: %w", err)
		}
		if m, ok := final.(model); ok && m.wiz.Submitted() {
			fmt.Fprintln(cmd.OutOrStdout(), wizard.ThankYouTitle, wizard.ThankYouMessage)
		}
		return nil
	},
}

func init() {
	_ = godotenv.Load()

	defaultURL := os.Getenv("LEADFORM_API_URL")
	if defaultURL == "" {
		defaultURL = "http://localhost:8080"
	}
	rootCmd.Flags().StringVar(&apiURL, "api-url", defaultURL, "base URL of the lead-intake API")
	rootCmd.Flags().DurationVar(&timeout, "timeout", 15*time.Second, "submission timeout")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "error", "log level (debug, info, warn, error)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
