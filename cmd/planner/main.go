// Command planner runs the generation pipeline from the terminal without the
// HTTP server or a database.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	config "github.com/maheshrc27/marketing-planner/configs"
	"github.com/maheshrc27/marketing-planner/internal/llm"
	"github.com/maheshrc27/marketing-planner/internal/planner"
	"github.com/maheshrc27/marketing-planner/pkg/logger"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	logLevel string
	userID   string
)

var rootCmd = &cobra.Command{
	Use:           "planner",
	Short:         "Generate marketing strategies and content calendars",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_, err := logger.New(logLevel, "development")
		return err
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level")
	rootCmd.PersistentFlags().StringVar(&userID, "user", "cli", "caller id recorded in logs")
	rootCmd.AddCommand(strategyCmd, calendarCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// newPlanner builds a planner backed by Gemini using the same environment
// as the server.
func newPlanner(ctx context.Context) (*planner.Planner, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	gateway, err := llm.NewGemini(ctx, llm.GeminiConfig{
		APIKey:  cfg.Gemini.APIKey,
		Model:   cfg.Gemini.Model,
		BaseURL: cfg.Gemini.BaseURL,
	})
	if err != nil {
		return nil, err
	}
	return planner.New(gateway, planner.WithRetryDelay(cfg.GenerationRetryDelay)), nil
}

func readYAML(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
