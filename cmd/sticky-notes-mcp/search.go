package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/brbranch/sticky_notes_mcp/internal/bootstrap"
	"github.com/brbranch/sticky_notes_mcp/internal/model"
)

// SearchOptions holds parsed search command options
type SearchOptions struct {
	Format     string
	ConfigPath string
	UseStdin   bool
	Query      string
}

// JSONOutput represents the JSON output format
type JSONOutput struct {
	Notes []*model.Note `json:"notes"`
}

// parseSearchFlags parses command line arguments for search command
func parseSearchFlags(args []string) (*SearchOptions, error) {
	fs := flag.NewFlagSet("search", flag.ContinueOnError)
	fs.SetOutput(io.Discard) // suppress default error output

	opts := &SearchOptions{}

	// Long flags
	fs.StringVar(&opts.Format, "format", "text", "Output format: text|json")
	fs.StringVar(&opts.ConfigPath, "config", "", "Config file path")
	fs.BoolVar(&opts.UseStdin, "stdin", false, "Read query from stdin")

	// Short flags
	fs.StringVar(&opts.Format, "f", "text", "Output format: text|json")
	fs.StringVar(&opts.ConfigPath, "c", "", "Config file path")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if opts.Format == "" {
		opts.Format = "text"
	}

	// Get query from remaining args
	opts.Query = strings.Join(fs.Args(), " ")

	// Validation
	if !opts.UseStdin && opts.Query == "" {
		return nil, fmt.Errorf("query is required (or use --stdin)")
	}

	if opts.Format != "text" && opts.Format != "json" {
		return nil, fmt.Errorf("invalid format: %s (must be text or json)", opts.Format)
	}

	return opts, nil
}

// runSearchCmd is the entry point for search command
func runSearchCmd(args []string) error {
	opts, err := parseSearchFlags(args)
	if err != nil {
		return err
	}

	// Read query from stdin if requested
	if opts.UseStdin {
		query, err := readQueryFromStdin()
		if err != nil {
			return fmt.Errorf("failed to read query from stdin: %w", err)
		}
		opts.Query = query
	}

	if opts.Query == "" {
		return fmt.Errorf("query is empty")
	}

	// Initialize services
	ctx := context.Background()
	services, cleanup, err := bootstrap.Initialize(ctx, opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}
	defer cleanup()

	// Execute search
	notes, err := services.NoteService.Search(ctx, opts.Query)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	// Output results
	switch opts.Format {
	case "json":
		if err := formatJSONOutput(os.Stdout, notes); err != nil {
			return fmt.Errorf("failed to format output: %w", err)
		}
	default:
		formatTextOutput(os.Stdout, notes)
	}

	return nil
}

// readQueryFromStdin reads a single line query from stdin
func readQueryFromStdin() (string, error) {
	scanner := bufio.NewScanner(os.Stdin)
	if scanner.Scan() {
		return strings.TrimSpace(scanner.Text()), nil
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", fmt.Errorf("no input received")
}

// formatTextOutput outputs notes in human-readable text format
func formatTextOutput(w io.Writer, notes []*model.Note) {
	if len(notes) == 0 {
		fmt.Fprintln(w, "No notes found.")
		return
	}

	for i, n := range notes {
		title := n.Title
		if title == "" {
			title = "(no title)"
		}

		fmt.Fprintf(w, "[%d] %s (id: %s)\n", i+1, title, n.ID)

		// Truncated text content
		text := truncateText(n.Text, 60)
		fmt.Fprintf(w, "    %s\n", text)
		fmt.Fprintf(w, "    updated: %s\n", n.UpdatedAt)

		fmt.Fprintln(w)
	}
}

// formatJSONOutput outputs notes in JSON format
func formatJSONOutput(w io.Writer, notes []*model.Note) error {
	output := JSONOutput{Notes: notes}
	if output.Notes == nil {
		output.Notes = []*model.Note{}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

// truncateText truncates text to maxLen runes and adds "..." if truncated.
// Counting runes keeps multi-byte characters intact at the boundary.
func truncateText(text string, maxLen int) string {
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}
	return string(runes[:maxLen]) + " ..."
}
