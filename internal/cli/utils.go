// Package cli provides CLI output utilities for Platoo.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/worldjourney/platoo/internal/models"
	"github.com/worldjourney/platoo/internal/suggest"
)

// OutputFormat is the format for command output.
type OutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText OutputFormat = "text"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON OutputFormat = "json"
)

// WriteCorrection writes a correction result to w in the given format.
func WriteCorrection(w io.Writer, result *models.CorrectionResult, format OutputFormat) error {
	if format == OutputJSON {
		return writeJSON(w, result)
	}
	writeCorrectionText(w, result)
	return nil
}

func writeCorrectionText(w io.Writer, result *models.CorrectionResult) {
	fmt.Fprintf(w, "Query:     %s\n", result.Original)
	fmt.Fprintf(w, "Corrected: %s\n", result.Corrected)
	if result.FullMatch && result.Entry != nil {
		fmt.Fprintf(w, "Matched:   %s", result.Entry.Name)
		if sub := result.Entry.Subtitle(); sub != "" {
			fmt.Fprintf(w, " (%s)", sub)
		}
		fmt.Fprintln(w)
		return
	}
	for _, tok := range result.Tokens {
		if tok.Action == models.TokenCorrected {
			fmt.Fprintf(w, "  %s -> %s (score %.2f)\n", tok.Token, tok.Output, tok.Score)
		}
	}
}

// WriteResolution writes a resolution to w in the given format.
func WriteResolution(w io.Writer, res *models.Resolution, format OutputFormat) error {
	if format == OutputJSON {
		return writeJSON(w, res)
	}
	switch res.Outcome {
	case models.OutcomeResolved:
		fmt.Fprintf(w, "Resolved: %s", res.Entry.Name)
		if sub := res.Entry.Subtitle(); sub != "" {
			fmt.Fprintf(w, " (%s)", sub)
		}
		fmt.Fprintf(w, " [lead %.2f]\n", res.Lead)
	case models.OutcomeAmbiguous:
		fmt.Fprintln(w, "Ambiguous between:")
		for _, c := range res.Tied {
			fmt.Fprintf(w, "  - %s", c.Entry.Name)
			if sub := c.Entry.Subtitle(); sub != "" {
				fmt.Fprintf(w, " (%s)", sub)
			}
			fmt.Fprintln(w)
		}
	default:
		fmt.Fprintln(w, "No confident match")
	}
	return nil
}

// WriteSuggestions writes a suggestion result to w in the given format.
func WriteSuggestions(w io.Writer, res *suggest.Result, format OutputFormat) error {
	if format == OutputJSON {
		return writeJSON(w, res)
	}
	if res.Advisory != "" {
		fmt.Fprintf(w, "note: %s\n", res.Advisory)
	}
	if len(res.Suggestions) == 0 {
		fmt.Fprintf(w, "No suggestions for %q\n", res.Query)
		return nil
	}
	fmt.Fprintf(w, "Suggestions for %q (%s):\n", res.Query, res.Source)
	for i, s := range res.Suggestions {
		fmt.Fprintf(w, "%2d. %s", i+1, s.Name)
		if s.Subtitle != "" {
			fmt.Fprintf(w, " - %s", s.Subtitle)
		}
		fmt.Fprintf(w, " [%s", s.Kind)
		if s.Score > 0 {
			fmt.Fprintf(w, " %.2f", s.Score)
		}
		fmt.Fprintln(w, "]")
	}
	return nil
}

// PrintSuggestions prints a suggestion result to stdout in text format.
func PrintSuggestions(res *suggest.Result) {
	_ = WriteSuggestions(os.Stdout, res, OutputText)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
