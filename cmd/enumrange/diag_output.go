package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"enumrange/internal/diag"
	"enumrange/internal/diagfmt"
	"enumrange/internal/driver"
	"enumrange/internal/source"
)

type outputOptions struct {
	format    string
	withNotes bool
	fullPath  bool
}

func readOutputOptions(cmd *cobra.Command) (outputOptions, error) {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return outputOptions{}, fmt.Errorf("failed to get format flag: %w", err)
	}
	withNotes, err := cmd.Flags().GetBool("with-notes")
	if err != nil {
		return outputOptions{}, fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	fullPath, err := cmd.Flags().GetBool("fullpath")
	if err != nil {
		return outputOptions{}, fmt.Errorf("failed to get fullpath flag: %w", err)
	}
	switch format {
	case "pretty", "json", "short":
		// supported
	default:
		return outputOptions{}, fmt.Errorf("unknown format: %s", format)
	}
	return outputOptions{format: format, withNotes: withNotes, fullPath: fullPath}, nil
}

func useColor(cmd *cobra.Command) (bool, error) {
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, err
	}
	return colorFlag == "on" || (colorFlag == "auto" && isTerminal(os.Stdout)), nil
}

// printDiagnostics renders every result's bag in the requested format and
// reports whether any bag carried errors.
func printDiagnostics(cmd *cobra.Command, fs *source.FileSet, results []*driver.Result, opts outputOptions) (bool, error) {
	pathMode := diagfmt.PathModeAuto
	if opts.fullPath {
		pathMode = diagfmt.PathModeAbsolute
	}

	color, err := useColor(cmd)
	if err != nil {
		return false, err
	}

	hasErrors := false
	for _, result := range results {
		if result.Bag.HasErrors() {
			hasErrors = true
		}
		if result.Bag.Len() == 0 {
			continue
		}
		switch opts.format {
		case "pretty":
			diagfmt.Pretty(os.Stdout, result.Bag, fs, diagfmt.PrettyOpts{
				Color:     color,
				Context:   2,
				PathMode:  pathMode,
				ShowNotes: opts.withNotes,
			})
		case "short":
			output := diag.FormatShortDiagnostics(result.Bag.Items(), fs, opts.withNotes)
			if output != "" {
				fmt.Fprintln(os.Stdout, output)
			}
		case "json":
			jsonOpts := diagfmt.JSONOpts{
				IncludePositions: true,
				PathMode:         pathMode,
				IncludeNotes:     opts.withNotes,
			}
			if err := diagfmt.JSON(os.Stdout, result.Bag, fs, jsonOpts); err != nil {
				return hasErrors, fmt.Errorf("failed to format diagnostics: %w", err)
			}
		}
	}
	return hasErrors, nil
}

// silentExit suppresses cobra usage output; diagnostics were already printed.
func silentExit(cmd *cobra.Command) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	return fmt.Errorf("")
}
