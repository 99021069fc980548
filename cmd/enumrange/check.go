package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"enumrange/internal/driver"
	"enumrange/internal/source"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <file.enum.toml|directory>",
	Short: "Validate enum declarations without writing output",
	Long:  `Run the full expansion pipeline on enum declarations and report diagnostics, leaving the filesystem untouched`,
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|json|short)")
	checkCmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	checkCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
	checkCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	path := args[0]

	outOpts, err := readOutputOptions(cmd)
	if err != nil {
		return err
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}

	st, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}

	opts := driver.Options{
		MaxDiagnostics: maxDiagnostics,
		CheckOnly:      true,
	}

	var (
		fileSet *source.FileSet
		results []*driver.Result
	)
	if st.IsDir() {
		fileSet, results, err = driver.ExpandDir(cmd.Context(), path, opts, jobs)
		if err != nil {
			return fmt.Errorf("check failed: %w", err)
		}
	} else {
		result, fs, err := driver.ExpandFile(cmd.Context(), path, opts)
		if err != nil {
			return fmt.Errorf("check failed: %w", err)
		}
		fileSet = fs
		results = []*driver.Result{result}
	}

	hasErrors, err := printDiagnostics(cmd, fileSet, results, outOpts)
	if err != nil {
		return err
	}
	if hasErrors {
		return silentExit(cmd)
	}

	if !quiet {
		fmt.Fprintf(os.Stdout, "ok: %d declaration(s) checked\n", len(results))
	}
	return nil
}
