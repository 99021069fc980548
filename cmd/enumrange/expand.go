package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"enumrange/internal/driver"
	"enumrange/internal/source"
)

var expandCmd = &cobra.Command{
	Use:   "expand [flags] <file.enum.toml|directory>",
	Short: "Expand enum declarations into generated Go source",
	Long:  `Expand ranged enum declarations into Go constant blocks and classifier methods, writing one generated file per declaration`,
	Args:  cobra.ExactArgs(1),
	RunE:  runExpand,
}

func init() {
	expandCmd.Flags().StringP("output", "o", "", "output path for the generated file (single file only)")
	expandCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	expandCmd.Flags().Bool("disk-cache", false, "reuse generated output for unchanged declarations")
	expandCmd.Flags().String("ui", "auto", "progress UI for directory runs (auto|on|off)")
	expandCmd.Flags().String("format", "short", "diagnostic output format (pretty|json|short)")
	expandCmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	expandCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
}

func runExpand(cmd *cobra.Command, args []string) error {
	path := args[0]

	outOpts, err := readOutputOptions(cmd)
	if err != nil {
		return err
	}
	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return fmt.Errorf("failed to get output flag: %w", err)
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	diskCache, err := cmd.Flags().GetBool("disk-cache")
	if err != nil {
		return fmt.Errorf("failed to get disk-cache flag: %w", err)
	}
	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiFlag)
	if err != nil {
		return err
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
	if st.IsDir() && output != "" {
		return fmt.Errorf("--output is only supported for single files")
	}

	opts := driver.Options{
		MaxDiagnostics:  maxDiagnostics,
		OutputPath:      output,
		EnableDiskCache: diskCache,
	}

	var (
		fileSet *source.FileSet
		results []*driver.Result
	)
	if st.IsDir() {
		files, err := driver.ListDeclFiles(path)
		if err != nil {
			return err
		}
		if len(files) == 0 {
			return fmt.Errorf("no %s files found in %q", driver.DeclSuffix, path)
		}
		if shouldUseTUI(mode) {
			fileSet, results, err = runExpandDirWithUI(cmd.Context(), "expanding enums", path, files, opts, jobs)
		} else {
			fileSet, results, err = driver.ExpandDir(cmd.Context(), path, opts, jobs)
		}
		if err != nil {
			return fmt.Errorf("expansion failed: %w", err)
		}
	} else {
		result, fs, err := driver.ExpandFile(cmd.Context(), path, opts)
		if err != nil {
			return fmt.Errorf("expansion failed: %w", err)
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
		for _, result := range results {
			if result.OutputPath == "" {
				continue
			}
			if result.CacheHit {
				fmt.Fprintf(os.Stdout, "cached %s\n", result.OutputPath)
				continue
			}
			fmt.Fprintf(os.Stdout, "wrote %s (%d variants)\n", result.OutputPath, len(result.Expansion.Variants))
		}
	}
	return nil
}
