package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"enumrange/internal/driver"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove the enumrange disk cache",
	Long:  "Remove every cached expansion result stored under the user cache directory.",
	Args:  cobra.NoArgs,
	RunE:  runClean,
}

func runClean(_ *cobra.Command, _ []string) error {
	cache, err := driver.OpenDiskCache("enumrange")
	if err != nil {
		return fmt.Errorf("failed to open disk cache: %w", err)
	}
	dir := cache.Dir()
	if err := cache.DropAll(); err != nil {
		return fmt.Errorf("failed to remove %q: %w", dir, err)
	}
	_, _ = fmt.Fprintf(os.Stdout, "removed %s\n", dir)
	return nil
}
