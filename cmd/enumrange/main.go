package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"enumrange/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "enumrange",
	Short: "Range-expanding enum generator for Go",
	Long:  `enumrange expands ranged enum declarations (*.enum.toml) into Go constant blocks with classifier methods`,
}

// main registers subcommands and persistent flags, then executes the root
// command. A failed command exits the process with status 1.
func main() {
	// Версия для автоматического флага --version
	rootCmd.Version = version.Version

	rootCmd.AddCommand(expandCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
