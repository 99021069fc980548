package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init [path|name]",
	Short: "Create a starter enum declaration",
	Long: `Create a starter *.enum.toml declaration. If [path|name] is omitted, the
declaration is written into the current directory. If a non-existing name is
provided, a directory will be created.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

// runInit scaffolds an example declaration at the target path (or the current
// working directory). It refuses to overwrite an existing declaration.
func runInit(cmd *cobra.Command, args []string) error {
	var target string
	if len(args) == 0 || args[0] == "." {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		target = wd
	} else {
		arg := args[0]
		if !filepath.IsAbs(arg) {
			wd, err := os.Getwd()
			if err != nil {
				return err
			}
			target = filepath.Join(wd, arg)
		} else {
			target = arg
		}
	}

	if st, err := os.Stat(target); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if err = os.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf("failed to create directory %q: %w", target, err)
			}
		} else {
			return err
		}
	} else if !st.IsDir() {
		return fmt.Errorf("%q is not a directory", target)
	}

	// Package name comes from the directory basename.
	pkg := strings.TrimSpace(filepath.Base(target))
	if pkg == "" || pkg == "." || pkg == string(filepath.Separator) || !isLowerIdent(pkg) {
		pkg = "main"
	}

	declPath := filepath.Join(target, "payload_type.enum.toml")
	if _, err := os.Stat(declPath); err == nil {
		return fmt.Errorf("declaration already exists: %s", declPath)
	}

	if err := os.WriteFile(declPath, []byte(starterDecl(pkg)), 0o600); err != nil {
		return fmt.Errorf("failed to write declaration: %w", err)
	}

	rel := target
	if wd, err := os.Getwd(); err == nil {
		if r, err2 := filepath.Rel(wd, target); err2 == nil {
			rel = r
		}
	}
	fmt.Fprintf(os.Stdout, "Created starter declaration in %s\n", rel)
	fmt.Fprintf(os.Stdout, "  - payload_type.enum.toml\n")
	fmt.Fprintf(os.Stdout, "Run `enumrange expand %s` to generate Go code.\n", filepath.Join(rel, "payload_type.enum.toml"))
	return nil
}

// isLowerIdent reports whether s can serve as a Go package name.
func isLowerIdent(s string) bool {
	for i, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
		case r == '_':
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return len(s) > 0
}

// starterDecl returns the example declaration written by `enumrange init`.
func starterDecl(pkg string) string {
	return fmt.Sprintf(`# Ranged enum declaration.
# Run `+"`enumrange expand`"+` on this file to generate Go code.

[enum]
name = "PayloadType"
repr = "uint8"
package = "%s"
doc = "PayloadType identifies the payload carried by a frame."

[[enum.variant]]
name = "Control"
value = 0

[[enum.variant]]
name = "Data"
value = 1

[[enum.variant]]
name = "Reserved"
start = 2
end = 9
format = "Reserved{value}"
range_check = "IsReserved"
`, pkg)
}
