// Package cli wires the analysis core into cobra commands. Commands only
// marshal the structures the core produces; rendering is left to consumers.
package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"codescope/internal/config"
)

var (
	rootFlag  string
	quietFlag bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "codescope",
	Short: "Codescope - dependency graph and change impact analysis for TS/JS projects",
	Long: `Codescope statically analyzes a TypeScript/JavaScript source tree to answer
two questions: what does a file depend on (and what depends on it), and which
named code construct was touched by an in-progress edit.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&rootFlag, "root", "r", ".", "project root directory")
	rootCmd.PersistentFlags().BoolVarP(&quietFlag, "quiet", "q", false, "disable progress bars and non-error output")
}

// loadProject resolves the project root and loads its configuration.
func loadProject() (*config.Config, string, error) {
	root, err := filepath.Abs(rootFlag)
	if err != nil {
		return nil, "", err
	}

	cfg, err := config.NewLoader(root).Load()
	if err != nil {
		return nil, "", err
	}

	return cfg, root, nil
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
