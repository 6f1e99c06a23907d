package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vela-lang/vela/internal/config"
	"github.com/vela-lang/vela/internal/driver"
	"github.com/vela-lang/vela/internal/frontend"
	"github.com/vela-lang/vela/internal/runlog"
)

var (
	transpileInput     string
	transpileOutputDir string
	transpileSummary   bool
	transpileVerbose   bool
	transpileIndent    string
	transpileFinal     bool
	transpileTarget    string
	transpileToolchain string
)

var transpileCmd = &cobra.Command{
	Use:   "transpile [fixture.json]",
	Short: "Rewrite a fixture's typed AST into target source",
	Long: `Rewrite one or more fixture files (a JSON-encoded typed AST plus its
index-oracle responses, standing in for a real frontend) into target source,
printing each file's output and reporting accumulated diagnostics.

Examples:
  galac transpile fixture.json                  # Print rewritten source
  galac transpile -i fixtures/ -o out/           # Rewrite a whole directory
  galac transpile fixture.json --summary         # Print a diagnostic summary`,
	Args: cobra.ArbitraryArgs,
	RunE: runTranspile,
}

func init() {
	transpileCmd.Flags().StringVarP(&transpileInput, "input", "i", "", "Fixture file or directory of fixture files")
	transpileCmd.Flags().StringVarP(&transpileOutputDir, "output", "o", "", "Directory to write rewritten files to (stdout if empty)")
	transpileCmd.Flags().BoolVar(&transpileSummary, "summary", false, "Print a diagnostic count summary grouped by message substring")
	transpileCmd.Flags().BoolVarP(&transpileVerbose, "verbose", "v", false, "Log pipeline progress to stderr")
	transpileCmd.Flags().StringVar(&transpileIndent, "indent", "    ", "Indentation string inserted per nesting level")
	transpileCmd.Flags().BoolVar(&transpileFinal, "defaults-to-final", true, "Declarations of ambiguous openness default to non-open")
	transpileCmd.Flags().StringVar(&transpileTarget, "target", "", "Opaque target identifier forwarded to the frontend")
	transpileCmd.Flags().StringVar(&transpileToolchain, "toolchain", "", "Opaque toolchain name forwarded to the frontend")
}

func runTranspile(cmd *cobra.Command, args []string) error {
	inputPath := transpileInput
	if inputPath == "" && len(args) > 0 {
		inputPath = args[0]
	}
	if inputPath == "" {
		return fmt.Errorf("no input file or directory specified; usage: galac transpile [fixture.json] or galac transpile -i path")
	}

	paths, err := fixturePaths(inputPath)
	if err != nil {
		return err
	}

	decoded := make([]frontend.Decoded, 0, len(paths))
	for _, p := range paths {
		d, err := decodeFixture(p)
		if err != nil {
			return err
		}
		decoded = append(decoded, d)
	}

	cfg := config.Default()
	cfg.IndentationString = transpileIndent
	cfg.DefaultsToFinal = transpileFinal
	cfg.Target = transpileTarget
	cfg.ToolchainName = transpileToolchain

	var logger *runlog.Logger
	if transpileVerbose {
		logger = runlog.New()
	}

	outputs, sink, err := driver.Run(cfg, decoded, logger)
	if err != nil {
		return fmt.Errorf("transpile: %w", err)
	}

	failed := 0
	for _, out := range outputs {
		if out.Err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "Error: %s: %v\n", out.Path, out.Err)
			continue
		}
		if err := writeOutput(out); err != nil {
			return err
		}
	}

	if transpileSummary {
		printSummary(sink)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d file(s) failed to transpile", failed, len(outputs))
	}
	return nil
}

// fixturePaths expands inputPath into one or more *.json fixture files,
// sorted for deterministic output ordering across a directory.
func fixturePaths(inputPath string) ([]string, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, fmt.Errorf("transpile: %w", err)
	}
	if !info.IsDir() {
		return []string{inputPath}, nil
	}
	matches, err := filepath.Glob(filepath.Join(inputPath, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("transpile: %w", err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("transpile: no *.json fixture files found in %s", inputPath)
	}
	return matches, nil
}

func decodeFixture(path string) (frontend.Decoded, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return frontend.Decoded{}, fmt.Errorf("transpile: reading %s: %w", path, err)
	}
	var f frontend.File
	if err := json.Unmarshal(raw, &f); err != nil {
		return frontend.Decoded{}, fmt.Errorf("transpile: parsing %s: %w", path, err)
	}
	if f.Path == "" {
		f.Path = path
	}
	d, err := frontend.Decode(f)
	if err != nil {
		return frontend.Decoded{}, fmt.Errorf("transpile: %w", err)
	}
	return d, nil
}

func writeOutput(out driver.Output) error {
	if transpileOutputDir == "" {
		fmt.Println(out.Text)
		return nil
	}
	if err := os.MkdirAll(transpileOutputDir, 0o755); err != nil {
		return fmt.Errorf("transpile: %w", err)
	}
	name := strings.TrimSuffix(filepath.Base(out.Path), filepath.Ext(out.Path)) + ".kt"
	dest := filepath.Join(transpileOutputDir, name)
	if err := os.WriteFile(dest, []byte(out.Text), 0o644); err != nil {
		return fmt.Errorf("transpile: writing %s: %w", dest, err)
	}
	fmt.Printf("Wrote %s\n", dest)
	return nil
}

// printSummary groups diagnostics by a handful of common message
// substrings, the shape spec §9's Open Questions describes integration
// fixtures asserting against ("N warnings containing X").
func printSummary(sink interface {
	Counts() (int, int)
	ContainingCount(string) int
}) {
	warnings, errors := sink.Counts()
	fmt.Printf("Diagnostics: %d warning(s), %d error(s)\n", warnings, errors)
	for _, substr := range []string{"optional", "mutable", "struct initializer", "standard library", "native collection"} {
		if n := sink.ContainingCount(substr); n > 0 {
			fmt.Printf("  containing %q: %d\n", substr, n)
		}
	}
}
