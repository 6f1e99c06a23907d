// Package config holds the single configuration record forwarded from
// the CLI (or a test) into the context for the duration of one run,
// enumerated in spec §6.
package config

// Config is the run's configuration record. Fields marked "forwarded"
// are accepted for parity with the external driver but never consulted
// by the core itself, per spec §6.
type Config struct {
	// IndentationString is inserted once per nesting level by the emitter.
	IndentationString string
	// DefaultsToFinal: when true, declarations whose openness is
	// otherwise ambiguous default to non-open (consulted by the Open
	// Declarations pass).
	DefaultsToFinal bool
	// TargetVersion / ToolchainName: opaque, forwarded to the frontend.
	TargetVersion  string
	ToolchainName  string
	// ProjectPath / Target: forwarded, not consulted by the core.
	ProjectPath string
	Target      string
	// CompilationArguments: forwarded, not consulted.
	CompilationArguments []string
}

// Default returns the configuration the CLI falls back to when no flags
// override it.
func Default() Config {
	return Config{
		IndentationString: "    ",
		DefaultsToFinal:   true,
	}
}
