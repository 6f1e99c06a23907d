// Package context implements the Transpilation context from spec §4.2:
// the process-wide, per-run record that accumulates cross-file knowledge
// during the first round and is read-only during the second.
//
// Grounded on the teacher's registry package (global PackageRegistry of
// prelude types/functions/companions) and analyzer (RichAST accumulating
// Types/Functions/Packages across files) — this Context generalizes both
// into the single shared record spec §4.2 calls for, with the same
// "build once, then freeze" lifecycle the design notes recommend in place
// of the teacher's package-level mutable singleton (registry.Global).
package context

import (
	"sync"

	"github.com/vela-lang/vela/internal/ast"
	"github.com/vela-lang/vela/internal/config"
	"github.com/vela-lang/vela/internal/diag"
	"github.com/vela-lang/vela/internal/frontend"
)

// EnumKind classifies how an enum compiles on the target side (§4.3).
type EnumKind int

const (
	EnumKindUnknown EnumKind = iota
	EnumKindEnumClass
	EnumKindSealedClass
)

// FunctionTranslation records one declared function's signature as seen
// by the first round, keyed for lookup by (Name, Type) per §4.2's
// contract: last writer for the same (Name, Type) pair wins.
type FunctionTranslation struct {
	Name       string // the source-language ("swift") API name
	Type       string // the fully-qualified enclosing type, "" for free functions
	Prefix     string // "init" for initializers, "" otherwise
	Parameters []ast.FunctionParameter
}

// Template is a registered (source-pattern, target-snippet) pair, kept
// opaque per §9's Open Question: exact-match-with-holes, holes spelled
// "$0", "$1", ... in both pattern and snippet.
type Template struct {
	Pattern string
	Snippet string
}

// Context is the shared, run-scoped record described in §4.2.
type Context struct {
	Config config.Config

	mu sync.Mutex // guards every field below during the first round (§5)

	protocols     map[string]bool
	enumKinds     map[string]EnumKind
	enumDecls     map[string]ast.EnumDeclaration
	inheritance   map[string][]string
	funcTranslations []FunctionTranslation
	pureFunctions map[string]bool
	templates     []Template

	sink *diag.Sink

	frozen bool

	oracle *frontend.Oracle
}

// New creates a Context ready for the first round.
func New(cfg config.Config) *Context {
	return &Context{
		Config:        cfg,
		protocols:     make(map[string]bool),
		enumKinds:     make(map[string]EnumKind),
		enumDecls:     make(map[string]ast.EnumDeclaration),
		inheritance:   make(map[string][]string),
		pureFunctions: make(map[string]bool),
		sink:          diag.NewSink(),
	}
}

// Diagnostics returns the run's diagnostic sink. Reporting is safe from
// either round.
func (c *Context) Diagnostics() *diag.Sink { return c.sink }

// Freeze marks the first round complete; subsequent mutation calls panic,
// converting an accidental second-round write into an immediate failure
// rather than a silently order-dependent bug (§4.2, §5).
func (c *Context) Freeze() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.frozen = true
}

func (c *Context) checkWritable() {
	if c.frozen {
		panic("context: mutation attempted after Freeze (second round must be read-only)")
	}
}

// AddProtocol records name as a declared protocol (recording pass 3).
func (c *Context) AddProtocol(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.checkWritable()
	c.protocols[name] = true
}

// IsProtocol reports whether name was recorded as a protocol.
func (c *Context) IsProtocol(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.protocols[name]
}

// RecordEnumKind classifies fqName (recording pass 8).
func (c *Context) RecordEnumKind(fqName string, kind EnumKind) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.checkWritable()
	c.enumKinds[fqName] = kind
}

// EnumKind returns the recorded kind, or EnumKindUnknown before pass 8
// has run (§4.3's invariant on consulting pass output too early).
func (c *Context) EnumKind(fqName string) EnumKind {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.enumKinds[fqName]
}

// RecordEnumDecl stores decl for later element-signature lookups on the
// sealed-class side.
func (c *Context) RecordEnumDecl(fqName string, decl ast.EnumDeclaration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.checkWritable()
	c.enumDecls[fqName] = decl
}

// EnumDecl returns the recorded declaration, and whether one was found.
func (c *Context) EnumDecl(fqName string) (ast.EnumDeclaration, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	d, ok := c.enumDecls[fqName]
	return d, ok
}

// RecordInheritance appends names to fqName's inheritance list
// (recording pass 5); Clean Inheritances later filters this in place via
// SetInheritance.
func (c *Context) RecordInheritance(fqName string, names []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.checkWritable()
	c.inheritance[fqName] = append(c.inheritance[fqName], names...)
}

// SetInheritance overwrites fqName's inheritance list outright, used by
// the Clean Inheritances pass to drop source-only protocol names.
func (c *Context) SetInheritance(fqName string, names []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.checkWritable()
	c.inheritance[fqName] = names
}

// Inheritance returns the recorded inheritance list for fqName.
func (c *Context) Inheritance(fqName string) []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.inheritance[fqName]))
	copy(out, c.inheritance[fqName])
	return out
}

// AllInheritance returns a snapshot of the full inheritance multimap, for
// the file-dependency graph's cycle check.
func (c *Context) AllInheritance() map[string][]string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string][]string, len(c.inheritance))
	for k, v := range c.inheritance {
		cp := make([]string, len(v))
		copy(cp, v)
		out[k] = cp
	}
	return out
}

// RecordFunctionTranslation appends ft; a later call with the same
// (Name, Type) shadows earlier ones on lookup (last-writer wins, §4.2).
func (c *Context) RecordFunctionTranslation(ft FunctionTranslation) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.checkWritable()
	c.funcTranslations = append(c.funcTranslations, ft)
}

// GetFunctionTranslation returns the most recently recorded translation
// whose Name and Type both match, or ok=false.
func (c *Context) GetFunctionTranslation(name, typ string) (FunctionTranslation, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := len(c.funcTranslations) - 1; i >= 0; i-- {
		ft := c.funcTranslations[i]
		if ft.Name == name && ft.Type == typ {
			return ft, true
		}
	}
	return FunctionTranslation{}, false
}

// AddPureFunction records name as side-effect free, consulted by the
// side-effect warning pass.
func (c *Context) AddPureFunction(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.checkWritable()
	c.pureFunctions[name] = true
}

// IsPureFunction reports whether name was recorded as pure.
func (c *Context) IsPureFunction(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pureFunctions[name]
}

// SetOracle records the index-oracle for the file about to run through
// the second round, consulted by the call-argument matcher's
// get_parent_type fallback (§4.6) when a receiver's type can't be
// resolved from Recording's own Type annotations. The driver calls this
// once per file, after Freeze — it is not a first-round registry write.
func (c *Context) SetOracle(o *frontend.Oracle) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.oracle = o
}

// Oracle returns the index-oracle most recently set by SetOracle, nil if
// none (Oracle.GetParentType is nil-safe, so callers need not check).
func (c *Context) Oracle() *frontend.Oracle {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.oracle
}

// AddTemplate registers a source-pattern -> target-snippet pair
// (recording pass 2).
func (c *Context) AddTemplate(t Template) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.checkWritable()
	c.templates = append(c.templates, t)
}

// Templates returns a snapshot of every registered template, in
// registration order (so Replace Templates can prefer earlier, more
// specific patterns on tie-breaking matches).
func (c *Context) Templates() []Template {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Template, len(c.templates))
	copy(out, c.templates)
	return out
}
