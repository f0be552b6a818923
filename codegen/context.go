package codegen

import (
	"strconv"

	"go.uber.org/atomic"
	"go.uber.org/zap"
)

// Context is the expansion context of a single declaration. It allocates
// fresh identifiers and collects diagnostics. Contexts are never shared
// between declarations so that fresh names are scoped to one expansion.
type Context struct {
	decl        string
	log         *zap.Logger
	counter     atomic.Uint64
	diagnostics Diagnostics
}

// NewContext returns an expansion context for the declaration named decl.
func NewContext(decl string, log *zap.Logger) *Context {
	if log == nil {
		log = zap.NewNop()
	}
	return &Context{
		decl: decl,
		log:  log.With(zap.String("declaration", decl)),
	}
}

// FreshName returns an identifier that is unique within the context. Fresh
// names start with an underscore followed by hint and a counter value that
// is never reused.
func (c *Context) FreshName(hint string) string {
	return "_" + hint + strconv.FormatUint(c.counter.Inc(), 10)
}

// Report records a diagnostic.
func (c *Context) Report(d Diagnostic) {
	fields := []zap.Field{
		zap.String("location", d.Location),
		zap.Stringer("kind", d.Kind),
	}
	if d.Severity == SeverityError {
		c.log.Error(d.Message, fields...)
	} else {
		c.log.Warn(d.Message, fields...)
	}
	c.diagnostics.Report(d)
}

// Diagnostics returns diagnostics reported so far.
func (c *Context) Diagnostics() Diagnostics {
	return c.diagnostics
}

// Failed reports whether an error diagnostic was reported.
func (c *Context) Failed() bool {
	return c.diagnostics.Err() != nil
}

func (c *Context) errorf(loc string, kind DiagnosticKind, fix, format string, args ...any) {
	c.Report(Diagnostic{
		Severity: SeverityError,
		Kind:     kind,
		Location: loc,
		Message:  sprintf(format, args...),
		Fix:      fix,
	})
}

func (c *Context) warnf(loc string, kind DiagnosticKind, fix, format string, args ...any) {
	c.Report(Diagnostic{
		Severity: SeverityWarning,
		Kind:     kind,
		Location: loc,
		Message:  sprintf(format, args...),
		Fix:      fix,
	})
}
