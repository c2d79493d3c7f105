package grapht

import (
	"bytes"
	"fmt"
	"path"
	"reflect"
	"runtime"
	"strings"
)

// ErrorCode distinguishes the failure kinds a Solver can report
// (spec.md §7).
type ErrorCode int

const (
	// ErrUnresolvableDependency is raised when no BindingFunction can
	// produce a terminal, instantiable desire for a request.
	ErrUnresolvableDependency ErrorCode = iota
	// ErrCyclicDependency is raised when the resolution path exceeds
	// max_depth.
	ErrCyclicDependency
	// ErrInvalidBinding is raised when a BindingFunction returns a
	// structurally invalid result.
	ErrInvalidBinding
	// ErrMultipleBindings is raised when a BindingFunction cannot
	// disambiguate between multiple candidates.
	ErrMultipleBindings
)

func (c ErrorCode) String() string {
	switch c {
	case ErrUnresolvableDependency:
		return "unresolvable dependency"
	case ErrCyclicDependency:
		return "cyclic dependency"
	case ErrInvalidBinding:
		return "invalid binding"
	case ErrMultipleBindings:
		return "multiple bindings"
	default:
		return fmt.Sprintf("%+v", int(c))
	}
}

// SolverError is the single error type the solver returns. It carries
// the failing desire, a snapshot of the type path and prior desires that
// led to it, and the call site that raised it.
type SolverError struct {
	Code         ErrorCode
	Desire       Desire
	TypePath     []string
	PriorDesires []Desire
	Depth        int
	Message      string
	Inner        error
	File         string
	LineNo       int
	Method       string
}

func (e *SolverError) Error() string {
	var b bytes.Buffer
	b.WriteString(e.Message)
	if e.Inner != nil {
		b.WriteRune('\n')
		b.WriteString(e.Inner.Error())
	}
	return b.String()
}

// Unwrap allows errors.Is/As to see through to Inner.
func (e *SolverError) Unwrap() error { return e.Inner }

// callers: resolver.go, solver.go
func newUnresolvableDependencyError(desire Desire, ctx *InjectionContext) error {
	method, callingMethod, file, lineNo := getCaller()
	var b bytes.Buffer
	b.WriteString(fmt.Sprintf("grapht: %s: no binding produces a terminal, instantiable value for %q.", method, desire.Format()))
	b.WriteString(formatTypePath(ctx.TypePath()))
	b.WriteString(formatChain(ctx.PriorDesires()))
	return &SolverError{
		Code:         ErrUnresolvableDependency,
		Desire:       desire,
		TypePath:     ctx.TypePath(),
		PriorDesires: ctx.PriorDesires(),
		Message:      b.String(),
		File:         file,
		LineNo:       lineNo,
		Method:       callingMethod,
	}
}

// callers: tree.go
func newCyclicDependencyError(desire Desire, depth int) error {
	method, callingMethod, file, lineNo := getCaller()
	var b bytes.Buffer
	b.WriteString(fmt.Sprintf("grapht: %s: resolution of %q exceeded the maximum depth (%d).", method, desire.Format(), depth))
	return &SolverError{
		Code:    ErrCyclicDependency,
		Desire:  desire,
		Depth:   depth,
		Message: b.String(),
		File:    file,
		LineNo:  lineNo,
		Method:  callingMethod,
	}
}

// callers: graph.go, merger.go, reflect.go, resolver.go, solver.go
func newInvalidBindingError(reason string, desire Desire) error {
	method, callingMethod, file, lineNo := getCaller()
	b := fmt.Sprintf("grapht: %s: invalid binding for %q: %s", method, desire.Format(), reason)
	return &SolverError{
		Code:    ErrInvalidBinding,
		Desire:  desire,
		Message: b,
		File:    file,
		LineNo:  lineNo,
		Method:  callingMethod,
	}
}

// callers: none; no code in this package reports ambiguous bindings
func newMultipleBindingsError(desire Desire, candidates int) error {
	method, callingMethod, file, lineNo := getCaller()
	b := fmt.Sprintf("grapht: %s: %d candidate bindings for %q could not be disambiguated.", method, candidates, desire.Format())
	return &SolverError{
		Code:    ErrMultipleBindings,
		Desire:  desire,
		Message: b,
		File:    file,
		LineNo:  lineNo,
		Method:  callingMethod,
	}
}

func formatTypePath(path []string) string {
	if len(path) == 0 {
		return ""
	}
	return " type path: " + strings.Join(path, " -> ") + "."
}

func formatChain(chain []Desire) string {
	if len(chain) == 0 {
		return ""
	}
	parts := make([]string, len(chain))
	for i, d := range chain {
		parts[i] = d.Format()
	}
	return " fixpoint chain: " + strings.Join(parts, " depends on ") + "."
}

//-----------------------------------------------
// call site capture
//-----------------------------------------------

var pkgName = reflect.TypeOf(qualifier{}).PkgPath()

func getCaller() (method, callingMethod, file string, lineNo int) {
	done := false
	for i := 2; ; i++ {
		pc, f, ln, ok := runtime.Caller(i)
		if !ok {
			break
		}
		callingMethod = runtime.FuncForPC(pc).Name()
		file = f
		lineNo = ln
		if done {
			callingMethod = path.Base(callingMethod)
			ix := strings.IndexRune(callingMethod, '.')
			callingMethod = callingMethod[ix+1:]
			break
		}
		if !strings.HasPrefix(callingMethod, pkgName) {
			done = true
			continue
		}
		if method == "" || !strings.HasSuffix(file, "_test.go") {
			method = callingMethod[len(pkgName)+1:]
		}
	}
	return
}
