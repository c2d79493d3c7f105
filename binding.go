package grapht

// BindingResult is the outcome of a BindingFunction's opinion about a
// Desire: a next desire to continue resolving, whether the fixpoint loop
// should terminate on it, and a defer flag. The loop stops on a
// terminating result only once its desire is instantiable; for a desire
// that is not yet instantiable the loop consults the binding functions
// again.
//
// Defer is part of the wire protocol but, per spec.md §9, is treated as
// equivalent to Terminate=false: this core does not implement deferred
// binding passes. The field is kept so a BindingFunction written against
// a future deferred-resolution pass doesn't need to change shape.
type BindingResult struct {
	Desire     Desire
	Terminate  bool
	Defer      bool
	SkipUnusable bool
}

// Terminal returns a BindingResult that halts the fixpoint loop on
// desire if desire is instantiable; otherwise the loop keeps consulting
// the binding functions for it.
func Terminal(desire Desire) *BindingResult {
	return &BindingResult{Desire: desire, Terminate: true}
}

// Continue returns a BindingResult that replaces the current desire and
// keeps iterating.
func Continue(desire Desire) *BindingResult {
	return &BindingResult{Desire: desire}
}

// SkipIfUnusable marks a BindingResult's satisfaction as a skippable
// default (spec.md §4.5): if resolving the satisfaction's own
// dependencies fails, the whole subtree is discarded as if this binding
// had never offered an opinion.
func (r *BindingResult) SkipIfUnusable() *BindingResult {
	r.SkipUnusable = true
	return r
}

// BindingFunction maps a Desire, within an InjectionContext, to another
// Desire or terminates the search. It must be pure with respect to the
// solver and must never return a result whose next desire has already
// been visited in ctx's prior-desires list (spec.md §4.2); the solver
// treats such a result as if it were nil.
//
// A nil, nil return means "no opinion about this desire".
type BindingFunction func(ctx *InjectionContext, desire Desire) (*BindingResult, error)
