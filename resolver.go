package grapht

// resolveOnce is the fixpoint loop of spec.md §4.3: it repeatedly
// applies bindingFunctions to the current desire until a terminal,
// instantiable desire is reached, returning its satisfaction, the
// chain of desires visited along the way, and whether the binding that
// produced the terminal desire was flagged skip-if-unusable (§4.5).
//
// ctx must already be the context for the injection point being
// resolved (freshly pushed, with an empty prior-desires list, or, when
// resolveFully retries after a skipped default, carrying the abandoned
// chain); resolveOnce accumulates prior desires into it as it loops.
// A binding flagged Defer never terminates the loop.
func resolveOnce(fns []BindingFunction, ctx *InjectionContext, desire Desire) (Satisfaction, []Desire, bool, error) {
	current := desire
	skippable := false
	for {
		binding, found, err := firstApplicableBinding(fns, ctx, current)
		if err != nil {
			return nil, nil, false, err
		}

		terminate := !found
		if found {
			if binding.Desire.Type() == nil {
				return nil, nil, false, newInvalidBindingError("next desire has no type", binding.Desire)
			}
			ctx = ctx.RecordDesire(current)
			current = binding.Desire
			terminate = binding.Terminate && !binding.Defer
			skippable = binding.SkipUnusable
		}

		if terminate && current.Instantiable() {
			// current may be structurally equal (by Desire.Equal, which
			// ignores the attached satisfaction) to the entry just
			// recorded above when this same step both advanced to and
			// terminated on current; record it only if it's new.
			prior := ctx.PriorDesires()
			if len(prior) == 0 || !prior[len(prior)-1].Equal(current) {
				ctx = ctx.RecordDesire(current)
			}
			sat, _ := current.Satisfaction()
			return sat, ctx.PriorDesires(), skippable, nil
		}
		if !found {
			return nil, nil, false, newUnresolvableDependencyError(current, ctx)
		}
		// terminate was requested but current isn't instantiable yet,
		// or no termination was requested at all: keep iterating.
	}
}

// firstApplicableBinding returns the first binding function's opinion
// about desire whose next desire hasn't already been visited in ctx's
// prior-desires list. A result naming an already-visited desire is
// treated as if the function had no opinion (spec.md §4.2); this is
// what keeps a pair of binding functions that ping-pong between two
// desires from looping forever.
func firstApplicableBinding(fns []BindingFunction, ctx *InjectionContext, desire Desire) (*BindingResult, bool, error) {
	for _, fn := range fns {
		result, err := fn(ctx, desire)
		if err != nil {
			return nil, false, err
		}
		if result == nil {
			continue
		}
		if ctx.HasVisited(result.Desire) {
			continue
		}
		return result, true, nil
	}
	return nil, false, nil
}
