package defaults

// A resolverFunc infers one output field (or field group) from the context
// snapshot plus everything resolved before it. It writes its value into the
// accumulating record and returns zero or one reasoning entries per field;
// an empty return means the field fell through to a silent baseline.
type resolverFunc func(ctx Context, acc *SmartDefaults) []Reasoning

// pipeline fixes the resolver dependency order. Type must run first because
// duration, intensity and equipment all key off the resolved type; schedule
// must precede intensity and equipment because they key off the resolved
// date and time; assignment runs last and is independent of the rest.
var pipeline = []resolverFunc{
	resolveType,
	resolveSchedule,
	resolveDuration,
	resolveIntensity,
	resolveEquipment,
	resolveAssignment,
}

// Resolve runs the full inference pipeline over one context snapshot and
// returns a fully-populated SmartDefaults. It never fails: every field ends
// up with a value even for a completely empty context.
func Resolve(ctx Context) SmartDefaults {
	acc := SmartDefaults{
		TeamIDs:   []string{},
		PlayerIDs: []string{},
		Reasoning: []Reasoning{},
	}
	for _, resolve := range pipeline {
		acc.Reasoning = append(acc.Reasoning, resolve(ctx, &acc)...)
	}
	aggregate(ctx, &acc)
	return acc
}
