package runtime

// Plan is everything needed to hand control to the downstream client.
type Plan struct {
	Layout      Layout
	Interpreter Interpreter
	// Argv is the full argument vector, Argv[0] included.
	Argv []string
	Env  []string
}

// NewPlan selects the interpreter for root and assembles the argument vector
// [argv0, entrypoint, args...] and the environment derived from baseEnv.
// args are copied verbatim.
func NewPlan(root string, args, baseEnv []string, lookPath LookPathFunc) (*Plan, error) {
	layout := NewLayout(root)

	interp, err := Select(layout, lookPath)
	if err != nil {
		return nil, err
	}

	argv := make([]string, 0, len(args)+2)
	argv = append(argv, interp.Argv0, layout.Entrypoint)
	argv = append(argv, args...)

	return &Plan{
		Layout:      layout,
		Interpreter: interp,
		Argv:        argv,
		Env:         BuildEnv(baseEnv, root),
	}, nil
}

// Args returns the arguments after argv[0].
func (p *Plan) Args() []string {
	return p.Argv[1:]
}
