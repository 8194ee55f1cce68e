package diagnostic

import "errors"

// Var is one captured variable binding.
type Var struct {
	Key   string
	Value any
}

// varsError attaches variable bindings to an error as it propagates, the
// closest Go equivalent of frame locals in the original report format.
type varsError struct {
	err  error
	vars []Var
}

// WithVars annotates an error with key/value state from the failure site.
// Keys and values alternate; a trailing key without a value is recorded
// with a nil value. A nil error returns nil.
func WithVars(err error, keyvals ...any) error {
	if err == nil {
		return nil
	}
	vars := make([]Var, 0, (len(keyvals)+1)/2)
	for i := 0; i < len(keyvals); i += 2 {
		key, ok := keyvals[i].(string)
		if !ok {
			key = "!BADKEY"
		}
		var value any
		if i+1 < len(keyvals) {
			value = keyvals[i+1]
		}
		vars = append(vars, Var{Key: key, Value: value})
	}
	return &varsError{err: err, vars: vars}
}

func (e *varsError) Error() string { return e.err.Error() }
func (e *varsError) Unwrap() error { return e.err }

// DiagnosticVars exposes the bindings for snapshot capture. Third-party
// error types can implement the same method to contribute state.
func (e *varsError) DiagnosticVars() []Var { return e.vars }

// Vars collects every binding attached along an error chain, outermost
// wrap first.
func Vars(err error) []Var {
	var out []Var
	for err != nil {
		if v, ok := err.(interface{ DiagnosticVars() []Var }); ok {
			out = append(out, v.DiagnosticVars()...)
		}
		err = errors.Unwrap(err)
	}
	return out
}
