package value

// Scope is a pair of bindings maps: Arguments (the callee's declared
// parameters) and Variables (everything bound by `var` during evaluation).
// Lookup checks Arguments first. Nested scopes (map/reduce bodies, `{ }`
// blocks) are formed by Clone-ing the parent and layering new bindings on
// top, which is cheap because Values are reference-shared.
type Scope struct {
	Arguments map[string]Value
	Variables map[string]Value
}

// NewScope returns an empty scope.
func NewScope() *Scope {
	return &Scope{Arguments: map[string]Value{}, Variables: map[string]Value{}}
}

// NewScopeWithArguments returns a scope prepopulated with the given
// argument bindings, used to start evaluating a document or function.
func NewScopeWithArguments(args map[string]Value) *Scope {
	if args == nil {
		args = map[string]Value{}
	}
	return &Scope{Arguments: args, Variables: map[string]Value{}}
}

// Get looks up name, arguments taking precedence over variables.
func (s *Scope) Get(name string) (Value, bool) {
	if v, ok := s.Arguments[name]; ok {
		return v, true
	}
	if v, ok := s.Variables[name]; ok {
		return v, true
	}
	return nil, false
}

// Set binds name as a variable.
func (s *Scope) Set(name string, v Value) {
	s.Variables[name] = v
}

// Clone returns a shallow copy: a new pair of maps with the same value
// bindings, safe to mutate independently of s.
func (s *Scope) Clone() *Scope {
	args := make(map[string]Value, len(s.Arguments))
	for k, v := range s.Arguments {
		args[k] = v
	}
	vars := make(map[string]Value, len(s.Variables))
	for k, v := range s.Variables {
		vars[k] = v
	}
	return &Scope{Arguments: args, Variables: vars}
}
