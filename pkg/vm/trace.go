package vm

// Trace is the observer passed to Step. It has no methods, so any type,
// including NoopTrace, satisfies it, and Step makes no calls on it.
type Trace interface{}

// NoopTrace is a Trace implementation that observes nothing. It is the
// default used by callers that only care about the machine's final state.
type NoopTrace struct{}
