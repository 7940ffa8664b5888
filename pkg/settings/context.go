package settings

import "context"

type runContextKey struct{}

// IntoContext attaches the run settings to ctx.
func IntoContext(ctx context.Context, s *Run) context.Context {
	return context.WithValue(ctx, runContextKey{}, s)
}

// FromContext returns the run settings attached by IntoContext.
func FromContext(ctx context.Context) (*Run, bool) {
	s, ok := ctx.Value(runContextKey{}).(*Run)
	return s, ok && s != nil
}

// RunFromContext is FromContext with a fallback to NewCliParams.
func RunFromContext(ctx context.Context) *Run {
	if s, ok := FromContext(ctx); ok {
		return s
	}
	return NewCliParams()
}
