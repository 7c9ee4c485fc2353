package store

import "context"

// notConfigured is the stand-in Store used when no credentials were
// supplied. Every call fails with the same actionable error instead of
// crashing the process, so the service still boots and reports a uniform
// diagnostic on each request.
type notConfigured struct{}

// NotConfigured returns the fallback Store.
func NotConfigured() Store { return notConfigured{} }

func (notConfigured) Select(context.Context, string, Query) ([]Record, error) {
	return nil, ErrNotConfigured
}

func (notConfigured) Insert(context.Context, string, any) ([]Record, error) {
	return nil, ErrNotConfigured
}

func (notConfigured) Update(context.Context, string, Query, Record) ([]Record, error) {
	return nil, ErrNotConfigured
}

func (notConfigured) Delete(context.Context, string, Query) ([]Record, error) {
	return nil, ErrNotConfigured
}

func (notConfigured) Upsert(context.Context, string, string, any) ([]Record, error) {
	return nil, ErrNotConfigured
}
