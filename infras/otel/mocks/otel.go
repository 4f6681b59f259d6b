package mocks

import (
	"context"
	"mentorbook/infras/otel"
)

type noop struct{}

func (noop) NewScope(ctx context.Context, _, _ string) (context.Context, otel.Scope) {
	return ctx, NewScope()
}

func (noop) Shutdown(context.Context) error {
	return nil
}

// NewOtel returns an Otel whose scopes record nothing.
func NewOtel() otel.Otel {
	return noop{}
}
