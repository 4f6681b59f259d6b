package mocks

import "mentorbook/infras/otel"

// scope discards everything.
type scope struct{}

func (scope) AddEvent(string)              {}
func (scope) End()                         {}
func (scope) SetAttribute(string, any)     {}
func (scope) SetAttributes(map[string]any) {}
func (scope) TraceError(error)             {}
func (scope) TraceIfError(*error)          {}

func NewScope() otel.Scope {
	return scope{}
}
