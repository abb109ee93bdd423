// Package mocks provides mock implementations for database interfaces in tests.
package mocks

import (
	"context"
)

// MockTxManager is a pass-through TxManager for testing. It runs the given
// function without opening a real transaction, optionally returning a
// preconfigured error instead.
type MockTxManager struct {
	// Err, when set, is returned without invoking the function.
	Err error
}

// WithTx runs fn directly, or returns Err if configured.
func (m *MockTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.Err != nil {
		return m.Err
	}
	return fn(ctx)
}
