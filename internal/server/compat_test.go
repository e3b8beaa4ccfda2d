package server_test

// Test helpers standing in for testing.T.Context and testing.T.Chdir,
// which are unavailable on the Go toolchain used to build this module.

import (
	"context"
	"testing"
)

// testContext returns a context that is canceled when the test finishes,
// mirroring testing.T.Context.
func testContext(t testing.TB) context.Context {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return ctx
}
