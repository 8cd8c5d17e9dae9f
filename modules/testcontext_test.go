package modules

import (
	"context"
	"testing"
)

// testContext stands in for t.Context (Go 1.24+): a context canceled just
// before the test's Cleanup-registered functions run.
func testContext(t *testing.T) context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return ctx
}
