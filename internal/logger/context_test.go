package logger

import (
	"context"
	"io"
	"testing"
)

func TestFromContextOrNil(t *testing.T) {
	if l := FromContextOrNil(context.Background()); l != nil {
		t.Error("expected nil for a context without a logger")
	}
	if l := FromContextOrNil(nil); l != nil {
		t.Error("expected nil for a nil context")
	}

	attached := New(&Config{Level: "info", Output: io.Discard})
	ctx := attached.WithContext(context.Background())

	if got := FromContextOrNil(ctx); got != attached {
		t.Error("expected the attached logger to be returned")
	}
}

func TestFromContextFallsBackToDefault(t *testing.T) {
	if got := FromContext(context.Background()); got != GetDefault() {
		t.Error("expected fallback to the default logger")
	}

	attached := New(&Config{Level: "info", Output: io.Discard})
	ctx := attached.WithContext(context.Background())

	if got := FromContext(ctx); got != attached {
		t.Error("expected the attached logger to win over the default")
	}
}
