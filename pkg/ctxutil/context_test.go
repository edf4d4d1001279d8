package ctxutil

import (
	"context"
	"testing"
)

func TestRequestIDRoundTrip(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-1")
	if got := RequestIDFromContext(ctx); got != "req-1" {
		t.Fatalf("RequestIDFromContext() = %q, want req-1", got)
	}

	if got := RequestIDFromContext(context.Background()); got != "" {
		t.Fatalf("empty context returned %q", got)
	}

	same := context.Background()
	if WithRequestID(same, "") != same {
		t.Fatal("empty id must not wrap the context")
	}
}
