package ctxkeys

import (
	"context"
	"testing"
)

func TestWithValueAndValue_RoundTrip(t *testing.T) {
	t.Parallel()

	ctx := WithValue(context.Background(), Subject, "admin")
	if got := Value(ctx, Subject); got != "admin" {
		t.Errorf("Value(Subject) = %q, want admin", got)
	}
}

func TestValue_MissingKeyIsEmpty(t *testing.T) {
	t.Parallel()

	if got := Value(context.Background(), Subject); got != "" {
		t.Errorf("Value on empty context = %q, want empty", got)
	}
}

func TestKey_DoesNotCollideWithPlainString(t *testing.T) {
	t.Parallel()

	// A plain string key with the same literal must not be readable through
	// the typed key, and vice versa.
	ctx := context.WithValue(context.Background(), "subject", "impostor") //nolint:staticcheck
	if got := Value(ctx, Subject); got != "" {
		t.Errorf("typed key read plain-string value %q", got)
	}
}
