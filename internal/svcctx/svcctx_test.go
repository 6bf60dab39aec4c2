package svcctx

import (
	"context"
	"log/slog"
	"os"
	"testing"
)

func TestWithServices(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	svcs := &Services{Logger: logger}

	ctx := WithServices(context.Background(), svcs)

	if got := ServicesFrom(ctx); got != svcs {
		t.Error("expected the attached services back")
	}
	if got := LoggerFrom(ctx); got != logger {
		t.Error("expected the attached logger back")
	}
}

func TestExtractorsOnEmptyContext(t *testing.T) {
	ctx := context.Background()

	if ServicesFrom(ctx) != nil {
		t.Error("expected nil services from an empty context")
	}
	if StoreFrom(ctx) != nil {
		t.Error("expected nil store from an empty context")
	}
	if ConfigFrom(ctx) != nil {
		t.Error("expected nil config manager from an empty context")
	}
	if LoggerFrom(ctx) != nil {
		t.Error("expected nil logger from an empty context")
	}
	if HomeFrom(ctx) != nil {
		t.Error("expected nil home from an empty context")
	}
}

func TestExtractorsOnPartialServices(t *testing.T) {
	ctx := WithServices(context.Background(), &Services{})

	if StoreFrom(ctx) != nil {
		t.Error("expected nil store when not configured")
	}
	if HomeFrom(ctx) != nil {
		t.Error("expected nil home when not configured")
	}
}
