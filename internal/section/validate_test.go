package section

import (
	"errors"
	"strings"
	"testing"

	"github.com/mkravec/cennik/internal/pagemap"
)

func TestPolicyFor(t *testing.T) {
	if got := PolicyFor(pagemap.ModeSingleSided); got != LenientValidation {
		t.Errorf("single sided: expected %s, got %s", LenientValidation, got)
	}
	if got := PolicyFor(pagemap.ModeDoubleSided); got != StrictValidation {
		t.Errorf("double sided: expected %s, got %s", StrictValidation, got)
	}
}

func TestStrictValidation(t *testing.T) {
	p := StrictValidation

	t.Run("expected page among leading tokens", func(t *testing.T) {
		if err := p.Validate("internet", "INTERNET", "INTERNET 4\nceny", 4); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("second leading token counts", func(t *testing.T) {
		if err := p.Validate("internet", "INTERNET", "INTERNET\n3 4 ceny", 4); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("off by one fails", func(t *testing.T) {
		err := p.Validate("internet", "INTERNET", "INTERNET 5\nceny", 4)
		if !errors.Is(err, ErrPageValidation) {
			t.Errorf("expected ErrPageValidation, got %v", err)
		}
	})

	t.Run("only the first two integers are considered", func(t *testing.T) {
		err := p.Validate("internet", "INTERNET", "INTERNET 8 9 4", 4)
		if !errors.Is(err, ErrPageValidation) {
			t.Errorf("expected ErrPageValidation, got %v", err)
		}
	})

	t.Run("no integers at all fails", func(t *testing.T) {
		err := p.Validate("internet", "INTERNET", "INTERNET bez čísel", 4)
		if !errors.Is(err, ErrPageValidation) {
			t.Errorf("expected ErrPageValidation, got %v", err)
		}
	})
}

func TestLenientValidation(t *testing.T) {
	p := LenientValidation

	t.Run("off by one accepted", func(t *testing.T) {
		if err := p.Validate("tv", "TELEVÍZIA", "TELEVÍZIA 13\nponuka", 12); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("off by two fails on short text", func(t *testing.T) {
		err := p.Validate("tv", "TELEVÍZIA", "TELEVÍZIA 14\nponuka", 12)
		if !errors.Is(err, ErrPageValidation) {
			t.Errorf("expected ErrPageValidation, got %v", err)
		}
	})

	t.Run("long text accepted without matching token", func(t *testing.T) {
		text := "TELEVÍZIA\n" + strings.Repeat("programová ponuka ", 20)
		if len(text) < lenientMinChars {
			t.Fatalf("fixture too short: %d chars", len(text))
		}
		if err := p.Validate("tv", "TELEVÍZIA", text, 12); err != nil {
			t.Errorf("expected long text to be accepted, got %v", err)
		}
	})

	t.Run("short text without tokens fails", func(t *testing.T) {
		err := p.Validate("tv", "TELEVÍZIA", "TELEVÍZIA", 12)
		if !errors.Is(err, ErrPageValidation) {
			t.Errorf("expected ErrPageValidation, got %v", err)
		}
	})
}

func TestValidationError(t *testing.T) {
	err := StrictValidation.Validate("internet", "INTERNET", "INTERNET 9", 4)

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if verr.Key != "internet" || verr.Expected != 4 {
		t.Errorf("unexpected error details: %+v", verr)
	}
	if len(verr.Found) != 1 || verr.Found[0] != 9 {
		t.Errorf("expected found tokens [9], got %v", verr.Found)
	}
	if !errors.Is(err, ErrPageValidation) {
		t.Error("expected error to unwrap to ErrPageValidation")
	}
}
