package feedbus

import (
	"testing"
)

func mustFrame(t *testing.T, raw string) Frame {
	t.Helper()
	f, err := ParseFrame([]byte(raw))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return f
}

func TestHasFields(t *testing.T) {
	f := mustFrame(t, `{
		"method": "tickPrice",
		"args": [1, 4, 135.42],
		"meta": {"seq": 42}
	}`)

	t.Run("matches when all fields present", func(t *testing.T) {
		d := HasFields("method", "args")
		if !d.Match(f) {
			t.Error("expected match")
		}
	})

	t.Run("matches nested fields", func(t *testing.T) {
		d := HasFields("method", "meta.seq")
		if !d.Match(f) {
			t.Error("expected match")
		}
	})

	t.Run("fails when any field missing", func(t *testing.T) {
		d := HasFields("method", "missing")
		if d.Match(f) {
			t.Error("expected no match")
		}
	})

	t.Run("matches with no fields (vacuous truth)", func(t *testing.T) {
		d := HasFields()
		if !d.Match(f) {
			t.Error("expected match for empty field list")
		}
	})
}

func TestFieldEquals(t *testing.T) {
	f := mustFrame(t, `{
		"method": "tickPrice",
		"version": 2
	}`)

	t.Run("matches exact string value", func(t *testing.T) {
		d := FieldEquals("method", "tickPrice")
		if !d.Match(f) {
			t.Error("expected match")
		}
	})

	t.Run("fails on wrong value", func(t *testing.T) {
		d := FieldEquals("method", "tickSize")
		if d.Match(f) {
			t.Error("expected no match")
		}
	})

	t.Run("fails on missing field", func(t *testing.T) {
		d := FieldEquals("missing", "value")
		if d.Match(f) {
			t.Error("expected no match")
		}
	})

	t.Run("fails on non-string field", func(t *testing.T) {
		d := FieldEquals("version", "2")
		if d.Match(f) {
			t.Error("expected no match for non-string field")
		}
	})
}

func TestDiscriminatorFunc(t *testing.T) {
	f := mustFrame(t, `{"version": 2}`)

	even := DiscriminatorFunc(func(f Frame) bool {
		n, ok := f.GetInt("version")
		return ok && n%2 == 0
	})
	if !even.Match(f) {
		t.Error("expected match")
	}
	if even.Match(mustFrame(t, `{"version": 3}`)) {
		t.Error("expected no match")
	}
}

func TestCombinators(t *testing.T) {
	f := mustFrame(t, `{
		"method": "orderStatus",
		"args": []
	}`)

	t.Run("And matches when all match", func(t *testing.T) {
		d := And(HasFields("method"), FieldEquals("method", "orderStatus"))
		if !d.Match(f) {
			t.Error("expected match")
		}
	})

	t.Run("And fails when any fails", func(t *testing.T) {
		d := And(HasFields("method"), FieldEquals("method", "other"))
		if d.Match(f) {
			t.Error("expected no match")
		}
	})

	t.Run("Or matches when any matches", func(t *testing.T) {
		d := Or(FieldEquals("method", "other"), HasFields("args"))
		if !d.Match(f) {
			t.Error("expected match")
		}
	})

	t.Run("Or fails when none match", func(t *testing.T) {
		d := Or(FieldEquals("method", "other"), HasFields("missing"))
		if d.Match(f) {
			t.Error("expected no match")
		}
	})

	t.Run("Or fails with no discriminators", func(t *testing.T) {
		d := Or()
		if d.Match(f) {
			t.Error("expected no match for empty Or")
		}
	})

	t.Run("Not inverts the match", func(t *testing.T) {
		if Not(HasFields("method")).Match(f) {
			t.Error("expected no match")
		}
		if !Not(HasFields("missing")).Match(f) {
			t.Error("expected match")
		}
	})
}

func TestEnvelopeSource(t *testing.T) {
	src := EnvelopeSource()

	t.Run("discriminator requires the method field", func(t *testing.T) {
		if !src.Discriminator().Match(mustFrame(t, `{"method": "tickSize"}`)) {
			t.Error("expected match")
		}
		if src.Discriminator().Match(mustFrame(t, `{"errorMsg": "x"}`)) {
			t.Error("expected no match without method")
		}
	})

	t.Run("decodes method and args", func(t *testing.T) {
		f := mustFrame(t, `{"method": "tickPrice", "args": [1, 4, 135.42, 0]}`)

		call, err := src.Decode(f)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if call.Method != "tickPrice" {
			t.Errorf("method = %q, want %q", call.Method, "tickPrice")
		}
		if len(call.Args) != 4 {
			t.Errorf("args = %v, want 4 values", call.Args)
		}
	})

	t.Run("missing args decodes to an empty call", func(t *testing.T) {
		f := mustFrame(t, `{"method": "connectionClosed"}`)

		call, err := src.Decode(f)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(call.Args) != 0 {
			t.Errorf("args = %v, want none", call.Args)
		}
	})

	t.Run("non-string method is rejected", func(t *testing.T) {
		f := mustFrame(t, `{"method": 17}`)

		_, err := src.Decode(f)
		if err == nil {
			t.Error("expected error for numeric method")
		}
	})
}

func TestLegacyErrorSource(t *testing.T) {
	src := LegacyErrorSource()

	t.Run("discriminator rejects envelope frames", func(t *testing.T) {
		if src.Discriminator().Match(mustFrame(t, `{"method": "error", "errorMsg": "x"}`)) {
			t.Error("expected no match for enveloped frame")
		}
		if !src.Discriminator().Match(mustFrame(t, `{"errorMsg": "x"}`)) {
			t.Error("expected match for bare error frame")
		}
	})

	t.Run("decodes the full triple", func(t *testing.T) {
		f := mustFrame(t, `{"id": 7, "errorCode": 504, "errorMsg": "timeout"}`)

		call, err := src.Decode(f)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if call.Method != "error" {
			t.Errorf("method = %q, want %q", call.Method, "error")
		}
		if len(call.Args) != 3 {
			t.Fatalf("args = %v, want 3 values", call.Args)
		}
		if call.Args[0] != int64(7) || call.Args[1] != int64(504) || call.Args[2] != "timeout" {
			t.Errorf("args = %v, want [7 504 timeout]", call.Args)
		}
	})

	t.Run("decodes a bare message", func(t *testing.T) {
		f := mustFrame(t, `{"errorMsg": "bad feed"}`)

		call, err := src.Decode(f)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(call.Args) != 1 || call.Args[0] != "bad feed" {
			t.Errorf("args = %v, want [bad feed]", call.Args)
		}
	})

	t.Run("partial triple degrades to a bare message", func(t *testing.T) {
		f := mustFrame(t, `{"id": 7, "errorMsg": "no code"}`)

		call, err := src.Decode(f)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(call.Args) != 1 {
			t.Errorf("args = %v, want just the message", call.Args)
		}
	})

	t.Run("fractional id degrades to a bare message", func(t *testing.T) {
		f := mustFrame(t, `{"id": 7.5, "errorCode": 504, "errorMsg": "timeout"}`)

		call, err := src.Decode(f)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(call.Args) != 1 || call.Args[0] != "timeout" {
			t.Errorf("args = %v, want just the message", call.Args)
		}
	})

	t.Run("non-string message is rejected", func(t *testing.T) {
		f := mustFrame(t, `{"errorMsg": 99}`)

		_, err := src.Decode(f)
		if err == nil {
			t.Error("expected error for numeric errorMsg")
		}
	})
}
