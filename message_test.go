package feedbus

import "testing"

func TestMessage(t *testing.T) {
	t.Run("copies the field map on construction", func(t *testing.T) {
		fields := map[string]any{"price": 10.5}
		m := NewMessage("tickPrice", fields)

		fields["price"] = 999.0

		if got := m.GetFloat("price"); got != 10.5 {
			t.Errorf("price = %v, want 10.5", got)
		}
	})

	t.Run("Fields returns a copy", func(t *testing.T) {
		m := NewMessage("tickPrice", map[string]any{"price": 10.5})

		m.Fields()["price"] = 999.0

		if got := m.GetFloat("price"); got != 10.5 {
			t.Errorf("price = %v, want 10.5", got)
		}
	})

	t.Run("absent fields report absence", func(t *testing.T) {
		m := NewMessage("tickPrice", map[string]any{"price": 10.5})

		if _, ok := m.Get("volume"); ok {
			t.Error("volume should be absent")
		}
		if got := m.GetString("volume"); got != "" {
			t.Errorf("GetString(volume) = %q, want empty", got)
		}
		if got := m.GetInt("volume"); got != 0 {
			t.Errorf("GetInt(volume) = %d, want 0", got)
		}
	})

	t.Run("typed accessors", func(t *testing.T) {
		m := NewMessage("orderStatus", map[string]any{
			"orderId":      float64(12),
			"status":       "Filled",
			"filled":       300,
			"avgFillPrice": 135.42,
		})

		if got := m.GetInt("orderId"); got != 12 {
			t.Errorf("orderId = %d, want 12", got)
		}
		if got := m.GetString("status"); got != "Filled" {
			t.Errorf("status = %q, want Filled", got)
		}
		if got := m.GetInt("filled"); got != 300 {
			t.Errorf("filled = %d, want 300", got)
		}
		if got := m.GetFloat("avgFillPrice"); got != 135.42 {
			t.Errorf("avgFillPrice = %v, want 135.42", got)
		}
		if got := m.GetFloat("filled"); got != 300 {
			t.Errorf("GetFloat(filled) = %v, want 300", got)
		}
	})

	t.Run("GetFloat accepts the same numeric kinds as GetInt", func(t *testing.T) {
		m := NewMessage("orderStatus", map[string]any{
			"a": int8(5),
			"b": int16(-6),
			"c": uint(7),
			"d": uint64(8),
			"e": float32(9.5),
		})

		for field, want := range map[string]float64{
			"a": 5, "b": -6, "c": 7, "d": 8, "e": 9.5,
		} {
			if got := m.GetFloat(field); got != want {
				t.Errorf("GetFloat(%s) = %v, want %v", field, got, want)
			}
		}
	})
}

func TestAsInt(t *testing.T) {
	tests := map[string]struct {
		v    any
		want int64
		ok   bool
	}{
		"int":                {42, 42, true},
		"int64":              {int64(-7), -7, true},
		"uint32":             {uint32(9), 9, true},
		"integral float64":   {float64(504), 504, true},
		"fractional float64": {135.42, 0, false},
		"string":             {"42", 0, false},
		"nil":                {nil, 0, false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, ok := asInt(tt.v)
			if got != tt.want || ok != tt.ok {
				t.Errorf("asInt(%v) = (%d, %v), want (%d, %v)", tt.v, got, ok, tt.want, tt.ok)
			}
		})
	}
}
