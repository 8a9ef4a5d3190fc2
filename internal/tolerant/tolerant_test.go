package tolerant

import (
	"testing"
)

func mustDecode(t *testing.T, raw string) any {
	t.Helper()
	v, err := Decode([]byte(raw))
	if err != nil {
		t.Fatalf("Decode(%q) unexpected error = %v", raw, err)
	}
	return v
}

func TestLookupObject(t *testing.T) {
	items := MustCompile("$.items", "$.response.items")
	tests := []struct {
		name   string
		raw    string
		wantOK bool
		wantK  string
	}{
		{"root", `{"items":{"a":1}}`, true, "a"},
		{"nested", `{"response":{"items":{"b":1}}}`, true, "b"},
		{"root wins", `{"items":{"a":1},"response":{"items":{"b":1}}}`, true, "a"},
		{"root not object", `{"items":[1],"response":{"items":{"b":1}}}`, true, "b"},
		{"missing", `{"other":{}}`, false, ""},
		{"array payload", `[1,2]`, false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := items.Object(mustDecode(t, tt.raw))
			if ok != tt.wantOK {
				t.Fatalf("Object() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok {
				if _, has := got[tt.wantK]; !has {
					t.Errorf("Object() = %v, want key %q", got, tt.wantK)
				}
			}
		})
	}
}

func TestLookupString(t *testing.T) {
	name := MustCompile("$.item_name", "$.name")
	tests := []struct {
		raw  string
		want string
	}{
		{`{"item_name":"Key","name":"KEY"}`, "Key"},
		{`{"item_name":"","name":"KEY"}`, "KEY"},
		{`{"item_name":5,"name":"KEY"}`, "KEY"},
		{`{"other":"x"}`, "fallback"},
	}
	for _, tt := range tests {
		if got := name.StringOr(mustDecode(t, tt.raw), "fallback"); got != tt.want {
			t.Errorf("StringOr(%s) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestLookupBracketKey(t *testing.T) {
	block := MustCompile(`$.prices["6"].Tradable.Craftable`)
	v, ok := block.First(mustDecode(t, `{"prices":{"6":{"Tradable":{"Craftable":[{"x":1}]}}}}`))
	if !ok {
		t.Fatal("First() found nothing")
	}
	if _, isList := v.([]any); !isList {
		t.Errorf("First() = %T, want []any", v)
	}
	if _, ok := block.First(mustDecode(t, `{"prices":{"11":{}}}`)); ok {
		t.Error("First() found a value for a missing quality")
	}
}

func TestInt(t *testing.T) {
	tests := []struct {
		in     any
		want   int
		wantOK bool
	}{
		{float64(5021), 5021, true},
		{"5002", 5002, true},
		{" 12 ", 12, true},
		{float64(-3), -3, true},
		{5.5, 0, false},
		{"abc", 0, false},
		{true, 0, false},
		{nil, 0, false},
		{float64(1 << 40), 0, false},
	}
	for _, tt := range tests {
		got, ok := Int(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("Int(%v) = %d, %v; want %d, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestFloat(t *testing.T) {
	if f, ok := Float(2.5); !ok || f != 2.5 {
		t.Errorf("Float(2.5) = %v, %v", f, ok)
	}
	if _, ok := Float("2.5"); ok {
		t.Error("Float(\"2.5\") accepted a string")
	}
}
