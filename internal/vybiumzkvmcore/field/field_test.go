package field

import "testing"

func TestAddSubRoundTrip(t *testing.T) {
	cases := []struct{ a, b uint64 }{
		{0, 0},
		{1, 1},
		{Modulus - 1, 1},
		{Modulus - 1, Modulus - 1},
		{12345, 67890},
	}
	for _, c := range cases {
		a, b := New(c.a), New(c.b)
		sum := a.Add(b)
		if got := sum.Sub(b); got != a {
			t.Errorf("Add/Sub round trip: (%d+%d)-%d = %d, want %d", c.a, c.b, c.b, got, a)
		}
	}
}

func TestAddWraps(t *testing.T) {
	a := New(Modulus - 1)
	b := New(2)
	got := a.Add(b)
	if want := New(1); got != want {
		t.Errorf("Add overflow: got %v, want %v", got, want)
	}
}

func TestMulIdentity(t *testing.T) {
	a := New(42)
	if got := a.Mul(One); got != a {
		t.Errorf("a*1 = %v, want %v", got, a)
	}
	if got := a.Mul(Zero); got != Zero {
		t.Errorf("a*0 = %v, want 0", got)
	}
}

func TestInverse(t *testing.T) {
	a := New(12345)
	inv, err := a.Inverse()
	if err != nil {
		t.Fatalf("Inverse failed: %v", err)
	}
	if got := a.Mul(inv); got != One {
		t.Errorf("a * a^-1 = %v, want 1", got)
	}
	if _, err := Zero.Inverse(); err == nil {
		t.Errorf("expected error inverting zero")
	}
}

func TestParseDecimalAndHex(t *testing.T) {
	d, err := ParseDecimal("135")
	if err != nil || d != New(135) {
		t.Errorf("ParseDecimal(135) = %v, %v", d, err)
	}
	h, err := ParseHex("0x7b")
	if err != nil || h != New(123) {
		t.Errorf("ParseHex(0x7b) = %v, %v", h, err)
	}
	if _, err := ParseDecimal("not-a-number"); err == nil {
		t.Errorf("expected error for invalid decimal")
	}
}

func TestParseLiteral(t *testing.T) {
	cases := []struct {
		in      string
		want    Element
		wantErr bool
	}{
		{"0", Zero, false},
		{"135", New(135), false},
		{"0x7b", New(123), false},
		{"abc", Zero, true},
		{"0xzz", Zero, true},
		{"-1", Zero, true},
	}
	for _, c := range cases {
		got, err := ParseLiteral(c.in)
		if (err != nil) != c.wantErr {
			t.Errorf("ParseLiteral(%q) error = %v, wantErr %v", c.in, err, c.wantErr)
			continue
		}
		if err == nil && got != c.want {
			t.Errorf("ParseLiteral(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestFromUint64Rejects(t *testing.T) {
	if _, err := FromUint64(Modulus); err == nil {
		t.Errorf("expected error for value == modulus")
	}
	if _, err := FromUint64(Modulus - 1); err != nil {
		t.Errorf("unexpected error for modulus-1: %v", err)
	}
}
