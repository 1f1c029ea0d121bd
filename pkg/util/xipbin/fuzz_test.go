package xipbin

import (
	"math"
	"testing"
)

func FuzzEncodeDecode(f *testing.F) {
	f.Add(uint32(0), 10)
	f.Add(uint32(1113628805), 5)
	f.Add(uint32(math.MaxUint32), 10)
	f.Add(uint32(2147483648), 1)

	f.Fuzz(func(t *testing.T, x uint32, p int) {
		token := Encode(float64(x), p)
		want := clampPrecision(p)
		if len(token) != want {
			t.Fatalf("Encode(%d, %d) length = %d, want %d", x, p, len(token), want)
		}
		for k := 0; k <= len(token); k++ {
			if got := Encode(float64(x), k); got != token[:k] {
				t.Fatalf("prefix mismatch: Encode(%d, %d) = %q, want %q", x, k, got, token[:k])
			}
		}
		value, margin, err := DecodeExactly(token)
		if err != nil {
			t.Fatalf("DecodeExactly(%q): %v", token, err)
		}
		if math.Abs(value-float64(x)) > margin+1e-6 {
			t.Errorf("|%v - %d| > %v for token %q", value, x, margin, token)
		}
		if !Contains(token, addrOf(x)) {
			t.Errorf("token %q does not contain %d", token, x)
		}
	})
}

func FuzzDecode(f *testing.F) {
	f.Add("")
	f.Add("a0ce0")
	f.Add("a0ce0ac0c1a")
	f.Add("xyz")

	f.Fuzz(func(t *testing.T, token string) {
		value, margin, err := DecodeExactly(token)
		if err != nil {
			return
		}
		if value < 0 || value > MaxAddress || margin < 0 {
			t.Errorf("DecodeExactly(%q) = (%v, %v)", token, value, margin)
		}
	})
}
