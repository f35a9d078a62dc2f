package parse

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"bold", "**Flying Broom** +0.01 TON", "Flying Broom +0.01 TON"},
		{"underline", "__Floor Tonnel__: 0,69 TON", "Floor Tonnel: 0,69 TON"},
		{"link", "[Flying Broom](https://t.me/nft/FlyingBroom-1) +0.01 TON", "Flying Broom +0.01 TON"},
		{"https link", "[label](http://example.com/x) rest", "label rest"},
		{"plain text no-op", "Flying Broom +0.01 TON", "Flying Broom +0.01 TON"},
		{"empty", "", ""},
		{"all three", "**a** __b__ [c](https://x.y)", "a b c"},
		{"unmatched markers untouched", "**partial __mix", "**partial __mix"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Normalize(tc.in); got != tc.want {
				t.Errorf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}
