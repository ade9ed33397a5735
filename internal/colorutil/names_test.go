package colorutil

import "testing"

func TestNearestName(t *testing.T) {
	cases := map[string]string{
		"#ff0000": "red",
		"#000000": "black",
		"#fff":    "white",
		"#4169e1": "royalblue",
	}
	for hex, want := range cases {
		got, dist, err := NearestName(hex)
		if err != nil {
			t.Fatalf("NearestName(%s): %v", hex, err)
		}
		if got != want || dist > 1e-6 {
			t.Fatalf("NearestName(%s)=%s (%.4f) want %s", hex, got, dist, want)
		}
	}
	if _, _, err := NearestName("nope"); err == nil {
		t.Fatal("expected error for invalid hex")
	}
}

func TestNearestNameApproximate(t *testing.T) {
	got, dist, err := NearestName("#2563eb")
	if err != nil {
		t.Fatal(err)
	}
	if got == "" || dist <= 0 {
		t.Fatalf("NearestName(#2563eb)=%q (%.4f), want a non-exact match", got, dist)
	}
}
