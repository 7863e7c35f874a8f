package digest

import "testing"

func TestBytesDeterministic(t *testing.T) {
	a := Bytes([]byte("hello"))
	b := Bytes([]byte("hello"))
	if a != b {
		t.Errorf("same input produced different digests: %s vs %s", a, b)
	}
}

func TestBytesKnownValue(t *testing.T) {
	// MD5("hello") is a fixed value; guards against accidental algorithm swaps.
	got := Bytes([]byte("hello"))
	want := "5d41402abc4b2a76b9719d911017c592"
	if got != want {
		t.Errorf("Bytes(\"hello\") = %s, want %s", got, want)
	}
}

func TestBytesDistinguishesContent(t *testing.T) {
	if Bytes([]byte("hello")) == Bytes([]byte("world")) {
		t.Error("different inputs produced the same digest")
	}
}

func TestStringMatchesBytes(t *testing.T) {
	if String("héllo") != Bytes([]byte("héllo")) {
		t.Error("String should digest the UTF-8 encoding exactly")
	}
}

func TestBytesEmptyInput(t *testing.T) {
	got := Bytes(nil)
	want := "d41d8cd98f00b204e9800998ecf8427e"
	if got != want {
		t.Errorf("Bytes(nil) = %s, want %s", got, want)
	}
}
