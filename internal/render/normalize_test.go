package render

import "testing"

func TestNormalizeGo_FormatsSource(t *testing.T) {
	in := []byte("package demo\n\nvar  Name   = \"x\"\n")
	out := NormalizeGo(in, "demo/app.go")
	if string(out) != "package demo\n\nvar Name = \"x\"\n" {
		t.Errorf("unexpected output: %q", out)
	}
}

func TestNormalizeGo_NonGoPassthrough(t *testing.T) {
	in := []byte("not   go   at all")
	out := NormalizeGo(in, "README.md")
	if string(out) != string(in) {
		t.Error("non-Go content must pass through unchanged")
	}
}

func TestNormalizeGo_InvalidSourcePassthrough(t *testing.T) {
	// A template can legitimately render a partial file; normalization must
	// never break the write.
	in := []byte("func orphan() {")
	out := NormalizeGo(in, "x.go")
	if string(out) != string(in) {
		t.Error("unformattable content must pass through unchanged")
	}
}
