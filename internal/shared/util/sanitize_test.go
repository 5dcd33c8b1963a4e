package util

import "testing"

func TestSanitizeFileName(t *testing.T) {
	if _, err := SanitizeFileName("../../etc/passwd"); err == nil {
		t.Fatalf("expected traversal rejection")
	}
	if _, err := SanitizeFileName("   "); err == nil {
		t.Fatalf("expected empty rejection")
	}
	got, err := SanitizeFileName("dir/curriculo.pdf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "dir_curriculo.pdf" {
		t.Fatalf("expected dir_curriculo.pdf, got %s", got)
	}
}

func TestSanitizeFileNameAllowsInnerDots(t *testing.T) {
	got, err := SanitizeFileName("my..cv.pdf")
	if err != nil {
		t.Fatalf("inner dots are not traversal: %v", err)
	}
	if got != "my..cv.pdf" {
		t.Fatalf("expected my..cv.pdf, got %s", got)
	}
	if _, err := SanitizeFileName(".."); err == nil {
		t.Fatalf("bare .. must be rejected")
	}
}

func TestNameSlug(t *testing.T) {
	cases := map[string]string{
		"Maria Silva":        "Maria_Silva",
		"José  da--Costa":    "Jos_da_Costa",
		"  Ana ":             "Ana",
		"!!!":                "",
		"joao123 pereira ":   "joao123_pereira",
	}
	for in, want := range cases {
		if got := NameSlug(in); got != want {
			t.Fatalf("NameSlug(%q) = %q, want %q", in, got, want)
		}
	}
}
