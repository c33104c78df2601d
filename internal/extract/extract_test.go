package extract

import (
	"errors"
	"reflect"
	"testing"
)

func TestSectionsBasicResume(t *testing.T) {
	text := "EXPERIENCE\nDid X\nEDUCATION\nBS CS"
	sections := Sections(text)
	if got := sections["experience"]; got != "Did X" {
		t.Fatalf("experience = %q, want %q", got, "Did X")
	}
	if got := sections["education"]; got != "BS CS" {
		t.Fatalf("education = %q, want %q", got, "BS CS")
	}
}

func TestSectionsIdempotent(t *testing.T) {
	text := "Work History\nbuilt things\nSkills\nGo, SQL\nCertifications\nCKA"
	first := Sections(text)
	second := Sections(text)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("section maps differ between runs: %v vs %v", first, second)
	}
	if len(first) == 0 {
		t.Fatalf("expected sections, got none")
	}
}

func TestSectionsNoHeaders(t *testing.T) {
	sections := Sections("just a plain paragraph with nothing resembling a resume")
	if len(sections) != 0 {
		t.Fatalf("expected empty section map, got %v", sections)
	}
}

func TestTextRejectsUnsupportedExtension(t *testing.T) {
	_, err := Text([]byte("plain text"), "resume.txt")
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestTextCorruptPDF(t *testing.T) {
	_, err := Text([]byte("not really a pdf"), "resume.pdf")
	if !errors.Is(err, ErrExtractionFailed) {
		t.Fatalf("expected ErrExtractionFailed, got %v", err)
	}
}

func TestContactExtraction(t *testing.T) {
	text := "Jane Doe\njane.doe@example.com\n+1 (415) 555-0100\nEXPERIENCE\nDid X"
	if got := firstEmail(text); got != "jane.doe@example.com" {
		t.Fatalf("email = %q", got)
	}
	phone := firstPhone(text)
	if phone == "" {
		t.Fatalf("expected a phone match")
	}
}

func TestDetectSkillsDeduplicates(t *testing.T) {
	text := "Python and python and PYTHON, plus Docker and SQL."
	skills := detectSkills(text)
	counts := map[string]int{}
	for _, s := range skills {
		counts[s]++
	}
	if counts["Python"] != 1 {
		t.Fatalf("expected Python once, got %v", skills)
	}
	if counts["Docker"] != 1 || counts["Sql"] != 1 {
		t.Fatalf("expected Docker and Sql detected, got %v", skills)
	}
}
