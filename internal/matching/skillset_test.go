package matching

import (
	"reflect"
	"testing"
)

func TestNewSkillSetNormalization(t *testing.T) {
	s := NewSkillSet("  php ", "js", "php", "", "   ", "js ")

	if s.Len() != 2 {
		t.Fatalf("expected 2 skills, got %d (%v)", s.Len(), s.Slice())
	}
	if got := s.Slice(); !reflect.DeepEqual(got, []string{"php", "js"}) {
		t.Errorf("expected [php js], got %v", got)
	}
}

func TestSkillSetIsCaseSensitive(t *testing.T) {
	s := NewSkillSet("PHP", "php")

	if s.Len() != 2 {
		t.Fatalf("PHP and php must be distinct skills, got %v", s.Slice())
	}
	if s.Contains("Php") {
		t.Error("Contains must compare exactly, no case folding")
	}
}

func TestSkillSetOperations(t *testing.T) {
	a := NewSkillSet("php", "js", "sql")
	b := NewSkillSet("js", "go")

	if got := a.Intersect(b).Slice(); !reflect.DeepEqual(got, []string{"js"}) {
		t.Errorf("intersect: expected [js], got %v", got)
	}
	if got := a.Union(b).Slice(); !reflect.DeepEqual(got, []string{"php", "js", "sql", "go"}) {
		t.Errorf("union: expected [php js sql go], got %v", got)
	}
	if got := a.Difference(b).Slice(); !reflect.DeepEqual(got, []string{"php", "sql"}) {
		t.Errorf("difference: expected [php sql], got %v", got)
	}
}

func TestSkillSetZeroValue(t *testing.T) {
	var s SkillSet

	if !s.IsEmpty() {
		t.Error("zero value must be empty")
	}
	if s.Contains("php") {
		t.Error("zero value must contain nothing")
	}
	if got := s.Union(NewSkillSet("php")).Slice(); !reflect.DeepEqual(got, []string{"php"}) {
		t.Errorf("union on zero value: expected [php], got %v", got)
	}
	if got := s.Slice(); len(got) != 0 {
		t.Errorf("expected empty slice, got %v", got)
	}
}

func TestSkillSetContainsAll(t *testing.T) {
	s := NewSkillSet("php", "js", "sql")

	if !s.ContainsAll(NewSkillSet("js", "php")) {
		t.Error("expected superset to contain subset")
	}
	if s.ContainsAll(NewSkillSet("js", "go")) {
		t.Error("missing skill must fail ContainsAll")
	}
	if !s.ContainsAll(NewSkillSet()) {
		t.Error("empty set is trivially contained")
	}
}
