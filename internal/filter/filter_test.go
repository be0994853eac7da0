package filter

import (
	"testing"

	"github.com/KaramelBytes/depdash/internal/dataset"
	"github.com/google/go-cmp/cmp"
)

var header = []string{"Year", "Disadvantaged?", "CP", "Reg Form"}

func sample() dataset.RecordSet {
	rows := [][]string{
		{"7", "Y", "", "7B"},
		{"8", "N", "Plan", "LST-A"},
		{"7", "Y", "  ", "AME"},
		{"10", "N", "", "10C"},
	}
	out := make(dataset.RecordSet, len(rows))
	for i, r := range rows {
		out[i] = dataset.NewRecord(header, r)
	}
	return out
}

func years(set dataset.RecordSet) []string {
	out := make([]string, len(set))
	for i, r := range set {
		out[i] = r.Get("Year") + "/" + r.Get("Reg Form")
	}
	return out
}

func TestMultiValue(t *testing.T) {
	got := Apply(sample(), MultiValue("Year", []string{"7", "10"}))
	if diff := cmp.Diff([]string{"7/7B", "7/AME", "10/10C"}, years(got)); diff != "" {
		t.Fatalf("multi-value (-want +got):\n%s", diff)
	}
}

func TestMultiValue_EmptySelectionPassesNothing(t *testing.T) {
	if got := Apply(sample(), MultiValue("Year", nil)); len(got) != 0 {
		t.Fatalf("expected no records, got %d", len(got))
	}
}

func TestConjunction_NoActiveCriteriaReturnsEverything(t *testing.T) {
	in := sample()
	p := Conjunction(
		Criterion{Name: "dis", Condition: Equals{Field: "Disadvantaged?", Value: "Y"}},
		Criterion{Name: "cp", Condition: NonEmpty{Field: "CP"}},
	)
	got := Apply(in, p)
	if diff := cmp.Diff(years(in), years(got)); diff != "" {
		t.Fatalf("vacuous conjunction changed set (-want +got):\n%s", diff)
	}
}

func TestConjunction_AllActiveMustHold(t *testing.T) {
	p := Conjunction(
		Criterion{Name: "dis", Active: true, Condition: Equals{Field: "Disadvantaged?", Value: "Y"}},
		Criterion{Name: "ap", Active: true, Condition: AnyOf("Reg Form", "LST", "AME")},
	)
	if diff := cmp.Diff([]string{"7/AME"}, years(Apply(sample(), p))); diff != "" {
		t.Fatalf("conjunction (-want +got):\n%s", diff)
	}
}

func TestNonEmptyTrims(t *testing.T) {
	p := Conjunction(Criterion{Name: "cp", Active: true, Condition: NonEmpty{Field: "CP"}})
	if diff := cmp.Diff([]string{"8/LST-A"}, years(Apply(sample(), p))); diff != "" {
		t.Fatalf("non-empty (-want +got):\n%s", diff)
	}
}

func TestMatchesAndAnyOf(t *testing.T) {
	pat, err := Matches("Reg Form", "LST|AME")
	if err != nil {
		t.Fatalf("matches: %v", err)
	}
	got := Apply(sample(), Conjunction(Criterion{Active: true, Condition: pat}))
	if len(got) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(got))
	}
	if _, err := Matches("Reg Form", "("); err == nil {
		t.Fatalf("expected compile error")
	}
	never := AnyOf("Reg Form")
	if len(Apply(sample(), never.Holds)) != 0 {
		t.Fatalf("empty AnyOf should never match")
	}
	dotted := AnyOf("Reg Form", "7.")
	if dotted.Holds(dataset.NewRecord(header, []string{"", "", "", "7B"})) {
		t.Fatalf("AnyOf must quote metacharacters")
	}
}

func TestAndAndApplyDoNotMutate(t *testing.T) {
	in := sample()
	before := years(in)
	p := And(MultiValue("Year", []string{"7", "8"}), nil, Equals{Field: "Disadvantaged?", Value: "N"}.Holds)
	if diff := cmp.Diff([]string{"8/LST-A"}, years(Apply(in, p))); diff != "" {
		t.Fatalf("and (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(before, years(in)); diff != "" {
		t.Fatalf("input mutated (-want +got):\n%s", diff)
	}
	if len(Apply(in, And())) != len(in) {
		t.Fatalf("empty And should pass all")
	}
	if len(Apply(in, nil)) != len(in) {
		t.Fatalf("nil predicate should pass all")
	}
}
