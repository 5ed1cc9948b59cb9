package diff

import (
	"strings"
	"testing"
)

func TestLines_Identical(t *testing.T) {
	r := Lines("a", "b", "1\n2\n", "1\n2\n")
	if !r.Empty() {
		t.Fatalf("expected empty diff, got %d hunks", len(r.Hunks))
	}
	if r.Unified() != "" {
		t.Errorf("expected empty rendering, got %q", r.Unified())
	}
}

func TestLines_SingleChange(t *testing.T) {
	r := Lines("expected", "actual", "a\nb\nc\n", "a\nx\nc\n")
	if len(r.Hunks) != 1 {
		t.Fatalf("expected 1 hunk, got %d", len(r.Hunks))
	}

	want := "--- expected\n+++ actual\n@@ -1,3 +1,3 @@\n a\n-b\n+x\n c\n"
	if got := r.Unified(); got != want {
		t.Errorf("unexpected rendering:\n%s\nwant:\n%s", got, want)
	}
}

func TestLines_FourReportedAsPrime(t *testing.T) {
	expected := "Primes from 1 to 10:\n2\n3\n5\n7\n"
	actual := "Primes from 1 to 10:\n2\n3\n4\n5\n7\n"

	r := Lines("Primes.golden", "Primes.out", expected, actual)
	if len(r.Hunks) != 1 {
		t.Fatalf("expected 1 hunk, got %d", len(r.Hunks))
	}
	h := r.Hunks[0]
	if h.OldCount != 5 || h.NewCount != 6 {
		t.Errorf("expected counts 5/6, got %d/%d", h.OldCount, h.NewCount)
	}

	added := 0
	for _, l := range h.Lines {
		if l.Type == LineAdded {
			added++
			if l.Content != "4\n" {
				t.Errorf("expected added line 4, got %q", l.Content)
			}
		}
	}
	if added != 1 {
		t.Errorf("expected 1 added line, got %d", added)
	}
}

func TestLines_DistantChangesSplitHunks(t *testing.T) {
	var exp, act []string
	for i := 0; i < 30; i++ {
		exp = append(exp, "same")
		act = append(act, "same")
	}
	exp[2], act[2] = "old-top", "new-top"
	exp[27], act[27] = "old-bottom", "new-bottom"

	r := Lines("e", "a", strings.Join(exp, "\n")+"\n", strings.Join(act, "\n")+"\n")
	if len(r.Hunks) != 2 {
		t.Fatalf("expected 2 hunks, got %d", len(r.Hunks))
	}
	if r.Hunks[1].OldStart != 25 {
		t.Errorf("expected second hunk to start at line 25, got %d", r.Hunks[1].OldStart)
	}
}

func TestLines_MissingTrailingNewline(t *testing.T) {
	r := Lines("e", "a", "1\n2\n", "1\n2")
	out := r.Unified()
	if !strings.Contains(out, "\\ No newline at end of file") {
		t.Errorf("expected no-newline marker, got:\n%s", out)
	}
}

func TestNewEngine_ZeroContext(t *testing.T) {
	e := NewEngine(0)
	r := e.Lines("e", "a", "a\nb\nc\n", "a\nx\nc\n")
	if len(r.Hunks) != 1 {
		t.Fatalf("expected 1 hunk, got %d", len(r.Hunks))
	}
	for _, l := range r.Hunks[0].Lines {
		if l.Type == LineContext {
			t.Errorf("unexpected context line %q", l.Content)
		}
	}
	if r.Hunks[0].OldStart != 2 {
		t.Errorf("expected OldStart 2, got %d", r.Hunks[0].OldStart)
	}
}

func TestNewEngine_ZeroContextReplacement(t *testing.T) {
	r := NewEngine(0).Lines("e", "a", "a\nb\nc\n", "a\nx\nc\n")
	want := "--- e\n+++ a\n@@ -2,1 +2,1 @@\n-b\n+x\n"
	if got := r.Unified(); got != want {
		t.Errorf("unexpected rendering:\n%s\nwant:\n%s", got, want)
	}
}

func TestLines_PureInsertionReportsLineBefore(t *testing.T) {
	r := NewEngine(0).Lines("e", "a", "a\nc\n", "a\nb\nc\n")
	if len(r.Hunks) != 1 {
		t.Fatalf("expected 1 hunk, got %d", len(r.Hunks))
	}
	h := r.Hunks[0]
	if h.OldStart != 1 || h.OldCount != 0 || h.NewStart != 2 || h.NewCount != 1 {
		t.Errorf("expected @@ -1,0 +2,1 @@, got @@ -%d,%d +%d,%d @@", h.OldStart, h.OldCount, h.NewStart, h.NewCount)
	}
}

func TestLines_PureDeletionAtStart(t *testing.T) {
	r := NewEngine(0).Lines("e", "a", "a\nb\n", "b\n")
	h := r.Hunks[0]
	if h.OldStart != 1 || h.OldCount != 1 || h.NewStart != 0 || h.NewCount != 0 {
		t.Errorf("expected @@ -1,1 +0,0 @@, got @@ -%d,%d +%d,%d @@", h.OldStart, h.OldCount, h.NewStart, h.NewCount)
	}
}

func TestLines_ChangesSixApartShareHunk(t *testing.T) {
	exp := []string{"0", "old1", "2", "3", "4", "5", "6", "7", "old8", "9"}
	act := []string{"0", "new1", "2", "3", "4", "5", "6", "7", "new8", "9"}

	r := Lines("e", "a", strings.Join(exp, "\n")+"\n", strings.Join(act, "\n")+"\n")
	if len(r.Hunks) != 1 {
		t.Fatalf("expected 1 hunk for changes 6 unchanged lines apart, got %d", len(r.Hunks))
	}
	h := r.Hunks[0]
	if h.OldStart != 1 || h.OldCount != 10 || h.NewCount != 10 {
		t.Errorf("expected @@ -1,10 +1,10 @@, got @@ -%d,%d +%d,%d @@", h.OldStart, h.OldCount, h.NewStart, h.NewCount)
	}
}
