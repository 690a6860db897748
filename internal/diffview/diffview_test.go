package diffview

import (
	"bytes"
	"strings"
	"testing"
)

func TestUnifiedMarksChangedLines(t *testing.T) {
	a := []string{"# header\n", "测\tce4\t100\n", "乙\tyi3\t1\n"}
	b := []string{"# header\n", "测\tce4;ce\t100\n", "乙\tyi3\t1\n"}

	diff, err := Unified(a, b, "chars.dict.yaml", "chars.dict.yaml (with-aux)")
	if err != nil {
		t.Fatalf("Unified: %v", err)
	}
	for _, want := range []string{
		"--- chars.dict.yaml\n",
		"+++ chars.dict.yaml (with-aux)\n",
		"@@ -1,3 +1,3 @@\n",
		"-测\tce4\t100\n",
		"+测\tce4;ce\t100\n",
		" # header\n",
	} {
		if !strings.Contains(diff, want) {
			t.Fatalf("diff missing %q:\n%s", want, diff)
		}
	}
}

func TestUnifiedIdenticalInputIsEmpty(t *testing.T) {
	lines := []string{"a\tb\tc\n"}
	diff, err := Unified(lines, lines, "x", "y")
	if err != nil {
		t.Fatalf("Unified: %v", err)
	}
	if diff != "" {
		t.Fatalf("expected empty diff, got %q", diff)
	}
}

func TestUnifiedMarksMissingFinalNewline(t *testing.T) {
	a := []string{"测\tce4\t100"}
	b := []string{"测\tce4;ce\t100"}
	diff, err := Unified(a, b, "x", "y")
	if err != nil {
		t.Fatalf("Unified: %v", err)
	}
	if strings.Count(diff, noNewlineMarker) != 2 {
		t.Fatalf("expected no-newline marker on both sides:\n%s", diff)
	}
	if a[0] != "测\tce4\t100" {
		t.Fatal("input slice was modified")
	}
}

func TestUnifiedCarriageReturnLines(t *testing.T) {
	a := []string{"# cr\r", "测\tce4\t100\r", "乙\tyi3\t1\r"}
	b := []string{"# cr\r", "测\tce4;ce\t100\r", "乙\tyi3\t1\r"}
	diff, err := Unified(a, b, "x", "y")
	if err != nil {
		t.Fatalf("Unified: %v", err)
	}
	for _, want := range []string{
		"-测\tce4\t100\r\n",
		"+测\tce4;ce\t100\r\n",
		" 乙\tyi3\t1\r\n",
	} {
		if !strings.Contains(diff, want) {
			t.Fatalf("diff missing %q:\n%q", want, diff)
		}
	}
	if strings.Contains(diff, noNewlineMarker) {
		t.Fatalf("terminated lines must not be marked:\n%q", diff)
	}
}

func TestPrinterPlain(t *testing.T) {
	var buf bytes.Buffer
	diff := "--- a\n+++ b\n@@ -1 +1 @@\n-old\n+new\n"
	if err := NewPrinter(&buf, false).Print(diff); err != nil {
		t.Fatalf("Print: %v", err)
	}
	if buf.String() != diff {
		t.Fatalf("plain output changed diff: %q", buf.String())
	}
}

func TestPrinterColor(t *testing.T) {
	var buf bytes.Buffer
	diff := "--- a\n+++ b\n@@ -1 +1 @@\n-old\n+new\n ctx\n"
	if err := NewPrinter(&buf, true).Print(diff); err != nil {
		t.Fatalf("Print: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "\x1b[") {
		t.Fatalf("expected ANSI escapes, got %q", out)
	}
	if !strings.Contains(out, "\n ctx\n") {
		t.Fatalf("context lines must stay uncoloured, got %q", out)
	}
	if strings.Count(out, "\n") != strings.Count(diff, "\n") {
		t.Fatalf("line count changed: %q", out)
	}
}

func TestShouldColor(t *testing.T) {
	var buf bytes.Buffer
	if ShouldColor(&buf, true) {
		t.Fatal("buffers are never terminals")
	}
	if ShouldColor(&buf, false) {
		t.Fatal("disabled colour must stay off")
	}
}
