package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/KaramelBytes/depdash/internal/dashboard"
)

// runCmd executes the root command with args and returns stdout.
func runCmd(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	// Reset bound variables and sticky Changed state across invocations
	repYears, repProvisions, repMarkers = nil, nil, nil
	repFormat, repPretty, optJSON = "markdown", false, false
	dataPath, cfgFile, debug = "", "", false
	for _, name := range []string{"year", "provision", "marker", "format", "pretty"} {
		if fl := reportCmd.Flags().Lookup(name); fl != nil {
			fl.Changed = false
		}
	}
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := runCmd(t, "", args...)
	if err != nil {
		t.Fatalf("command %v failed: %v", args, err)
	}
	return out
}

func writeDataset(t *testing.T, dir string) string {
	t.Helper()
	c := dashboard.DefaultColumns()
	header := []string{c.YearGroup, c.Disadvantaged, c.DisadvantageCount, c.FSM, c.SEN, c.RegForm, c.Attendance}
	rows := [][]string{
		header,
		{"7", "Y", "3", "Yes", "Yes", "7A", "95.5"},
		{"10", "Y", "1", "Yes", "No", "LST-A", ""},
		{"7", "N", "0", "No", "No", "7B", "87.2"},
		{"8", "N", "2", "No", "Yes", "8C", "bad"},
	}
	var b strings.Builder
	for _, r := range rows {
		for i, cell := range r {
			if i > 0 {
				b.WriteByte(',')
			}
			if strings.ContainsAny(cell, ",\"") {
				cell = `"` + strings.ReplaceAll(cell, `"`, `""`) + `"`
			}
			b.WriteString(cell)
		}
		b.WriteByte('\n')
	}
	p := filepath.Join(dir, "students.csv")
	if err := os.WriteFile(p, []byte(b.String()), 0o644); err != nil {
		t.Fatalf("write dataset: %v", err)
	}
	return p
}

func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(home); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return home
}

func TestCLI_ReportMarkdown(t *testing.T) {
	home := isolateHome(t)
	data := writeDataset(t, home)
	out := mustRun(t, "report", "--data", data)
	for _, want := range []string{"[HEADLINE]", "Students: 4 of 4", "- Disadvantaged: 50.0% (2 students)"} {
		if !strings.Contains(out, want) {
			t.Fatalf("report missing %q:\n%s", want, out)
		}
	}
}

func TestCLI_ReportFiltersAndJSON(t *testing.T) {
	home := isolateHome(t)
	data := writeDataset(t, home)
	out := mustRun(t, "report", "--data", data, "--year", "7", "--marker", "sen", "--format", "json")
	var v dashboard.View
	if err := json.Unmarshal([]byte(out), &v); err != nil {
		t.Fatalf("decode json: %v\n%s", err, out)
	}
	if v.Total != 1 || v.Population != 4 {
		t.Fatalf("expected 1 of 4, got %d of %d", v.Total, v.Population)
	}
}

func TestCLI_ReportPretty(t *testing.T) {
	home := isolateHome(t)
	data := writeDataset(t, home)
	out := mustRun(t, "report", "--data", data, "--pretty")
	if !strings.Contains(out, "HEADLINE") {
		t.Fatalf("pretty output missing section:\n%s", out)
	}
}

func TestCLI_ReportHTML(t *testing.T) {
	home := isolateHome(t)
	data := writeDataset(t, home)
	out := mustRun(t, "report", "--data", data, "--format", "html")
	for _, want := range []string{"<h2", "HEADLINE", "<table>", "<li>Students: 4 of 4</li>", "<li>Year groups: 7, 8, 10</li>"} {
		if !strings.Contains(out, want) {
			t.Fatalf("html missing %q:\n%s", want, out)
		}
	}
}

func TestCLI_ReportErrors(t *testing.T) {
	home := isolateHome(t)
	data := writeDataset(t, home)
	cases := [][]string{
		{"report"},
		{"report", "--data", filepath.Join(home, "missing.csv")},
		{"report", "--data", data, "--marker", "rich"},
		{"report", "--data", data, "--format", "pdf"},
	}
	for _, args := range cases {
		if _, err := runCmd(t, "", args...); err == nil {
			t.Fatalf("%v: expected error", args)
		}
	}
}

func TestCLI_OptionsAndFields(t *testing.T) {
	home := isolateHome(t)
	data := writeDataset(t, home)
	out := mustRun(t, "options", "--data", data)
	if !strings.Contains(out, "Year groups: 7, 8, 10") || !strings.Contains(out, "alternative_provision") {
		t.Fatalf("unexpected options:\n%s", out)
	}
	out = mustRun(t, "fields", "--data", data)
	if !strings.Contains(out, "(3 non-empty) [attendance]") {
		t.Fatalf("unexpected fields:\n%s", out)
	}
	if !strings.Contains(out, "Missing configured columns:") {
		t.Fatalf("expected missing columns listed:\n%s", out)
	}
}

func TestCLI_Explore(t *testing.T) {
	home := isolateHome(t)
	data := writeDataset(t, home)
	out, err := runCmd(t, "year 7\nmarker +fsm\nshow\nquit\n", "explore", "--data", data)
	if err != nil {
		t.Fatalf("explore: %v", err)
	}
	for _, want := range []string{"Students: 2 of 4", "Students: 1 of 4", "[KEY INSIGHTS]"} {
		if !strings.Contains(out, want) {
			t.Fatalf("explore missing %q:\n%s", want, out)
		}
	}
}

func TestCLI_ConfigSetAndShow(t *testing.T) {
	home := isolateHome(t)
	data := writeDataset(t, home)
	mustRun(t, "config", "set", "data_path", data)
	if _, err := os.Stat(filepath.Join(home, ".depdash", "config.yaml")); err != nil {
		t.Fatalf("config not saved: %v", err)
	}
	out := mustRun(t, "config", "show")
	if !strings.Contains(out, "data_path: "+data) {
		t.Fatalf("show missing data_path:\n%s", out)
	}
	// data_path from config replaces --data
	out = mustRun(t, "report")
	if !strings.Contains(out, "Students: 4 of 4") {
		t.Fatalf("report via config failed:\n%s", out)
	}
	if _, err := runCmd(t, "", "config", "set", "bogus", "1"); err == nil {
		t.Fatalf("expected error for unknown key")
	}
}
