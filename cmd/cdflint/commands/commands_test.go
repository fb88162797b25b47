package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/civictools/cdflint/internal/errors"
)

func TestExpandGlobs(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.xml", "b.xml", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("<ElectionReport/>"), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	sub := filepath.Join(dir, "sub")
	if err := os.Mkdir(sub, 0o700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(sub, "c.xml"), []byte("<ElectionReport/>"), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Run("literal path", func(t *testing.T) {
		files, err := expandGlobs([]string{filepath.Join(dir, "a.xml")})
		if err != nil {
			t.Fatalf("expandGlobs() error = %v", err)
		}
		if len(files) != 1 {
			t.Errorf("expandGlobs() = %v, want one file", files)
		}
	})

	t.Run("glob", func(t *testing.T) {
		files, err := expandGlobs([]string{filepath.Join(dir, "*.xml")})
		if err != nil {
			t.Fatalf("expandGlobs() error = %v", err)
		}
		if len(files) != 2 {
			t.Errorf("expandGlobs() = %v, want a.xml and b.xml", files)
		}
	})

	t.Run("doublestar glob", func(t *testing.T) {
		files, err := expandGlobs([]string{filepath.Join(dir, "**", "*.xml")})
		if err != nil {
			t.Fatalf("expandGlobs() error = %v", err)
		}
		if len(files) != 3 {
			t.Errorf("expandGlobs() = %v, want all three xml files", files)
		}
	})

	t.Run("duplicates collapse", func(t *testing.T) {
		path := filepath.Join(dir, "a.xml")
		files, err := expandGlobs([]string{path, path, filepath.Join(dir, "a*.xml")})
		if err != nil {
			t.Fatalf("expandGlobs() error = %v", err)
		}
		if len(files) != 1 {
			t.Errorf("expandGlobs() = %v, want one deduplicated file", files)
		}
	})

	t.Run("no match", func(t *testing.T) {
		_, err := expandGlobs([]string{filepath.Join(dir, "*.json")})
		if err == nil {
			t.Fatal("expandGlobs() succeeded, want error for unmatched pattern")
		}
		var exitErr *errors.ExitError
		if !errors.As(err, &exitErr) || exitErr.Code != errors.ExitUser {
			t.Errorf("error = %v, want user-level ExitError", err)
		}
	})
}

func TestRunList(t *testing.T) {
	restore := listRuleSet
	defer func() { listRuleSet = restore; listFormat = "text" }()

	t.Run("text lists every rule", func(t *testing.T) {
		listRuleSet, listFormat = "", "text"
		var buf bytes.Buffer
		c := &cobra.Command{}
		c.SetOut(&buf)

		if err := runList(c, nil); err != nil {
			t.Fatalf("runList() error = %v", err)
		}
		out := buf.String()
		for _, want := range []string{"ValidIDREF", "GpUnitCycles", "VoteCountPlausibility", "21 rules"} {
			if !strings.Contains(out, want) {
				t.Errorf("output missing %q:\n%s", want, out)
			}
		}
	})

	t.Run("rule set filter", func(t *testing.T) {
		listRuleSet, listFormat = "officeholder", "text"
		var buf bytes.Buffer
		c := &cobra.Command{}
		c.SetOut(&buf)

		if err := runList(c, nil); err != nil {
			t.Fatalf("runList() error = %v", err)
		}
		out := buf.String()
		if !strings.Contains(out, "OfficeTermDates") {
			t.Errorf("officeholder listing missing OfficeTermDates:\n%s", out)
		}
		if strings.Contains(out, "VoteCountPlausibility") {
			t.Errorf("officeholder listing contains a results-only rule:\n%s", out)
		}
	})

	t.Run("yaml", func(t *testing.T) {
		listRuleSet, listFormat = "", "yaml"
		var buf bytes.Buffer
		c := &cobra.Command{}
		c.SetOut(&buf)

		if err := runList(c, nil); err != nil {
			t.Fatalf("runList() error = %v", err)
		}
		out := buf.String()
		for _, want := range []string{"name: ValidIDREF", "severity: Error"} {
			if !strings.Contains(out, want) {
				t.Errorf("yaml output missing %q:\n%s", want, out)
			}
		}
	})

	t.Run("unknown rule set", func(t *testing.T) {
		listRuleSet, listFormat = "referendum", "text"
		c := &cobra.Command{}
		if err := runList(c, nil); err == nil {
			t.Fatal("runList() succeeded, want error")
		}
	})

	t.Run("unknown format", func(t *testing.T) {
		listRuleSet, listFormat = "", "csv"
		c := &cobra.Command{}
		if err := runList(c, nil); err == nil {
			t.Fatal("runList() succeeded, want error")
		}
	})
}
