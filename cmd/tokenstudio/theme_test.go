package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/phyten/tokenstudio/internal/theme"
)

func TestThemeSaveListShowDelete(t *testing.T) {
	a, _, _ := newTestApp(t)
	db := filepath.Join(a.dir, "themes.db")

	out := mustRun(t, a, "theme", "save", "Ocean", "--db", db, "-p", "brand=#0ea5e9", "-p", "slate", "--steps", "10")
	if !strings.HasPrefix(out, "saved ocean (") {
		t.Fatalf("save output=%q", out)
	}

	out = mustRun(t, a, "theme", "list", "--db", db)
	if !strings.Contains(out, "ocean") || !strings.Contains(out, "NAME") {
		t.Fatalf("list output=%q", out)
	}

	out = mustRun(t, a, "theme", "show", "ocean", "--db", db, "-o", "json")
	var th theme.Theme
	if err := json.Unmarshal([]byte(out), &th); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if th.Spec.Steps != 10 || len(th.Spec.Palettes) != 2 || th.Spec.Palettes[0].BaseColor != "#0ea5e9" {
		t.Fatalf("unexpected stored spec: %+v", th.Spec)
	}

	out = mustRun(t, a, "theme", "show", "ocean", "--db", db, "-o", "plain")
	if !strings.Contains(out, "--brand-10: #") || !strings.Contains(out, "--on-slate: #") {
		t.Fatalf("plain show output=%q", out)
	}

	out = mustRun(t, a, "theme", "show", "ocean", "--db", db)
	if !strings.Contains(out, "semantic") || !strings.Contains(out, "--slate-1") {
		t.Fatalf("table show output=%q", out)
	}

	mustRun(t, a, "theme", "delete", "ocean", "--db", db)
	res := runCLI(t, a, "theme", "delete", "ocean", "--db", db)
	if res.err == nil || !strings.Contains(res.err.Error(), `no theme named "ocean"`) {
		t.Fatalf("expected not found error, got %v", res.err)
	}
	if res := runCLI(t, a, "theme", "show", "ocean", "--db", db); res.err == nil {
		t.Fatal("expected error for deleted theme")
	}
}

func TestThemeSaveKeepsIDOnOverwrite(t *testing.T) {
	a, _, _ := newTestApp(t)
	db := filepath.Join(a.dir, "themes.db")

	first := mustRun(t, a, "theme", "save", "brand", "--db", db, "-p", "blue")
	second := mustRun(t, a, "theme", "save", "brand", "--db", db, "-p", "red")
	if first != second {
		t.Fatalf("re-saving should keep the id: %q vs %q", first, second)
	}
}

func TestThemeDefaultDatabaseUsesXDGDataHome(t *testing.T) {
	a, _, _ := newTestApp(t)
	mustRun(t, a, "theme", "save", "plain", "-p", "gray")
	want := filepath.Join(a.dir, "data", "tokenstudio", "themes.db")
	if _, err := os.Stat(want); err != nil {
		t.Fatalf("expected database at %s: %v", want, err)
	}
	if out := mustRun(t, a, "theme", "list"); !strings.Contains(out, "plain") {
		t.Fatalf("list output=%q", out)
	}
}
