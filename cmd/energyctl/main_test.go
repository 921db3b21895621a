package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	query "energy-dashboard/internal/query/domain"
)

func writeFixture(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	generation := strings.Join([]string{
		"YEAR,STATE,TYPE OF PRODUCER,ENERGY SOURCE,GENERATION (Megawatthours)",
		"2020,TX,Total Electric Power Industry,Coal,\"1,500\"",
		"2020,OH,Total Electric Power Industry,Coal,700",
		"2020,US-TOTAL,Total Electric Power Industry,Coal,9000",
		"2020,ZZ,Total Electric Power Industry,Coal,1",
	}, "\n")
	consumption := strings.Join([]string{
		"Annual Total,Total Renewable Energy Consumption,Total Primary Energy Consumption",
		"1989,6,80",
		"2020,11.5,92.9",
	}, "\n")
	genPath := filepath.Join(dir, "generation.csv")
	consPath := filepath.Join(dir, "consumption.csv")
	cfgPath := filepath.Join(dir, "config.yaml")
	cfg := "feeds:\n" +
		"  source: csv\n" +
		"  generation:\n    path: " + genPath + "\n    header_row: 1\n" +
		"  consumption:\n    path: " + consPath + "\n    header_row: 1\n"
	for path, content := range map[string]string{genPath: generation, consPath: consumption, cfgPath: cfg} {
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
	}
	return cfgPath
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("FEED_SOURCE", "")
	t.Setenv("ENERGY_CONFIG", "")
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestValidate(t *testing.T) {
	cfg := writeFixture(t)
	out, err := run(t, "validate", "--config", cfg)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !strings.Contains(out, "generation feed") || !strings.Contains(out, "consumption feed") {
		t.Fatalf("missing feed sections:\n%s", out)
	}
	if !strings.Contains(out, "per-state records: 2, national records: 1, consumption records: 1") {
		t.Fatalf("unexpected counts:\n%s", out)
	}
	if !strings.Contains(out, "unresolved state") {
		t.Fatalf("expected rejected row sample:\n%s", out)
	}
}

func TestValidateMissingFeed(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	cfg := "feeds:\n  source: csv\n  generation:\n    path: " + filepath.Join(dir, "nope.csv") + "\n  consumption:\n    path: " + filepath.Join(dir, "nope.csv") + "\n"
	if err := os.WriteFile(cfgPath, []byte(cfg), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := run(t, "validate", "--config", cfgPath); err == nil {
		t.Fatalf("expected error for missing feeds")
	}
}

func TestQueryJSON(t *testing.T) {
	cfg := writeFixture(t)
	out, err := run(t, "query", "--config", cfg, "--year", "2020", "--source", "Coal", "--json")
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	var views query.FiveViews
	if err := json.Unmarshal([]byte(out), &views); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if len(views.StateChoropleth) != 2 {
		t.Fatalf("expected 2 states, got %+v", views.StateChoropleth)
	}
	if len(views.PrimaryConsumptionForYear) != 1 || views.PrimaryConsumptionForYear[0].Value != 92.9 {
		t.Fatalf("unexpected primary consumption %+v", views.PrimaryConsumptionForYear)
	}
}

func TestQueryText(t *testing.T) {
	cfg := writeFixture(t)
	out, err := run(t, "query", "--config", cfg, "--source", "Coal")
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if !strings.HasPrefix(out, "Selected year: 2020") {
		t.Fatalf("expected label first:\n%s", out)
	}
	if !strings.Contains(out, "TX") {
		t.Fatalf("expected TX row:\n%s", out)
	}
}

func TestQueryBadYear(t *testing.T) {
	cfg := writeFixture(t)
	if _, err := run(t, "query", "--config", cfg, "--year", "abc"); err == nil {
		t.Fatalf("expected error for non-integer year")
	}
}

func TestExport(t *testing.T) {
	cfg := writeFixture(t)
	dir := t.TempDir()
	for _, format := range []string{"xlsx", "pdf"} {
		path := filepath.Join(dir, "views."+format)
		if _, err := run(t, "export", "--config", cfg, "--format", format, "--out", path); err != nil {
			t.Fatalf("export %s: %v", format, err)
		}
		info, err := os.Stat(path)
		if err != nil || info.Size() == 0 {
			t.Fatalf("expected %s to be written: %v", path, err)
		}
	}
	if _, err := run(t, "export", "--config", cfg, "--format", "csv", "--out", filepath.Join(dir, "x")); err == nil {
		t.Fatalf("expected unsupported format error")
	}
}
