package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeManifest(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "factorlint.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write manifest: %v", err)
	}
	return path
}

func TestFindManifestWalksUp(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "[document]\npath = \"README.md\"\n")

	nested := filepath.Join(root, "docs", "deep")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	path, ok, err := findManifest(nested)
	if err != nil {
		t.Fatalf("findManifest failed: %v", err)
	}
	if !ok {
		t.Fatal("Expected manifest to be found from nested dir")
	}
	if filepath.Dir(path) != root {
		t.Errorf("manifest found at %s, want under %s", path, root)
	}
}

func TestFindManifestMissing(t *testing.T) {
	// Изолированный temp-каталог без манифеста вплоть до корня маловероятен,
	// но поиск из него не должен падать.
	_, ok, err := findManifest(t.TempDir())
	if err != nil {
		t.Fatalf("findManifest failed: %v", err)
	}
	_ = ok
}

func TestLoadProjectConfig(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, `
[document]
path = "README.md"
sections = 12
level = 2

[rules]
tables = "error"
fences = "off"
`)

	cfg, err := loadProjectConfig(path)
	if err != nil {
		t.Fatalf("loadProjectConfig failed: %v", err)
	}
	if cfg.Document.Path != "README.md" || cfg.Document.Sections != 12 || cfg.Document.Level != 2 {
		t.Errorf("document = %+v", cfg.Document)
	}
	if cfg.Rules["tables"] != "error" || cfg.Rules["fences"] != "off" {
		t.Errorf("rules = %+v", cfg.Rules)
	}
}

func TestLoadProjectConfigRejectsMissingSections(t *testing.T) {
	dir := t.TempDir()

	cases := []struct {
		name    string
		content string
	}{
		{"no document table", "[rules]\ntables = \"off\"\n"},
		{"no document path", "[document]\nsections = 12\n"},
		{"empty path", "[document]\npath = \"  \"\n"},
	}
	for _, tc := range cases {
		path := writeManifest(t, dir, tc.content)
		if _, err := loadProjectConfig(path); err == nil {
			t.Errorf("%s: expected error", tc.name)
		}
	}
}

func TestResolveDocumentPath(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "[document]\npath = \"docs/README.md\"\n")

	docDir := filepath.Join(root, "docs")
	if err := os.MkdirAll(docDir, 0o755); err != nil {
		t.Fatal(err)
	}
	docPath := filepath.Join(docDir, "README.md")
	if err := os.WriteFile(docPath, []byte("# x\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	manifest, ok, err := loadProjectManifest(root)
	if err != nil || !ok {
		t.Fatalf("loadProjectManifest = %v, %v", ok, err)
	}

	got, err := resolveDocumentPath(manifest)
	if err != nil {
		t.Fatalf("resolveDocumentPath failed: %v", err)
	}
	if got != docPath {
		t.Errorf("path = %s, want %s", got, docPath)
	}
}

func TestResolveDocumentPathMissingFile(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "[document]\npath = \"gone.md\"\n")

	manifest, _, err := loadProjectManifest(root)
	if err != nil {
		t.Fatalf("loadProjectManifest failed: %v", err)
	}
	if _, err := resolveDocumentPath(manifest); err == nil {
		t.Error("Expected error for missing document")
	}
}
