package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const noManifestMessage = "no factorlint.toml found\nplease specify the document explicitly, e.g.:\n  factorlint check path/to/README.md"

type projectManifest struct {
	Path   string
	Root   string
	Config projectConfig
}

type projectConfig struct {
	Document documentConfig    `toml:"document"`
	Rules    map[string]string `toml:"rules"`
}

type documentConfig struct {
	Path     string `toml:"path"`
	Sections int    `toml:"sections"`
	Level    int    `toml:"level"`
}

func findManifest(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "factorlint.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

func loadProjectManifest(startDir string) (*projectManifest, bool, error) {
	manifestPath, ok, err := findManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := loadProjectConfig(manifestPath)
	if err != nil {
		return nil, true, err
	}
	return &projectManifest{
		Path:   manifestPath,
		Root:   filepath.Dir(manifestPath),
		Config: cfg,
	}, true, nil
}

func loadProjectConfig(path string) (projectConfig, error) {
	var cfg projectConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return projectConfig{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("document") {
		return projectConfig{}, fmt.Errorf("%s: missing [document]", path)
	}
	if !meta.IsDefined("document", "path") || strings.TrimSpace(cfg.Document.Path) == "" {
		return projectConfig{}, fmt.Errorf("%s: missing [document].path", path)
	}
	if cfg.Document.Sections < 0 {
		return projectConfig{}, fmt.Errorf("%s: [document].sections must be positive", path)
	}
	return cfg, nil
}

// resolveDocumentPath возвращает путь документа из манифеста.
func resolveDocumentPath(manifest *projectManifest) (string, error) {
	if manifest == nil {
		return "", fmt.Errorf("missing project manifest")
	}
	rel := strings.TrimSpace(manifest.Config.Document.Path)
	path := filepath.Join(manifest.Root, filepath.FromSlash(rel))
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%s: [document].path does not exist: %s", manifest.Path, path)
		}
		return "", fmt.Errorf("%s: failed to stat [document].path: %w", manifest.Path, err)
	}
	return path, nil
}
