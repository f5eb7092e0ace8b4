package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create config dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
}

// isolate points HOME and the working directory at empty temp dirs
func isolate(t *testing.T) (home, cwd string) {
	t.Helper()

	home = t.TempDir()
	cwd = t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(cwd)
	return home, cwd
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, sources, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(sources) != 0 {
		t.Errorf("Expected no config sources, got %v", sources)
	}

	defaults := DefaultConfig()
	if cfg.Model != defaults.Model || cfg.Prompt != "> " || cfg.Debug {
		t.Errorf("Expected defaults, got %+v", cfg)
	}
}

func TestLoadExplicitFile(t *testing.T) {
	isolate(t)

	path := filepath.Join(t.TempDir(), "custom.yaml")
	writeConfig(t, path, `
model: gemini-2.5-pro
max_tokens: 1024
temperature: 0.2
prompt: "tb> "
seed_file: seed.yaml
debug: true
`)

	cfg, sources, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(sources) != 1 || sources[0] != path {
		t.Errorf("Expected source %s, got %v", path, sources)
	}
	if cfg.Model != "gemini-2.5-pro" {
		t.Errorf("Expected model override, got %s", cfg.Model)
	}
	if cfg.MaxTokens != 1024 {
		t.Errorf("Expected max_tokens 1024, got %d", cfg.MaxTokens)
	}
	if cfg.Prompt != "tb> " || cfg.SeedFile != "seed.yaml" || !cfg.Debug {
		t.Errorf("Unexpected config: %+v", cfg)
	}

	llmCfg := cfg.LLMConfig()
	if llmCfg.Model != cfg.Model || llmCfg.MaxTokens != cfg.MaxTokens {
		t.Errorf("LLMConfig should carry the chat settings, got %+v", llmCfg)
	}
}

func TestLoadExplicitFileMissing(t *testing.T) {
	isolate(t)

	if _, _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Expected an error for a missing explicit config")
	}
}

func TestProjectOverridesGlobal(t *testing.T) {
	home, cwd := isolate(t)

	writeConfig(t, filepath.Join(home, ".taskboard", "config.yaml"), "model: global-model\nprompt: 'g> '\n")
	writeConfig(t, filepath.Join(cwd, ".taskboard.yaml"), "model: project-model\n")

	cfg, sources, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(sources) != 2 {
		t.Errorf("Expected 2 sources, got %v", sources)
	}
	if cfg.Model != "project-model" {
		t.Errorf("Project config should win, got %s", cfg.Model)
	}
	if cfg.Prompt != "g> " {
		t.Errorf("Global settings not overridden should remain, got %q", cfg.Prompt)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	_, cwd := isolate(t)
	writeConfig(t, filepath.Join(cwd, ".taskboard.yaml"), "model: [unclosed\n")

	if _, _, err := Load(""); err == nil {
		t.Error("Expected an error for invalid YAML")
	}
}

func TestEnvOverrides(t *testing.T) {
	_, cwd := isolate(t)
	writeConfig(t, filepath.Join(cwd, ".taskboard.yaml"), "model: file-model\n")

	t.Setenv("TASKBOARD_MODEL", "env-model")
	t.Setenv("TASKBOARD_DEBUG", "true")

	cfg, _, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Model != "env-model" {
		t.Errorf("Environment should override files, got %s", cfg.Model)
	}
	if !cfg.Debug {
		t.Error("Expected debug from TASKBOARD_DEBUG")
	}
}
