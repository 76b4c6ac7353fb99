package cli

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/spf13/cobra"

	"github.com/matzehuels/taxoviz/pkg/errors"
)

// resolveArgs runs a throwaway command with the render flags and returns
// the resolved configuration.
func resolveArgs(t *testing.T, args ...string) (Config, error) {
	t.Helper()
	var (
		flags configFlags
		cfg   Config
	)
	cmd := &cobra.Command{
		Use:  "test [file]",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var input string
			if len(args) == 1 {
				input = args[0]
			}
			var err error
			cfg, err = flags.resolve(cmd, input)
			return err
		},
	}
	flags.register(cmd)
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true
	cmd.SetArgs(args)
	err := cmd.Execute()
	return cfg, err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultConfigValid(t *testing.T) {
	cfg := defaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaultConfig().Validate() = %v", err)
	}
	if cfg.Input != "custom_knowledge_taxonomy.json" {
		t.Errorf("Input = %q", cfg.Input)
	}
	if !slices.Equal(cfg.Formats, []string{"html"}) {
		t.Errorf("Formats = %v", cfg.Formats)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown format", func(c *Config) { c.Formats = []string{"png"} }},
		{"no formats", func(c *Config) { c.Formats = nil }},
		{"bad height", func(c *Config) { c.Height = "tall" }},
		{"bad width", func(c *Config) { c.Width = "100" }},
		{"bad solver", func(c *Config) { c.Solver = "gravity" }},
		{"negative depth", func(c *Config) { c.MaxDepth = -1 }},
		{"zero jobs", func(c *Config) { c.Jobs = 0 }},
		{"too many jobs", func(c *Config) { c.Jobs = 65 }},
		{"empty root", func(c *Config) { c.Roots = []string{""} }},
		{"bad language", func(c *Config) { c.Language = "not a tag" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("Validate() = %v, want INVALID_CONFIG", err)
			}
		})
	}
}

func TestLoadConfigTOML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "taxoviz.toml", `
input = "kb.json"
output_dir = "site"
formats = ["html", "svg"]
height = "900px"
jobs = 4
`)

	cfg := defaultConfig()
	got, err := loadConfig(path, &cfg)
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}
	if got != path {
		t.Errorf("loadConfig() path = %q, want %q", got, path)
	}
	if cfg.Input != "kb.json" || cfg.OutputDir != "site" || cfg.Height != "900px" || cfg.Jobs != 4 {
		t.Errorf("cfg = %+v", cfg)
	}
	if !slices.Equal(cfg.Formats, []string{"html", "svg"}) {
		t.Errorf("Formats = %v", cfg.Formats)
	}
	if cfg.Width != "100%" {
		t.Errorf("Width = %q, want default kept", cfg.Width)
	}
}

func TestLoadConfigYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "taxoviz.yaml", `
input: kb.json
roots: [ex:animals]
solver: barnesHut
hierarchical: true
`)

	cfg := defaultConfig()
	if _, err := loadConfig(path, &cfg); err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}
	if cfg.Solver != "barnesHut" || !cfg.Hierarchical {
		t.Errorf("cfg = %+v", cfg)
	}
	if !slices.Equal(cfg.Roots, []string{"ex:animals"}) {
		t.Errorf("Roots = %v", cfg.Roots)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		path string
		code errors.Code
	}{
		{"missing", filepath.Join(dir, "nope.toml"), errors.ErrCodeFileNotFound},
		{"unknown toml key", writeFile(t, dir, "a.toml", "colour = \"red\"\n"), errors.ErrCodeInvalidConfig},
		{"unknown yaml key", writeFile(t, dir, "a.yaml", "colour: red\n"), errors.ErrCodeInvalidConfig},
		{"broken toml", writeFile(t, dir, "b.toml", "input = \n"), errors.ErrCodeInvalidConfig},
		{"unsupported ext", writeFile(t, dir, "c.ini", "input=x\n"), errors.ErrCodeInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			_, err := loadConfig(tt.path, &cfg)
			if !errors.Is(err, tt.code) {
				t.Errorf("loadConfig() = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestLoadConfigDiscovery(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	cfg := defaultConfig()
	if got, err := loadConfig("", &cfg); err != nil || got != "" {
		t.Fatalf("loadConfig() without file = %q, %v", got, err)
	}

	writeFile(t, dir, "taxoviz.yml", "output_dir: out\n")
	got, err := loadConfig("", &cfg)
	if err != nil {
		t.Fatal(err)
	}
	if got != "taxoviz.yml" || cfg.OutputDir != "out" {
		t.Errorf("loadConfig() = %q, OutputDir = %q", got, cfg.OutputDir)
	}
}

func TestResolvePrecedence(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeFile(t, dir, "taxoviz.toml", `
input = "from-file.json"
output_dir = "file-out"
jobs = 2
`)

	cfg, err := resolveArgs(t, "-o", "flag-out", "--root", "ex:a", "--root", "ex:b")
	if err != nil {
		t.Fatalf("resolve() error: %v", err)
	}
	if cfg.Input != "from-file.json" {
		t.Errorf("Input = %q, want value from file", cfg.Input)
	}
	if cfg.OutputDir != "flag-out" {
		t.Errorf("OutputDir = %q, want flag value", cfg.OutputDir)
	}
	if cfg.Jobs != 2 {
		t.Errorf("Jobs = %d, want file value (unset flag default must not win)", cfg.Jobs)
	}
	if !slices.Equal(cfg.Roots, []string{"ex:a", "ex:b"}) {
		t.Errorf("Roots = %v", cfg.Roots)
	}

	cfg, err = resolveArgs(t, "positional.json", "-f", "svg,dot")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Input != "positional.json" {
		t.Errorf("Input = %q, want positional argument", cfg.Input)
	}
	if !slices.Equal(cfg.Formats, []string{"svg", "dot"}) {
		t.Errorf("Formats = %v", cfg.Formats)
	}
}

func TestResolveInvalidFlag(t *testing.T) {
	t.Chdir(t.TempDir())
	_, err := resolveArgs(t, "--solver", "gravity")
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("resolve() = %v, want INVALID_CONFIG", err)
	}
}

func TestPipelineOptions(t *testing.T) {
	cfg := defaultConfig()
	cfg.Hierarchical = true
	cfg.MaxDepth = 3
	opts := cfg.pipelineOptions()
	if !opts.HTML.Hierarchical || opts.MaxDepth != 3 || opts.HTML.Height != cfg.Height {
		t.Errorf("pipelineOptions() = %+v", opts)
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Errorf("ValidateAndSetDefaults() = %v", err)
	}
}
