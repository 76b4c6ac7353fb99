package cli

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/taxoviz/pkg/errors"
	"github.com/matzehuels/taxoviz/pkg/pipeline"
	"github.com/matzehuels/taxoviz/pkg/render"
	"github.com/matzehuels/taxoviz/pkg/render/html"
)

// configNames are looked up in the working directory, in order, when no
// --config flag is given.
var configNames = []string{appName + ".toml", appName + ".yaml", appName + ".yml"}

// Config is the merged render configuration. Values come from flags, then
// the config file, then defaults.
type Config struct {
	Input        string   `toml:"input" yaml:"input" validate:"required"`
	OutputDir    string   `toml:"output_dir" yaml:"output_dir" validate:"required"`
	Formats      []string `toml:"formats" yaml:"formats" validate:"min=1,dive,oneof=html svg dot json"`
	Roots        []string `toml:"roots" yaml:"roots" validate:"dive,required"`
	Height       string   `toml:"height" yaml:"height" validate:"cssdim"`
	Width        string   `toml:"width" yaml:"width" validate:"cssdim"`
	Solver       string   `toml:"solver" yaml:"solver" validate:"oneof=forceAtlas2Based barnesHut repulsion hierarchicalRepulsion"`
	Hierarchical bool     `toml:"hierarchical" yaml:"hierarchical"`
	Detailed     bool     `toml:"detailed" yaml:"detailed"`
	Language     string   `toml:"language" yaml:"language" validate:"omitempty,bcp47_language_tag"`
	MaxDepth     int      `toml:"max_depth" yaml:"max_depth" validate:"min=0"`
	Jobs         int      `toml:"jobs" yaml:"jobs" validate:"min=1,max=64"`
	NoCache      bool     `toml:"no_cache" yaml:"no_cache"`
}

// defaultConfig returns the configuration used when neither a file nor a
// flag sets a value.
func defaultConfig() Config {
	return Config{
		Input:     pipeline.DefaultInput,
		OutputDir: pipeline.DefaultOutputDir,
		Formats:   []string{render.DefaultFormat},
		Height:    html.DefaultHeight,
		Width:     html.DefaultWidth,
		Solver:    html.DefaultSolver,
		Jobs:      pipeline.DefaultJobs,
	}
}

var configValidate *validator.Validate

func init() {
	configValidate = validator.New()
	configValidate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("toml"), ",")
		return name
	})
	_ = configValidate.RegisterValidation("cssdim", func(fl validator.FieldLevel) bool {
		return html.ValidateDimension(fl.Field().String()) == nil
	})
}

// Validate checks the configuration and returns an INVALID_CONFIG error
// naming every failing field.
func (c Config) Validate() error {
	err := configValidate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "validate config")
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("%s: %s %q", fe.Field(), fe.Tag(), fmt.Sprint(fe.Value())))
	}
	return errors.New(errors.ErrCodeInvalidConfig, "%s", strings.Join(parts, "; "))
}

// pipelineOptions converts the configuration into runner options.
func (c Config) pipelineOptions() pipeline.Options {
	return pipeline.Options{
		OutputDir: c.OutputDir,
		Formats:   slices.Clone(c.Formats),
		Roots:     slices.Clone(c.Roots),
		MaxDepth:  c.MaxDepth,
		Jobs:      c.Jobs,
		Detailed:  c.Detailed,
		HTML: html.Options{
			Height:       c.Height,
			Width:        c.Width,
			Solver:       c.Solver,
			Hierarchical: c.Hierarchical,
		},
	}
}

// loadConfig reads the config file at path over cfg. An empty path
// searches the working directory for taxoviz.toml, taxoviz.yaml and
// taxoviz.yml and returns cfg unchanged when none exists. The returned
// string is the file actually read.
func loadConfig(path string, cfg *Config) (string, error) {
	if path == "" {
		for _, name := range configNames {
			if _, err := os.Stat(name); err == nil {
				path = name
				break
			}
		}
		if path == "" {
			return "", nil
		}
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return "", errors.Wrap(errors.ErrCodeInvalidConfig, err, "open config %s", path)
	}
	defer f.Close()

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		md, err := toml.NewDecoder(f).Decode(cfg)
		if err != nil {
			return "", errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return "", errors.New(errors.ErrCodeInvalidConfig, "%s: unknown key %q", path, undecoded[0].String())
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(f)
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !stderrors.Is(err, io.EOF) {
			return "", errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
		}
	default:
		return "", errors.New(errors.ErrCodeInvalidConfig, "unsupported config format %q (use .toml, .yaml or .yml)", ext)
	}
	return path, nil
}

// configFlags holds the raw render flags. They are applied over the
// config file only when set on the command line.
type configFlags struct {
	config       string
	outputDir    string
	formats      string
	roots        []string
	height       string
	width        string
	solver       string
	hierarchical bool
	detailed     bool
	language     string
	maxDepth     int
	jobs         int
	noCache      bool
}

func (f *configFlags) register(cmd *cobra.Command) {
	d := defaultConfig()
	fs := cmd.Flags()
	fs.StringVar(&f.config, "config", "", "config file (default: ./taxoviz.toml or ./taxoviz.yaml if present)")
	fs.StringVarP(&f.outputDir, "output-dir", "o", d.OutputDir, "directory for the generated files")
	fs.StringVarP(&f.formats, "format", "f", "", "output format(s): html (default), svg, dot, json (comma-separated)")
	fs.StringArrayVar(&f.roots, "root", nil, "export only this top-level concept (repeatable)")
	fs.StringVar(&f.height, "height", d.Height, "canvas height (CSS)")
	fs.StringVar(&f.width, "width", d.Width, "canvas width (CSS)")
	fs.StringVar(&f.solver, "solver", d.Solver, "physics solver: "+strings.Join(html.Solvers, ", "))
	fs.BoolVar(&f.hierarchical, "hierarchical", false, "lay out nodes in levels by depth")
	fs.BoolVar(&f.detailed, "detailed", false, "show depth and metadata in dot/svg labels")
	fs.StringVar(&f.language, "lang", "", "preferred label language (e.g. en)")
	fs.IntVar(&f.maxDepth, "depth", 0, "maximum traversal depth (0 = unlimited)")
	fs.IntVar(&f.jobs, "jobs", d.Jobs, "number of branches exported concurrently")
	fs.BoolVar(&f.noCache, "no-cache", false, "disable the SVG render cache")
}

// resolve builds the effective configuration: defaults, then the config
// file, then every flag the user actually set. input is the positional
// argument and overrides the file when non-empty.
func (f *configFlags) resolve(cmd *cobra.Command, input string) (Config, error) {
	cfg := defaultConfig()
	if _, err := loadConfig(f.config, &cfg); err != nil {
		return Config{}, err
	}

	if input != "" {
		cfg.Input = input
	}
	fs := cmd.Flags()
	if fs.Changed("output-dir") {
		cfg.OutputDir = f.outputDir
	}
	if fs.Changed("format") {
		cfg.Formats = render.ParseFormats(f.formats)
	}
	if fs.Changed("root") {
		cfg.Roots = f.roots
	}
	if fs.Changed("height") {
		cfg.Height = f.height
	}
	if fs.Changed("width") {
		cfg.Width = f.width
	}
	if fs.Changed("solver") {
		cfg.Solver = f.solver
	}
	if fs.Changed("hierarchical") {
		cfg.Hierarchical = f.hierarchical
	}
	if fs.Changed("detailed") {
		cfg.Detailed = f.detailed
	}
	if fs.Changed("lang") {
		cfg.Language = f.language
	}
	if fs.Changed("depth") {
		cfg.MaxDepth = f.maxDepth
	}
	if fs.Changed("jobs") {
		cfg.Jobs = f.jobs
	}
	if fs.Changed("no-cache") {
		cfg.NoCache = f.noCache
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
