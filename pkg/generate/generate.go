package generate

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/veraison/scaffold/pkg/history"
	"github.com/veraison/scaffold/pkg/logger"
	"github.com/veraison/scaffold/pkg/model"
	"github.com/veraison/scaffold/pkg/name"
	"github.com/veraison/scaffold/pkg/template"
)

var ErrTargetExists = errors.New("target already exists")
var ErrTargetInTemplate = errors.New("target is inside the template directory")

// Request describes a single project to generate.
type Request struct {
	// RawName is the project name as supplied by the user.
	RawName string
	// Force disables normalization of RawName.
	Force bool
	// Template is the path to the template directory.
	Template string `validate:"required"`
	// Destination is the directory the project directory is created in.
	Destination string `validate:"required"`
}

type Result struct {
	// ID is the UUID of the history entry, or empty if no history is
	// kept.
	ID     string
	Name   name.Normalized
	Target string
	Files  []string
}

type Generator struct {
	cfg      *Config
	history  *history.Store
	log      *logger.Logger
	validate *validator.Validate
}

func NewGenerator(cfg *Config, log *logger.Logger) (*Generator, error) {
	if cfg == nil {
		cfg = NewConfig()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if log == nil {
		log = logger.Discard()
	}

	return &Generator{cfg: cfg, log: log, validate: newValidator()}, nil
}

// WithHistory makes the Generator record every successful generation in
// the provided store.
func (o *Generator) WithHistory(store *history.Store) *Generator {
	o.history = store
	return o
}

// Values returns the placeholder values used when rendering a template for
// the specified project name.
func (o *Generator) Values(projectName name.Normalized, force bool) template.Values {
	ret := maps.Clone(o.cfg.Defines)
	if ret == nil {
		ret = template.Values{}
	}

	ret[template.ProjectNameKey] = projectName.String()
	if force {
		ret[template.PackageNameKey] = projectName.String()
	} else {
		ret[template.PackageNameKey] = name.ToSnakeCase(projectName.String())
	}

	return ret
}

// Generate normalizes the requested name, renders the template into
// <Destination>/<name>, and records the result if a history store is
// attached.
func (o *Generator) Generate(ctx context.Context, req *Request) (*Result, error) {
	if req == nil {
		return nil, errors.New("nil request")
	}

	if err := validateStruct(o.validate, req); err != nil {
		return nil, err
	}

	projectName := name.Normalize(req.RawName, req.Force)
	if err := validateStruct(o.validate, &nameCheck{Name: projectName.String()}); err != nil {
		return nil, err
	}

	if projectName.String() != req.RawName {
		o.log.Info("renamed project", "from", req.RawName, "to", projectName.String())
	}

	templateDir, err := filepath.Abs(req.Template)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(templateDir)
	if err != nil {
		return nil, fmt.Errorf("template: %w", err)
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("template: %s is not a directory", req.Template)
	}

	destDir, err := filepath.Abs(req.Destination)
	if err != nil {
		return nil, err
	}

	target := filepath.Join(destDir, projectName.String())
	if isWithin(templateDir, target) {
		return nil, fmt.Errorf("%w: %s", ErrTargetInTemplate, target)
	}

	if _, err := os.Lstat(target); err == nil {
		return nil, fmt.Errorf("%w: %s", ErrTargetExists, target)
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	if o.history != nil {
		if err := o.history.CheckUnique(projectName.String(), target); err != nil {
			return nil, fmt.Errorf("history: %w", err)
		}
	}

	renderer, err := template.NewRenderer(o.Values(projectName, req.Force), o.cfg.Template, o.log)
	if err != nil {
		return nil, err
	}

	files, err := renderer.RenderTree(ctx, os.DirFS(templateDir), target)
	if err != nil {
		o.cleanUp(target)
		return nil, fmt.Errorf("rendering template: %w", err)
	}

	ret := &Result{Name: projectName, Target: target, Files: files}

	if o.history != nil {
		gen := model.NewGeneration(req.RawName, projectName.String(), req.Force)
		gen.Template = templateDir
		gen.Target = target
		gen.FileCount = len(files)

		if err := o.history.Add(gen); err != nil {
			o.cleanUp(target)
			return nil, fmt.Errorf("recording generation: %w", err)
		}

		ret.ID = gen.UUID
	}

	o.log.Info("generated project",
		"name", projectName.String(), "target", target, "files", len(files))

	return ret, nil
}

// cleanUp removes a partially generated project unless configured to keep
// it.
func (o *Generator) cleanUp(target string) {
	if o.cfg.KeepOnFailure {
		return
	}

	if err := os.RemoveAll(target); err != nil {
		o.log.Error("could not clean up", "target", target, "error", err)
	}
}

// isWithin reports whether path is dir itself or lies below it. Both must be
// absolute and clean.
func isWithin(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}

	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
