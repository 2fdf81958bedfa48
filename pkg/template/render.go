package template

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"slices"

	"github.com/veraison/scaffold/pkg/logger"
)

const (
	ProjectNameKey = "project-name"
	PackageNameKey = "package_name"
)

// number of leading bytes inspected when deciding whether a file is binary
const sniffLen = 8000

var ErrUnsafePath = errors.New("rendered path escapes the destination")

// Values maps placeholder keys to their substitutions.
type Values map[string]string

type Renderer struct {
	values      Values
	cfg         *Config
	placeholder *regexp.Regexp
	log         *logger.Logger
}

// NewRenderer creates a Renderer substituting the provided values. A nil
// config means NewConfig() defaults; a nil log discards output.
func NewRenderer(values Values, cfg *Config, log *logger.Logger) (*Renderer, error) {
	if cfg == nil {
		cfg = NewConfig()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if log == nil {
		log = logger.Discard()
	}

	placeholder, err := regexp.Compile(
		regexp.QuoteMeta(cfg.Left) + `\s*([\w.\-]+)\s*` + regexp.QuoteMeta(cfg.Right),
	)
	if err != nil {
		return nil, fmt.Errorf("placeholder pattern: %w", err)
	}

	return &Renderer{
		values:      values,
		cfg:         cfg,
		placeholder: placeholder,
		log:         log,
	}, nil
}

// RenderString replaces every known placeholder in text. Placeholders whose
// key has no value are left as they are.
func (o *Renderer) RenderString(text string) string {
	return o.placeholder.ReplaceAllStringFunc(text, func(match string) string {
		key := o.placeholder.FindStringSubmatch(match)[1]
		if value, ok := o.values[key]; ok {
			return value
		}

		return match
	})
}

// RenderTree copies the contents of src into destDir, substituting
// placeholders in file contents and in path components. Binary files are
// copied verbatim. It returns the slash-separated paths (relative to
// destDir) of the files that were written.
func (o *Renderer) RenderTree(ctx context.Context, src fs.FS, destDir string) ([]string, error) {
	var written []string

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return nil, err
	}

	// destDir may live inside src; it must not be copied into itself
	destInfo, err := os.Stat(destDir)
	if err != nil {
		return nil, err
	}

	err = fs.WalkDir(src, ".", func(srcPath string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if err := ctx.Err(); err != nil {
			return err
		}

		if srcPath == "." {
			return nil
		}

		if slices.Contains(o.cfg.SkipNames, entry.Name()) {
			if entry.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		if entry.IsDir() && isSameDir(entry, destInfo) {
			o.log.Warn("skipping destination inside template", "path", srcPath)
			return fs.SkipDir
		}

		relPath := o.RenderString(srcPath)
		if !filepath.IsLocal(filepath.FromSlash(relPath)) {
			return fmt.Errorf("%w: %q -> %q", ErrUnsafePath, srcPath, relPath)
		}
		target := filepath.Join(destDir, filepath.FromSlash(relPath))

		switch {
		case entry.IsDir():
			return os.MkdirAll(target, 0o755)
		case entry.Type()&fs.ModeSymlink != 0:
			o.log.Warn("skipping symlink", "path", srcPath)
			return nil
		case !entry.Type().IsRegular():
			o.log.Warn("skipping irregular file", "path", srcPath)
			return nil
		}

		if err := o.renderFile(src, srcPath, target, entry); err != nil {
			return fmt.Errorf("%s: %w", srcPath, err)
		}

		o.log.Debug("rendered", "source", srcPath, "target", relPath)
		written = append(written, path.Clean(relPath))

		return nil
	})

	return written, err
}

func (o *Renderer) renderFile(src fs.FS, srcPath, target string, entry fs.DirEntry) error {
	info, err := entry.Info()
	if err != nil {
		return err
	}

	data, err := fs.ReadFile(src, srcPath)
	if err != nil {
		return err
	}

	if !IsBinary(data) {
		data = []byte(o.RenderString(string(data)))
	}

	// the template may have been rendered under a different parent name
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}

	perm := info.Mode().Perm()
	if perm == 0 {
		perm = 0o644
	}

	return os.WriteFile(target, data, perm)
}

func isSameDir(entry fs.DirEntry, destInfo os.FileInfo) bool {
	info, err := entry.Info()
	if err != nil {
		return false
	}

	return os.SameFile(info, destInfo)
}

// IsBinary reports whether data looks like binary (rather than text)
// content, based on the presence of a NUL byte near its start.
func IsBinary(data []byte) bool {
	return bytes.IndexByte(data[:min(len(data), sniffLen)], 0) != -1
}
