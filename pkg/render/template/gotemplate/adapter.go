package gotemplate

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-hotelsite/pkg/render/template"
)

// Option configures the engine before construction.
type Option func(*config)

type config struct {
	baseDir   string
	templates fs.FS
	extension string
	reload    bool
}

// WithBaseDir loads templates from a directory on disk.
func WithBaseDir(dir string) Option {
	return func(cfg *config) {
		cfg.baseDir = strings.TrimSpace(dir)
	}
}

// WithFS loads templates from an fs.FS.
func WithFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templates = files
	}
}

// WithExtension sets the suffix appended to template names, ".tmpl" by default.
func WithExtension(ext string) Option {
	return func(cfg *config) {
		ext = strings.TrimSpace(ext)
		if ext == "" {
			return
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		cfg.extension = ext
	}
}

// WithReload parses templates on every render instead of caching them.
func WithReload(enabled bool) Option {
	return func(cfg *config) {
		cfg.reload = enabled
	}
}

// pongo2 keeps filters in a process-wide table.
var filterMu sync.Mutex

// Engine renders named pongo2 templates out of one template set.
type Engine struct {
	mu sync.RWMutex

	set    *pongo2.TemplateSet
	cache  map[string]*pongo2.Template
	ext    string
	reload bool
}

var _ template.TemplateRenderer = (*Engine)(nil)

// New builds an Engine. A base directory or an fs.FS is required; with both,
// the directory is searched first.
func New(options ...Option) (*Engine, error) {
	cfg := &config{extension: ".tmpl"}
	for _, opt := range options {
		if opt != nil {
			opt(cfg)
		}
	}
	if cfg.baseDir == "" && cfg.templates == nil {
		return nil, errors.New("gotemplate: need to provide either base dir or fs.FS")
	}

	var loaders []pongo2.TemplateLoader
	if cfg.baseDir != "" {
		loader, err := pongo2.NewLocalFileSystemLoader(cfg.baseDir)
		if err != nil {
			return nil, fmt.Errorf("gotemplate: create local loader: %w", err)
		}
		loaders = append(loaders, loader)
	}
	if cfg.templates != nil {
		loaders = append(loaders, pongo2.NewFSLoader(cfg.templates))
	}

	set := pongo2.NewSet("hotelsite", loaders...)
	set.Globals = pongo2.Context{}
	return &Engine{
		set:    set,
		cache:  make(map[string]*pongo2.Template),
		ext:    cfg.extension,
		reload: cfg.reload,
	}, nil
}

// RenderTemplate executes the named template and copies the result to every
// writer in out.
func (e *Engine) RenderTemplate(name string, data any, out ...io.Writer) (string, error) {
	if e == nil || e.set == nil {
		return "", errors.New("gotemplate: engine is nil")
	}
	path := name
	if !strings.HasSuffix(path, e.ext) {
		path += e.ext
	}

	tmpl, err := e.lookup(path)
	if err != nil {
		return "", err
	}
	ctx, err := toContext(data)
	if err != nil {
		return "", fmt.Errorf("gotemplate: convert data: %w", err)
	}

	var buf bytes.Buffer
	e.mu.RLock()
	err = tmpl.ExecuteWriter(ctx, &buf)
	e.mu.RUnlock()
	if err != nil {
		return "", fmt.Errorf("gotemplate: execute template %q: %w", path, err)
	}

	for _, w := range out {
		if _, err := w.Write(buf.Bytes()); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

// RegisterFilter adds fn under name. Filters are shared by every engine in
// the process, so a name registered earlier yields template.ErrFilterExists
// and keeps the first function.
func (e *Engine) RegisterFilter(name string, fn template.Filter) error {
	name = strings.TrimSpace(name)
	if name == "" || fn == nil {
		return errors.New("gotemplate: filter name and function required")
	}

	filterMu.Lock()
	defer filterMu.Unlock()
	if pongo2.FilterExists(name) {
		return fmt.Errorf("gotemplate: %q: %w", name, template.ErrFilterExists)
	}
	return pongo2.RegisterFilter(name, func(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
		var arg any
		if param != nil && !param.IsNil() {
			arg = param.Interface()
		}
		result, err := fn(in.Interface(), arg)
		if err != nil {
			return nil, &pongo2.Error{Sender: "filter:" + name, OrigError: err}
		}
		return pongo2.AsValue(result), nil
	})
}

// GlobalContext merges data into the values every template sees.
func (e *Engine) GlobalContext(data any) error {
	if e == nil || e.set == nil {
		return errors.New("gotemplate: engine is nil")
	}
	if data == nil {
		return nil
	}
	ctx, err := toContext(data)
	if err != nil {
		return fmt.Errorf("gotemplate: convert globals: %w", err)
	}

	e.mu.Lock()
	e.set.Globals.Update(ctx)
	e.mu.Unlock()
	return nil
}

func (e *Engine) lookup(path string) (*pongo2.Template, error) {
	if !e.reload {
		e.mu.RLock()
		tmpl, ok := e.cache[path]
		e.mu.RUnlock()
		if ok {
			return tmpl, nil
		}
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if tmpl, ok := e.cache[path]; ok && !e.reload {
		return tmpl, nil
	}
	tmpl, err := e.set.FromFile(path)
	if err != nil {
		return nil, fmt.Errorf("gotemplate: load template %q: %w", path, err)
	}
	if !e.reload {
		e.cache[path] = tmpl
	}
	return tmpl, nil
}

// toContext flattens data to JSON shapes so struct tags decide the names
// templates see. Numbers arrive as float64.
func toContext(data any) (pongo2.Context, error) {
	if data == nil {
		return pongo2.Context{}, nil
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	ctx := pongo2.Context{}
	if err := json.Unmarshal(raw, &ctx); err != nil {
		return nil, err
	}
	return ctx, nil
}
