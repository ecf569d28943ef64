// Package extract turns source documents into plain prose the chunker can
// work on. Extractors are registered per file extension; formatting that
// should not be read aloud (markup, PDF layout artifacts) is stripped here
// so the chunker only ever sees text.
package extract

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
)

// ErrExtractorNotFound is returned when no extractor handles a file.
var ErrExtractorNotFound = errors.New("extractor not found")

// Document is the extracted plain-text form of a source file.
type Document struct {
	Title string
	Text  string
}

// Extractor converts one file format into plain prose.
type Extractor interface {
	Name() string
	Extensions() []string
	Extract(path string) (Document, error)
}

// Registry tracks registered extractors by name and extension.
type Registry struct {
	extractors map[string]Extractor
	extensions map[string]Extractor
	logger     *slog.Logger
	mu         sync.RWMutex
}

// NewRegistry creates an empty extractor registry.
func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		extractors: make(map[string]Extractor),
		extensions: make(map[string]Extractor),
		logger:     logger,
	}
}

// NewDefaultRegistry creates a registry with all built-in extractors
// registered.
func NewDefaultRegistry(logger *slog.Logger) (*Registry, error) {
	if logger == nil {
		logger = slog.Default()
	}
	registry := NewRegistry(logger)

	builtins := []Extractor{
		NewPlain(logger.With("extractor", "plain")),
		NewMarkdown(logger.With("extractor", "markdown")),
		NewPDF(logger.With("extractor", "pdf")),
	}
	for _, e := range builtins {
		if err := registry.Register(e); err != nil {
			return nil, fmt.Errorf("failed to register extractor %s: %w", e.Name(), err)
		}
	}
	return registry, nil
}

// Register adds an extractor and claims its extensions.
func (r *Registry) Register(e Extractor) error {
	if e == nil {
		return errors.New("cannot register nil extractor")
	}
	name := e.Name()
	if name == "" {
		return errors.New("extractor must have a non-empty name")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.extractors[name]; exists {
		return fmt.Errorf("extractor %q already registered", name)
	}
	r.extractors[name] = e

	for _, ext := range e.Extensions() {
		if ext == "" {
			continue
		}
		if ext[0] != '.' {
			ext = "." + ext
		}
		r.extensions[strings.ToLower(ext)] = e
	}

	r.logger.Debug("registered extractor", "name", name, "extensions", e.Extensions())
	return nil
}

// ForFile returns the extractor responsible for the given path.
func (r *Registry) ForFile(path string) (Extractor, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return nil, fmt.Errorf("%w: file %s has no extension", ErrExtractorNotFound, path)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.extensions[ext]
	if !ok {
		return nil, fmt.Errorf("%w for extension %s", ErrExtractorNotFound, ext)
	}
	return e, nil
}

// Extract picks the extractor for path and runs it.
func (r *Registry) Extract(path string) (Document, error) {
	e, err := r.ForFile(path)
	if err != nil {
		return Document{}, err
	}
	return e.Extract(path)
}
