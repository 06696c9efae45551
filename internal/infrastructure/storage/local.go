// Package storage resolves file references to bytes. References are either s3://bucket/key
// or paths relative to the upload root.
package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var ErrOutsideRoot = errors.New("reference escapes upload root")

type LocalSource struct {
	root string
}

func NewLocalSource(root string) *LocalSource {
	return &LocalSource{root: root}
}

func (l *LocalSource) Handles(ref string) bool {
	ref = strings.TrimSpace(ref)
	return ref != "" && !strings.HasPrefix(strings.ToLower(ref), S3Scheme)
}

func (l *LocalSource) Open(ctx context.Context, ref string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, err := l.resolve(ref)
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return b, nil
}

func (l *LocalSource) resolve(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if l.root == "" {
		return filepath.Clean(ref), nil
	}

	root, err := filepath.Abs(l.root)
	if err != nil {
		return "", fmt.Errorf("resolve upload root: %w", err)
	}
	path := filepath.Clean(ref)
	if !filepath.IsAbs(path) {
		path = filepath.Join(root, ref)
	}
	if path != root && !strings.HasPrefix(path, root+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %q", ErrOutsideRoot, ref)
	}
	return path, nil
}

// Source is anything that can read a referenced file.
type Source interface {
	Handles(ref string) bool
	Open(ctx context.Context, ref string) ([]byte, error)
}

// Router dispatches a reference to the first source that handles it.
type Router struct {
	sources []Source
}

func NewRouter(sources ...Source) *Router {
	out := make([]Source, 0, len(sources))
	for _, s := range sources {
		if s != nil {
			out = append(out, s)
		}
	}
	return &Router{sources: out}
}

var ErrNoSource = errors.New("no source handles reference")

func (r *Router) Open(ctx context.Context, ref string) ([]byte, error) {
	for _, s := range r.sources {
		if s.Handles(ref) {
			return s.Open(ctx, ref)
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrNoSource, ref)
}
