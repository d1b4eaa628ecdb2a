// Package mountfile reads the YAML file listing the mounts staticd serves.
//
//	mounts:
//	  - prefix: /assets
//	    root: ./public/assets
//	    max_age: 24h
//	  - prefix: /assets
//	    root: ./vendor/assets
//	  - prefix: /
//	    root: ./public
//	    dotfiles: deny
//
// Entries are registered in file order, which is also the fall-through order.
package mountfile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/staticmount/core/static"
)

// ErrInvalid wraps every parse and validation failure.
var ErrInvalid = errors.New("mountfile: invalid mounts file")

// File is the document root.
type File struct {
	Mounts []Entry `yaml:"mounts" validate:"required,min=1,dive"`
}

// Entry is one mount.
type Entry struct {
	Prefix string `yaml:"prefix" validate:"required,startswith=/"`
	Root   string `yaml:"root" validate:"required"`
	// Index is the directory index file name. Nil keeps the default, "" disables it.
	Index    *string       `yaml:"index" validate:"omitempty,excludesall=/\\"`
	Dotfiles string        `yaml:"dotfiles" validate:"omitempty,oneof=allow deny ignore"`
	ETag     *bool         `yaml:"etag"`
	MaxAge   time.Duration `yaml:"max_age" validate:"gte=0"`
}

// Load reads and validates the file at path.
// Relative roots are resolved against the directory containing the file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	f, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	base := filepath.Dir(path)
	for i := range f.Mounts {
		if !filepath.IsAbs(f.Mounts[i].Root) {
			f.Mounts[i].Root = filepath.Join(base, f.Mounts[i].Root)
		}
	}
	return f, nil
}

// Parse decodes and validates a mounts document. Unknown keys are rejected.
func Parse(r io.Reader) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: file is empty", ErrInvalid)
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	if err := Validate(&f); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return &f, nil
}

// Options converts the entry to mount options.
func (e Entry) Options() ([]static.MountOption, error) {
	policy, err := static.ParseDotfilePolicy(e.Dotfiles)
	if err != nil {
		return nil, err
	}

	opts := []static.MountOption{
		static.WithDotfiles(policy),
		static.WithMaxAge(e.MaxAge),
	}
	if e.Index != nil {
		opts = append(opts, static.WithIndexFile(*e.Index))
	}
	if e.ETag != nil {
		opts = append(opts, static.WithETag(*e.ETag))
	}
	return opts, nil
}

// Register adds every entry to reg in order. It stops at the first failure,
// naming the entry, so a bad mounts file halts startup.
func Register(reg *static.Registry, f *File) error {
	for i, e := range f.Mounts {
		opts, err := e.Options()
		if err != nil {
			return fmt.Errorf("mounts[%d]: %w", i, err)
		}
		if err := reg.Register(e.Prefix, e.Root, opts...); err != nil {
			return fmt.Errorf("mounts[%d]: %w", i, err)
		}
	}
	return nil
}
