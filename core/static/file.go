package static

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dmitrymomot/staticmount/core/handler"
)

// File creates a handler that always serves the file at filePath, e.g. a favicon
// or robots.txt outside any mount. It panics at startup if the file does not
// exist, is a directory, or opts are invalid.
func File[C handler.Context](filePath string, opts ...MountOption) handler.HandlerFunc[C] {
	if err := validateFile(filePath, opts); err != nil {
		panic("static.File: " + err.Error())
	}

	return func(ctx C) handler.Response {
		return SendFile(filePath, opts...)
	}
}

func validateFile(filePath string, opts []MountOption) error {
	o := defaultMountOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.validate(); err != nil {
		return err
	}

	cleanPath := filepath.Clean(filePath)
	info, err := os.Stat(cleanPath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: file does not exist: %s", ErrInvalidMount, cleanPath)
		}
		return fmt.Errorf("%w: error accessing file: %w", ErrInvalidMount, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: path is a directory, not a file: %s", ErrInvalidMount, cleanPath)
	}
	return nil
}
