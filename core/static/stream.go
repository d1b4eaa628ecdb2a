package static

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
)

// Stream copies the rng window of the file at path to w.
// The copy is chunked and stops as soon as ctx is cancelled, releasing the file.
// Use FullRange to stream the whole file.
func Stream(ctx context.Context, w io.Writer, path string, rng ByteRange) error {
	f, err := openFile(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return copyRange(ctx, w, f, rng)
}

func openFile(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	return f, nil
}

// copyRange writes exactly rng.Length() bytes starting at rng.Start.
// A file that shrank since it was stat'd surfaces as an ErrIO wrapping io.EOF.
func copyRange(ctx context.Context, w io.Writer, f io.ReaderAt, rng ByteRange) error {
	n := rng.Length()
	if n <= 0 {
		return nil
	}

	src := &contextReader{ctx: ctx, r: io.NewSectionReader(f, rng.Start, n)}
	if _, err := io.CopyN(w, src, n); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("%w: %w", ErrIO, ctxErr)
		}
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	return nil
}

// contextReader aborts reads once the request context is done,
// e.g. when the client disconnects mid-transfer.
type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *contextReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
