package handler

import "net/http"

// Writer wraps http.ResponseWriter to track whether the response has started,
// its status and the number of body bytes written.
type Writer struct {
	http.ResponseWriter
	status  int
	size    int64
	written bool
}

// NewWriter wraps w. Wrapping a *Writer returns it unchanged.
func NewWriter(w http.ResponseWriter) *Writer {
	if ww, ok := w.(*Writer); ok {
		return ww
	}
	return &Writer{ResponseWriter: w}
}

// WriteHeader records the status; only the first call reaches the client.
func (w *Writer) WriteHeader(status int) {
	if w.written {
		return
	}
	w.status = status
	w.written = true
	w.ResponseWriter.WriteHeader(status)
}

func (w *Writer) Write(b []byte) (int, error) {
	if !w.written {
		w.WriteHeader(http.StatusOK)
	}
	n, err := w.ResponseWriter.Write(b)
	w.size += int64(n)
	return n, err
}

// Written returns true if WriteHeader has been called.
func (w *Writer) Written() bool {
	return w.written
}

// Status returns the HTTP status code, or 0 if nothing was written yet.
func (w *Writer) Status() int {
	return w.status
}

// Size returns the number of body bytes written.
func (w *Writer) Size() int64 {
	return w.size
}

// Flush implements http.Flusher if the underlying ResponseWriter supports it.
func (w *Writer) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Unwrap exposes the underlying writer to http.ResponseController.
func (w *Writer) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
