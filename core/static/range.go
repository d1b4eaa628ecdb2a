package static

import (
	"fmt"
	"strconv"
	"strings"
)

// ByteRange is an inclusive window [Start, End] of a file's content.
type ByteRange struct {
	Start int64
	End   int64
}

// FullRange covers a whole file of the given size. For empty files Length is 0.
func FullRange(size int64) ByteRange {
	return ByteRange{Start: 0, End: size - 1}
}

// Length returns the number of bytes in the window.
func (r ByteRange) Length() int64 {
	return r.End - r.Start + 1
}

// ContentRange renders the Content-Range value of a 206 response.
func (r ByteRange) ContentRange(size int64) string {
	return fmt.Sprintf("bytes %d-%d/%d", r.Start, r.End, size)
}

// ParseRange negotiates a Range header against a file of size bytes.
//
// An empty header, or one using a unit other than "bytes", yields partial=false
// and the whole file is served. Only a single "bytes=<start>-[<end>]" spec is
// understood; an omitted end means size-1. Suffix ranges, multiple ranges,
// malformed offsets, start >= size, an explicit end >= size and start > end
// all return a *RangeError.
func ParseRange(header string, size int64) (rng ByteRange, partial bool, err error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return ByteRange{}, false, nil
	}

	spec, ok := strings.CutPrefix(header, "bytes=")
	if !ok {
		return ByteRange{}, false, nil
	}

	unsatisfiable := &RangeError{Size: size, Header: header}

	startStr, endStr, ok := strings.Cut(spec, "-")
	if !ok {
		return ByteRange{}, false, unsatisfiable
	}

	start, ok := parseOffset(startStr)
	if !ok || start >= size {
		return ByteRange{}, false, unsatisfiable
	}

	end := size - 1
	if endStr = strings.TrimSpace(endStr); endStr != "" {
		end, ok = parseOffset(endStr)
		if !ok || end >= size {
			return ByteRange{}, false, unsatisfiable
		}
	}

	if start > end {
		return ByteRange{}, false, unsatisfiable
	}

	return ByteRange{Start: start, End: end}, true, nil
}

// parseOffset accepts only plain decimal digits.
func parseOffset(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
