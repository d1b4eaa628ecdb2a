package static

import (
	"strconv"
	"strings"
	"time"
)

// ETag returns a weak validator derived from the file size and modification time.
// It is stable for identical inputs and changes whenever either input changes.
func ETag(size int64, modTime time.Time) string {
	return `W/"` + strconv.FormatInt(modTime.UnixNano(), 16) + "-" + strconv.FormatInt(size, 16) + `"`
}

// Fresh reports whether the If-None-Match header value matches etag.
// The header may list several tags separated by commas or be "*".
// Comparison is weak: a W/ prefix on either side is ignored.
func Fresh(ifNoneMatch, etag string) bool {
	ifNoneMatch = strings.TrimSpace(ifNoneMatch)
	if ifNoneMatch == "" || etag == "" {
		return false
	}
	if ifNoneMatch == "*" {
		return true
	}

	want := opaqueTag(etag)
	for candidate := range strings.SplitSeq(ifNoneMatch, ",") {
		if opaqueTag(strings.TrimSpace(candidate)) == want {
			return true
		}
	}
	return false
}

func opaqueTag(tag string) string {
	return strings.TrimPrefix(tag, "W/")
}
