package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/AlibekovAA/notes-app/backend/internal/common/constants"
	commonerrors "github.com/AlibekovAA/notes-app/backend/internal/common/errors"
)

const (
	DefaultMaxRequestSize = constants.DefaultMaxRequestSize
)

var errBodyTooLarge = errors.New("request body too large")

type maxBytesReader struct {
	reader io.ReadCloser
	limit  int64
	read   int64
}

// Read hands out at most limit bytes in total; the read that crosses the
// limit is truncated and reports errBodyTooLarge.
func (r *maxBytesReader) Read(p []byte) (int, error) {
	if r.read > r.limit {
		return 0, errBodyTooLarge
	}

	remaining := r.limit - r.read
	if int64(len(p)) > remaining+1 {
		p = p[:remaining+1]
	}

	n, err := r.reader.Read(p)
	if int64(n) > remaining {
		r.read = r.limit + 1
		return int(remaining), errBodyTooLarge
	}
	r.read += int64(n)
	return n, err
}

func (r *maxBytesReader) Close() error {
	return r.reader.Close()
}

func MaxRequestSizeMiddleware(maxBytes int64) func(http.Handler) http.Handler {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxRequestSize
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > maxBytes {
				WriteError(w, http.StatusRequestEntityTooLarge, commonerrors.ErrPayloadTooLarge.Message())
				return
			}

			if r.Body != nil {
				r.Body = &maxBytesReader{
					reader: r.Body,
					limit:  maxBytes,
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}
