package middlewarex

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"

	"trustcms/internal/form"
)

// errUnsupportedMedia marks bodies the pipeline cannot read.
var errUnsupportedMedia = errors.New("unsupported content type")

// readBody decodes a form, multipart or JSON request body into raw values.
// Form fields keep their first value; multipart file parts are ignored.
func readBody(w http.ResponseWriter, r *http.Request, maxBytes int64) (form.Values, error) {
	mediaType := "application/json"
	if ct := r.Header.Get("Content-Type"); ct != "" {
		parsed, _, err := mime.ParseMediaType(ct)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errUnsupportedMedia, err)
		}
		mediaType = parsed
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	switch mediaType {
	case "multipart/form-data":
		if err := r.ParseMultipartForm(maxBytes); err != nil {
			return nil, fmt.Errorf("parse multipart form: %w", err)
		}
		return fromForm(r.MultipartForm.Value), nil
	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return nil, fmt.Errorf("parse form: %w", err)
		}
		return fromForm(r.PostForm), nil
	case "application/json":
		return decodeJSON(r.Body)
	}
	return nil, fmt.Errorf("%w: %s", errUnsupportedMedia, mediaType)
}

func fromForm(values url.Values) form.Values {
	out := make(form.Values, len(values))
	for k, vs := range values {
		if len(vs) > 0 {
			out[k] = vs[0]
		}
	}
	return out
}

// decodeJSON reads a JSON object. An empty body is an empty object.
func decodeJSON(body io.Reader) (form.Values, error) {
	dec := json.NewDecoder(body)
	dec.UseNumber()
	out := make(form.Values)
	if err := dec.Decode(&out); err != nil {
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if dec.More() {
		return nil, errors.New("invalid JSON: trailing data")
	}
	return out, nil
}
