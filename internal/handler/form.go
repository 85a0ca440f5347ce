package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/msomdec/mercado-social/internal/service"
)

const (
	// maxBodyBytes leaves room for form fields next to one full-size upload.
	maxBodyBytes    = service.MaxUploadSize + 1<<20
	multipartMemory = 8 << 20
)

// decodeBody reads a JSON, URL-encoded or multipart request body into dst.
// Form values go through the same JSON field mapping as JSON bodies, so one
// request struct serves all three encodings. An empty body leaves dst as is.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "multipart/form-data":
		if err := r.ParseMultipartForm(multipartMemory); err != nil {
			return err
		}
		return decodeForm(r.MultipartForm.Value, dst)
	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return err
		}
		return decodeForm(r.PostForm, dst)
	default:
		err := readJSON(r, dst)
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
}

func decodeForm(values map[string][]string, dst any) error {
	fields := make(map[string]any, len(values))
	for key, vals := range values {
		if len(vals) == 1 {
			fields[key] = vals[0]
		} else {
			fields[key] = vals
		}
	}
	b, err := json.Marshal(fields)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, dst)
}

// writeBodyError reports a body that could not be decoded.
func writeBodyError(w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeError(w, http.StatusRequestEntityTooLarge, "Request body too large.")
		return
	}
	writeError(w, http.StatusBadRequest, "Invalid request body.")
}

// readUpload returns the file sent in the named multipart field, or nil when
// the request carries none. Reading stops one byte past the upload limit so
// oversized files are still rejected by the media service.
func readUpload(r *http.Request, field string) (*service.Upload, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}
	file, header, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, service.MaxUploadSize+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	return &service.Upload{Filename: header.Filename, Data: data}, nil
}

// flexInt is an integer that may arrive as a JSON number or, from forms, as
// a string.
type flexInt int64

func (n *flexInt) UnmarshalJSON(b []byte) error {
	s := unquote(b)
	if s == "" || s == "null" {
		return nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid integer %s", b)
	}
	*n = flexInt(v)
	return nil
}

type flexFloat float64

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	s := unquote(b)
	if s == "" || s == "null" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid number %s", b)
	}
	*f = flexFloat(v)
	return nil
}

// flexIDs is a list of ids given as a JSON array, a JSON-encoded array in a
// form field, a comma separated string, or a repeated form field.
type flexIDs []int64

func (ids *flexIDs) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if strings.HasPrefix(s, "[") {
			return ids.UnmarshalJSON([]byte(s))
		}
		out := flexIDs{}
		for part := range strings.SplitSeq(s, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			v, err := strconv.ParseInt(part, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid id %q", part)
			}
			out = append(out, v)
		}
		*ids = out
		return nil
	}

	var items []flexInt
	if err := json.Unmarshal(b, &items); err != nil {
		return err
	}
	if items == nil {
		return nil
	}
	out := make(flexIDs, len(items))
	for i, v := range items {
		out[i] = int64(v)
	}
	*ids = out
	return nil
}

var timeLayouts = []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02"}

// flexTime accepts RFC 3339 timestamps as well as the date and
// datetime-local values browsers submit.
type flexTime time.Time

func (t *flexTime) UnmarshalJSON(b []byte) error {
	s := unquote(b)
	if s == "" || s == "null" {
		return nil
	}
	for _, layout := range timeLayouts {
		if v, err := time.Parse(layout, s); err == nil {
			*t = flexTime(v)
			return nil
		}
	}
	return fmt.Errorf("invalid time %s", b)
}

func unquote(b []byte) string {
	s := string(b)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	return strings.TrimSpace(s)
}
