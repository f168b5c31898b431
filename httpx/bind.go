package httpx

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"

	"github.com/user/exercise-tracker-go/apperror"
)

// maxBodyBytes caps request bodies; these payloads are a handful of short fields.
const maxBodyBytes = 1 << 20

// FormBinder is implemented by request structs that can also be filled from
// an HTML form submission.
type FormBinder interface {
	BindForm(values url.Values)
}

// Bind decodes the request body into dst. Form-encoded bodies
// (application/x-www-form-urlencoded, multipart/form-data) go through
// dst.BindForm; anything else is decoded as JSON. An empty body leaves dst
// untouched so the caller's validation reports the missing fields.
func Bind(w http.ResponseWriter, r *http.Request, dst FormBinder) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer r.Body.Close()

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return apperror.NewBadRequestError("Invalid request body", err)
		}
		dst.BindForm(r.PostForm)
		return nil
	case "multipart/form-data":
		if err := r.ParseMultipartForm(maxBodyBytes); err != nil {
			return apperror.NewBadRequestError("Invalid request body", err)
		}
		dst.BindForm(r.PostForm)
		return nil
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return apperror.NewBadRequestError("Invalid request body", err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return apperror.NewBadRequestError("Invalid request body", err)
	}
	return nil
}

// FlexString accepts a JSON string, number or null. Numbers keep their literal
// text so "30" and 30 bind to the same value.
type FlexString string

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexString) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*f = ""
		return nil
	}
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(trimmed, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", trimmed)
	}
	*f = FlexString(n.String())
	return nil
}

// String returns the bound text.
func (f FlexString) String() string { return string(f) }
