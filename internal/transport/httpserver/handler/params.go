package handler

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

func parseIDParam(value string) (int64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("id is required")
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id")
	}
	return parsed, nil
}

// parseForm accepts multipart and urlencoded bodies. maxMemory only bounds the
// in-memory part of a multipart body; the rest goes to temp files.
func parseForm(r *http.Request, maxMemory int64) error {
	err := r.ParseMultipartForm(maxMemory)
	if err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return err
	}
	return nil
}

// formString returns nil when the field is absent or submitted empty, which
// is how browsers send blank inputs.
func formString(form url.Values, key string) *string {
	values, ok := form[key]
	if !ok || len(values) == 0 || values[0] == "" {
		return nil
	}
	value := values[0]
	return &value
}

// formBool is false when absent.
func formBool(form url.Values, key string) (bool, error) {
	value := strings.ToLower(strings.TrimSpace(form.Get(key)))
	switch value {
	case "":
		return false, nil
	case "true", "1", "yes", "on", "t", "y":
		return true, nil
	case "false", "0", "no", "off", "f", "n":
		return false, nil
	default:
		return false, fmt.Errorf("%s must be a boolean", key)
	}
}

// formFile ignores parts submitted without a filename, which browsers send for
// empty file inputs.
func formFile(form *multipart.Form, key string) *multipart.FileHeader {
	if form == nil {
		return nil
	}
	headers := form.File[key]
	if len(headers) == 0 || headers[0].Filename == "" {
		return nil
	}
	return headers[0]
}
