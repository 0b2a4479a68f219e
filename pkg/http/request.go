package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	apperrors "goodfoods/pkg/errors"
)

// ReadJSON decodes the request body into dst, rejecting unknown fields and
// trailing garbage so malformed planner payloads fail loudly.
func ReadJSON(r *http.Request, dst any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return apperrors.InvalidInput("request body is empty")
		}
		return apperrors.InvalidInput("invalid JSON body: " + err.Error())
	}

	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		return apperrors.InvalidInput("request body must contain a single JSON object")
	}

	return nil
}
