package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Field-level validation messages, returned as {"field": ["message", ...]}.
const (
	msgRequired      = "This field is required."
	msgBlank         = "This field may not be blank."
	msgNull          = "This field may not be null."
	msgInteger       = "A valid integer is required."
	msgDatetime      = "Datetime has wrong format. Use RFC 3339 instead."
	msgNotString     = "Not a valid string."
	msgPK            = "Incorrect type. Expected pk value, received str."
	msgPKMissing     = "Invalid pk - object does not exist."
	msgMaxLength     = "Ensure this field has no more than 200 characters."
	maxTextLength    = 200
	detailNotFound   = "Not found."
	detailForbidden  = "You do not have permission to perform this action."
	detailBadPayload = "Malformed request."
)

type fieldErrors map[string][]string

func (fe fieldErrors) add(field, msg string) {
	fe[field] = append(fe[field], msg)
}

func (fe fieldErrors) empty() bool {
	return len(fe) == 0
}

// decodeBody unmarshals the request body twice: once into dst and once into
// a raw field map, so handlers can tell absent fields from explicit nulls.
// Type mismatches are collected per field instead of failing the request,
// so every invalid field ends up in the error map.
func decodeBody(c *gin.Context, dst any) (map[string]json.RawMessage, map[string]bool, bool) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": detailBadPayload})
		return nil, nil, false
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": detailBadPayload})
		return nil, nil, false
	}

	// json.Unmarshal reports only the first mismatched field, so strip the
	// offender and decode again until the payload goes through clean.
	typeErrs := make(map[string]bool)
	remaining := make(map[string]json.RawMessage, len(raw))
	for k, v := range raw {
		remaining[k] = v
	}

	for {
		data, err := json.Marshal(remaining)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": detailBadPayload})
			return nil, nil, false
		}

		err = json.Unmarshal(data, dst)
		if err == nil {
			return raw, typeErrs, true
		}

		var ute *json.UnmarshalTypeError
		if !errors.As(err, &ute) || ute.Field == "" || typeErrs[ute.Field] {
			c.JSON(http.StatusBadRequest, gin.H{"detail": detailBadPayload})
			return nil, nil, false
		}

		typeErrs[ute.Field] = true
		delete(remaining, ute.Field)
	}
}

func isNull(raw map[string]json.RawMessage, field string) bool {
	v, ok := raw[field]
	return ok && bytes.Equal(bytes.TrimSpace(v), []byte("null"))
}

func present(raw map[string]json.RawMessage, field string) bool {
	_, ok := raw[field]
	return ok
}

// checkText validates a required non-blank text field; returns the value.
func checkText(fe fieldErrors, raw map[string]json.RawMessage, field string, value *string, typeErrs map[string]bool) string {
	if !present(raw, field) || isNull(raw, field) {
		fe.add(field, msgRequired)
		return ""
	}
	if typeErrs[field] {
		fe.add(field, msgNotString)
		return ""
	}
	if value == nil {
		return ""
	}
	if *value == "" {
		fe.add(field, msgBlank)
		return ""
	}
	if len(*value) > maxTextLength {
		fe.add(field, msgMaxLength)
		return ""
	}
	return *value
}

// checkDatetime validates a required RFC 3339 timestamp field.
func checkDatetime(fe fieldErrors, raw map[string]json.RawMessage, field string, value *string, typeErrs map[string]bool) time.Time {
	if !present(raw, field) || isNull(raw, field) {
		fe.add(field, msgRequired)
		return time.Time{}
	}
	if typeErrs[field] {
		fe.add(field, msgDatetime)
		return time.Time{}
	}
	if value == nil {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, *value)
	if err != nil {
		fe.add(field, msgDatetime)
		return time.Time{}
	}
	return t
}
