package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// GenericMessage is shown when a failure carries no server text.
const GenericMessage = "Something went wrong."

// NetworkError means the request never reached the server or no response
// arrived (offline, timeout, cancelled).
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("api: %s: network error: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// RequestError is a non-2xx response. Messages holds the server provided
// text from either {"error": "..."} or {"errors": [...]}.
type RequestError struct {
	Op       string
	Status   int
	Messages []string
}

func (e *RequestError) Error() string {
	if len(e.Messages) == 0 {
		return fmt.Sprintf("api: %s: %d %s", e.Op, e.Status, http.StatusText(e.Status))
	}
	return fmt.Sprintf("api: %s: %d: %s", e.Op, e.Status, strings.Join(e.Messages, "; "))
}

// DecodeError means the response body was not the JSON shape expected.
type DecodeError struct {
	Op     string
	Status int
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("api: %s: decode response (status %d): %v", e.Op, e.Status, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// IsStatus reports whether err is a RequestError with the given status.
func IsStatus(err error, status int) bool {
	var re *RequestError
	return errors.As(err, &re) && re.Status == status
}

// IsUnauthorized reports a 401 from the API.
func IsUnauthorized(err error) bool {
	return IsStatus(err, http.StatusUnauthorized)
}

// Messages returns the user facing messages for err: the server's list when
// one was sent, otherwise fallback. A nil error yields nil.
func Messages(err error, fallback string) []string {
	if err == nil {
		return nil
	}
	if fallback == "" {
		fallback = GenericMessage
	}
	var re *RequestError
	if errors.As(err, &re) && len(re.Messages) > 0 {
		return append([]string(nil), re.Messages...)
	}
	var me interface{ UserMessages() []string }
	if errors.As(err, &me) {
		if msgs := me.UserMessages(); len(msgs) > 0 {
			return msgs
		}
	}
	return []string{fallback}
}

// UserMessage joins Messages into a single line.
func UserMessage(err error, fallback string) string {
	return strings.Join(Messages(err, fallback), "\n")
}

// errorBody covers both error shapes the backend emits. Errors is kept raw
// because some endpoints send a field->messages object instead of a list.
type errorBody struct {
	Error  string          `json:"error"`
	Errors json.RawMessage `json:"errors"`
}

func (b errorBody) messages() []string {
	var out []string
	if s := strings.TrimSpace(b.Error); s != "" {
		out = append(out, s)
	}
	if len(b.Errors) == 0 {
		return out
	}
	var list []string
	if err := json.Unmarshal(b.Errors, &list); err == nil {
		for _, m := range list {
			if s := strings.TrimSpace(m); s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	var byField map[string][]string
	if err := json.Unmarshal(b.Errors, &byField); err == nil {
		fields := make([]string, 0, len(byField))
		for f := range byField {
			fields = append(fields, f)
		}
		sort.Strings(fields)
		for _, f := range fields {
			for _, m := range byField[f] {
				out = append(out, strings.TrimSpace(f+" "+m))
			}
		}
	}
	return out
}
