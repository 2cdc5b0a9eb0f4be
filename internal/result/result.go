// Package result provides the success/failure envelope returned by the
// analysis engine.
package result

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Result is either a successful payload or a failure message, never both.
// The zero value is a failure with an empty message.
type Result[T any] struct {
	ok    bool
	value T
	err   string
}

// Success wraps a payload
func Success[T any](v T) Result[T] {
	return Result[T]{ok: true, value: v}
}

// Failure wraps an error. A nil error becomes "unknown error".
func Failure[T any](err error) Result[T] {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	return Result[T]{err: msg}
}

// Succeeded reports whether the result carries a payload
func (r Result[T]) Succeeded() bool {
	return r.ok
}

// Value returns the payload and whether it is present
func (r Result[T]) Value() (T, bool) {
	return r.value, r.ok
}

// Err returns the failure as an error, or nil on success
func (r Result[T]) Err() error {
	if r.ok {
		return nil
	}
	return errors.New(r.err)
}

// Message returns the failure message, or "" on success
func (r Result[T]) Message() string {
	return r.err
}

// MarshalJSON emits {"success":true, ...payload fields} on success and
// {"success":false,"error":"..."} on failure. The payload must encode as a
// JSON object.
func (r Result[T]) MarshalJSON() ([]byte, error) {
	if !r.ok {
		return json.Marshal(struct {
			Success bool   `json:"success"`
			Error   string `json:"error"`
		}{false, r.err})
	}

	payload, err := json.Marshal(r.value)
	if err != nil {
		return nil, err
	}
	payload = bytes.TrimSpace(payload)
	if len(payload) < 2 || payload[0] != '{' {
		return nil, fmt.Errorf("result: payload must encode as an object, got %.20s", payload)
	}

	var buf bytes.Buffer
	buf.WriteString(`{"success":true`)
	if inner := bytes.TrimSpace(payload[1 : len(payload)-1]); len(inner) > 0 {
		buf.WriteByte(',')
		buf.Write(inner)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
