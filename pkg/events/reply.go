package events

import (
	"encoding/json"
	"errors"
)

// Codes shared by every module.
const (
	CodeInvalidRequest = "INVALID_REQUEST"
	CodeInternal       = "INTERNAL"
)

// ErrorBody is the error half of a reply envelope.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *ErrorBody) Error() string {
	return e.Code + ": " + e.Message
}

// Reply is the envelope every command handler answers with.
type Reply struct {
	OK    bool       `json:"ok"`
	Data  any        `json:"data,omitempty"`
	Error *ErrorBody `json:"error,omitempty"`
}

func Success(data any) Reply {
	return Reply{OK: true, Data: data}
}

func Failure(code, message string) Reply {
	return Reply{Error: &ErrorBody{Code: code, Message: message}}
}

// RawReply is the receiving side of Reply.
type RawReply struct {
	OK    bool            `json:"ok"`
	Data  json.RawMessage `json:"data,omitempty"`
	Error *ErrorBody      `json:"error,omitempty"`
}

// ErrMalformedReply is returned for envelopes that are neither ok nor carry an error.
var ErrMalformedReply = errors.New("malformed reply envelope")

// Decode returns the remote error, or unmarshals Data into dst. A null or missing Data
// leaves dst untouched.
func (r RawReply) Decode(dst any) error {
	if !r.OK {
		if r.Error == nil {
			return ErrMalformedReply
		}
		return r.Error
	}
	if dst == nil || len(r.Data) == 0 || string(r.Data) == "null" {
		return nil
	}
	return json.Unmarshal(r.Data, dst)
}

// CodeMapper resolves a domain error to its stable code.
type CodeMapper func(err error) (string, bool)

// FailureFrom maps err through the module's mappers; unknown errors become INTERNAL.
func FailureFrom(err error, mappers ...CodeMapper) Reply {
	for _, m := range mappers {
		if code, ok := m(err); ok {
			return Failure(code, err.Error())
		}
	}
	return Failure(CodeInternal, "internal error")
}

// CodeTable builds a CodeMapper from sentinel errors.
func CodeTable(table map[error]string) CodeMapper {
	return func(err error) (string, bool) {
		for sentinel, code := range table {
			if errors.Is(err, sentinel) {
				return code, true
			}
		}
		return "", false
	}
}
