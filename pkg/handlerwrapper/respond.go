package handlerwrapper

import (
	"context"

	"github.com/Black-And-White-Club/party-bracket/pkg/events"
)

// Respond builds the reply envelope for a request/reply command. Errors are mapped to stable
// codes through mappers; anything unmapped is answered as INTERNAL. Without a reply subject
// there is nothing to publish.
func Respond(ctx context.Context, data any, err error, mappers ...events.CodeMapper) []Result {
	rt, ok := ReplyTo(ctx)
	if !ok {
		return nil
	}
	if err != nil {
		return []Result{{Topic: rt, Payload: events.FailureFrom(err, mappers...)}}
	}
	return []Result{{Topic: rt, Payload: events.Success(data)}}
}

// IsInternal reports whether err has no stable code under mappers.
func IsInternal(err error, mappers ...events.CodeMapper) bool {
	if err == nil {
		return false
	}
	for _, m := range mappers {
		if _, ok := m(err); ok {
			return false
		}
	}
	return true
}
