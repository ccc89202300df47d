package authhandlers

import (
	"net/http"

	"github.com/nats-io/nats.go"
)

// Handlers serves session issuance over HTTP and the NATS auth callout.
type Handlers interface {
	HandleHTTPSession(w http.ResponseWriter, r *http.Request)
	HandleNATSAuthCallout(msg *nats.Msg)
}
