package authhandlers

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	authservice "github.com/Black-And-White-Club/party-bracket/app/modules/auth/application"
	"github.com/Black-And-White-Club/party-bracket/pkg/observability/attr"
	"github.com/nats-io/nats.go"
)

// ErrMalformedCallout is a callout request that is not a decodable JWT.
var ErrMalformedCallout = errors.New("malformed auth callout request")

// CalloutRequest is the payload of the JWT the server sends for every connecting device.
type CalloutRequest struct {
	Issuer  string      `json:"iss,omitempty"`
	Subject string      `json:"sub,omitempty"`
	Expires int64       `json:"exp,omitempty"`
	Nats    CalloutNats `json:"nats,omitempty"`
}

// CalloutNats carries the connecting device.
type CalloutNats struct {
	UserNkey    string                 `json:"user_nkey,omitempty"`
	ConnectOpts DeviceConnectOpts      `json:"connect_opts,omitempty"`
	ClientInfo  authservice.ClientInfo `json:"client_info,omitempty"`
}

// DeviceConnectOpts is the subset of the CONNECT options a device may put its session in.
type DeviceConnectOpts struct {
	Token    string `json:"auth_token,omitempty"`
	Password string `json:"pass,omitempty"`
	JWT      string `json:"jwt,omitempty"`
	User     string `json:"user,omitempty"`
	Name     string `json:"name,omitempty"`
}

// SessionToken is the device's session token. Devices send it with nats.Token; the password and
// jwt fields are read for older builds. Empty means the device has no seat yet.
func (o DeviceConnectOpts) SessionToken() string {
	for _, tok := range []string{o.Token, o.Password, o.JWT} {
		if tok != "" {
			return tok
		}
	}
	return ""
}

// HandleNATSAuthCallout admits or refuses a connecting device. Every request gets an answer,
// otherwise the device hangs until the server's callout timeout.
func (h *AuthHandlers) HandleNATSAuthCallout(msg *nats.Msg) {
	ctx, span := h.tracer.Start(context.Background(), "AuthHandlers.HandleNATSAuthCallout")
	defer span.End()

	callout, err := decodeCallout(msg.Data)
	if err != nil {
		h.logger.ErrorContext(ctx, "Unreadable auth callout", attr.Error(err))
		h.refuse(ctx, msg, "malformed request")
		return
	}

	device := callout.Nats
	token := device.ConnectOpts.SessionToken()
	h.logger.DebugContext(ctx, "Device connecting",
		attr.String("device_name", device.ConnectOpts.Name),
		attr.String("device_host", device.ClientInfo.Host),
		attr.Bool("has_session", token != ""),
	)

	resp, err := h.service.HandleNATSAuthRequest(ctx, &authservice.NATSAuthRequest{
		UserNkey:        device.UserNkey,
		ServerPublicKey: callout.Issuer,
		ConnectOpts: authservice.ConnectOptions{
			Password: token,
			User:     device.ConnectOpts.User,
		},
		ClientInfo: device.ClientInfo,
	})
	switch {
	case err != nil:
		h.logger.ErrorContext(ctx, "Auth callout failed", attr.Error(err))
		h.refuse(ctx, msg, "internal error")
		return
	case resp.SignedResponse == "":
		h.logger.ErrorContext(ctx, "Auth callout produced no signed answer")
		h.refuse(ctx, msg, "internal error")
		return
	}

	if err := msg.Respond([]byte(resp.SignedResponse)); err != nil {
		h.logger.ErrorContext(ctx, "Auth callout answer not delivered", attr.Error(err))
		return
	}

	if resp.Error != "" {
		h.logger.WarnContext(ctx, "Device refused",
			attr.String("device_host", device.ClientInfo.Host),
			attr.String("reason", resp.Error),
		)
		return
	}
	h.logger.InfoContext(ctx, "Device admitted",
		attr.String("device_host", device.ClientInfo.Host),
		attr.Bool("has_session", token != ""),
	)
}

// decodeCallout reads the request claims without checking the signature: the request comes from
// the server over the system account.
func decodeCallout(data []byte) (*CalloutRequest, error) {
	parts := strings.Split(string(data), ".")
	if len(parts) != 3 {
		return nil, fmt.Errorf("%w: %d segments", ErrMalformedCallout, len(parts))
	}

	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		if payload, err = base64.StdEncoding.DecodeString(parts[1]); err != nil {
			return nil, fmt.Errorf("%w: payload encoding", ErrMalformedCallout)
		}
	}

	var req CalloutRequest
	if err := json.Unmarshal(payload, &req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedCallout, err)
	}
	return &req, nil
}

// refuse answers unsigned. The server treats an unsigned answer as a denial.
func (h *AuthHandlers) refuse(ctx context.Context, msg *nats.Msg, reason string) {
	data, _ := json.Marshal(authservice.NATSAuthResponse{Error: reason})
	if err := msg.Respond(data); err != nil {
		h.logger.ErrorContext(ctx, "Auth callout refusal not delivered", attr.Error(err))
	}
}
