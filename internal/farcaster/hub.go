package farcaster

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/saveup/saveup/pkg/clients"
)

// VerifierI validates a signed sign-in payload and yields the caller's
// stable Farcaster id. The hub is trusted for the fid once valid is true.
type VerifierI interface {
	VerifyMessage(ctx context.Context, message, signature, nonce string) (*Verification, error)
}

type Verification struct {
	IsValid bool  `json:"isValid"`
	FID     int64 `json:"fid,omitempty"`
}

var ErrHubUnavailable = errors.New("identity hub unavailable")

type verifyRequest struct {
	Message   string `json:"message"`
	Signature string `json:"signature"`
	Nonce     string `json:"nonce"`
}

type Verifier struct {
	url    string
	client clients.HTTPClientI
}

func New(hubURL string, client clients.HTTPClientI) *Verifier {
	return &Verifier{
		url:    hubURL + "/v1/validateMessage",
		client: client,
	}
}

// VerifyMessage posts the signed payload to the hub. Hub-side rejection is
// not an error: it comes back as IsValid=false so callers can distinguish
// a bad signature from an unreachable hub.
func (v *Verifier) VerifyMessage(ctx context.Context, message, signature, nonce string) (*Verification, error) {
	body, err := json.Marshal(verifyRequest{
		Message:   message,
		Signature: signature,
		Nonce:     nonce,
	})
	if err != nil {
		return nil, fmt.Errorf("can't marshal verify request: %w", err)
	}

	headers := http.Header{"Content-Type": []string{"application/json"}}
	statusCode, respBody, err := v.client.Post(v.url, headers, body)
	if err != nil {
		zap.L().Error("hub request failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrHubUnavailable, err)
	}

	switch statusCode {
	case http.StatusOK:
		var verification Verification
		if err := json.Unmarshal(respBody, &verification); err != nil {
			return nil, fmt.Errorf("can't parse hub response: %w", err)
		}
		return &verification, nil
	case http.StatusBadRequest, http.StatusUnauthorized:
		return &Verification{IsValid: false}, nil
	default:
		zap.L().Error("unexpected hub status", zap.Int("status", statusCode))
		return nil, fmt.Errorf("%w: status %d", ErrHubUnavailable, statusCode)
	}
}
