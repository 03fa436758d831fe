package emotion

import (
	"errors"

	"github.com/easeaico/voice-diary/internal/utils"
)

// Failure kinds of the model-assisted path. None of them reaches callers of
// Analyzer or Classifier; they select the local fallback and are logged.
var (
	ErrCredentialMissing = errors.New("completion credential missing")
	ErrTransportFailure  = errors.New("completion transport failure")
	ErrMalformedResponse = utils.ErrMalformedResponse
)

func failureKind(err error) string {
	switch {
	case errors.Is(err, ErrCredentialMissing):
		return "credential_missing"
	case errors.Is(err, ErrMalformedResponse):
		return "malformed_response"
	case errors.Is(err, ErrTransportFailure):
		return "transport_failure"
	default:
		return "unknown"
	}
}
