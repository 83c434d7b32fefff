// internal/application/usecase/errors.go
package usecase

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"stockroom/internal/domain/remote"
	"stockroom/internal/domain/session"
)

// Kind classifies an operation failure for the caller. Every failure is
// also converted into exactly one status notification at the operation
// boundary; nothing propagates as an uncaught error.
type Kind string

const (
	// KindUnauthenticated: no principal or credential available. Surfaced
	// immediately, no retry; the user must (re-)authenticate.
	KindUnauthenticated Kind = "unauthenticated"

	// KindAuthTransient: credential acquisition failed for a recoverable
	// reason; the user may retry the triggering action.
	KindAuthTransient Kind = "auth_transient"

	// KindValidationLocal: rejected before any network call.
	KindValidationLocal Kind = "validation_local"

	// KindRemoteRejected: non-2xx response with a structured detail,
	// surfaced verbatim.
	KindRemoteRejected Kind = "remote_rejected"

	// KindRemoteUnreachable: network-level failure, surfaced with a
	// generic message.
	KindRemoteUnreachable Kind = "remote_unreachable"
)

// OpError is the tagged failure of one logical operation.
type OpError struct {
	Kind   Kind
	Detail string
}

func (e *OpError) Error() string {
	return fmt.Sprintf("usecase: %s: %s", e.Kind, e.Detail)
}

func opErr(kind Kind, detail string) *OpError {
	return &OpError{Kind: kind, Detail: detail}
}

// classifyAuth maps a credential-source failure onto the taxonomy.
func classifyAuth(err error) *OpError {
	if errors.Is(err, session.ErrInteractionRequired) {
		return opErr(KindUnauthenticated, "Session expired. Please sign in again.")
	}
	return opErr(KindAuthTransient, "Could not acquire credentials. Please try again.")
}

// classifyRemote maps a gateway/submitter failure onto the taxonomy.
//
// A structured rejection surfaces the server detail verbatim, falling back
// to "<fallback> Status: <code>" when the body carried none. A local
// boundary-validation failure never reached the network. Anything else is a
// transport failure, prefixed so the user sees which action broke.
func classifyRemote(err error, fallback, transportPrefix string) *OpError {
	var rerr *remote.Error
	if errors.As(err, &rerr) {
		if d := strings.TrimSpace(rerr.Detail); d != "" {
			return opErr(KindRemoteRejected, d)
		}
		return opErr(KindRemoteRejected, fmt.Sprintf("%s Status: %d", fallback, rerr.Status))
	}

	var verr validator.ValidationErrors
	if errors.As(err, &verr) {
		return opErr(KindValidationLocal, fmt.Sprintf("%s %v", transportPrefix, verr))
	}

	return opErr(KindRemoteUnreachable, fmt.Sprintf("%s %v", transportPrefix, err))
}
