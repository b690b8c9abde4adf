package gateway

import (
	"fmt"

	"github.com/pkg/errors"
)

type TransportCategory string

const (
	TransportUnreachable TransportCategory = "Unreachable"
	TransportTimeout     TransportCategory = "Timeout"
	TransportCancelled   TransportCategory = "Cancelled"
	TransportBadReply    TransportCategory = "BadReply"
)

type FailureCategory string

const (
	FailureRejected          FailureCategory = "Rejected"
	FailureProtocolViolation FailureCategory = "ProtocolViolation"
)

// ValidationError reports an intent that violates a protocol precondition.
// It is produced before any network activity.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// TransportError reports an exchange that could not be completed or decoded.
type TransportError struct {
	Category TransportCategory
	Err      error
}

func (e *TransportError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("transport failure (%s)", e.Category)
	}
	return fmt.Sprintf("transport failure (%s): %v", e.Category, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// GatewayFailure reports an exchange that completed but whose outcome is not
// usable: the gateway rejected the operation, or its success reply is
// internally inconsistent. DetailURL points at the gateway diagnostic log
// when the client knows it.
type GatewayFailure struct {
	Category  FailureCategory
	Message   string
	DetailURL string
}

func (e *GatewayFailure) Error() string {
	if len(e.DetailURL) != 0 {
		return fmt.Sprintf("gateway failure (%s): %s (see %s)", e.Category, e.Message, e.DetailURL)
	}
	return fmt.Sprintf("gateway failure (%s): %s", e.Category, e.Message)
}

func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsTransportError(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

func IsGatewayFailure(err error) bool {
	var gf *GatewayFailure
	return errors.As(err, &gf)
}

// TransportCategoryOf returns the category of a transport error, or "" when
// err is not one.
func TransportCategoryOf(err error) TransportCategory {
	var te *TransportError
	if errors.As(err, &te) {
		return te.Category
	}
	return ""
}

// FailureCategoryOf returns the category of a gateway failure, or "" when err
// is not one.
func FailureCategoryOf(err error) FailureCategory {
	var gf *GatewayFailure
	if errors.As(err, &gf) {
		return gf.Category
	}
	return ""
}
