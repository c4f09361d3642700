// Package errors provides the standardized error type shared by the store,
// the Zeebe workers and the HTTP API, plus its conversion to BPMN errors.
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

// Business rule errors.
const (
	ErrCodeArtistNotFound        ErrorCode = "ARTIST_NOT_FOUND"
	ErrCodeTierNotFound          ErrorCode = "TIER_NOT_FOUND"
	ErrCodeContentNotFound       ErrorCode = "CONTENT_NOT_FOUND"
	ErrCodeUserNotFound          ErrorCode = "USER_NOT_FOUND"
	ErrCodeSubscriptionNotFound  ErrorCode = "SUBSCRIPTION_NOT_FOUND"
	ErrCodeSubscriptionsDisabled ErrorCode = "SUBSCRIPTIONS_DISABLED"
	ErrCodeTierArtistMismatch    ErrorCode = "TIER_ARTIST_MISMATCH"
	ErrCodeTierLimitReached      ErrorCode = "TIER_LIMIT_REACHED"
	ErrCodeTierHasSubscribers    ErrorCode = "TIER_HAS_SUBSCRIBERS"
	ErrCodeTierGatesContent      ErrorCode = "TIER_GATES_CONTENT"
	ErrCodeValidationFailed      ErrorCode = "VALIDATION_FAILED"
	ErrCodeInputParsingFailed    ErrorCode = "INPUT_PARSING_FAILED"
)

// Technical errors.
const (
	ErrCodeCacheFailed            ErrorCode = "CACHE_FAILED"
	ErrCodeSearchQueryFailed      ErrorCode = "SEARCH_QUERY_FAILED"
	ErrCodeSearchTimeout          ErrorCode = "SEARCH_TIMEOUT"
	ErrCodeCatalogLoadFailed      ErrorCode = "CATALOG_LOAD_FAILED"
	ErrCodeNotificationSendFailed ErrorCode = "NOTIFICATION_SEND_FAILED"
	ErrCodeInternal               ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("StandardError[%s]: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// As extracts a *StandardError from err's chain.
func As(err error) (*StandardError, bool) {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr, true
	}
	return nil, false
}

// CodeOf returns the error code of err, or INTERNAL_ERROR for foreign errors.
func CodeOf(err error) ErrorCode {
	if stdErr, ok := As(err); ok {
		return stdErr.Code
	}
	return ErrCodeInternal
}

// HasCode reports whether err carries the given code.
func HasCode(err error, code ErrorCode) bool {
	return err != nil && CodeOf(err) == code
}

// ==========================
// 2. BPMN Error Integration
// ==========================

// BPMNError represents an error that can be thrown to the Camunda workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns a map suitable for setting Camunda job fail variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}
	for k, v := range e.ErrorVariables {
		vars[k] = v
	}
	return vars
}

// ==========================
// 3. Error Constructors
// ==========================

func newError(code ErrorCode, message, details string, retryable bool) *StandardError {
	return &StandardError{
		Code:      code,
		Message:   message,
		Details:   details,
		Retryable: retryable,
		Timestamp: time.Now().UTC(),
	}
}

func NewArtistNotFoundError(artistID string) *StandardError {
	return newError(ErrCodeArtistNotFound, "Artist not found", fmt.Sprintf("artistId: %s", artistID), false)
}

func NewTierNotFoundError(tierID string) *StandardError {
	return newError(ErrCodeTierNotFound, "Tier not found", fmt.Sprintf("tierId: %s", tierID), false)
}

func NewContentNotFoundError(contentID string) *StandardError {
	return newError(ErrCodeContentNotFound, "Exclusive content not found", fmt.Sprintf("contentId: %s", contentID), false)
}

func NewUserNotFoundError(userID string) *StandardError {
	return newError(ErrCodeUserNotFound, "User not found", fmt.Sprintf("userId: %s", userID), false)
}

// NewSubscriptionNotFoundError is returned when no active subscription links
// the user to the artist.
func NewSubscriptionNotFoundError(userID, artistID string) *StandardError {
	return newError(ErrCodeSubscriptionNotFound, "No active subscription",
		fmt.Sprintf("userId: %s, artistId: %s", userID, artistID), false)
}

func NewSubscriptionsDisabledError(artistID string) *StandardError {
	return newError(ErrCodeSubscriptionsDisabled, "Artist does not offer subscriptions",
		fmt.Sprintf("artistId: %s", artistID), false)
}

func NewTierArtistMismatchError(tierID, artistID string) *StandardError {
	return newError(ErrCodeTierArtistMismatch, "Tier does not belong to artist",
		fmt.Sprintf("tierId: %s, artistId: %s", tierID, artistID), false)
}

func NewTierLimitReachedError(artistID string, limit int) *StandardError {
	return newError(ErrCodeTierLimitReached, "Artist already has the maximum number of tiers",
		fmt.Sprintf("artistId: %s, limit: %d", artistID, limit), false)
}

func NewTierHasSubscribersError(tierID string, active int) *StandardError {
	return newError(ErrCodeTierHasSubscribers, "Tier still has active subscribers",
		fmt.Sprintf("tierId: %s, activeSubscribers: %d", tierID, active), false)
}

// NewTierGatesContentError is returned when deleting a tier would leave
// content that no tier unlocks.
func NewTierGatesContentError(tierID, contentID string) *StandardError {
	return newError(ErrCodeTierGatesContent, "Tier is the only tier unlocking content",
		fmt.Sprintf("tierId: %s, contentId: %s", tierID, contentID), false)
}

func NewValidationError(details string) *StandardError {
	return newError(ErrCodeValidationFailed, "Input validation failed", details, false)
}

func NewInputParsingError(err error) *StandardError {
	return newError(ErrCodeInputParsingFailed, "Failed to parse job variables", err.Error(), false)
}

func NewCacheError(err error) *StandardError {
	return newError(ErrCodeCacheFailed, "Cache operation failed", err.Error(), true)
}

func NewSearchQueryFailedError(err error) *StandardError {
	return newError(ErrCodeSearchQueryFailed, "Artist search failed", err.Error(), true)
}

func NewSearchTimeoutError(query string) *StandardError {
	return newError(ErrCodeSearchTimeout, "Artist search timeout", fmt.Sprintf("query: %s", query), true)
}

func NewCatalogLoadFailedError(source string, err error) *StandardError {
	return newError(ErrCodeCatalogLoadFailed, "Catalog load failed",
		fmt.Sprintf("source: %s, error: %s", source, err.Error()), true)
}

func NewNotificationSendFailedError(channel string, err error) *StandardError {
	return newError(ErrCodeNotificationSendFailed, "Notification delivery failed",
		fmt.Sprintf("channel: %s, error: %s", channel, err.Error()), true)
}

func NewInternalError(err error) *StandardError {
	return newError(ErrCodeInternal, "Unexpected error", err.Error(), false)
}

// ==========================
// 4. Error Conversion to BPMN
// ==========================

// GetRetryCount returns the recommended retry count for a code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeCacheFailed,
		ErrCodeSearchQueryFailed,
		ErrCodeCatalogLoadFailed,
		ErrCodeNotificationSendFailed:
		return 3
	case ErrCodeSearchTimeout:
		return 2
	default:
		return 0
	}
}

// ConvertToBPMNError converts a StandardError to a BPMNError for Camunda.
// Internal and BPMN codes are identical.
func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}
	return &BPMNError{
		Code:      string(stdErr.Code),
		Message:   stdErr.Message,
		Details:   stdErr.Details,
		Retryable: stdErr.Retryable,
		Retries:   retries,
		ErrorVariables: map[string]interface{}{
			"originalErrorCode": string(stdErr.Code),
			"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
		},
	}
}

// ==========================
// 5. Utility Functions
// ==========================

func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory groups codes for logging and metrics labels.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "SUBSCRIPTION"):
		return "SUBSCRIPTION"
	case strings.HasPrefix(codeStr, "TIER"):
		return "TIER"
	case strings.Contains(codeStr, "NOT_FOUND"):
		return "LOOKUP"
	case strings.Contains(codeStr, "SEARCH"):
		return "SEARCH"
	case strings.Contains(codeStr, "NOTIFICATION"):
		return "NOTIFICATION"
	case strings.Contains(codeStr, "CACHE") || strings.Contains(codeStr, "CATALOG"):
		return "INFRASTRUCTURE"
	case strings.Contains(codeStr, "VALIDATION") || strings.Contains(codeStr, "PARSING"):
		return "VALIDATION"
	default:
		return "OTHER"
	}
}
