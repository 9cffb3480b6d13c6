package errors

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Machine-readable codes carried by identity service error responses. They
// pass through the client unchanged.
const (
	CodeAccountNotFound      = "AccountDoesNotExist"
	CodeUserNotFound         = "UserDoesNotExist"
	CodeAccessKeyNotFound    = "AccessKeyDoesNotExist"
	CodeResourceNotFound     = "ResourceNotFound"
	CodeRequestTimeTooSkewed = "RequestTimeTooSkewed"
)

// APIError is a structured failure returned by the identity service. Body
// holds the raw response payload; for a user-not-found failure the service
// guarantees it still carries the account portion of the identity blob.
type APIError struct {
	StatusCode int             `json:"-"`
	Code       string          `json:"code"`
	Message    string          `json:"message"`
	Body       json.RawMessage `json:"-"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// AsAPIError unwraps err into an APIError, or returns nil.
func AsAPIError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return nil
}

func hasCode(err error, code string) bool {
	apiErr := AsAPIError(err)
	return apiErr != nil && apiErr.Code == code
}

// IsUserNotFound reports whether err is the service's user-not-found failure.
func IsUserNotFound(err error) bool {
	return hasCode(err, CodeUserNotFound)
}

// IsAccountNotFound reports whether err is the service's account-not-found failure.
func IsAccountNotFound(err error) bool {
	return hasCode(err, CodeAccountNotFound)
}

// IsAccessKeyNotFound reports whether err is the service's access-key-not-found failure.
func IsAccessKeyNotFound(err error) bool {
	return hasCode(err, CodeAccessKeyNotFound)
}

// IsResourceNotFound reports whether err is the service's resource-not-found failure.
func IsResourceNotFound(err error) bool {
	return hasCode(err, CodeResourceNotFound)
}

// IsRequestTimeTooSkewed reports whether err is the service's clock-skew failure.
func IsRequestTimeTooSkewed(err error) bool {
	return hasCode(err, CodeRequestTimeTooSkewed)
}
