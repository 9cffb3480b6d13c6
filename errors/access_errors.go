package errors

import (
	"errors"
	"fmt"
)

var (
	ErrNoMatchingRoleTag     = errors.New("none of the active roles are present on the resource")
	ErrRulesEvaluationFailed = errors.New("rules evaluation failed")
	ErrInvalidSignature      = errors.New("invalid signature")
	ErrClientClosed          = errors.New("client is closed")
)

// AccountBlockedError is returned when an account that is neither approved
// for provisioning nor an operator participates in an authorization.
type AccountBlockedError struct {
	Login string
}

func (e *AccountBlockedError) Error() string {
	return fmt.Sprintf("account %s is not approved for provisioning", e.Login)
}

// InvalidRoleError is returned when an active role is not held by the
// principal. It fails the whole authorization, not just the one role.
type InvalidRoleError struct {
	Role string
}

func (e *InvalidRoleError) Error() string {
	return fmt.Sprintf("role %s is invalid for this principal", e.Role)
}

// CrossAccountError is returned when an authenticated identity is bound to a
// different account than the one the request targets.
type CrossAccountError struct {
	AccountUUID string
	TargetUUID  string
}

func (e *CrossAccountError) Error() string {
	return fmt.Sprintf("account %s may not act on behalf of account %s", e.AccountUUID, e.TargetUUID)
}

// KeyDoesNotExistError is returned when the key id named by an
// authentication request is not among the identity's registered keys.
type KeyDoesNotExistError struct {
	Login string
	KeyID string
}

func (e *KeyDoesNotExistError) Error() string {
	return fmt.Sprintf("key %s does not exist for %s", e.KeyID, e.Login)
}

// IsAccountBlocked reports whether err is an AccountBlockedError.
func IsAccountBlocked(err error) bool {
	var blocked *AccountBlockedError
	return errors.As(err, &blocked)
}

// IsInvalidRole reports whether err is an InvalidRoleError.
func IsInvalidRole(err error) bool {
	var invalid *InvalidRoleError
	return errors.As(err, &invalid)
}
