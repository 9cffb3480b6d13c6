package model

import (
	"encoding/json"
	"fmt"
)

// Account is a top-level identity. A fresh fetch always yields a new value;
// accounts are never mutated in place once handed to a caller.
type Account struct {
	UUID                    string            `json:"uuid"`
	Login                   string            `json:"login"`
	ApprovedForProvisioning bool              `json:"approvedForProvisioning"`
	IsOperator              bool              `json:"isOperator"`
	Keys                    map[string]string `json:"keys,omitempty"`
}

// User is a sub-identity of an Account. Account holds the owning account's
// uuid, Roles the uuids of the roles the user is a member of.
type User struct {
	UUID    string            `json:"uuid"`
	Login   string            `json:"login"`
	Account string            `json:"account"`
	Roles   []string          `json:"roles,omitempty"`
	Keys    map[string]string `json:"keys,omitempty"`
}

// Role is a named set of rules owned by an account.
type Role struct {
	UUID    string `json:"uuid"`
	Name    string `json:"name"`
	Account string `json:"account"`
	Rules   []Rule `json:"rules,omitempty"`
}

// WildcardRules returns the subset of the role's rules that apply to any
// resource.
func (r *Role) WildcardRules() []Rule {
	var wildcard []Rule
	for _, rule := range r.Rules {
		if rule.Scope == ScopeAny {
			wildcard = append(wildcard, rule)
		}
	}
	return wildcard
}

// Principal is an authenticated identity: an account, optionally a user
// acting under it, and the roles the identity actually holds keyed by role
// uuid. This is the blob shape the identity service returns.
type Principal struct {
	Account *Account        `json:"account"`
	User    *User           `json:"user,omitempty"`
	Roles   map[string]Role `json:"roles,omitempty"`
}

// DecodePrincipal parses an identity blob as returned by the identity
// service.
func DecodePrincipal(raw json.RawMessage) (*Principal, error) {
	var principal Principal
	if err := json.Unmarshal(raw, &principal); err != nil {
		return nil, fmt.Errorf("failed to decode identity blob: %w", err)
	}
	if principal.Account == nil {
		return nil, fmt.Errorf("identity blob has no account")
	}
	return &principal, nil
}

// Resource is the object being accessed: an owner identity plus the role
// tags governing which roles may access it.
type Resource struct {
	Owner *Principal `json:"owner"`
	Roles []string   `json:"roles,omitempty"`
}

// HasRoleTag reports whether the resource is tagged with the given role uuid.
func (r *Resource) HasRoleTag(roleUUID string) bool {
	for _, tag := range r.Roles {
		if tag == roleUUID {
			return true
		}
	}
	return false
}
