package model

import "fmt"

// Conditions carries the caller-asserted context of an authorization
// request. ActiveRoles is the subset of the principal's roles in effect for
// this specific request; Extra is passed through to the rule evaluator
// untouched.
type Conditions struct {
	ActiveRoles []string
	Extra       map[string]any
}

// Map flattens the conditions into the map shape the rule evaluator
// consumes.
func (c *Conditions) Map() map[string]any {
	flat := make(map[string]any, len(c.Extra)+1)
	for k, v := range c.Extra {
		flat[k] = v
	}
	flat["activeRoles"] = c.ActiveRoles
	return flat
}

// AuthorizationRequest is a fully specified question for the decision
// engine. Construct it with NewAuthorizationRequest so required fields are
// enforced up front rather than mid-evaluation.
type AuthorizationRequest struct {
	Principal  *Principal
	Action     string
	Resource   *Resource
	Conditions *Conditions

	// TypeTable optionally overrides the engine's pre-bound rule-type table
	// for this one call.
	TypeTable map[string]string
}

// NewAuthorizationRequest validates and assembles an authorization request.
func NewAuthorizationRequest(principal *Principal, action string, resource *Resource, conditions *Conditions) (*AuthorizationRequest, error) {
	if principal == nil || principal.Account == nil {
		return nil, fmt.Errorf("authorization request must carry a principal with an account")
	}
	if action == "" {
		return nil, fmt.Errorf("authorization request must carry an action")
	}
	if resource == nil || resource.Owner == nil || resource.Owner.Account == nil {
		return nil, fmt.Errorf("authorization request must carry a resource with an owner account")
	}
	if conditions == nil || conditions.ActiveRoles == nil {
		return nil, fmt.Errorf("authorization request conditions must carry activeRoles")
	}
	return &AuthorizationRequest{
		Principal:  principal,
		Action:     action,
		Resource:   resource,
		Conditions: conditions,
	}, nil
}
