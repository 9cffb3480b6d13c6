// engine/engine.go

package engine

import (
	warden_errors "github.com/dev-mohitbeniwal/warden/errors"
	"github.com/dev-mohitbeniwal/warden/model"
)

// DefaultAdminRole is the distinguished role name carrying administrator
// semantics unless the engine is configured otherwise.
const DefaultAdminRole = "administrator"

// Context is the evaluation context handed to the rule evaluator alongside
// the rules selected for a request.
type Context struct {
	Action     string
	Conditions map[string]any
	TypeTable  map[string]string
}

// RuleEvaluator evaluates an ordered set of parsed rule bodies against a
// context. The rule grammar is entirely its business.
type RuleEvaluator interface {
	Evaluate(rules []any, evalCtx Context) bool
}

// Engine decides whether a principal may perform an action on a resource.
// It is pure: it performs no I/O, never blocks, holds no mutable state, and
// is safe to call from any number of goroutines.
type Engine struct {
	evaluator RuleEvaluator
	adminRole string
	typeTable map[string]string
}

// NewEngine creates an engine delegating final policy evaluation to
// evaluator. An empty adminRole selects DefaultAdminRole; typeTable is the
// optional pre-bound rule-type table, overridable per request.
func NewEngine(evaluator RuleEvaluator, adminRole string, typeTable map[string]string) *Engine {
	if adminRole == "" {
		adminRole = DefaultAdminRole
	}
	return &Engine{
		evaluator: evaluator,
		adminRole: adminRole,
		typeTable: typeTable,
	}
}

// Authorize evaluates the request and returns nil to allow, or one of the
// structured access errors. The first matching terminal rule wins; no
// partial decisions are returned.
func (e *Engine) Authorize(req *model.AuthorizationRequest) error {
	principal := req.Principal
	resource := req.Resource
	owner := resource.Owner.Account

	// A bare account acting on its own resources, or any operator account,
	// bypasses every further check.
	if principal.User == nil && (owner.UUID == principal.Account.UUID || principal.Account.IsOperator) {
		return nil
	}

	if !principal.Account.ApprovedForProvisioning && !principal.Account.IsOperator {
		return &warden_errors.AccountBlockedError{Login: principal.Account.Login}
	}
	if !owner.ApprovedForProvisioning && !owner.IsOperator && !principal.Account.IsOperator {
		return &warden_errors.AccountBlockedError{Login: owner.Login}
	}

	matched := false
	var rules []any
	for _, active := range req.Conditions.ActiveRoles {
		role, ok := principal.Roles[active]
		if !ok {
			return &warden_errors.InvalidRoleError{Role: active}
		}

		if role.Name == e.adminRole {
			// Administrator bypass is scoped to the role's own account;
			// holding an admin role on a different account confers nothing.
			if owner.UUID == role.Account ||
				(principal.Account.IsOperator && principal.Account.UUID == role.Account) {
				return nil
			}
			continue
		}

		if resource.HasRoleTag(active) {
			matched = true
			for _, rule := range role.Rules {
				rules = append(rules, rule.Body)
			}
			continue
		}

		// An untagged role only counts through its wildcard rules. Its
		// tag-scoped rules must never reach the evaluator here, or they
		// would apply without a matching tag.
		if wildcard := role.WildcardRules(); len(wildcard) > 0 {
			matched = true
			for _, rule := range wildcard {
				rules = append(rules, rule.Body)
			}
		}
	}

	if !matched {
		return warden_errors.ErrNoMatchingRoleTag
	}
	if len(rules) == 0 {
		return warden_errors.ErrRulesEvaluationFailed
	}

	evalCtx := Context{
		Action:     req.Action,
		Conditions: req.Conditions.Map(),
		TypeTable:  e.typeTable,
	}
	if req.TypeTable != nil {
		evalCtx.TypeTable = req.TypeTable
	}
	if !e.evaluator.Evaluate(rules, evalCtx) {
		return warden_errors.ErrRulesEvaluationFailed
	}
	return nil
}
