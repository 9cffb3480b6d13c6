package model

import (
	"encoding/json"
	"fmt"
)

// RuleScope marks which resources a policy rule applies to.
type RuleScope int

const (
	// ScopeResource rules apply only to resources tagged with the owning role.
	ScopeResource RuleScope = iota
	// ScopeAny rules apply to any resource, tagged or not.
	ScopeAny
)

// WildcardResource is the sentinel the rule compiler places in a parsed
// rule's "resources" field when the rule applies to any resource. Its exact
// encoding is owned by the rule evaluator; the client only compares against
// it to derive the rule's scope.
const WildcardResource = "*"

// Rule is a single parsed policy expression. Body is opaque to the client
// and is handed to the rule evaluator as-is; Raw is the original rule text,
// kept for diagnostics only.
type Rule struct {
	Raw   string
	Body  any
	Scope RuleScope
}

// UnmarshalJSON decodes the wire form of a rule, a [rawText, parsedRule]
// pair.
func (r *Rule) UnmarshalJSON(data []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("rule must be a [raw, parsed] pair, got %d elements", len(pair))
	}
	if err := json.Unmarshal(pair[0], &r.Raw); err != nil {
		return fmt.Errorf("failed to decode rule text: %w", err)
	}
	var body any
	if err := json.Unmarshal(pair[1], &body); err != nil {
		return fmt.Errorf("failed to decode parsed rule: %w", err)
	}
	r.Body = body
	r.Scope = scopeOf(body)
	return nil
}

func scopeOf(body any) RuleScope {
	parsed, ok := body.(map[string]any)
	if !ok {
		return ScopeResource
	}
	if parsed["resources"] == WildcardResource {
		return ScopeAny
	}
	return ScopeResource
}
