// test/mock/evaluator.go
package mock

import (
	"github.com/stretchr/testify/mock"

	"github.com/dev-mohitbeniwal/warden/engine"
)

// RuleEvaluator is a mock implementation of engine.RuleEvaluator
type RuleEvaluator struct {
	mock.Mock
}

func (m *RuleEvaluator) Evaluate(rules []any, evalCtx engine.Context) bool {
	args := m.Called(rules, evalCtx)
	return args.Bool(0)
}
