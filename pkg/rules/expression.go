package rules

import (
	"fmt"
	"strings"

	"github.com/google/cel-go/cel"

	"github.com/brokerlane/dealrisk/pkg/model"
)

// ExpressionRuleConfig is the data shape an operator supplies to
// register a custom rule without a code change.
type ExpressionRuleConfig struct {
	ID          string
	Description string
	Expression  string // CEL boolean expression; true means the rule fails
	Severity    model.Severity
	Category    model.Category
	FlagCode    string
}

// ExpressionRule evaluates an operator-supplied CEL boolean expression
// against a small set of contract facts. It generalizes the teacher's
// CEL-based PolicyEngine to data-driven deal-risk rules: the facts are
// `text` (the contract text, lowercased), `disclosure_count`,
// `addenda_count`, and `state`.
type ExpressionRule struct {
	base
	program  cel.Program
	flagCode string
	rawExpr  string
}

// NewExpressionRule compiles cfg.Expression and returns the rule, or
// an error if the expression fails to compile.
func NewExpressionRule(cfg ExpressionRuleConfig) (*ExpressionRule, error) {
	env, err := cel.NewEnv(
		cel.Variable("text", cel.StringType),
		cel.Variable("disclosure_count", cel.IntType),
		cel.Variable("addenda_count", cel.IntType),
		cel.Variable("state", cel.StringType),
	)
	if err != nil {
		return nil, fmt.Errorf("expression rule env: %w", err)
	}

	ast, issues := env.Compile(cfg.Expression)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("expression rule compile %q: %w", cfg.ID, issues.Err())
	}
	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("expression rule program %q: %w", cfg.ID, err)
	}

	severity := cfg.Severity
	if severity == "" {
		severity = model.SeverityMedium
	}
	category := cfg.Category
	if category == "" {
		category = model.CategoryLegal
	}
	flagCode := cfg.FlagCode
	if flagCode == "" {
		flagCode = "TRIGGERED"
	}

	return &ExpressionRule{
		base:     newBase(cfg.ID, cfg.ID, cfg.Description, category, severity),
		program:  prg,
		flagCode: flagCode,
		rawExpr:  cfg.Expression,
	}, nil
}

// Evaluate implements Rule. A CEL evaluation error is not turned into
// an _ERROR flag the way a panicking rule is: it is surfaced as a
// details string on a passing result, since an expression error should
// not itself constitute risk.
func (r *ExpressionRule) Evaluate(ctx *model.RuleContext) model.RuleResult {
	disclosures, addenda := 0, 0
	if ctx.Contract != nil {
		disclosures = len(ctx.Contract.Disclosures)
		addenda = len(ctx.Contract.Addenda)
	}

	out, _, err := r.program.Eval(map[string]any{
		"text":             strings.ToLower(ctx.Text()),
		"disclosure_count": disclosures,
		"addenda_count":    addenda,
		"state":            ctx.State,
	})
	if err != nil {
		return r.pass(fmt.Sprintf("expression %q evaluation error: %v", r.rawExpr, err))
	}

	triggered, ok := out.Value().(bool)
	if !ok || !triggered {
		return r.pass("expression not triggered")
	}
	return r.fail([]model.RiskFlag{r.flag(ctx.State, r.flagCode, r.description)}, "expression triggered")
}
