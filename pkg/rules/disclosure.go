package rules

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/brokerlane/dealrisk/pkg/model"
)

func severityForDisclosureName(name string) model.Severity {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "standard"):
		return model.SeverityCritical
	case strings.Contains(lower, "property condition") || strings.Contains(lower, "property-condition"):
		return model.SeverityHigh
	default:
		return model.SeverityMedium
	}
}

// DisclosureMissingRule flags every required-but-not-provided
// disclosure, with severity derived from its name.
type DisclosureMissingRule struct{ base }

func NewDisclosureMissingRule() *DisclosureMissingRule {
	return &DisclosureMissingRule{newBase(
		"MISSING_DISCLOSURE", "Missing Disclosures",
		"Flags every disclosure that is required but not yet provided.",
		model.CategoryDisclosure, model.SeverityMedium,
	)}
}

func (r *DisclosureMissingRule) Evaluate(ctx *model.RuleContext) model.RuleResult {
	if ctx.Contract == nil {
		return r.pass("no contract to evaluate")
	}
	var flags []model.RiskFlag
	for _, d := range ctx.Contract.Disclosures {
		if d.Required && !d.Provided {
			flags = append(flags, r.flagWithSeverity("MISSING", fmt.Sprintf("Required disclosure not provided: %s", d.Name), severityForDisclosureName(d.Name)))
		}
	}
	return r.fail(flags, "missing disclosures check")
}

// DisclosureCompletenessRule matches a configurable required-set
// against provided disclosure names (case-insensitive substring both
// ways).
type DisclosureCompletenessRule struct {
	base
	Required []string
}

func NewDisclosureCompletenessRule(required []string) *DisclosureCompletenessRule {
	if len(required) == 0 {
		required = []string{"lead-based paint", "seller property disclosure"}
	}
	return &DisclosureCompletenessRule{
		base: newBase(
			"DISCLOSURE_COMPLETENESS", "Disclosure Completeness",
			"Matches the required disclosure set against what has been provided.",
			model.CategoryDisclosure, model.SeverityHigh,
		),
		Required: required,
	}
}

func (r *DisclosureCompletenessRule) Evaluate(ctx *model.RuleContext) model.RuleResult {
	if ctx.Contract == nil {
		return r.pass("no contract to evaluate")
	}
	var missing []string
	for _, want := range r.Required {
		if !matchesAnyProvided(ctx.Contract.Disclosures, want) {
			missing = append(missing, want)
		}
	}
	if len(missing) == 0 {
		return r.pass("all required disclosures accounted for")
	}
	return r.fail([]model.RiskFlag{r.flag(ctx.State, "INCOMPLETE", fmt.Sprintf("Missing required disclosures: %s", strings.Join(missing, ", ")))}, "incomplete disclosure set")
}

func matchesAnyProvided(disclosures []model.Disclosure, want string) bool {
	lowerWant := strings.ToLower(want)
	for _, d := range disclosures {
		if !d.Provided {
			continue
		}
		lowerName := strings.ToLower(d.Name)
		if strings.Contains(lowerName, lowerWant) || strings.Contains(lowerWant, lowerName) {
			return true
		}
	}
	return false
}

// HOADisclosureRule detects an HOA and, when present, requires the
// standard HOA document set.
type HOADisclosureRule struct{ base }

func NewHOADisclosureRule() *HOADisclosureRule {
	return &HOADisclosureRule{newBase(
		"HOA_DISCLOSURE", "HOA Disclosure",
		"When an HOA is present, requires HOA documents, CC&Rs, financial statements, and special assessment disclosures.",
		model.CategoryDisclosure, model.SeverityHigh,
	)}
}

var hoaRequirements = []string{"HOA documents", "CC&Rs", "HOA financial statements", "special assessments"}

func (r *HOADisclosureRule) Evaluate(ctx *model.RuleContext) model.RuleResult {
	text := ctx.Text()
	hoaPresent := containsAny(text, "hoa", "homeowners association", "homeowner's association")
	if !hoaPresent && ctx.Contract != nil {
		for _, d := range ctx.Contract.Disclosures {
			if containsAny(d.Name, "hoa", "association") {
				hoaPresent = true
				break
			}
		}
	}
	if !hoaPresent {
		return r.pass("no HOA detected")
	}

	var provided []model.Disclosure
	if ctx.Contract != nil {
		provided = ctx.Contract.Disclosures
	}

	var flags []model.RiskFlag
	for _, req := range hoaRequirements {
		if !matchesAnyProvided(provided, req) {
			flags = append(flags, r.flag(ctx.State, "HOA_MISSING", fmt.Sprintf("HOA present but missing: %s", req)))
		}
	}
	return r.fail(flags, "hoa disclosure check")
}

var disclosureDatePattern = regexp.MustCompile(`(?i)(?:dated|as of)\s+(\d{1,2})/(\d{1,2})/(\d{4})`)

// DisclosureAgeRule flags stale disclosures based on a "dated MM/DD/YYYY"
// or "as of MM/DD/YYYY" pattern in the contract text. This is the one
// rule permitted to consult the wall clock, per the disclosure-age
// convenience carve-out.
type DisclosureAgeRule struct {
	base
	now func() time.Time
}

func NewDisclosureAgeRule() *DisclosureAgeRule {
	return &DisclosureAgeRule{
		base: newBase(
			"DISCLOSURE_AGE", "Disclosure Age",
			"Flags disclosures whose stated date is older than the configured threshold.",
			model.CategoryDisclosure, model.SeverityMedium,
		),
		now: time.Now,
	}
}

func (r *DisclosureAgeRule) Evaluate(ctx *model.RuleContext) model.RuleResult {
	text := ctx.Text()
	m := disclosureDatePattern.FindStringSubmatch(text)
	if m == nil {
		return r.pass("no disclosure date found")
	}
	dated, err := time.Parse("1/2/2006", fmt.Sprintf("%s/%s/%s", m[1], m[2], m[3]))
	if err != nil {
		return r.pass("disclosure date unparseable")
	}

	ageDays := r.now().Sub(dated).Hours() / 24
	maxAge := r.threshold("max_age_days", 180)

	if ageDays > 365 {
		return r.fail([]model.RiskFlag{r.flagWithSeverity("OUTDATED", fmt.Sprintf("Disclosure dated %s is %.0f days old", dated.Format("2006-01-02"), ageDays), model.SeverityHigh)}, "disclosure severely outdated")
	}
	if ageDays > maxAge {
		return r.fail([]model.RiskFlag{r.flag(ctx.State, "OUTDATED", fmt.Sprintf("Disclosure dated %s is %.0f days old", dated.Format("2006-01-02"), ageDays))}, "disclosure outdated")
	}
	return r.pass(fmt.Sprintf("disclosure age %.0f days", ageDays))
}
