// Package model holds the entity and value types shared by the rule
// engine, scoring engine, orchestrator, and history store.
package model

import "time"

// ContractStatus is the lifecycle state of a Contract.
type ContractStatus string

const (
	ContractDraft     ContractStatus = "draft"
	ContractSubmitted ContractStatus = "submitted"
	ContractReviewed  ContractStatus = "reviewed"
	ContractArchived  ContractStatus = "archived"
)

// ClauseType classifies a Clause.
type ClauseType string

const (
	ClauseStandard ClauseType = "standard"
	ClauseUnusual  ClauseType = "unusual"
	ClauseCustom   ClauseType = "custom"
)

// MediaType classifies a Document.
type MediaType string

const (
	MediaPDF   MediaType = "pdf"
	MediaDoc   MediaType = "doc"
	MediaOther MediaType = "other"
)

// Severity is the ordered risk level of a RiskFlag.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// severityRank gives the total order low<medium<high<critical.
var severityRank = map[Severity]int{
	SeverityLow:      0,
	SeverityMedium:   1,
	SeverityHigh:     2,
	SeverityCritical: 3,
}

// Less reports whether s ranks below other in the fixed severity order.
func (s Severity) Less(other Severity) bool {
	return severityRank[s] < severityRank[other]
}

// Valid reports whether s is one of the four defined severities.
func (s Severity) Valid() bool {
	_, ok := severityRank[s]
	return ok
}

// Category classifies a rule.
type Category string

const (
	CategoryContingency   Category = "contingency"
	CategoryDisclosure    Category = "disclosure"
	CategoryFinancing     Category = "financing"
	CategoryInspection    Category = "inspection"
	CategoryEarnestMoney  Category = "earnest_money"
	CategoryUnusualClause Category = "unusual_clause"
	CategoryTimeline      Category = "timeline"
	CategoryLegal         Category = "legal"
	CategoryStateSpecific Category = "state_specific"
)

// Clause is a semantically distinct provision in a contract's text.
type Clause struct {
	ID      string
	Text    string
	Type    ClauseType
	Flagged bool
}

// Disclosure is a named form a state or the deal may require.
type Disclosure struct {
	ID       string
	Name     string
	Required bool
	Provided bool
}

// Addendum is a supplementary document attached to the main contract.
type Addendum struct {
	ID       string
	Name     string
	Included bool
}

// Document references an uploaded file.
type Document struct {
	ID         string
	URL        string
	MediaType  MediaType
	UploadedAt time.Time
}

// Contract is the aggregate root the pipeline evaluates.
type Contract struct {
	ID             string
	Title          string
	OwnerUserID    string
	OrganizationID string
	Status         ContractStatus
	State          string // ISO-like US state code, may be unset or unsupported
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Clauses     []Clause
	Disclosures []Disclosure
	Addenda     []Addendum
	Documents   []Document
}

// RuleContext is the evaluation input passed to every rule.
type RuleContext struct {
	Contract    *Contract
	State       string // may differ from Contract.State for a what-if evaluation
	RawText     string // raw contract text, if supplied by the caller
	contractual string // memoized derived text; not exported, not copied
}

// Text returns the raw text if the caller supplied one, otherwise the
// concatenation of clause texts. "Contract text" vs. "clauses": never
// silently combine both.
func (c *RuleContext) Text() string {
	if c.RawText != "" {
		return c.RawText
	}
	if c.contractual != "" {
		return c.contractual
	}
	if c.Contract == nil {
		return ""
	}
	joined := ""
	for i, cl := range c.Contract.Clauses {
		if i > 0 {
			joined += " "
		}
		joined += cl.Text
	}
	c.contractual = joined
	return joined
}

// RiskFlag is a coded, severity-tagged finding produced by a rule.
// Two flags are "the same" iff their Code fields match.
type RiskFlag struct {
	Code        string
	Description string
	Severity    Severity
}

// RuleResult is what a single rule evaluation produces.
type RuleResult struct {
	RuleID     string
	RuleName   string
	Passed     bool
	Flags      []RiskFlag
	Details    string
	Suggestion []string
}

// ScoreBreakdown holds the six stable per-dimension contributions.
type ScoreBreakdown struct {
	ClauseScore           float64 `json:"clauseScore"`
	DisclosureScore       float64 `json:"disclosureScore"`
	AddendumScore         float64 `json:"addendumScore"`
	UnusualClauseScore    float64 `json:"unusualClauseScore"`
	MissingDocumentScore  float64 `json:"missingDocumentScore"`
	StateComplianceScore  float64 `json:"stateComplianceScore"`
}

// RiskScore is the persisted, bounded outcome of scoring one contract.
type RiskScore struct {
	ContractID    string
	Score         int
	CalculatedAt  time.Time
	Flags         []RiskFlag
	Breakdown     *ScoreBreakdown
}

// RiskHistoryEntry is one point in a contract's score time series.
type RiskHistoryEntry struct {
	AnalyzedAt time.Time
	Score      int
	Flags      []RiskFlag
}

// RecommendationPriority orders recommendations for display.
type RecommendationPriority string

const (
	PriorityImmediate RecommendationPriority = "immediate"
	PrioritySoon      RecommendationPriority = "soon"
	PriorityOptional  RecommendationPriority = "optional"
)

// priorityRank gives immediate < soon < optional.
var priorityRank = map[RecommendationPriority]int{
	PriorityImmediate: 0,
	PrioritySoon:      1,
	PriorityOptional:  2,
}

// Rank returns the sort key for a priority; lower sorts first.
func (p RecommendationPriority) Rank() int { return priorityRank[p] }

// Recommendation is a prioritized action derived from a flag set and score.
type Recommendation struct {
	Priority        RecommendationPriority
	Action          string
	RelatedFlagCode string
}

// RiskAnalysis is the composed output of one orchestrator run.
type RiskAnalysis struct {
	ContractID   string
	Summary      string
	Score        *RiskScore
	Explanations []string
}

// RiskLevelLabel maps a score to the five-level palette used across the
// system: low/moderate/elevated/high/critical, using the thresholds
// ">=80 Low, >=60 Moderate, >=40 Elevated, >=20 High, else Critical".
func RiskLevelLabel(score int) string {
	switch {
	case score >= 80:
		return "Low"
	case score >= 60:
		return "Moderate"
	case score >= 40:
		return "Elevated"
	case score >= 20:
		return "High"
	default:
		return "Critical"
	}
}

// RiskLevelKey is the lowercase palette key for RiskLevelLabel.
func RiskLevelKey(score int) string {
	switch {
	case score >= 80:
		return "low"
	case score >= 60:
		return "moderate"
	case score >= 40:
		return "elevated"
	case score >= 20:
		return "high"
	default:
		return "critical"
	}
}

// ClampScore forces a score into [0,100].
func ClampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// ScanType selects which steps a ScanJob runs (§4.H).
type ScanType string

const (
	ScanBasic    ScanType = "basic"
	ScanAdvanced ScanType = "advanced"
	ScanCustom   ScanType = "custom"
)

// ScanStatus is a ScanJob's state-machine position.
type ScanStatus string

const (
	ScanPending   ScanStatus = "pending"
	ScanRunning   ScanStatus = "running"
	ScanCompleted ScanStatus = "completed"
	ScanFailed    ScanStatus = "failed"
)

// ScanOptions toggles which optional scan steps run.
type ScanOptions struct {
	SkipExtractClauses bool
	SkipDetectRisks    bool
	SkipUnusualClauses bool
	SkipStateRules     bool
}

// ScanRequest is the input to a scan job.
type ScanRequest struct {
	DocumentURL string
	RequestedBy string
	ScanType    ScanType
	Options     ScanOptions
}

// ScanProgressStep is one weighted step in a scan's execution.
type ScanProgressStep struct {
	Name    string
	Percent int
}

// ScanJob is the persisted state of one scan, including its current
// progress and any step-level errors accumulated along the way.
type ScanJob struct {
	ID          string
	ContractID  string
	Request     ScanRequest
	Status      ScanStatus
	Progress    ScanProgressStep
	Result      *ScanResult
	Errors      []string
	StartedAt   time.Time
	CompletedAt time.Time
}

// ScanResult is what a completed scan returns.
type ScanResult struct {
	ID          string
	ScanID      string
	Findings    []RiskFlag
	Score       int
	CompletedAt time.Time
	Errors      []string
}
