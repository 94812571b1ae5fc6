package engine

import (
	"github.com/yigit/scholarmatch/internal/app/models"
)

const (
	// MaxScore is the score of a scholarship with no failed rules.
	MaxScore = 100
	// MinScore is the floor every score is clamped to.
	MinScore = 0

	// CriticalTag prefixes the reason of a failed critical rule.
	CriticalTag = "CRITICAL: "
)

// Step is one entry of a scoring plan. A critical step zeroes the score when it
// fails; any other step subtracts Weight.
type Step struct {
	Rule     RuleName
	Critical bool
	Weight   int
}

// DefaultPlan is the evaluation order: hard eligibility gates first, then the soft
// signals from heaviest to lightest.
var DefaultPlan = []Step{
	{Rule: RuleAge, Critical: true},
	{Rule: RuleEducationLevel, Critical: true},
	{Rule: RuleCitizenship, Critical: true},
	{Rule: RuleCGPA, Weight: 20},
	{Rule: RuleFieldOfStudy, Weight: 15},
	{Rule: RuleFinancialNeed, Weight: 10},
	{Rule: RuleScholarshipType, Weight: 10},
	{Rule: RuleMinorityPreference, Weight: 5},
	{Rule: RuleDisabilityPreference, Weight: 5},
}

// Outcome is the record of one evaluated rule.
type Outcome struct {
	Rule     RuleName
	Passed   bool
	Critical bool
	Penalty  int
	Reason   string
}

// Result is the score of one scholarship for one student.
type Result struct {
	Score int
	// Reasons is the reason trail in evaluation order.
	Reasons []string
	// Outcomes holds one entry per evaluated rule; rules after a critical failure are absent.
	Outcomes []Outcome
	// CriticalFailure names the critical rule that zeroed the score, if any.
	CriticalFailure RuleName
}

// Disqualified reports whether a critical rule failed.
func (r Result) Disqualified() bool {
	return r.CriticalFailure != ""
}

// Strategy folds rule outcomes into a bounded score.
type Strategy struct {
	rules RuleSet
	plan  []Step
}

// NewStrategy creates a strategy over rules following plan. A nil plan uses DefaultPlan.
func NewStrategy(rules RuleSet, plan []Step) *Strategy {
	if plan == nil {
		plan = DefaultPlan
	}
	return &Strategy{rules: rules, plan: plan}
}

// Score evaluates the plan for one student and scholarship. A failed critical rule
// forces the score to zero and stops evaluation; a failed weighted rule subtracts its
// weight and evaluation continues. Steps whose rule is missing from the set are skipped.
func (s *Strategy) Score(student *models.StudentProfile, scholarship *models.Scholarship) Result {
	result := Result{
		Score:    MaxScore,
		Reasons:  make([]string, 0, len(s.plan)),
		Outcomes: make([]Outcome, 0, len(s.plan)),
	}

	for _, step := range s.plan {
		rule, ok := s.rules[step.Rule]
		if !ok {
			continue
		}

		passed, reason := rule(student, scholarship)
		outcome := Outcome{Rule: step.Rule, Passed: passed, Critical: step.Critical, Reason: reason}

		switch {
		case passed:
			result.Reasons = append(result.Reasons, reason)
		case step.Critical:
			result.Score = MinScore
			result.CriticalFailure = step.Rule
			result.Reasons = append(result.Reasons, CriticalTag+reason)
			result.Outcomes = append(result.Outcomes, outcome)
			return result
		default:
			outcome.Penalty = step.Weight
			result.Score -= step.Weight
			result.Reasons = append(result.Reasons, reason)
		}
		result.Outcomes = append(result.Outcomes, outcome)
	}

	result.Score = clamp(result.Score)
	return result
}

func clamp(score int) int {
	if score < MinScore {
		return MinScore
	}
	if score > MaxScore {
		return MaxScore
	}
	return score
}
