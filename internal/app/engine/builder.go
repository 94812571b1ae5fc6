package engine

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/yigit/scholarmatch/internal/app/models"
)

const (
	// DefaultFallbackLimit is how many exploratory entries an empty result is topped up with.
	DefaultFallbackLimit = 5

	fallbackStartScore = 80
	fallbackStep       = 15
	fallbackFloor      = 20
)

// BuilderOptions configures a Builder.
type BuilderOptions struct {
	// ExcludeExpired drops scholarships whose deadline is before today.
	ExcludeExpired bool
	// FallbackLimit caps the exploratory entries; zero disables the top-up.
	FallbackLimit int
	// Now is the clock used for deadline filtering. Nil means time.Now.
	Now func() time.Time
}

// Match is one scored scholarship for one student.
type Match struct {
	ScholarshipID int64
	Score         int
	Reasons       []string
	// Fallback marks an exploratory entry that was not produced by the rules.
	Fallback bool
}

// Reason joins the reason trail into the stored reason text.
func (m Match) Reason() string {
	return strings.Join(m.Reasons, models.ReasonSeparator)
}

// Recommendation converts the match into a row for studentID.
func (m Match) Recommendation(studentID int64) models.Recommendation {
	return models.Recommendation{
		StudentID:     studentID,
		ScholarshipID: m.ScholarshipID,
		MatchScore:    m.Score,
		Reason:        m.Reason(),
	}
}

// Builder scores one student against a whole catalog.
type Builder struct {
	strategy *Strategy
	opts     BuilderOptions
}

// NewBuilder creates a builder. A negative fallback limit is treated as zero.
func NewBuilder(strategy *Strategy, opts BuilderOptions) *Builder {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.FallbackLimit < 0 {
		opts.FallbackLimit = 0
	}
	return &Builder{strategy: strategy, opts: opts}
}

// NewDefaultBuilder wires the default rules and plan with the given options.
func NewDefaultBuilder(opts BuilderOptions) *Builder {
	return NewBuilder(NewStrategy(DefaultRules(opts.Now), DefaultPlan), opts)
}

// Eligible applies the deadline filter to catalog, keeping catalog order.
func (b *Builder) Eligible(catalog []*models.Scholarship) []*models.Scholarship {
	if !b.opts.ExcludeExpired {
		return catalog
	}
	today := b.opts.Now()
	kept := make([]*models.Scholarship, 0, len(catalog))
	for _, s := range catalog {
		if !s.IsExpired(today) {
			kept = append(kept, s)
		}
	}
	return kept
}

// Compute scores the student against every eligible scholarship and returns the
// positive-scoring ones ordered by score, highest first. Equal scores keep catalog order.
func (b *Builder) Compute(student *models.StudentProfile, catalog []*models.Scholarship) []Match {
	matches := make([]Match, 0, len(catalog))
	if student == nil {
		return matches
	}

	for _, scholarship := range b.Eligible(catalog) {
		if scholarship == nil {
			continue
		}
		result := b.strategy.Score(student, scholarship)
		if result.Score <= MinScore {
			continue
		}
		matches = append(matches, Match{
			ScholarshipID: scholarship.ID,
			Score:         result.Score,
			Reasons:       result.Reasons,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	return matches
}

// Fallback returns up to FallbackLimit exploratory entries from the eligible catalog in
// catalog order, scored 80, 65, 50, 35, 20 and then 20 for any further entry.
func (b *Builder) Fallback(catalog []*models.Scholarship) []Match {
	eligible := b.Eligible(catalog)
	limit := b.opts.FallbackLimit
	if limit > len(eligible) {
		limit = len(eligible)
	}

	matches := make([]Match, 0, limit)
	for i := 0; len(matches) < limit && i < len(eligible); i++ {
		if eligible[i] == nil {
			continue
		}
		score := fallbackStartScore - len(matches)*fallbackStep
		if score < fallbackFloor {
			score = fallbackFloor
		}
		matches = append(matches, Match{
			ScholarshipID: eligible[i].ID,
			Score:         score,
			Reasons:       []string{fallbackReason(score)},
			Fallback:      true,
		})
	}
	return matches
}

// Build is Compute followed by the fallback top-up when nothing scored above zero.
func (b *Builder) Build(student *models.StudentProfile, catalog []*models.Scholarship) []Match {
	matches := b.Compute(student, catalog)
	if len(matches) > 0 || student == nil {
		return matches
	}
	return b.Fallback(catalog)
}

func fallbackReason(score int) string {
	return fmt.Sprintf("Recommended scholarship based on general criteria. Match score: %d%%", score)
}
