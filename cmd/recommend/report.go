package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/yigit/scholarmatch/internal/app/engine"
	"github.com/yigit/scholarmatch/internal/app/models"
)

type accountRef struct {
	ID    int64
	Name  string
	Email string
}

type report struct {
	w       io.Writer
	heading *color.Color
	good    *color.Color
	warn    *color.Color
}

func newReport(w io.Writer) *report {
	return &report{
		w:       w,
		heading: color.New(color.FgCyan, color.Bold),
		good:    color.New(color.FgGreen),
		warn:    color.New(color.FgYellow),
	}
}

func (r *report) header(account *accountRef) {
	r.heading.Fprintf(r.w, "\n=== Scholarship recommendations for %s <%s> ===\n", account.Name, account.Email)
}

func (r *report) refreshed(count int) {
	r.good.Fprintf(r.w, "Refreshed: %d recommendations stored\n", count)
}

func (r *report) recommendations(recs []*models.Recommendation) {
	if len(recs) == 0 {
		r.warn.Fprintln(r.w, "No recommendations. Complete the student profile first.")
		return
	}

	table := tablewriter.NewWriter(r.w)
	table.SetHeader([]string{"Rank", "Score", "Scholarship", "Provider", "Deadline", "Why"})
	table.SetAutoWrapText(false)
	for i, rec := range recs {
		title, provider, deadline := "#"+strconv.FormatInt(rec.ScholarshipID, 10), "", ""
		if rec.Scholarship != nil {
			title = rec.Scholarship.Title
			provider = rec.Scholarship.Provider
			deadline = rec.Scholarship.Deadline.Format(models.DateLayout)
		}
		table.Append([]string{
			strconv.Itoa(i + 1),
			fmt.Sprintf("%d%%", rec.MatchScore),
			title,
			provider,
			deadline,
			summarize(rec.Reasons()),
		})
	}
	table.Render()
}

func (r *report) preview(matches []engine.Match, catalog []*models.Scholarship) {
	if len(matches) == 0 {
		r.warn.Fprintln(r.w, "Nothing would be recommended.")
		return
	}

	titles := make(map[int64]string, len(catalog))
	for _, s := range catalog {
		titles[s.ID] = s.Title
	}

	r.warn.Fprintln(r.w, "Preview only, nothing was stored")
	table := tablewriter.NewWriter(r.w)
	table.SetHeader([]string{"Score", "Scholarship", "Kind", "Why"})
	table.SetAutoWrapText(false)
	for _, m := range matches {
		kind := "rules"
		if m.Fallback {
			kind = "fallback"
		}
		table.Append([]string{
			fmt.Sprintf("%d%%", m.Score),
			titles[m.ScholarshipID],
			kind,
			summarize(m.Reasons),
		})
	}
	table.Render()
}

// summarize keeps the failed checks of a reason trail, which explain the score
func summarize(reasons []string) string {
	var failed []string
	for _, reason := range reasons {
		if !strings.HasSuffix(reason, "met") && !strings.HasPrefix(reason, "Meets") && !strings.HasPrefix(reason, "Qualifies") {
			failed = append(failed, reason)
		}
	}
	if len(failed) == 0 {
		if len(reasons) == 1 {
			return reasons[0]
		}
		return "All requirements met"
	}
	return strings.Join(failed, "; ")
}
