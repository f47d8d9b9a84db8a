package admin

import (
	"sort"

	"loanportal/internal/domain"
)

// purposeBreakdown counts loans per stated purpose. Loans with no
// purpose are grouped under "Other". Output is sorted by count
// descending, then purpose for a stable order.
func purposeBreakdown(loans []domain.Loan) []PurposeCount {
	counts := map[string]int{}
	for _, l := range loans {
		purpose := l.LoanPurpose
		if purpose == "" {
			purpose = "Other"
		}
		counts[purpose]++
	}

	out := make([]PurposeCount, 0, len(counts))
	for purpose, n := range counts {
		out = append(out, PurposeCount{Purpose: purpose, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Purpose < out[j].Purpose
	})
	return out
}

// monthlyTrend buckets loans by creation month (YYYY-MM), ascending.
func monthlyTrend(loans []domain.Loan) []MonthCount {
	counts := map[string]int{}
	for _, l := range loans {
		counts[l.CreatedAt.Format("2006-01")]++
	}

	out := make([]MonthCount, 0, len(counts))
	for month, n := range counts {
		out = append(out, MonthCount{Month: month, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}
