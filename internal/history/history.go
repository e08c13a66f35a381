// Package history keeps the append-only, user-prunable log of past
// analysis runs. Entries are lightweight metadata, never the summary.
package history

import (
	"medisynth/internal/types"
)

// Store persists the run log. Load returns newest-first order.
type Store interface {
	Load() ([]types.HistoryEntry, error)
	Record(entry types.HistoryEntry) error
	Remove(id int64) error
}

// Seed is the first-run default shown before any analysis has been
// recorded. Returned only when the store has never been written; an
// explicitly emptied store stays empty.
func Seed() []types.HistoryEntry {
	return []types.HistoryEntry{
		{ID: 1, PatientLabel: "Patient #8492 - Smith, J.", Date: "Oct 24, 2023", AnalysisType: "Full Synthesis", Status: types.HistoryStatusComplete},
		{ID: 2, PatientLabel: "Patient #3321 - Doe, A.", Date: "Oct 22, 2023", AnalysisType: "Lab Analysis", Status: types.HistoryStatusComplete},
		{ID: 3, PatientLabel: "Patient #9921 - Ray, M.", Date: "Oct 18, 2023", AnalysisType: "Discharge Summary", Status: types.HistoryStatusComplete},
		{ID: 4, PatientLabel: "Patient #1102 - T.L.", Date: "Sep 30, 2023", AnalysisType: "Consultation Notes", Status: types.HistoryStatusReviewNeeded},
		{ID: 5, PatientLabel: "Patient #1105 - B.K.", Date: "Sep 29, 2023", AnalysisType: "Full Synthesis", Status: types.HistoryStatusComplete},
		{ID: 6, PatientLabel: "Patient #2201 - M.S.", Date: "Sep 28, 2023", AnalysisType: "Lab Analysis", Status: types.HistoryStatusComplete},
		{ID: 7, PatientLabel: "Patient #4402 - R.J.", Date: "Sep 25, 2023", AnalysisType: "Consultation Notes", Status: types.HistoryStatusComplete},
	}
}
