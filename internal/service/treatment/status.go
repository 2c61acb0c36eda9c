package treatment

import (
	"strings"

	"github.com/smiledesk/dental-api/internal/model"
)

// Derived-status rollups for treatment plans. These compute display values
// from the stored tree and never persist anything: the backend status is
// authoritative, and terminal statuses are always trusted as-is.

// CalculatePhaseStatus returns the effective status of a phase. A backend
// COMPLETED is trusted unchanged. Otherwise the phase is COMPLETED when it
// has at least one item and every item is COMPLETED or SKIPPED; a phase
// with no items is never complete. Anything else falls back to the stored
// status, or PENDING when there is none.
func CalculatePhaseStatus(phase *model.TreatmentPhase) string {
	if phase == nil {
		return model.TreatmentStatusPending
	}
	if strings.EqualFold(phase.Status, model.TreatmentStatusCompleted) {
		return phase.Status
	}
	if len(phase.Items) > 0 && allItemsDone(phase.Items) {
		return model.TreatmentStatusCompleted
	}
	if phase.Status != "" {
		return phase.Status
	}
	return model.TreatmentStatusPending
}

// CalculatePlanStatus returns the effective status of a plan. Terminal
// backend statuses (COMPLETED, CANCELLED) are never recomputed. With no
// phases the stored status passes through. Otherwise the plan is COMPLETED
// only when every phase rolls up COMPLETED.
//
// The backend auto-completes plans server-side, so this is a fallback
// path; it stays here so phase-level rollups share one implementation.
func CalculatePlanStatus(planStatus string, phases []*model.TreatmentPhase) string {
	if strings.EqualFold(planStatus, model.TreatmentStatusCompleted) ||
		strings.EqualFold(planStatus, model.TreatmentStatusCancelled) {
		return planStatus
	}
	if len(phases) == 0 {
		return planStatus
	}
	for _, phase := range phases {
		if !IsPhaseCompleted(phase) {
			return planStatus
		}
	}
	return model.TreatmentStatusCompleted
}

// IsPhaseCompleted reports whether the phase's effective status is COMPLETED.
func IsPhaseCompleted(phase *model.TreatmentPhase) bool {
	return strings.EqualFold(CalculatePhaseStatus(phase), model.TreatmentStatusCompleted)
}

// IsPlanCompleted reports whether the plan's effective status is COMPLETED.
func IsPlanCompleted(planStatus string, phases []*model.TreatmentPhase) bool {
	return strings.EqualFold(CalculatePlanStatus(planStatus, phases), model.TreatmentStatusCompleted)
}

// GetPhaseProgress returns the completed-item fraction of a phase as a
// percentage. Only COMPLETED counts toward progress; SKIPPED items satisfy
// status rollups but earn no progress. No items means 0, never NaN.
func GetPhaseProgress(phase *model.TreatmentPhase) float64 {
	if phase == nil || len(phase.Items) == 0 {
		return 0
	}
	completed := 0
	for _, item := range phase.Items {
		if strings.EqualFold(item.Status, model.TreatmentStatusCompleted) {
			completed++
		}
	}
	return float64(completed) / float64(len(phase.Items)) * 100
}

// GetPlanProgress returns the fraction of effectively-completed phases as
// a percentage. No phases means 0.
func GetPlanProgress(phases []*model.TreatmentPhase) float64 {
	if len(phases) == 0 {
		return 0
	}
	completed := 0
	for _, phase := range phases {
		if IsPhaseCompleted(phase) {
			completed++
		}
	}
	return float64(completed) / float64(len(phases)) * 100
}

// GetPlanProgressByItems returns the completed fraction of all items
// across every phase as a percentage. No items anywhere means 0.
func GetPlanProgressByItems(phases []*model.TreatmentPhase) float64 {
	total := 0
	completed := 0
	for _, phase := range phases {
		for _, item := range phase.Items {
			total++
			if strings.EqualFold(item.Status, model.TreatmentStatusCompleted) {
				completed++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return float64(completed) / float64(total) * 100
}

func allItemsDone(items []*model.TreatmentItem) bool {
	for _, item := range items {
		if !strings.EqualFold(item.Status, model.TreatmentStatusCompleted) &&
			!strings.EqualFold(item.Status, model.TreatmentStatusSkipped) {
			return false
		}
	}
	return true
}
