package treatment

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/smiledesk/dental-api/internal/model"
)

func phaseWithItems(status string, itemStatuses ...string) *model.TreatmentPhase {
	items := make([]*model.TreatmentItem, 0, len(itemStatuses))
	for _, s := range itemStatuses {
		items = append(items, &model.TreatmentItem{Status: s})
	}
	return &model.TreatmentPhase{Status: status, Items: items}
}

func TestCalculatePhaseStatus(t *testing.T) {
	tests := []struct {
		name  string
		phase *model.TreatmentPhase
		want  string
	}{
		{
			name:  "all items done promotes to completed",
			phase: phaseWithItems("IN_PROGRESS", "COMPLETED", "SKIPPED", "COMPLETED"),
			want:  "COMPLETED",
		},
		{
			name:  "partial items pass backend status through",
			phase: phaseWithItems("IN_PROGRESS", "COMPLETED", "PENDING"),
			want:  "IN_PROGRESS",
		},
		{
			name:  "backend completed trusted without recomputing",
			phase: phaseWithItems("COMPLETED", "PENDING"),
			want:  "COMPLETED",
		},
		{
			name:  "no items is never complete",
			phase: phaseWithItems("IN_PROGRESS"),
			want:  "IN_PROGRESS",
		},
		{
			name:  "no items and no status defaults to pending",
			phase: &model.TreatmentPhase{},
			want:  "PENDING",
		},
		{
			name:  "unknown backend status passes through",
			phase: phaseWithItems("ON_HOLD", "PENDING"),
			want:  "ON_HOLD",
		},
		{
			name:  "case-insensitive item statuses",
			phase: phaseWithItems("in_progress", "completed", "skipped"),
			want:  "COMPLETED",
		},
		{
			name:  "nil phase",
			phase: nil,
			want:  "PENDING",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CalculatePhaseStatus(tt.phase))
		})
	}
}

func TestCalculatePlanStatus(t *testing.T) {
	allDone := []*model.TreatmentPhase{
		phaseWithItems("IN_PROGRESS", "COMPLETED"),
		phaseWithItems("COMPLETED"),
	}

	t.Run("terminal cancelled never overridden", func(t *testing.T) {
		assert.Equal(t, "CANCELLED", CalculatePlanStatus("CANCELLED", allDone))
	})

	t.Run("terminal completed trusted", func(t *testing.T) {
		phases := []*model.TreatmentPhase{phaseWithItems("PENDING", "PENDING")}
		assert.Equal(t, "COMPLETED", CalculatePlanStatus("COMPLETED", phases))
	})

	t.Run("all phases complete promotes plan", func(t *testing.T) {
		assert.Equal(t, "COMPLETED", CalculatePlanStatus("IN_PROGRESS", allDone))
	})

	t.Run("incomplete phase passes plan status through", func(t *testing.T) {
		phases := []*model.TreatmentPhase{
			phaseWithItems("IN_PROGRESS", "COMPLETED"),
			phaseWithItems("IN_PROGRESS", "PENDING"),
		}
		assert.Equal(t, "IN_PROGRESS", CalculatePlanStatus("IN_PROGRESS", phases))
	})

	t.Run("no phases passes plan status through", func(t *testing.T) {
		assert.Equal(t, "PENDING", CalculatePlanStatus("PENDING", nil))
		assert.Equal(t, "", CalculatePlanStatus("", nil))
	})

	t.Run("lowercase terminal status", func(t *testing.T) {
		assert.Equal(t, "cancelled", CalculatePlanStatus("cancelled", allDone))
	})
}

func TestIsPhaseCompleted(t *testing.T) {
	assert.True(t, IsPhaseCompleted(phaseWithItems("IN_PROGRESS", "COMPLETED", "SKIPPED")))
	assert.False(t, IsPhaseCompleted(phaseWithItems("IN_PROGRESS", "COMPLETED", "PENDING")))
	assert.False(t, IsPhaseCompleted(phaseWithItems("IN_PROGRESS")))
}

func TestIsPlanCompleted(t *testing.T) {
	done := []*model.TreatmentPhase{phaseWithItems("x", "COMPLETED")}
	assert.True(t, IsPlanCompleted("IN_PROGRESS", done))
	assert.False(t, IsPlanCompleted("CANCELLED", done))
	assert.False(t, IsPlanCompleted("IN_PROGRESS", nil))
}

func TestGetPhaseProgress(t *testing.T) {
	assert.InDelta(t, 33.33, GetPhaseProgress(phaseWithItems("x", "COMPLETED", "PENDING", "PENDING")), 0.01)
	assert.Equal(t, float64(0), GetPhaseProgress(phaseWithItems("x")))
	assert.Equal(t, float64(0), GetPhaseProgress(nil))
	assert.Equal(t, float64(100), GetPhaseProgress(phaseWithItems("x", "COMPLETED", "COMPLETED")))

	// Skipped items satisfy the status rollup but earn no progress.
	assert.Equal(t, float64(50), GetPhaseProgress(phaseWithItems("x", "COMPLETED", "SKIPPED")))
}

func TestGetPlanProgress(t *testing.T) {
	phases := []*model.TreatmentPhase{
		phaseWithItems("IN_PROGRESS", "COMPLETED"),
		phaseWithItems("IN_PROGRESS", "PENDING"),
	}
	assert.Equal(t, float64(50), GetPlanProgress(phases))
	assert.Equal(t, float64(0), GetPlanProgress(nil))
}

func TestGetPlanProgressByItems(t *testing.T) {
	phases := []*model.TreatmentPhase{
		phaseWithItems("x", "COMPLETED", "COMPLETED"),
		phaseWithItems("x", "COMPLETED", "PENDING"),
	}
	assert.Equal(t, float64(75), GetPlanProgressByItems(phases))
	assert.Equal(t, float64(0), GetPlanProgressByItems(nil))
	assert.Equal(t, float64(0), GetPlanProgressByItems([]*model.TreatmentPhase{phaseWithItems("x")}))
}
