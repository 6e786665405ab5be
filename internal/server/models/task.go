package models

import (
	"time"

	"github.com/dmitrijs2005/growflow/internal/common"
)

// Task is a unit of work owned by one user and rendered as a plant.
// GrowthStage is derived from completion edges only and stays in [0, 5].
type Task struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	GrowthStage int       `json:"growthStage"`
	PlantType   string    `json:"plantType"`
	CreatedAt   time.Time `json:"createdAt"`
}

// TaskPatch carries a partial update; nil fields are left untouched.
type TaskPatch struct {
	Name        *string
	Description *string
	Completed   *bool
}

// Apply merges the patch into t and reports whether the task grew.
//
// Growth is a one-way ratchet: only a false->true edge of Completed moves the
// stage forward, capped at common.MaxGrowthStage. Un-completing never shrinks it.
func (t *Task) Apply(p TaskPatch) (grew bool) {
	if p.Name != nil {
		t.Name = *p.Name
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Completed != nil {
		if *p.Completed && !t.Completed {
			t.GrowthStage = NextGrowthStage(t.GrowthStage)
			grew = true
		}
		t.Completed = *p.Completed
	}
	return grew
}

// NextGrowthStage returns min(stage+1, MaxGrowthStage).
func NextGrowthStage(stage int) int {
	return min(stage+1, common.MaxGrowthStage)
}
