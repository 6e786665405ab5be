// Package models defines the client-side view of GrowFlow resources as they
// travel over the REST API.
package models

import (
	"strings"
	"time"

	"github.com/dmitrijs2005/growflow/internal/common"
)

type User struct {
	ID        string    `json:"id"`
	UserName  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

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

// TaskPatch is the body of a task update; nil fields are not sent.
type TaskPatch struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Completed   *bool   `json:"completed,omitempty"`
}

// Snapshot points at an exported copy of the garden.
type Snapshot struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

// stageGlyphs are indexed by growth stage.
var stageGlyphs = [common.MaxGrowthStage + 1]string{".", ",", "i", "Y", "*", "@"}

// Plant renders the growth stage as a row of MaxGrowthStage cells: grown
// cells carry the glyph of their stage, the rest are dashes.
//
//	stage 0: -----
//	stage 3: ,iY--
func (t *Task) Plant() string {
	stage := min(max(t.GrowthStage, 0), common.MaxGrowthStage)

	var b strings.Builder
	for i := 1; i <= common.MaxGrowthStage; i++ {
		if i <= stage {
			b.WriteString(stageGlyphs[i])
		} else {
			b.WriteByte('-')
		}
	}
	return b.String()
}

// Bloomed reports whether the plant reached its last stage.
func (t *Task) Bloomed() bool {
	return t.GrowthStage >= common.MaxGrowthStage
}
