package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/growflow/internal/client/models"
	"github.com/dmitrijs2005/growflow/internal/common"
)

func checkbox(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

// renderGarden prints one row per task: state, plant, stage, name and id.
func renderGarden(w io.Writer, tasks []*models.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, "Your garden is empty. Plant something with 'add'.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, t := range tasks {
		fmt.Fprintf(tw, "%s\t%s\t%d/%d\t%s\t%s\t%s\n",
			checkbox(t.Completed), t.Plant(), t.GrowthStage, common.MaxGrowthStage, t.PlantType, t.Name, t.ID)
	}
	_ = tw.Flush()

	bloomed := 0
	for _, t := range tasks {
		if t.Bloomed() {
			bloomed++
		}
	}
	fmt.Fprintf(w, "%d plant(s), %d in full bloom\n", len(tasks), bloomed)
}

func renderTask(w io.Writer, t *models.Task) {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", checkbox(t.Completed), t.Name)
	fmt.Fprintf(&b, "  id:      %s\n", t.ID)
	fmt.Fprintf(&b, "  plant:   %s %s (stage %d/%d)\n", t.PlantType, t.Plant(), t.GrowthStage, common.MaxGrowthStage)
	if t.Description != "" {
		fmt.Fprintf(&b, "  notes:   %s\n", t.Description)
	}
	fmt.Fprintf(&b, "  planted: %s\n", t.CreatedAt.Format("2006-01-02 15:04"))
	fmt.Fprint(w, b.String())
}
