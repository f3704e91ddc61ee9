package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/heartmarshall/studyplanner-backend/internal/planner"
)

// render prints the shown plan, or a hint when there is none.
func render(w io.Writer, snap planner.Snapshot) error {
	var b strings.Builder

	if snap.Plan == nil {
		b.WriteString("No study plan yet. Create one with: planner generate <topic>\n")
		_, err := io.WriteString(w, b.String())
		return err
	}

	fmt.Fprintf(&b, "%s  (%d%% complete)\n", snap.Plan.Topic, snap.Progress)
	if snap.NextTask != nil {
		fmt.Fprintf(&b, "Next: %s\n", snap.NextTask.Task)
	} else if len(snap.Items) > 0 {
		b.WriteString("All tasks done.\n")
	}
	b.WriteString("\n")

	for i, it := range snap.Items {
		mark := " "
		if it.Completed {
			mark = "x"
		}
		fmt.Fprintf(&b, "%3d. [%s] %s\n", i+1, mark, it.Task)
		if it.DetailState == planner.DetailsExpanded && it.Details != nil {
			for _, line := range strings.Split(*it.Details, "\n") {
				fmt.Fprintf(&b, "          %s\n", line)
			}
		}
	}

	fmt.Fprintf(&b, "\nplan %s, created %s\n", snap.Plan.ID, snap.Plan.CreatedAt.Local().Format("2006-01-02 15:04"))
	_, err := io.WriteString(w, b.String())
	return err
}
