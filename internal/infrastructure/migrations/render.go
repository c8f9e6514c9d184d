package migrations

import (
	"fmt"
	"io"
	"time"
)

// Render writes statuses as an aligned plain-text table.
func Render(w io.Writer, statuses []Status) error {
	if _, err := fmt.Fprintf(w, "%-8s %-8s %-32s %s\n", "VERSION", "STATE", "DESCRIPTION", "APPLIED AT"); err != nil {
		return err
	}
	for _, st := range statuses {
		state, at := "pending", "-"
		if st.Applied {
			state = "applied"
			if st.AppliedAt != nil {
				at = st.AppliedAt.UTC().Format(time.RFC3339)
			}
		}
		if _, err := fmt.Fprintf(w, "%-8d %-8s %-32s %s\n", st.Version, state, st.Description, at); err != nil {
			return err
		}
	}
	return nil
}
