package commands

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/jakechorley/staffhours/pkg/core/model"
	"github.com/jakechorley/staffhours/pkg/core/services"
)

func printEmployeeTable(out io.Writer, employees []model.Employee) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tSKILL\tEXPERIENCE\tAVAILABILITY")
	for _, e := range employees {
		id := "-"
		if e.ID > 0 {
			id = strconv.FormatInt(e.ID, 10)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n", id, e.Name, e.SkillLevel, e.Experience, e.Availability)
	}
	w.Flush()
}

func printPreferenceTable(out io.Writer, views []model.PreferenceView) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPREFERENCES")
	for _, v := range views {
		pref := v.Preference
		if pref == "" {
			pref = "(none)"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\n", v.EmployeeID, v.Name, pref)
	}
	w.Flush()
}

func printScheduleTable(out io.Writer, result *services.ScheduleResult) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "NAME\tSKILL\tEXPERIENCE\tAVAILABLE\tPRIORITY\tASSIGNED\t")
	for _, e := range result.Entries {
		fmt.Fprintf(w, "%s\t%g\t%d\t%d\t%g\t%.1f\t\n",
			e.Name, e.SkillLevel, e.Experience, e.AvailabilityHours, e.Priority, e.AssignedHours)
	}
	fmt.Fprintf(w, "TOTAL\t\t\t%d\t\t%.1f\t\n", result.TotalAvailability, result.TotalAssigned)
	w.Flush()
}
