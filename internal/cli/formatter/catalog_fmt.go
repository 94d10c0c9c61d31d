package formatter

import (
	"strconv"
	"strings"

	"github.com/alexanderramin/lessonplan/internal/domain"
)

// FormatStageList renders the catalog's stages with exercise counts.
func FormatStageList(stages []*domain.Stage) string {
	rows := make([][]string, 0, len(stages))
	for _, st := range stages {
		total := 0
		for _, ex := range st.Exercises {
			total += ex.Duration
		}
		rows = append(rows, []string{
			st.Name,
			strconv.Itoa(len(st.Exercises)),
			Duration(total),
			TruncID(st.ID),
		})
	}
	return RenderTableAligned([]string{"STAGE", "EXERCISES", "TOTAL", "ID"}, rows, 1, 2)
}

// FormatStageDetail renders one stage and its exercises.
func FormatStageDetail(st *domain.Stage) string {
	var b strings.Builder
	if st.Description != "" {
		b.WriteString(st.Description)
		b.WriteString("\n\n")
	}
	if len(st.Exercises) == 0 {
		b.WriteString(Dim("No exercises."))
		return RenderBox(st.Name, b.String())
	}

	rows := make([][]string, 0, len(st.Exercises))
	for _, ex := range st.Exercises {
		rows = append(rows, []string{ex.Name, Duration(ex.Duration), TruncID(ex.ID)})
	}
	b.WriteString(strings.TrimRight(RenderTableAligned([]string{"EXERCISE", "DURATION", "ID"}, rows, 1), "\n"))
	return RenderBox(st.Name, b.String())
}
