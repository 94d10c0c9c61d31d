package exchange

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/lessonplan/internal/planner"
	"github.com/alexanderramin/lessonplan/internal/timeofday"
)

// FormatScheduleText renders a schedule as numbered plain text:
//
//	1) Warm-up (5 min) starts at 09:00:00
//		1.1) Breathing (2 min) starts at 09:00:00
//
// Stages without items are skipped and do not take a number. An empty plan
// renders as "".
func FormatScheduleText(s planner.Schedule) string {
	var lines []string
	n := 0
	for _, stageID := range s.StageOrder {
		items := s.Groups[stageID]
		if len(items) == 0 {
			continue
		}
		n++
		lines = append(lines, fmt.Sprintf("%d) %s (%s) starts at %s",
			n, items[0].StageName, timeofday.FormatDuration(s.StageDuration[stageID]), s.StageStart[stageID]))
		for i, it := range items {
			lines = append(lines, fmt.Sprintf("\t%d.%d) %s (%s) starts at %s",
				n, i+1, it.ExerciseName, timeofday.FormatDuration(it.Duration), s.ItemStart[it.ID]))
		}
	}
	return strings.Join(lines, "\n")
}
