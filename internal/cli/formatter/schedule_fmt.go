package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/lessonplan/internal/domain"
	"github.com/alexanderramin/lessonplan/internal/planner"
	"github.com/alexanderramin/lessonplan/internal/repository"
)

// ScheduleData holds what FormatSchedule needs. StageNames supplies names
// for declared stages that have no items yet, since item snapshots are the
// only other source of a stage's name.
type ScheduleData struct {
	Plan       *domain.LessonPlan
	Schedule   planner.Schedule
	StageNames map[string]string
}

// FormatSchedule renders a plan as a timed table followed by a budget footer.
func FormatSchedule(d ScheduleData) string {
	s := d.Schedule
	var b strings.Builder

	b.WriteString(Header(d.Plan.Title))
	b.WriteString("\n")
	b.WriteString(Dim(fmt.Sprintf("Starts %s · ends %s · %d exercises", s.StartTime, s.EndTime, len(d.Plan.Items))))
	b.WriteString("\n\n")

	if len(s.StageOrder) == 0 {
		b.WriteString(Dim("No stages yet. Add one with 'plan add-stage' or 'plan add'."))
		b.WriteString("\n\n")
	} else {
		var rows [][]string
		for n, stageID := range s.StageOrder {
			items := s.Groups[stageID]
			name := stageName(stageID, items, d.StageNames)
			label := fmt.Sprintf("%d) %s", n+1, name)
			if len(items) == 0 {
				label += " " + Dim("(empty)")
			}
			rows = append(rows, []string{
				"",
				s.StageStart[stageID],
				Bold(label),
				Duration(s.StageDuration[stageID]),
				TruncID(stageID),
			})
			for i, it := range items {
				rows = append(rows, []string{
					strconv.Itoa(it.Order),
					s.ItemStart[it.ID],
					fmt.Sprintf("   %d.%d) %s", n+1, i+1, it.ExerciseName),
					Duration(it.Duration),
					TruncID(it.ID),
				})
			}
		}
		b.WriteString(RenderTableAligned([]string{"#", "START", "STAGE / EXERCISE", "DURATION", "ID"}, rows, 0, 3))
		b.WriteString("\n")
	}

	b.WriteString(FormatBudgetLine(s))
	b.WriteString("\n")
	return b.String()
}

// FormatBudgetLine summarises total against budget on one line.
func FormatBudgetLine(s planner.Schedule) string {
	left := fmt.Sprintf("%s left", Duration(s.RemainingSecs))
	if s.RemainingSecs < 0 {
		left = fmt.Sprintf("%s over", Duration(-s.RemainingSecs))
	}
	return fmt.Sprintf("%s %s of %s  %s  %s  %s",
		Bold("Total"),
		Duration(s.TotalDuration),
		Duration(s.Budget.Ceiling),
		RenderBudgetBar(s.TotalDuration, s.Budget.Ceiling, s.Status, 20),
		BudgetIndicator(s.Status),
		BudgetStyle(s.Status).Render(left),
	)
}

// FormatPlanList renders plan summaries as a table.
func FormatPlanList(plans []repository.LessonPlanSummary, budget planner.Budget) string {
	rows := make([][]string, 0, len(plans))
	for _, row := range plans {
		p := row.Plan
		b := budget
		if p.BudgetSeconds > 0 {
			b.Ceiling = p.BudgetSeconds
		}
		rows = append(rows, []string{
			p.Title,
			p.StartTime,
			strconv.Itoa(row.ItemCount),
			Duration(p.TotalDuration),
			BudgetIndicator(b.Classify(p.TotalDuration)),
			HumanDate(p.UpdatedAt),
			TruncID(p.ID),
		})
	}
	return RenderTableAligned([]string{"TITLE", "START", "ITEMS", "TOTAL", "BUDGET", "UPDATED", "ID"}, rows, 2, 3)
}

func stageName(id string, items []domain.PlanItem, names map[string]string) string {
	if len(items) > 0 && items[0].StageName != "" {
		return items[0].StageName
	}
	if n, ok := names[id]; ok {
		return n
	}
	return "stage " + id
}
