package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/lessonplan/internal/domain"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderBudgetBar renders how much of the lesson budget is used, like
// [████░░░░]  45%. The bar is clamped at full; the percentage is not, so an
// over-budget plan reads above 100%.
func RenderBudgetBar(total, ceiling int, status domain.BudgetStatus, width int) string {
	if width < 2 {
		width = 2
	}
	pct := 0.0
	if ceiling > 0 {
		pct = float64(total) / float64(ceiling)
	}
	if pct < 0 {
		pct = 0
	}

	filled := int(pct * float64(width))
	if filled > width {
		filled = width
	}
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	pctStr := fmt.Sprintf("%3.0f%%", pct*100)
	return fmt.Sprintf("[%s] %s", BudgetStyle(status).Render(bar), pctStr)
}
