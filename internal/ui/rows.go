package ui

import (
	"fmt"

	"github.com/idilsaglam/tasklist/internal/model"
)

// MaxTitleWidth bounds a row's title before truncation.
const MaxTitleWidth = 80

// EmptyMessage is shown in place of rows when there are no tasks.
const EmptyMessage = "No tasks yet! ✨"

// TaskText is a row's label without the checkbox: "title • created"
// while pending, "title (✓)" once done.
func TaskText(t model.Task) string {
	title := Truncate(t.Title, MaxTitleWidth)
	if t.Done {
		return title + " (✓)"
	}
	return fmt.Sprintf("%s  %s %s", title, Current().Bullet, t.CreatedAt)
}

// TaskRow renders the checkbox and label for t.
func TaskRow(t model.Task) string {
	th := Current()
	if t.Done {
		return th.Success.Render(th.BoxChecked) + " " + th.Done.Render(TaskText(t))
	}
	return th.Muted.Render(th.BoxUnchecked) + " " + TaskText(t)
}

// Header is the title line with live counts.
func Header(done, pending int) string {
	th := Current()
	return fmt.Sprintf("%s   %s %d  %s %d  %s %d",
		th.Title.Render("Tasks"),
		th.Success.Render(th.SymDone), done,
		th.Pending.Render(th.SymPending), pending,
		th.Accent.Render("Total"), done+pending,
	)
}
