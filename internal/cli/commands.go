package cli

import (
	"fmt"
	"strings"

	ucli "github.com/urfave/cli/v2"

	"github.com/idilsaglam/tasklist/internal/model"
	"github.com/idilsaglam/tasklist/internal/todo"
	"github.com/idilsaglam/tasklist/internal/ui"
)

func (r *runner) doUI(c *ucli.Context) error {
	if c.Args().Present() {
		ui.Fail(r.env.Stderr, "unknown subcommand: "+c.Args().First())
		ucli.ShowAppHelp(c)
		return ucli.Exit("", exitUsage)
	}
	l, err := r.setup(c, true)
	if err != nil {
		return err
	}
	defer r.close()

	if err := r.env.RunTUI(l, r.logger); err != nil {
		return ucli.Exit("tui: "+err.Error(), exitError)
	}
	return nil
}

func (r *runner) doAdd(c *ucli.Context) error {
	if !c.Args().Present() {
		return usage(c, "<title...>")
	}
	l, err := r.setup(c, false)
	if err != nil {
		return err
	}
	defer r.close()

	task, added, err := l.Add(strings.Join(c.Args().Slice(), " "))
	if err != nil {
		return ucli.Exit(err.Error(), exitError)
	}
	if !added {
		// Blank titles are ignored without complaint.
		return nil
	}
	r.logger.Info("task added", "id", task.ID)
	ui.OK(r.env.Stdout, fmt.Sprintf("added %s %s", shortID(task.ID), task.Title))
	return nil
}

func (r *runner) doToggle(c *ucli.Context) error {
	return r.mutate(c, "toggled", func(l *todo.List, id string) (bool, error) {
		return l.Toggle(id)
	})
}

func (r *runner) doRemove(c *ucli.Context) error {
	return r.mutate(c, "removed", func(l *todo.List, id string) (bool, error) {
		return l.Remove(id)
	})
}

// mutate resolves the single task reference and applies op. A reference that
// matches nothing is reported as a note; the command still succeeds.
func (r *runner) mutate(c *ucli.Context, verb string, op func(*todo.List, string) (bool, error)) error {
	if c.Args().Len() != 1 {
		return usage(c, "<id|id-prefix|index>")
	}
	l, err := r.setup(c, false)
	if err != nil {
		return err
	}
	defer r.close()

	ref := c.Args().First()
	id, ok := l.Resolve(ref)
	if !ok {
		ui.Note(r.env.Stderr, fmt.Sprintf("no task matches %q (run `tasklist ls` to see ids)", ref))
		return nil
	}
	title := ""
	if t, ok := l.Get(id); ok {
		title = t.Title
	}
	if _, err := op(l, id); err != nil {
		return ucli.Exit(err.Error(), exitError)
	}
	r.logger.Info("task "+verb, "id", id)
	ui.OK(r.env.Stdout, fmt.Sprintf("%s %s %s", verb, shortID(id), title))
	return nil
}

func (r *runner) doList(c *ucli.Context) error {
	l, err := r.setup(c, false)
	if err != nil {
		return err
	}
	defer r.close()

	fmt.Fprintln(r.env.Stdout, ui.Panel(listLines(l.Tasks(), c.Bool("group"))))
	return nil
}

// -------------- rendering helpers --------------

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func listLines(tasks []model.Task, group bool) []string {
	th := ui.Current()
	done, pending := 0, 0
	for _, t := range tasks {
		if t.Done {
			done++
		} else {
			pending++
		}
	}

	lines := []string{
		ui.Header(done, pending),
		th.Muted.Render(ui.ProgressBar(done, done+pending, 28)),
		"",
	}
	if group {
		lines = append(lines, groupLines(tasks)...)
	} else {
		lines = append(lines, flatLines(tasks, indexes(len(tasks)))...)
	}
	lines = append(lines, "", th.Muted.Render("Tip: add with `tasklist add \"Buy milk\"`"))
	return lines
}

func indexes(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

// flatLines renders rows with their 1-based position in the full list, so the
// numbers shown are always valid arguments to done/rm.
func flatLines(tasks []model.Task, pos []int) []string {
	th := ui.Current()
	if len(tasks) == 0 {
		return []string{th.Muted.Render(ui.EmptyMessage)}
	}
	out := make([]string, 0, len(tasks))
	for i, t := range tasks {
		idx := th.Muted.Render(fmt.Sprintf("%2d.", pos[i]))
		out = append(out, fmt.Sprintf("%s %s %s", idx, ui.TaskRow(t), th.Muted.Render(shortID(t.ID))))
	}
	return out
}

func groupLines(tasks []model.Task) []string {
	th := ui.Current()
	var pend, done []model.Task
	var pendPos, donePos []int
	for i, t := range tasks {
		if t.Done {
			done = append(done, t)
			donePos = append(donePos, i+1)
		} else {
			pend = append(pend, t)
			pendPos = append(pendPos, i+1)
		}
	}
	var lines []string
	lines = append(lines, th.Accent.Render("Pending"))
	if len(pend) == 0 {
		lines = append(lines, th.Muted.Render("(none)"))
	} else {
		lines = append(lines, flatLines(pend, pendPos)...)
	}
	lines = append(lines, "")
	lines = append(lines, th.Accent.Render("Done"))
	if len(done) == 0 {
		lines = append(lines, th.Muted.Render("(none)"))
	} else {
		lines = append(lines, flatLines(done, donePos)...)
	}
	return lines
}
