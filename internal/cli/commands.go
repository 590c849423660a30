package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/listkeeper/internal/models"
	"github.com/google/uuid"
)

var (
	errNoPlan = errors.New("no plan selected: use 'plans' and 'use <n>'")
	errNoList = errors.New("no list open: use 'list <kind>'")
)

// usageError is returned for malformed arguments.
type usageError string

func (e usageError) Error() string { return "usage: " + string(e) }

func parsePosition(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("bad position %q", s)
	}
	return n, nil
}

func parsePositions(args []string) ([]int, error) {
	var out []int
	for _, arg := range args {
		for _, part := range strings.Split(arg, ",") {
			if part == "" {
				continue
			}
			n, err := parsePosition(part)
			if err != nil {
				return nil, err
			}
			out = append(out, n)
		}
	}
	return out, nil
}

// Plans lists plans, numbered for "use".
func (a *App) Plans(ctx context.Context, _ []string) error {
	plans, err := a.plans.ListPlans(ctx)
	if err != nil {
		return err
	}
	a.listing = plans
	if len(plans) == 0 {
		fmt.Fprintln(a.out, "No plans yet: create one with 'new <title>'")
		return nil
	}
	for i, p := range plans {
		fmt.Fprintf(a.out, "%3d. %s\n", i+1, p.Title)
	}
	return nil
}

// NewPlan creates a plan and selects it with its task list open.
func (a *App) NewPlan(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usageError("new <title>")
	}
	p, err := a.plans.CreatePlan(ctx, strings.Join(args, " "))
	if err != nil {
		return err
	}
	a.listing = nil
	return a.selectPlan(ctx, p)
}

// Use selects a plan by its number in the last "plans" output or by id.
func (a *App) Use(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageError("use <n|id>")
	}
	p, err := a.resolvePlan(ctx, args[0])
	if err != nil {
		return err
	}
	return a.selectPlan(ctx, p)
}

func (a *App) resolvePlan(ctx context.Context, arg string) (*models.Plan, error) {
	if id, err := uuid.Parse(arg); err == nil {
		return a.plans.GetPlan(ctx, id)
	}
	n, err := parsePosition(arg)
	if err != nil {
		return nil, err
	}
	if a.listing == nil {
		if a.listing, err = a.plans.ListPlans(ctx); err != nil {
			return nil, err
		}
	}
	if n > len(a.listing) {
		return nil, fmt.Errorf("no plan %d", n)
	}
	p := a.listing[n-1]
	return &p, nil
}

func (a *App) selectPlan(ctx context.Context, p *models.Plan) error {
	a.closeSession()
	a.plan = p
	fmt.Fprintf(a.out, "Using plan %q\n", p.Title)
	return a.openList(ctx, models.KindTasks)
}

// RenamePlan changes the selected plan's title.
func (a *App) RenamePlan(ctx context.Context, args []string) error {
	if a.plan == nil {
		return errNoPlan
	}
	if len(args) == 0 {
		return usageError("rename <title>")
	}
	if err := a.plans.RenamePlan(ctx, a.plan.ID, strings.Join(args, " ")); err != nil {
		return err
	}
	p, err := a.plans.GetPlan(ctx, a.plan.ID)
	if err != nil {
		return err
	}
	a.plan, a.listing = p, nil
	return nil
}

// DropPlan deletes the selected plan with all of its lists.
func (a *App) DropPlan(ctx context.Context, _ []string) error {
	if a.plan == nil {
		return errNoPlan
	}
	if err := a.plans.DeletePlan(ctx, a.plan.ID); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Deleted plan %q\n", a.plan.Title)
	a.closeSession()
	a.plan, a.listing = nil, nil
	return nil
}

// List switches the open list of the selected plan.
func (a *App) List(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageError("list tasks|shopping|checklist")
	}
	kind, err := models.ParseKind(args[0])
	if err != nil {
		return err
	}
	if err := a.openList(ctx, kind); err != nil {
		return err
	}
	return a.Show(ctx, nil)
}

func (a *App) Show(_ context.Context, _ []string) error {
	s, err := a.current()
	if err != nil {
		return err
	}
	s.Render(a.out)
	return nil
}

func (a *App) Add(ctx context.Context, args []string) error {
	s, err := a.current()
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return usageError("add <text>")
	}
	return a.report(s, s.Add(ctx, strings.Join(args, " ")), "")
}

func (a *App) Toggle(ctx context.Context, args []string) error {
	s, err := a.current()
	if err != nil {
		return err
	}
	if len(args) != 1 {
		return usageError("toggle <n>")
	}
	pos, err := parsePosition(args[0])
	if err != nil {
		return err
	}
	return a.report(s, s.Toggle(ctx, pos), "")
}

func (a *App) Edit(ctx context.Context, args []string) error {
	s, err := a.current()
	if err != nil {
		return err
	}
	if len(args) < 2 {
		return usageError("edit <n> <text>")
	}
	pos, err := parsePosition(args[0])
	if err != nil {
		return err
	}
	return a.report(s, s.Edit(ctx, pos, strings.Join(args[1:], " ")), "")
}

func (a *App) Delete(ctx context.Context, args []string) error {
	s, err := a.current()
	if err != nil {
		return err
	}
	if len(args) != 1 {
		return usageError("del <n>")
	}
	pos, err := parsePosition(args[0])
	if err != nil {
		return err
	}
	return a.report(s, s.Delete(ctx, pos), "")
}

// Move moves the items at the given positions before position <to>. A
// destination one past the end appends.
func (a *App) Move(ctx context.Context, args []string) error {
	s, err := a.current()
	if err != nil {
		return err
	}
	if len(args) < 2 {
		return usageError("move <n>[,<n>...] <to>")
	}
	from, err := parsePositions(args[:len(args)-1])
	if err != nil {
		return err
	}
	to, err := parsePosition(args[len(args)-1])
	if err != nil {
		return err
	}
	return a.report(s, s.Move(ctx, from, to), "")
}

// Reorder puts the given positions first, keeping the rest in order.
func (a *App) Reorder(ctx context.Context, args []string) error {
	s, err := a.current()
	if err != nil {
		return err
	}
	positions, err := parsePositions(args)
	if err != nil {
		return err
	}
	if len(positions) == 0 {
		return usageError("reorder <n> [<n>...]")
	}
	return a.report(s, s.Reorder(ctx, positions), "")
}

func (a *App) Title(ctx context.Context, args []string) error {
	s, err := a.current()
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return usageError("title <text>")
	}
	return a.report(s, s.Rename(ctx, strings.Join(args, " ")), "")
}

// Notes reads multi-line notes for the open list. An empty input clears them.
func (a *App) Notes(ctx context.Context, _ []string) error {
	s, err := a.current()
	if err != nil {
		return err
	}
	text, err := GetMultiline(a.reader, "Enter notes:", a.out)
	if err != nil {
		return err
	}
	return a.report(s, s.SetNotes(ctx, text), "")
}

func (a *App) Budget(ctx context.Context, args []string) error {
	s, err := a.current()
	if err != nil {
		return err
	}
	if len(args) < 1 || len(args) > 2 {
		return usageError("budget <amount> [currency]")
	}
	amount, err := strconv.ParseFloat(args[0], 64)
	if err != nil || !models.ValidAmount(amount) {
		return fmt.Errorf("bad amount %q", args[0])
	}
	var currency string
	if len(args) == 2 {
		currency = args[1]
	}
	return a.report(s, s.SetBudget(ctx, amount, currency), "")
}

func (a *App) Price(ctx context.Context, args []string) error {
	s, err := a.current()
	if err != nil {
		return err
	}
	if len(args) != 2 {
		return usageError("price <n> <amount>")
	}
	pos, err := parsePosition(args[0])
	if err != nil {
		return err
	}
	price, err := strconv.ParseFloat(args[1], 64)
	if err != nil || !models.ValidAmount(price) {
		return fmt.Errorf("bad amount %q", args[1])
	}
	changed, err := s.SetPrice(ctx, pos, price)
	if err != nil {
		return err
	}
	return a.report(s, changed, "")
}

// Clear removes done items. They can be brought back with "undo" within the
// configured undo window.
func (a *App) Clear(ctx context.Context, _ []string) error {
	s, err := a.current()
	if err != nil {
		return err
	}
	n := s.Clear(ctx, a.now())
	if n == 0 {
		return a.report(s, false, "")
	}
	fmt.Fprintf(a.out, "Cleared %d item(s), 'undo' within %s to restore\n", n, a.config.UndoWindow)
	return nil
}

func (a *App) Undo(ctx context.Context, _ []string) error {
	s, err := a.current()
	if err != nil {
		return err
	}
	n, err := s.Undo(ctx, a.now(), a.config.UndoWindow)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Restored %d item(s)\n", n)
	return nil
}

// Rewrite lets the user edit the whole list as text, one item per line.
func (a *App) Rewrite(ctx context.Context, _ []string) error {
	s, err := a.current()
	if err != nil {
		return err
	}
	if s.Len() > 0 {
		fmt.Fprintln(a.out, "Current items:")
		fmt.Fprintln(a.out, s.DraftText())
	}
	text, err := GetMultiline(a.reader, "Enter the new list, '[x]' marks done items:", a.out)
	if err != nil {
		return err
	}
	if text == "" {
		fmt.Fprintln(a.out, "Nothing changed")
		return nil
	}
	return a.report(s, s.Rewrite(ctx, text), "")
}

// Export uploads the selected plan to object storage.
func (a *App) Export(ctx context.Context, _ []string) error {
	if a.plan == nil {
		return errNoPlan
	}
	exp, err := a.exporter(ctx)
	if err != nil {
		return err
	}
	key, err := a.plans.ExportPlan(ctx, exp, a.plan.ID)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Exported to %s\n", key)
	return nil
}
