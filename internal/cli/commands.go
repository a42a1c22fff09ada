package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strconv"

	"expensetracker/internal/core"
	applog "expensetracker/internal/log"
	"expensetracker/internal/notify"
)

// RunAdd records one expense: load, validate and append, save, confirm.
func (a *App) RunAdd(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	category := fs.String("category", "", "expense category")
	if err := fs.Parse(args); err != nil {
		return usageError("add <description> <amount> [--category NAME]")
	}
	rest := fs.Args()
	if len(rest) < 2 {
		return usageError("add <description> <amount> [--category NAME]")
	}
	description, amountArg := rest[0], rest[1]
	// Allow the flag after the positionals too: add "Coffee" 4.50 --category Food
	if len(rest) > 2 {
		if err := fs.Parse(rest[2:]); err != nil {
			return usageError("add <description> <amount> [--category NAME]")
		}
	}

	amount, err := core.ParseAmount(amountArg)
	if err != nil {
		return fmt.Errorf("invalid amount %q: must be a decimal number", amountArg)
	}

	snap, err := a.Store.Load(ctx)
	if err != nil {
		return err
	}
	snap, e, err := a.Store.Add(ctx, snap, description, amount, *category)
	if err != nil {
		return err
	}
	if err := a.Store.Save(ctx, snap); err != nil {
		return err
	}

	a.Logger.Info("Expense added",
		applog.FieldOperation, applog.OpAdd,
		applog.FieldExpenseID, e.ID,
		applog.FieldAmount, e.Amount.Display(),
		applog.FieldCategory, e.Category)
	fmt.Fprintf(a.Out, "Expense added: %s for '%s' in category '%s' (id %d)\n",
		e.Amount.Display(), e.Description, e.Category, e.ID)
	return nil
}

// RunView prints all expenses, or those in one category, as a table with
// a total line.
func (a *App) RunView(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("view", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	category := fs.String("category", "", "filter by category")
	if err := fs.Parse(args); err != nil || fs.NArg() != 0 {
		return usageError("view [--category NAME]")
	}

	snap, err := a.Store.Load(ctx)
	if err != nil {
		return err
	}

	shown := renderTable(a.Out, snap, *category)
	if shown == 0 {
		if *category != "" {
			fmt.Fprintf(a.Out, "No expenses found in category '%s'.\n", *category)
		} else {
			fmt.Fprintln(a.Out, "No expenses found. Add your first expense!")
		}
	}
	return nil
}

// RunDelete removes one expense by id. A missing id is a normal negative
// result, not an error: the command prints "not found" and succeeds.
func (a *App) RunDelete(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageError("delete <id>")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id < 1 {
		return fmt.Errorf("invalid expense id %q: must be a positive integer", args[0])
	}

	snap, err := a.Store.Load(ctx)
	if err != nil {
		return err
	}
	snap, removed, err := a.Store.Delete(ctx, snap, id)
	if err != nil {
		return err
	}
	if !removed {
		fmt.Fprintf(a.Out, "No expense found with id %d.\n", id)
		return nil
	}
	if err := a.Store.Save(ctx, snap); err != nil {
		return err
	}

	a.Logger.Info("Expense deleted",
		applog.FieldOperation, applog.OpDelete, applog.FieldExpenseID, id)
	fmt.Fprintf(a.Out, "Expense %d deleted.\n", id)
	return nil
}

// RunSummary prints totals, the per-category breakdown, and recent activity.
func (a *App) RunSummary(ctx context.Context, args []string) error {
	if len(args) != 0 {
		return usageError("summary")
	}
	snap, err := a.Store.Load(ctx)
	if err != nil {
		return err
	}
	renderSummary(a.Out, a.Store.Summarize(ctx, snap))
	return nil
}

// RunTest checks connectivity to the backing store and the activity sink,
// in that order, reporting each check through the sink itself.
func (a *App) RunTest(ctx context.Context, args []string) error {
	if len(args) != 0 {
		return usageError("test")
	}

	ok := true

	storeErr := a.Backend.Ping(ctx)
	reportCheck(a.Out, "Backing store", storeErr)
	a.notifyCheck(ctx, "backing store", storeErr)
	if storeErr != nil {
		ok = false
	}

	sinkErr := a.Sink.Ping(ctx)
	reportCheck(a.Out, "Activity sink", sinkErr)
	a.notifyCheck(ctx, "activity sink", sinkErr)
	if sinkErr != nil {
		ok = false
	}

	if !ok {
		return fmt.Errorf("connectivity test failed")
	}
	return nil
}

func (a *App) notifyCheck(ctx context.Context, name string, err error) {
	if a.notifier == nil {
		a.notifier = notify.NewBestEffort(a.Sink, a.Logger.WithComponent(applog.ComponentNotify).Logger)
	}
	if err != nil {
		a.notifier.Notify(ctx, notify.Error, fmt.Sprintf("connectivity check failed: %s: %v", name, err))
		return
	}
	a.notifier.Notify(ctx, notify.Info, fmt.Sprintf("connectivity check ok: %s", name))
}

func reportCheck(w io.Writer, name string, err error) {
	if err != nil {
		fmt.Fprintf(w, "%s: FAILED (%v)\n", name, err)
		return
	}
	fmt.Fprintf(w, "%s: OK\n", name)
}

// usageError carries the usage line of the failing subcommand.
type usageError string

func (e usageError) Error() string {
	return "usage: expenses " + string(e)
}
