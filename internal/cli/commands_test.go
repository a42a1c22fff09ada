package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"expensetracker/internal/backend/memory"
	"expensetracker/internal/config"
	applog "expensetracker/internal/log"
	"expensetracker/internal/notify"
	"expensetracker/internal/store"
)

func newTestApp(t *testing.T) (*App, *memory.Store, *notify.Recorder, *bytes.Buffer) {
	t.Helper()
	be := memory.New()
	rec := &notify.Recorder{}
	logger := applog.New(applog.Config{Handler: slog.NewTextHandler(io.Discard, nil)})
	out := &bytes.Buffer{}
	app := &App{
		Config:  &config.Config{UserID: "default"},
		Logger:  logger,
		Backend: be,
		Sink:    rec,
		Store:   store.New(be, notify.NewBestEffort(rec, logger.Logger)),
		Out:     out,
	}
	return app, be, rec, out
}

func TestRunAddAndView(t *testing.T) {
	app, be, _, out := newTestApp(t)
	ctx := context.Background()

	if err := app.RunAdd(ctx, []string{"Coffee", "4.50", "--category", "Food"}); err != nil {
		t.Fatalf("RunAdd: %v", err)
	}
	if be.Bytes() == nil {
		t.Fatalf("add did not persist the snapshot")
	}
	if !strings.Contains(out.String(), "4.50") || !strings.Contains(out.String(), "Food") {
		t.Fatalf("confirmation missing amount or category: %q", out.String())
	}

	out.Reset()
	if err := app.RunView(ctx, nil); err != nil {
		t.Fatalf("RunView: %v", err)
	}
	view := out.String()
	for _, want := range []string{"Coffee", "4.50", "Food", "Total: 4.50"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view output missing %q:\n%s", want, view)
		}
	}
}

func TestRunAddFlagBeforePositionals(t *testing.T) {
	app, _, _, out := newTestApp(t)
	if err := app.RunAdd(context.Background(), []string{"--category", "Food", "Coffee", "4.50"}); err != nil {
		t.Fatalf("RunAdd: %v", err)
	}
	if !strings.Contains(out.String(), "'Food'") {
		t.Fatalf("category flag before positionals ignored: %q", out.String())
	}
}

func TestRunAddValidation(t *testing.T) {
	app, be, _, _ := newTestApp(t)
	ctx := context.Background()

	cases := [][]string{
		{"Coffee"},              // missing amount
		{"Coffee", "0"},         // zero
		{"Coffee", "-1"},        // negative
		{"Coffee", "abc"},       // not a number
		{"", "5.00"},            // empty description
	}
	for i, args := range cases {
		if err := app.RunAdd(ctx, args); err == nil {
			t.Fatalf("case %d (%v): expected error", i, args)
		}
	}
	if be.Bytes() != nil {
		t.Fatalf("failed adds must not persist anything")
	}
}

func TestRunViewEmpty(t *testing.T) {
	app, _, _, out := newTestApp(t)
	if err := app.RunView(context.Background(), nil); err != nil {
		t.Fatalf("RunView: %v", err)
	}
	if !strings.Contains(out.String(), "No expenses found") {
		t.Fatalf("missing empty-store message: %q", out.String())
	}
}

func TestRunViewCategoryFilter(t *testing.T) {
	app, _, _, out := newTestApp(t)
	ctx := context.Background()
	seedScenario(t, app)

	out.Reset()
	if err := app.RunView(ctx, []string{"--category", "Food"}); err != nil {
		t.Fatalf("RunView: %v", err)
	}
	view := out.String()
	if !strings.Contains(view, "Coffee") {
		t.Fatalf("filtered view missing Coffee:\n%s", view)
	}
	if strings.Contains(view, "Gas") {
		t.Fatalf("filter leaked other categories:\n%s", view)
	}
	if !strings.Contains(view, "Total: 4.50") {
		t.Fatalf("filtered total wrong:\n%s", view)
	}

	out.Reset()
	if err := app.RunView(ctx, []string{"--category", "Missing"}); err != nil {
		t.Fatalf("RunView: %v", err)
	}
	if !strings.Contains(out.String(), "No expenses found in category 'Missing'") {
		t.Fatalf("missing no-match message: %q", out.String())
	}
}

func TestRunDelete(t *testing.T) {
	app, be, _, out := newTestApp(t)
	ctx := context.Background()
	seedScenario(t, app)

	puts := be.PutCount
	out.Reset()
	if err := app.RunDelete(ctx, []string{"2"}); err != nil {
		t.Fatalf("RunDelete: %v", err)
	}
	if !strings.Contains(out.String(), "Expense 2 deleted") {
		t.Fatalf("missing confirmation: %q", out.String())
	}
	if be.PutCount != puts+1 {
		t.Fatalf("delete did not save the snapshot")
	}

	// Absent id: normal negative result, no save, no error.
	puts = be.PutCount
	out.Reset()
	if err := app.RunDelete(ctx, []string{"99"}); err != nil {
		t.Fatalf("RunDelete absent: %v", err)
	}
	if !strings.Contains(out.String(), "No expense found with id 99") {
		t.Fatalf("missing not-found message: %q", out.String())
	}
	if be.PutCount != puts {
		t.Fatalf("absent delete wrote to the backing object")
	}
}

func TestRunDeleteMalformedID(t *testing.T) {
	app, _, _, _ := newTestApp(t)
	for _, arg := range []string{"abc", "-3", "0", "1.5"} {
		if err := app.RunDelete(context.Background(), []string{arg}); err == nil {
			t.Fatalf("id %q: expected validation error", arg)
		}
	}
}

func TestRunSummary(t *testing.T) {
	app, _, _, out := newTestApp(t)
	seedScenario(t, app)

	out.Reset()
	if err := app.RunSummary(context.Background(), nil); err != nil {
		t.Fatalf("RunSummary: %v", err)
	}
	text := out.String()
	for _, want := range []string{
		"Expenses: 3",
		"Total: 61.50",
		"Entertainment: 1 expenses, 12.00",
		"Food: 1 expenses, 4.50",
		"Transport: 1 expenses, 45.00",
		"Recent expenses:",
		"Movie ticket",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("summary missing %q:\n%s", want, text)
		}
	}
}

func TestRunTest(t *testing.T) {
	app, _, rec, out := newTestApp(t)
	if err := app.RunTest(context.Background(), nil); err != nil {
		t.Fatalf("RunTest: %v", err)
	}
	text := out.String()
	if !strings.Contains(text, "Backing store: OK") || !strings.Contains(text, "Activity sink: OK") {
		t.Fatalf("missing status lines:\n%s", text)
	}
	// One notification per connectivity check.
	if len(rec.Records) != 2 {
		t.Fatalf("notifications = %d, want 2", len(rec.Records))
	}
}

func TestRunTestSinkDown(t *testing.T) {
	app, _, rec, out := newTestApp(t)
	rec.Err = errors.New("unreachable")
	if err := app.RunTest(context.Background(), nil); err == nil {
		t.Fatalf("expected failure when sink is down")
	}
	if !strings.Contains(out.String(), "Activity sink: FAILED") {
		t.Fatalf("missing failure line:\n%s", out.String())
	}
}

func TestUsageErrors(t *testing.T) {
	app, _, _, _ := newTestApp(t)
	ctx := context.Background()
	cases := []struct {
		name string
		run  func() error
	}{
		{"delete no args", func() error { return app.RunDelete(ctx, nil) }},
		{"summary extra args", func() error { return app.RunSummary(ctx, []string{"x"}) }},
		{"test extra args", func() error { return app.RunTest(ctx, []string{"x"}) }},
		{"view extra args", func() error { return app.RunView(ctx, []string{"x"}) }},
		{"add no args", func() error { return app.RunAdd(ctx, nil) }},
	}
	for _, tc := range cases {
		if err := tc.run(); err == nil {
			t.Fatalf("%s: expected usage error", tc.name)
		}
	}
}

func seedScenario(t *testing.T, app *App) {
	t.Helper()
	ctx := context.Background()
	for _, rec := range [][]string{
		{"Coffee", "4.50", "--category", "Food"},
		{"Gas", "45.00", "--category", "Transport"},
		{"Movie ticket", "12.00", "--category", "Entertainment"},
	} {
		if err := app.RunAdd(ctx, rec); err != nil {
			t.Fatalf("seed %v: %v", rec, err)
		}
	}
}
