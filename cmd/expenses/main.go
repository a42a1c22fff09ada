package main

import (
	"context"
	"fmt"
	"os"

	"expensetracker/internal/cli"
	applog "expensetracker/internal/log"
)

const usage = `expenses - track expenses in a cloud object store

Usage:
  expenses test                                        check connectivity
  expenses add <description> <amount> [--category NAME]
  expenses view [--category NAME]
  expenses delete <id>
  expenses summary

Configuration comes from the environment (optionally via .env):
  STORAGE_BACKEND   s3 | sqlite | memory       (default s3)
  S3_BUCKET_NAME    bucket for the s3 backend
  AWS_REGION        (default us-east-1)
  NOTIFY_SINK       cloudwatch | amqp | stderr (default cloudwatch)
  CLOUDWATCH_LOG_GROUP                         (default expense-tracker-logs)
`

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	logger := cli.SetupLogger()

	if len(args) < 1 {
		fmt.Fprint(os.Stderr, usage)
		return 1
	}
	command, rest := args[0], args[1:]

	switch command {
	case "add", "view", "delete", "summary", "test":
	case "help", "-h", "--help":
		fmt.Print(usage)
		return 0
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", command, usage)
		return 1
	}

	cli.LoadEnvFile()
	cfg := cli.LoadAndValidateConfig(logger)

	ctx := context.Background()
	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize expense tracker", applog.FieldError, err)
		return 1
	}
	defer app.Close()

	var cmdErr error
	switch command {
	case "add":
		cmdErr = app.RunAdd(ctx, rest)
	case "view":
		cmdErr = app.RunView(ctx, rest)
	case "delete":
		cmdErr = app.RunDelete(ctx, rest)
	case "summary":
		cmdErr = app.RunSummary(ctx, rest)
	case "test":
		cmdErr = app.RunTest(ctx, rest)
	}
	if cmdErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", cmdErr)
		return 1
	}
	return 0
}
