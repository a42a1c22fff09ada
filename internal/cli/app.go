package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"expensetracker/internal/backend"
	"expensetracker/internal/config"
	applog "expensetracker/internal/log"
	"expensetracker/internal/notify"
	"expensetracker/internal/notify/amqpsink"
	"expensetracker/internal/notify/cloudwatch"
	"expensetracker/internal/store"
)

// App holds one invocation's wired components. The tool is strictly
// request-per-invocation: one command, one load, at most one save, exit.
type App struct {
	Config   *config.Config
	Logger   *applog.Logger
	Store    *store.Store
	Backend  backend.ObjectStore
	Sink     notify.Notifier
	Out      io.Writer

	notifier *notify.BestEffort
	cleanups []func() error
}

// NewApp builds the backend and activity sink selected by cfg and wires
// the store on top of them.
func NewApp(ctx context.Context, cfg *config.Config, logger *applog.Logger) (*App, error) {
	app := &App{
		Config: cfg,
		Logger: logger,
		Out:    os.Stdout,
	}

	factory := backend.NewFactory(logger.WithComponent(applog.ComponentBackend).Logger)
	result, err := factory.Create(ctx, backend.Config{
		Type:         backend.Type(cfg.StorageBackend),
		Bucket:       cfg.S3Bucket,
		Region:       cfg.AWSRegion,
		ObjectKey:    cfg.ObjectKey(),
		SQLiteDBPath: cfg.SQLiteDBPath,
		StoreID:      cfg.UserID,
	})
	if err != nil {
		return nil, fmt.Errorf("initialize storage backend: %w", err)
	}
	app.Backend = result.Store
	if result.Cleanup != nil {
		app.cleanups = append(app.cleanups, result.Cleanup)
	}

	sink, err := app.newSink(ctx)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("initialize activity sink: %w", err)
	}
	app.Sink = sink

	notifyLogger := logger.WithComponent(applog.ComponentNotify).Logger
	app.notifier = notify.NewBestEffort(sink, notifyLogger)
	app.Store = store.New(app.Backend, app.notifier)
	return app, nil
}

func (a *App) newSink(ctx context.Context) (notify.Notifier, error) {
	cfg := a.Config
	switch notify.Type(cfg.NotifySink) {
	case notify.CloudWatchSink:
		sink, err := cloudwatch.New(ctx, cfg.AWSRegion, cfg.LogGroup)
		if err != nil {
			return nil, err
		}
		a.Logger.Info("Initialized CloudWatch sink", applog.FieldLogGroup, cfg.LogGroup)
		return sink, nil

	case notify.AMQPSink:
		sink, err := amqpsink.New(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			return nil, err
		}
		a.cleanups = append(a.cleanups, sink.Close)
		a.Logger.Info("Initialized AMQP sink",
			"exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
		return sink, nil

	case notify.StderrSink:
		return notify.NewStderr(a.Logger.WithComponent(applog.ComponentNotify).Logger), nil

	default:
		return nil, fmt.Errorf("unsupported notify sink: %s", cfg.NotifySink)
	}
}

// Close releases backend and sink resources.
func (a *App) Close() error {
	var firstErr error
	for _, cleanup := range a.cleanups {
		if err := cleanup(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
