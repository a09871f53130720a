package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"TrainBoard/internal/di"
	"TrainBoard/internal/domain/models"
	"TrainBoard/internal/usecase"
	"TrainBoard/pkg/config"
	applogger "TrainBoard/pkg/logger"

	"github.com/urfave/cli/v3"
)

// errSettledFailure makes the process exit non-zero after the state was printed.
var errSettledFailure = errors.New("request failed")

// TrainAction submits one training job with the given form values.
func TrainAction(ctx context.Context, cmd *cli.Command) error {
	cfg, l, err := setup(cmd)
	if err != nil {
		return err
	}
	client, err := di.ProvideTrainingClient(cfg)
	if err != nil {
		return err
	}

	w := di.ProvideTrainingWidget(client, nil, l)
	defer w.Close()
	if cmd.IsSet("ticker") {
		w.SetTicker(cmd.String("ticker"))
	}
	if cmd.IsSet("period") {
		w.SetPeriod(cmd.String("period"))
	}
	if cmd.IsSet("epochs") {
		w.SetEpochs(cmd.String("epochs"))
	}
	w.Subscribe(func(s models.TrainingSnapshot) {
		l.Info("progress", applogger.String("stage", string(s.Stage)), applogger.Int("percent", s.Progress))
	})

	sub := w.Submit(ctx)
	if err := sub.Wait(ctx); err != nil {
		return fmt.Errorf("waiting for training backend: %w", err)
	}

	snap := w.Snapshot()
	if err := printJSON(os.Stdout, snap); err != nil {
		return err
	}
	if !snap.Result.Succeeded() {
		return errSettledFailure
	}
	return nil
}

// ChartAction fetches one series and prints the chart-ready data.
func ChartAction(ctx context.Context, cmd *cli.Command) error {
	cfg, l, err := setup(cmd)
	if err != nil {
		return err
	}
	client, err := di.ProvideStockClient(cfg)
	if err != nil {
		return err
	}

	chart := usecase.NewStockChart(client, logNotifier{l}, nil, l)
	defer chart.Close()

	q := usecase.DefaultChartQuery()
	if cmd.IsSet("ticker") {
		q = usecase.WithChartTicker(q, cmd.String("ticker"))
	}
	if cmd.IsSet("period") {
		q = usecase.WithChartPeriod(q, cmd.String("period"))
	}
	if err := chart.SetQuery(ctx, q).Wait(ctx); err != nil {
		return fmt.Errorf("waiting for stock data backend: %w", err)
	}

	snap := chart.Snapshot()
	if err := printJSON(os.Stdout, snap); err != nil {
		return err
	}
	if snap.Status != models.ChartReady {
		return errSettledFailure
	}
	return nil
}

// PeriodsAction prints both period enumerations.
func PeriodsAction(_ context.Context, _ *cli.Command) error {
	return printJSON(os.Stdout, models.PeriodsResponse{
		Training: models.TrainingPeriods,
		Chart:    models.ChartPeriods,
	})
}

func setup(cmd *cli.Command) (*config.Config, *applogger.Logger, error) {
	cfg, err := config.LoadWithEnv(cmd.String("config"))
	if err != nil {
		return nil, nil, fmt.Errorf("config: %w", err)
	}
	l := applogger.NewWriter(os.Stderr, cfg.Log.Level)
	return cfg, l, nil
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// logNotifier prints alerts to stderr, there being no dashboard to show them.
type logNotifier struct{ l *applogger.Logger }

func (n logNotifier) Notify(_ context.Context, msg models.Notification) {
	n.l.Error(msg.Title, applogger.String("detail", msg.Message))
}
