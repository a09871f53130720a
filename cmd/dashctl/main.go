package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	configFlag := &cli.StringFlag{
		Name:  "config",
		Usage: "config file path (empty for defaults plus environment)",
	}

	app := &cli.Command{
		Name:  "dashctl",
		Usage: "drive the training dashboard from a terminal",
		Commands: []*cli.Command{
			{
				Name:  "train",
				Usage: "submit a training job and wait for the reply",
				Flags: []cli.Flag{
					configFlag,
					&cli.StringFlag{Name: "ticker", Usage: "ticker symbol (default AAPL)"},
					&cli.StringFlag{Name: "period", Usage: "lookback period: 1mo, 3mo, 6mo, 1y, 2y, 5y (default 6mo)"},
					&cli.StringFlag{Name: "epochs", Usage: "positive number of epochs (default 10)"},
				},
				Action: TrainAction,
			},
			{
				Name:  "chart",
				Usage: "fetch a price series and print the chart data",
				Flags: []cli.Flag{
					configFlag,
					&cli.StringFlag{Name: "ticker", Usage: "ticker symbol (default AAPL)"},
					&cli.StringFlag{Name: "period", Usage: "lookback period: 1mo, 3mo, 6mo, 1y (default 1mo)"},
				},
				Action: ChartAction,
			},
			{
				Name:   "periods",
				Usage:  "list the periods offered by each view",
				Action: PeriodsAction,
			},
		},
	}

	if err := app.Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
