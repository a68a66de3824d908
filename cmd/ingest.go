package main

import (
	"os"
	"os/signal"
	"syscall"

	"CricketSync/internal/adapter"
	"CricketSync/internal/metrics"
	"CricketSync/internal/model"

	"github.com/spf13/cobra"
)

var ingestSource string

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "执行一次同步：拉取进行中的比赛并整批入库",
	RunE:  runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
	ingestCmd.Flags().StringVar(&ingestSource, "source", model.SourceAPI, "比赛来源：api 或 seed")
}

func runIngest(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	src, err := adapter.NewSource(ingestSource, a.cfg, a.logger)
	if err != nil {
		return err
	}
	n, err := a.ingestService(metrics.New()).Run(ctx, src)
	if err != nil {
		return err
	}
	cmd.Printf("已入库 %d 场比赛（来源：%s）\n", n, src.Name())
	return nil
}
