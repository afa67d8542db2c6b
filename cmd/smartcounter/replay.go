package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Spok95/smartcounter/internal/config"
	"github.com/Spok95/smartcounter/internal/domain/meter"
	"github.com/Spok95/smartcounter/internal/infra/logger"
	"github.com/Spok95/smartcounter/internal/ingest"
)

var replayCmd = &cobra.Command{
	Use:   "replay FILE",
	Short: "Feed a captured line file through the parser and ledger, print the result as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runReplay,
}

type replayResult struct {
	Snapshot    meter.View         `json:"snapshot"`
	Settlements []meter.Settlement `json:"settlements"`
}

func runReplay(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	format, err := meter.ParseFormat(cfg.Transport.Format)
	if err != nil {
		return err
	}

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("open capture: %w", err)
	}
	// сами строки идут в stdout, диагностика парсера — в stderr
	log := logger.NewWithWriter(cfg.App.Env, cmd.ErrOrStderr())
	return replay(cmd.Context(), f, format, cmd.OutOrStdout(), log)
}

func replay(ctx context.Context, rc io.ReadCloser, format meter.Format, out io.Writer, log *slog.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ledger := meter.NewLedger(nil)
	res := replayResult{Settlements: []meter.Settlement{}}
	r := ingest.NewReader(ingest.NewLineSource(rc), meter.NewParser(format), ledger,
		func(s meter.Settlement) { res.Settlements = append(res.Settlements, s) }, log)
	if err := r.Run(ctx); err != nil {
		return err
	}
	res.Snapshot = ledger.Snapshot()

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}
