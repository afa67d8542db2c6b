package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Spok95/smartcounter/internal/bot"
	"github.com/Spok95/smartcounter/internal/config"
	"github.com/Spok95/smartcounter/internal/dialog"
	"github.com/Spok95/smartcounter/internal/domain/meter"
	"github.com/Spok95/smartcounter/internal/domain/payments"
	"github.com/Spok95/smartcounter/internal/hooks"
	"github.com/Spok95/smartcounter/internal/i18n"
	"github.com/Spok95/smartcounter/internal/infra/db"
	httpx "github.com/Spok95/smartcounter/internal/infra/http"
	"github.com/Spok95/smartcounter/internal/infra/kafkapub"
	"github.com/Spok95/smartcounter/internal/infra/logger"
	"github.com/Spok95/smartcounter/internal/infra/mqttsrc"
	"github.com/Spok95/smartcounter/internal/infra/serialport"
	"github.com/Spok95/smartcounter/internal/ingest"
	"github.com/Spok95/smartcounter/internal/panel"
)

const shutdownTimeout = 5 * time.Second

var withPanel bool

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the counter: reader, settlement hooks, bot and HTTP API",
	Args:  cobra.NoArgs,
	RunE:  runDaemon,
}

func runDaemon(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	// панель занимает экран, логи уходят в файл
	logOut := io.WriteCloser(os.Stdout)
	if withPanel {
		if logOut, err = logger.OpenFile(cfg.App.LogFile); err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer func() { _ = logOut.Close() }()
	}
	log := logger.NewWithWriter(cfg.App.Env, logOut)

	sigCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(sigCtx)
	defer cancel()

	format, err := meter.ParseFormat(cfg.Transport.Format)
	if err != nil {
		return err
	}
	ledger := meter.NewLedger(meter.DefaultTariff())

	journal, prefs, closeStores, err := openStores(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStores()

	hookList := []hooks.Hook{payments.NewJournalHook(journal)}

	if cfg.Kafka.Enabled {
		pub, err := kafkapub.New(kafkapub.Config{Brokers: cfg.Kafka.Brokers, Topic: cfg.Kafka.Topic})
		if err != nil {
			return err
		}
		defer func() { _ = pub.Close() }()
		hookList = append(hookList, pub)
		log.Info("kafka publisher enabled", "topic", cfg.Kafka.Topic)
	}

	var tg *bot.Bot
	if cfg.Telegram.Token != "" {
		api, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
		if err != nil {
			return fmt.Errorf("telegram: %w", err)
		}
		tg = bot.New(api, log, ledger, journal, prefs, cfg.Telegram.AdminChatID, cfg.Location())
		hookList = append(hookList, tg)
	} else {
		log.Info("telegram token not set, bot disabled")
	}

	dispatcher := hooks.NewDispatcher(log, cfg.Hooks.QueueSize, hookList...)

	src, err := openSource(ctx, cfg, log)
	if err != nil {
		return err
	}
	reader := ingest.NewReader(src, meter.NewParser(format), ledger,
		func(s meter.Settlement) { dispatcher.Enqueue(s) }, log)

	srv := httpx.New(cfg.HTTP.Addr, cfg.Metrics.Enabled, ledger, journal, log)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error { return reader.Run(gctx) })
	g.Go(func() error { return dispatcher.Run(gctx) })

	if tg != nil {
		g.Go(func() error { return tg.Run(gctx, cfg.Telegram.Timeout) })
	}

	g.Go(func() error {
		log.Info("HTTP server started", "addr", cfg.HTTP.Addr)
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if withPanel {
		g.Go(func() error {
			defer cancel()
			return panel.Run(gctx, panel.New(ledger, cfg.Panel.Refresh, i18n.LangEN, cfg.Location()))
		})
	}

	err = g.Wait()
	log.Info("graceful shutdown complete")
	return err
}

func openStores(ctx context.Context, cfg config.Config, log *slog.Logger) (payments.Store, dialog.Store, func(), error) {
	if cfg.Postgres.DSN == "" {
		log.Info("postgres dsn not set, journal kept in memory")
		return payments.NewMemoryRepo(), dialog.NewMemoryRepo(), func() {}, nil
	}

	if err := db.Migrate(cfg.Postgres.DSN); err != nil {
		return nil, nil, nil, err
	}
	log.Info("migrations applied")

	pool, err := db.Connect(ctx, cfg.Postgres.DSN)
	if err != nil {
		return nil, nil, nil, err
	}
	log.Info("db connected")
	return payments.NewRepo(pool), dialog.NewRepo(pool), pool.Close, nil
}

func openSource(ctx context.Context, cfg config.Config, log *slog.Logger) (ingest.Source, error) {
	switch cfg.Transport.Kind {
	case config.TransportSerial:
		src, err := serialport.Open(ctx, cfg.Serial.Port, cfg.Serial.Baud)
		if err != nil {
			log.Error("serial port unavailable", "port", cfg.Serial.Port, "available", serialport.Ports())
			return nil, err
		}
		log.Info("serial port opened", "port", cfg.Serial.Port, "baud", cfg.Serial.Baud)
		return src, nil
	case config.TransportMQTT:
		return mqttsrc.Dial(mqttsrc.Config{
			Broker:   cfg.MQTT.Broker,
			Topic:    cfg.MQTT.Topic,
			ClientID: cfg.MQTT.ClientID,
		}, log)
	case config.TransportStdin:
		return ingest.NewLineSource(os.Stdin), nil
	default:
		return nil, fmt.Errorf("unknown transport %q", cfg.Transport.Kind)
	}
}
