package app

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Astemirdum/lumina-library/library/config"
	"github.com/Astemirdum/lumina-library/library/internal/assistant"
	"github.com/Astemirdum/lumina-library/library/internal/events"
	"github.com/Astemirdum/lumina-library/library/internal/handler"
	"github.com/Astemirdum/lumina-library/library/internal/repository"
	"github.com/Astemirdum/lumina-library/library/internal/server"
	"github.com/Astemirdum/lumina-library/library/internal/service"
	"github.com/Astemirdum/lumina-library/pkg/kafka"
	"github.com/Astemirdum/lumina-library/pkg/logger"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Run serves the ledger until ctx is done or the process gets SIGINT/SIGTERM.
func Run(ctx context.Context, cfg *config.Config) error {
	log := logger.NewLogger(cfg.Log, "ledger")
	defer log.Sync() //nolint:errcheck

	seed, err := repository.LoadSeed(cfg.Ledger.SeedFile)
	if err != nil {
		return errors.Wrap(err, "load seed")
	}
	repo, err := repository.NewRepository(seed, log)
	if err != nil {
		return errors.Wrap(err, "repo")
	}

	eventLog, closeEvents, err := newEventLog(cfg.Kafka, log)
	if err != nil {
		return err
	}
	defer closeEvents()
	svc := service.NewService(repo, log, service.WithEventLog(eventLog))

	gateway, err := newGateway(ctx, cfg.Assistant, log)
	if err != nil {
		return err
	}
	h := handler.New(svc, assistant.New(gateway, svc, log), log)
	srv := server.NewServer(cfg.Server, h.NewRouter())

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("http server start ON: ",
			zap.String("addr",
				net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)))
		return srv.Run()
	})
	g.Go(func() error {
		return service.NewSweeper(svc, log).Run(gctx, cfg.Ledger.SweepInterval)
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Debug("Graceful shutdown", zap.Error(context.Cause(gctx)))

		closeCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
		defer cancel()
		return srv.Stop(closeCtx)
	})

	err = g.Wait()
	log.Info("Graceful shutdown finished")
	return err
}

func newEventLog(cfg kafka.Config, log *zap.Logger) (service.EventLog, func(), error) {
	if !cfg.Enabled() {
		log.Info("kafka disabled, loan events are not published")
		return events.NewNopLog(log), func() {}, nil
	}
	producer, err := kafka.NewProducer(cfg)
	if err != nil {
		return nil, nil, errors.Wrap(err, "kafka.NewProducer")
	}
	closeFn := func() {
		if err := producer.Close(); err != nil {
			log.Error("producer.Close", zap.Error(err))
		}
	}
	return events.NewLoanLog(producer, kafka.LedgerTopic), closeFn, nil
}

func newGateway(ctx context.Context, cfg assistant.Config, log *zap.Logger) (assistant.Gateway, error) {
	if !cfg.Enabled() {
		log.Info("GEMINI_API_KEY is not set, assistant answers with fallbacks")
		return assistant.NewDisabledGateway(), nil
	}
	gw, err := assistant.NewGenAIGateway(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	return gw, nil
}
