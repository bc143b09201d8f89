package app

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Astemirdum/article-rating/pkg/logger"
	md "github.com/Astemirdum/article-rating/pkg/middleware"
	"github.com/Astemirdum/article-rating/pkg/postgres"
	"github.com/Astemirdum/article-rating/rating/config"
	"github.com/Astemirdum/article-rating/rating/internal/handler"
	"github.com/Astemirdum/article-rating/rating/internal/repository"
	"github.com/Astemirdum/article-rating/rating/internal/server"
	"github.com/Astemirdum/article-rating/rating/internal/service"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

func Run(cfg *config.Config) error {
	log, closeLog, err := logger.NewLogger(cfg.Log, "rating")
	if err != nil {
		return errors.Wrap(err, "logger")
	}
	defer closeLog()

	repo, err := repository.NewRepository(postgres.NewConnector(cfg.Database), log)
	if err != nil {
		return errors.Wrap(err, "repo")
	}
	svc := service.NewService(repo, log)
	h := handler.New(svc, log,
		handler.WithMetrics(md.NewMetrics()),
		handler.WithRateLimit(cfg.RateLimit),
	)

	srv := server.NewServer(cfg.Server, h.NewRouter())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("http server start ON: ",
			zap.String("addr",
				net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)))
		return errors.Wrap(srv.Run(), "server run")
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Debug("Graceful shutdown")

		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return errors.Wrap(srv.Stop(closeCtx), "srv.Stop")
	})

	if err := g.Wait(); err != nil {
		return err
	}
	log.Info("Graceful shutdown finished")
	return nil
}
