package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/shaharia-lab/bankalerts/internal/api"
	"github.com/shaharia-lab/bankalerts/internal/build"
	"github.com/shaharia-lab/bankalerts/internal/config"
	"github.com/shaharia-lab/bankalerts/internal/logger"
	"github.com/shaharia-lab/bankalerts/internal/metrics"
	"github.com/shaharia-lab/bankalerts/internal/notification"
	"github.com/shaharia-lab/bankalerts/internal/server"
	"github.com/shaharia-lab/bankalerts/internal/service"
)

// NewServeCmd returns the "serve" subcommand that starts the HTTP server.
// envFile points at the root command's --env-file flag value.
func NewServeCmd(envFile *string) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the notification API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(*envFile)
			if err != nil {
				return err
			}
			// CLI flags override env config.
			if cmd.Flags().Changed("port") {
				cfg.Port = port
			}
			return runServe(cfg)
		},
	}

	cmd.Flags().IntVar(&port, "port", 8990, "HTTP server port (overrides PORT env var)")
	return cmd
}

func runServe(cfg *config.AppConfig) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	sysLogger, closer, err := logger.NewSystemLogger(cfg.LogDir, cfg.SlogLevel())
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer func() { _ = closer.Close() }()

	sysLogger.Info("bankalerts starting",
		slog.Int("port", cfg.Port),
		slog.Bool("mail_mock_delivery", cfg.MailMockDelivery),
		slog.Bool("sms_mock_delivery", cfg.SMSMockDelivery),
		slog.String("high_value_threshold", cfg.HighValueThreshold.String()),
		slog.String("version", build.Version),
		slog.String("commit", build.CommitSHA),
		slog.String("build_date", build.BuildDate),
	)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	meterProvider, err := metrics.NewMeterProvider(reg)
	if err != nil {
		return err
	}
	defer func() { _ = meterProvider.Shutdown(context.Background()) }()

	emailDispatcher, smsDispatcher := newDispatchers(cfg, meterProvider, sysLogger)
	notificationSvc := service.NewNotificationService(
		emailDispatcher,
		smsDispatcher,
		cfg.HighValueThreshold,
		metrics.NewRecorder(reg),
		sysLogger,
	)

	apiSrv := api.New(notificationSvc, sysLogger)
	srv := server.New(apiSrv, server.Options{
		Port:          cfg.Port,
		CORSOrigins:   cfg.CORSOrigins,
		Gatherer:      reg,
		MeterProvider: meterProvider.Provider(),
	}, sysLogger)

	sysLogger.Info("server ready", "url", fmt.Sprintf("http://localhost:%d", cfg.Port))
	return srv.Run(ctx)
}

// newDispatchers builds the channel dispatchers. Live transports are only
// constructed when mock delivery is off for that channel.
func newDispatchers(cfg *config.AppConfig, mp *metrics.MeterProvider, l *slog.Logger) (*notification.EmailDispatcher, *notification.SMSDispatcher) {
	var mailer notification.Mailer
	if !cfg.MailMockDelivery {
		mailer = notification.NewSMTPMailer(cfg.SMTP())
	}

	var gateway notification.SMSGateway
	if !cfg.SMSMockDelivery {
		client := &http.Client{
			Timeout:   10 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport, otelhttp.WithMeterProvider(mp.Provider())),
		}
		gateway = notification.NewHTTPGateway(cfg.SMSBaseURL, client)
	}

	return notification.NewEmailDispatcher(mailer, cfg.EmailOptions(), l),
		notification.NewSMSDispatcher(gateway, cfg.SMSOptions(), l)
}
