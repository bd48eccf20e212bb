package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/alibaba/longstack/pkg/console"
	"github.com/alibaba/longstack/pkg/stack"
)

// newRootCmd builds the base command with its subcommands.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "longstack",
		Short: "interactive bounded stack of integers",
		Long: "longstack reads one command per line and applies it to a single bounded stack.\n\nCommands:\n  " +
			strings.Join(console.Commands(), "\n  "),
		SilenceUsage: true,
		RunE:         run,
	}
	bindFlags(rootCmd.PersistentFlags())
	rootCmd.AddCommand(newVersionCmd(), newConfigCmd())
	return rootCmd
}

func run(cmd *cobra.Command, args []string) error {
	config, v, err := loadConfig(cmd.Flags())
	if err != nil {
		return err
	}
	logLevel, err := log.ParseLevel(config.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level: %s", config.LogLevel)
	}
	log.SetLevel(logLevel)
	logger := log.WithField("session", uuid.New().String())

	diag := cmd.ErrOrStderr()
	tracer := stack.NewTracer(diag)
	if config.Diagnostic {
		tracer.Enable()
	}
	watchDiagnostic(v, tracer, logger)

	reg := prometheus.NewRegistry()
	store := stack.NewStore(
		stack.WithTracer(tracer),
		stack.WithMetrics(stack.NewMetrics(reg)),
		stack.WithMaxCapacity(config.MaxCapacity),
		stack.WithPlainRenderer(stack.PlainRenderer{NegativeAsChar: config.NegativeAsChar}),
	)

	g, ctx := errgroup.WithContext(cmd.Context())
	ctx, stop := context.WithCancel(ctx)
	defer stop()

	if config.MetricsAddr != "" {
		metrics, err := listenMetrics(config.MetricsAddr, reg, logger)
		if err != nil {
			return err
		}
		g.Go(func() error {
			return metrics.Serve(ctx)
		})
	}

	logger.Infof("start with max capacity %d", config.MaxCapacity)
	g.Go(func() error {
		defer stop()
		return console.New(store, cmd.InOrStdin(), cmd.OutOrStdout(), diag, logger).Run(ctx)
	})
	return g.Wait()
}

// watchDiagnostic switches diagnostic mode on when the watched config file
// enables it. Diagnostic mode is never switched off again.
func watchDiagnostic(v *viper.Viper, tracer *stack.Tracer, logger *log.Entry) {
	if v.ConfigFileUsed() == "" {
		return
	}
	v.OnConfigChange(func(e fsnotify.Event) {
		logger.Debugf("config %s changed: %s", e.Name, e.Op)
		if v.GetBool("diagnostic") && !tracer.Enabled() {
			tracer.Enable()
			logger.Info("diagnostic mode enabled by config reload")
		}
	})
	v.WatchConfig()
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	err := newRootCmd().Execute()
	if err != nil {
		os.Exit(1)
	}
}
