package command

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/DrmagicE/gcolor/config"
	"github.com/DrmagicE/gcolor/pkg/pidfile"
	"github.com/DrmagicE/gcolor/server"
)

var (
	ConfigFile string
	logger     *zap.Logger
)

func must(err error) {
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// loadConfig parses ConfigFile, falling back to the default configuration if the file does not exist.
func loadConfig() (c config.Config, useDefault bool, err error) {
	c, err = config.ParseConfig(ConfigFile)
	if os.IsNotExist(err) {
		return config.DefaultConfig(), true, nil
	}
	return c, false, err
}

func installSignal(srv interface {
	Stop(ctx context.Context) error
}) {
	stopSignalCh := make(chan os.Signal, 1)
	signal.Notify(stopSignalCh, os.Interrupt, syscall.SIGTERM)
	<-stopSignalCh
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Stop(ctx); err != nil {
		logger.Error("stop error", zap.Error(err))
	}
}

// NewStartCmd creates a *cobra.Command object for start command.
func NewStartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start gcolord",
		Run: func(cmd *cobra.Command, args []string) {
			c, useDefault, err := loadConfig()
			must(err)
			err = c.Validate()
			must(err)
			pid, err := pidfile.New(c.PidFile)
			must(err)
			defer pid.Remove()
			l, err := c.GetLogger(c.Log)
			must(err)
			logger = l
			if useDefault {
				l.Warn("config file not exist, use default configration")
			}
			plugins, err := server.NewPlugins(c)
			must(err)
			s := server.New(
				server.WithConfig(c),
				server.WithPlugin(plugins...),
				server.WithLogger(l),
			)
			err = s.Run()
			must(err)
			installSignal(s)
		},
	}
	return cmd
}
