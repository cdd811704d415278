package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"exifmgr/internal/app"
	"exifmgr/internal/config"
	appErrors "exifmgr/internal/errors"
	"exifmgr/internal/infra/exiftool"
	"exifmgr/internal/infra/fs"
	"exifmgr/internal/logging"
	"exifmgr/internal/presentation"
)

// env is built once the global flags are parsed and shared by all subcommands.
type env struct {
	cfg        config.Config
	logger     logging.Logger
	filesystem fs.OSFS
	manager    *app.Manager
	printer    presentation.Printer
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		exitWithError(err)
	}
}

func newRootCmd() *cobra.Command {
	var flags config.Config
	e := &env{}

	root := &cobra.Command{
		Use:           "exifmgr",
		Short:         "Read and write image metadata through exiftool",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Resolve(cmd.Flags(), flags)
			if err != nil {
				return appErrors.Wrap(appErrors.InvalidConfig, "config", flags.File, err)
			}
			return e.init(cfg)
		},
	}
	config.BindFlags(root.PersistentFlags(), &flags)

	root.AddCommand(
		newReadCmd(e),
		newWriteCmd(e),
		newGPSCmd(e),
		newScanCmd(e),
	)
	return root
}

func (e *env) init(cfg config.Config) error {
	toolPath, err := cfg.LookupTool()
	if err != nil {
		return appErrors.Wrap(appErrors.InvalidConfig, "exiftool", cfg.ExifToolPath, err)
	}

	e.cfg = cfg
	e.logger = logging.New(os.Stderr, cfg.Verbose)
	e.filesystem = fs.OSFS{}
	runner := exiftool.Runner{
		Path:    toolPath,
		Timeout: cfg.Timeout,
		Logger:  e.logger,
	}
	e.manager = app.NewManager(exiftool.New(runner), e.filesystem, e.logger)
	e.printer = presentation.Printer{Writer: os.Stdout, Verbose: cfg.Verbose}

	e.logger.Verbosef("Using %s (timeout %s)", toolPath, cfg.Timeout)
	return nil
}

func exitWithError(err error) {
	fmt.Fprintln(os.Stderr, appErrors.UserMessage(err))
	os.Exit(1)
}
