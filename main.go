// Package main is the entry point for the determine-image-tag CLI.
// determine-image-tag computes a deterministic image tag from the local Git
// repository context and the configured inputs, printing the tag to stdout
// and the named outputs to the workflow output file.
package main

import (
	"os"

	"github.com/MyCarrier-DevOps/goLibMyCarrier/logger"

	"github.com/skyhook-io/determine-image-tag/cmd"
	"github.com/skyhook-io/determine-image-tag/internal/adapters/git"
	logadapter "github.com/skyhook-io/determine-image-tag/internal/adapters/logger"
	"github.com/skyhook-io/determine-image-tag/internal/adapters/output"
	"github.com/skyhook-io/determine-image-tag/internal/domain"
	"github.com/skyhook-io/determine-image-tag/internal/infrastructure/config"
	"github.com/skyhook-io/determine-image-tag/internal/usecases"
)

func main() {
	// Create a single shared logger instance for the application
	zapLog := logger.NewZapLoggerFromConfig()
	adapter := logadapter.NewZapAdapter(zapLog)

	// Wire up production dependencies
	deps := &cmd.Dependencies{
		LoggerFactory: func() cmd.Logger {
			return adapter
		},

		ConfigLoader: func() (*cmd.AppConfig, error) {
			cfg, err := config.Load()
			if err != nil {
				return nil, err
			}
			return &cmd.AppConfig{
				Request:    cfg.Request,
				LogLevel:   cfg.LogLevel,
				LogAppName: cfg.LogAppName,
			}, nil
		},

		SourceControlFactory: func(path string, _ cmd.Logger) (domain.SourceControl, error) {
			return git.NewGoGitRepository(path, adapter)
		},

		ComputerFactory: func(source domain.SourceControl, _ cmd.Logger) domain.Computer {
			return usecases.NewTagComputer(source, adapter)
		},

		OutputWriterFactory: func() domain.OutputWriter {
			return output.NewWriter()
		},

		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}

	cmd.SetDefaultDependencies(deps)
	cmd.Execute()
}
