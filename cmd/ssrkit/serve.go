package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/3-lines-studio/ssrkit/internal/adapters/fs"
	"github.com/3-lines-studio/ssrkit/internal/adapters/process"
	"github.com/3-lines-studio/ssrkit/internal/config"
	"github.com/3-lines-studio/ssrkit/internal/core"
	"github.com/3-lines-studio/ssrkit/internal/logging"
	"github.com/3-lines-studio/ssrkit/internal/server"
	"github.com/3-lines-studio/ssrkit/internal/usecase"
	"github.com/3-lines-studio/ssrkit/internal/version"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Load the build artifacts and serve rendered pages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd)
		},
	}
}

func runServe(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "failed to load config: %v\n", err)
		return err
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "%v\n", err)
		return err
	}
	defer func() { _ = logger.Sync() }()

	v := version.Get()
	logger.Info("starting ssrkit",
		zap.String("version", v.Version),
		zap.String("commit", v.Commit),
		zap.String("env", cfg.AppEnv),
	)

	policy, err := core.ParseNotFoundPolicy(cfg.NotFoundMode)
	if err != nil {
		logger.Error("invalid not-found mode", zap.Error(err))
		return err
	}

	artifacts, err := usecase.LoadArtifacts(fs.NewOSFileSystem(""), artifactPaths(cfg))
	if err != nil {
		logger.Error("failed to load build artifacts", zap.Error(err))
		return err
	}

	logger.Info("build artifacts loaded",
		zap.String("entry", artifacts.Bundle.Entry),
		zap.Int("bundle_files", artifacts.Bundle.FileCount()),
		zap.Bool("client_manifest", artifacts.HasManifest()),
	)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	renderer, err := process.NewRenderer(ctx, artifacts, process.Options{
		NodeBinary:     cfg.NodeBinary,
		WorkDir:        cfg.RendererWorkDir,
		StartupTimeout: cfg.RendererStartupTimeout,
		Logger:         logger.Named("renderer"),
	})
	if err != nil {
		logger.Error("failed to start renderer", zap.Error(err))
		return err
	}
	defer func() {
		if err := renderer.Stop(); err != nil {
			logger.Warn("failed to stop renderer", zap.Error(err))
		}
	}()

	service := usecase.NewPageService(renderer, usecase.PageServiceOptions{
		Title:               cfg.PageTitle,
		RenderTimeout:       cfg.RenderTimeout,
		SlowRenderThreshold: cfg.SlowRenderThreshold,
		MinifyHTML:          cfg.MinifyHTML,
		Logger:              logger,
	})

	srv := server.New(service, server.Options{
		Addr:            cfg.Addr(),
		AdminAddr:       cfg.AdminAddr,
		DistDir:         cfg.DistDir,
		NotFoundPolicy:  policy,
		ShutdownTimeout: cfg.ShutdownTimeout,
		Debug:           !cfg.IsProduction(),
		Process:         renderer,
		Logger:          logger,
	})

	if err := srv.Run(ctx); err != nil {
		logger.Error("server error", zap.Error(err))
		return err
	}

	logger.Info("server stopped")
	return nil
}

func artifactPaths(cfg *config.Config) usecase.ArtifactPaths {
	return usecase.ArtifactPaths{
		ServerBundle:   cfg.ServerBundlePath,
		Template:       cfg.TemplatePath,
		ClientManifest: cfg.ClientManifestPath,
	}
}
