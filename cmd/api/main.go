package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/feral-file/ff-staking-api/internal/adapter"
	"github.com/feral-file/ff-staking-api/internal/api/middleware"
	"github.com/feral-file/ff-staking-api/internal/api/server"
	"github.com/feral-file/ff-staking-api/internal/api/shared/executor"
	"github.com/feral-file/ff-staking-api/internal/config"
	"github.com/feral-file/ff-staking-api/internal/logger"
	"github.com/feral-file/ff-staking-api/internal/providers/ethereum"
	"github.com/feral-file/ff-staking-api/internal/providers/explorer"
	"github.com/feral-file/ff-staking-api/internal/ratelimit"
	"github.com/feral-file/ff-staking-api/internal/staking"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadAPIConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "staking-api",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Feral File Staking API")

	// Initialize adapters
	clock := adapter.NewClock()
	jsonAdapter := adapter.NewJSON()
	httpClient := adapter.NewHTTPClient(cfg.Explorer.Timeout, cfg.Explorer.MaxRetryTime)

	// Connect to the chain node
	ethClient, err := adapter.NewEthClientDialer().Dial(ctx, cfg.Chain.RPCURL)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to RPC node", zap.Error(err))
	}
	defer ethClient.Close()

	chainID, err := cfg.Chain.ChainID.ChainID()
	if err != nil {
		logger.FatalCtx(ctx, "Failed to resolve chain id", zap.Error(err), zap.String("chain", string(cfg.Chain.ChainID)))
	}
	logger.InfoCtx(ctx, "Connected to RPC node", zap.String("chain", string(cfg.Chain.ChainID)))

	// Load the signer used by the write passthroughs
	var signer *ethereum.Signer
	if cfg.Signer.PrivateKey != "" {
		signer, err = ethereum.NewSigner(cfg.Signer.PrivateKey)
		if err != nil {
			logger.FatalCtx(ctx, "Failed to load signer key", zap.Error(err))
		}
		logger.InfoCtx(ctx, "Loaded signer", zap.String("address", signer.Address().Hex()))
	} else {
		logger.WarnCtx(ctx, "Signer key not configured, write routes will be unavailable")
	}

	authConfig := middleware.AuthConfig{
		JWTPublicKey: cfg.Auth.JWTPublicKey,
		APIKeys:      cfg.Auth.APIKeys,
	}
	if signer != nil && !authConfig.Enabled() {
		logger.WarnCtx(ctx, "No credentials configured, write routes will reject every request")
	}

	// Initialize providers
	contractClient := ethereum.NewClient(ethereum.Config{
		NFTAddress:          cfg.Contracts.NFTAddress,
		StakingAddress:      cfg.Contracts.StakingAddress,
		ChainID:             chainID,
		ReceiptPollInterval: cfg.Chain.ReceiptPollInterval,
	}, ethClient, clock, signer)
	explorerClient := explorer.NewClient(explorer.Config{
		APIURL:  cfg.Explorer.APIURL,
		APIKey:  cfg.Explorer.APIKey,
		ChainID: cfg.Explorer.ChainID,
	}, httpClient, jsonAdapter, ratelimit.NewLimiter("explorer", cfg.Explorer.RateLimit, 1))

	// Initialize staking services
	ownershipReader := staking.NewOwnershipReader(contractClient)
	historyReader := staking.NewHistoryReader(explorerClient, cfg.Contracts.StakingAddress)
	statsAggregator := staking.NewStatsAggregator(ownershipReader, historyReader, clock)

	exec := executor.NewExecutor(statsAggregator, ownershipReader, historyReader, contractClient)

	srv := server.New(server.Config{
		Debug:        cfg.Debug,
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
		Auth:         authConfig,
	}, exec)

	// Start server in a goroutine
	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil {
			errCh <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", "server"))
		cancel()
	}

	// ctx is canceled at this point
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.FatalCtx(shutdownCtx, "Server forced to shutdown", zap.Error(err))
	}

	logger.Info("API server stopped")
}
