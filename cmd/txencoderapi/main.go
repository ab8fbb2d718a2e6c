package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"evm_tx_encoder/internal/adapters/restapi"
	"evm_tx_encoder/internal/config"
	"evm_tx_encoder/internal/core/application"
	"evm_tx_encoder/internal/logger"
	"evm_tx_encoder/pkg/txencoder"
)

var (
	configFlag = &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to YAML configuration file (default: " + config.DefaultConfigFilePath + ")",
		EnvVars: []string{"TXENCODER_CONFIG"},
	}
	logLevelFlag = &cli.StringFlag{
		Name:  "log-level",
		Usage: "Override logger.level (debug, info, warn, error)",
	}
	signatureFlags = []cli.Flag{
		&cli.StringFlag{Name: "v", Usage: "Signature recovery value, decimal or 0x-hex"},
		&cli.StringFlag{Name: "r", Usage: "Signature r, hex"},
		&cli.StringFlag{Name: "s", Usage: "Signature s, hex"},
	}
)

// main is entry point of application.
func main() {
	app := &cli.App{
		Name:      "txencoderapi",
		Usage:     "Build and encode EIP-1559 transactions",
		UsageText: "txencoderapi [command] [flags]",
		Flags:     []cli.Flag{configFlag, logLevelFlag},
		Action:    runServer,
		Commands: []*cli.Command{
			{
				Name:      "import",
				Usage:     "Encode a transaction from a JSON file of string fields and print the result",
				ArgsUsage: "<file|->",
				Flags:     signatureFlags,
				Action:    runImport,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "txencoderapi: %v\n", err)
		os.Exit(1)
	}
}

// setup loads the configuration, applies flag overrides and builds the logger and service.
func setup(cliCtx *cli.Context, out io.Writer) (*config.Config, logger.AppLogger, *application.EncoderService, error) {
	cfg, err := config.LoadConfig(cliCtx.String(configFlag.Name))
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if cliCtx.IsSet(logLevelFlag.Name) {
		cfg.Logger.Level = config.LogLevel(strings.ToLower(cliCtx.String(logLevelFlag.Name)))
		if err := cfg.Validate(); err != nil {
			return nil, nil, nil, fmt.Errorf("invalid --%s: %w", logLevelFlag.Name, err)
		}
	}

	appLogger, err := logger.NewAppLogger(cfg.Logger, out)
	if err != nil {
		return nil, nil, nil, err
	}

	service, err := application.NewEncoderService(appLogger, cfg.Encoder)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to create encoder service: %w", err)
	}
	return cfg, appLogger, service, nil
}

func runServer(cliCtx *cli.Context) error {
	cfg, appLogger, service, err := setup(cliCtx, os.Stdout)
	if err != nil {
		return err
	}

	configFile := cliCtx.String(configFlag.Name)
	if configFile == "" {
		configFile = config.DefaultConfigFilePath + " (default)"
	}
	appLogger.Info("Configuration loaded successfully", "configFile", configFile)

	apiServer, err := restapi.NewServer(service, appLogger, &cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to create API server: %w", err)
	}

	if err := gracefulShutdown(cliCtx.Context, appLogger, apiServer); err != nil {
		return err
	}
	appLogger.Info("Application shut down gracefully.")
	return nil
}

// gracefulShutdown runs the API server until it fails or an OS signal arrives, then stops it.
func gracefulShutdown(parent context.Context, appLogger logger.AppLogger, apiServer *restapi.Server) error {
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errChan := make(chan error, 1)
	go func() {
		if errServ := apiServer.Start(); errServ != nil && !errors.Is(errServ, http.ErrServerClosed) {
			errChan <- fmt.Errorf("http server error: %w", errServ)
		}
	}()

	var runErr error
	select {
	case runErr = <-errChan:
		appLogger.Error("Shutting down due to error", "error", runErr)
	case <-ctx.Done():
		appLogger.Info("Shutting down due to OS signal...")
	}

	httpShutdownCtx, cancelHTTPShutdown := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelHTTPShutdown()

	if err := apiServer.Shutdown(httpShutdownCtx); err != nil {
		appLogger.Error("HTTP server shutdown error", "error", err)
	}
	return runErr
}

func runImport(cliCtx *cli.Context) error {
	// Logs go to stderr so stdout carries only the JSON result.
	_, _, service, err := setup(cliCtx, os.Stderr)
	if err != nil {
		return err
	}

	if cliCtx.NArg() != 1 {
		return errors.New("import expects exactly one argument: a JSON file path or '-' for stdin")
	}
	src := cliCtx.Args().First()

	var raw []byte
	if src == "-" {
		raw, err = io.ReadAll(os.Stdin)
	} else {
		raw, err = os.ReadFile(src)
	}
	if err != nil {
		return fmt.Errorf("failed to read '%s': %w", src, err)
	}

	var sig *txencoder.SignatureRequest
	if cliCtx.IsSet("v") || cliCtx.IsSet("r") || cliCtx.IsSet("s") {
		sig = &txencoder.SignatureRequest{V: cliCtx.String("v"), R: cliCtx.String("r"), S: cliCtx.String("s")}
	}

	resp, err := service.Import(cliCtx.Context, raw, sig)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cliCtx.App.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}
