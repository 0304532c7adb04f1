package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/foomo/confluence-gateway/config"
	"github.com/foomo/confluence-gateway/confluence"
	"github.com/foomo/confluence-gateway/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		addr       string
	)

	cmd := &cobra.Command{
		Use:          "confluence-gateway",
		Short:        "Scoped HTTP gateway for a Confluence space",
		Long:         "Proxies page reads, writes, search and comments against a Confluence space,\nrestricting all writes to the subtree below the configured scope root.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(configPath, addr)
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to a YAML config file (environment variables override it)")
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")

	cmd.AddCommand(newVersionCmd())
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("confluence-gateway %s\n", server.Version)
		},
	}
}

func run(configPath, addr string) error {
	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if addr != "" {
		cfg.Addr = addr
	}

	service := confluence.New(confluence.Settings{
		BaseURL:   cfg.BaseURL,
		Username:  cfg.Username,
		APIToken:  cfg.APIToken,
		SpaceKey:  cfg.SpaceKey,
		ScopeRoot: cfg.ScopeRoot,
	}, nil, logger)

	srv := server.New(service, logger)

	logger.Info("starting confluence gateway",
		zap.String("addr", cfg.Addr),
		zap.String("upstream", cfg.BaseURL),
		zap.String("space", cfg.SpaceKey),
		zap.String("scopeRoot", cfg.ScopeRoot),
	)
	return http.ListenAndServe(cfg.Addr, srv.Router())
}
