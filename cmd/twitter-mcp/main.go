// Command twitter-mcp serves the Twitter tools over the Model Context Protocol.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	twitter "github.com/anatolykoptev/twitter-mcp"
	"github.com/anatolykoptev/twitter-mcp/tools"
)

var version = "dev"

type flags struct {
	configPath string
	envFile    string
	transport  string
	addr       string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	f := &flags{}
	cmd := &cobra.Command{
		Use:   "twitter-mcp",
		Short: "Twitter tools for MCP clients",
		Long: `twitter-mcp exposes get_home_timeline, create_tweet and reply_to_tweet
as MCP tools. Credentials are read from TWITTER_API_KEY, TWITTER_API_SECRET,
TWITTER_ACCESS_TOKEN, TWITTER_ACCESS_TOKEN_SECRET and TWITTER_BEARER_TOKEN.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := resolveConfig(cmd, f)
			if err != nil {
				return err
			}
			return run(cfg)
		},
	}

	fl := cmd.Flags()
	fl.StringVarP(&f.configPath, "config", "c", "", "TOML config file")
	fl.StringVar(&f.envFile, "env-file", ".env", "dotenv file to load if present")
	fl.StringVar(&f.transport, "transport", "", "transport: stdio or sse (default stdio)")
	fl.StringVar(&f.addr, "addr", "", "listen address for the sse transport (default :8080)")
	fl.StringVar(&f.logLevel, "log-level", "", "log level: debug, info, warn, error (default info)")
	return cmd
}

// resolveConfig loads the config file and applies flags set on the command line.
func resolveConfig(cmd *cobra.Command, f *flags) (*Config, error) {
	cfg, err := loadConfig(f.configPath)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("transport") {
		cfg.Server.Transport = f.transport
	}
	if cmd.Flags().Changed("addr") {
		cfg.Server.Addr = f.addr
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level = f.logLevel
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if err := setupLogger(cfg.Log.Level); err != nil {
		return nil, err
	}
	if err := loadEnvFile(f.envFile); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newServer builds the client and the MCP server with all tools registered.
func newServer(cfg *Config) (*server.MCPServer, error) {
	client, err := twitter.NewClient(cfg.clientConfig(twitter.CredentialsFromEnv()))
	if err != nil {
		return nil, fmt.Errorf("twitter client: %w", err)
	}

	s := server.NewMCPServer(cfg.Server.Name, version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)
	tools.Register(s, tools.NewHandlers(client))
	slog.Info("tools registered",
		slog.String("server", cfg.Server.Name),
		slog.String("auth", client.AuthMode()),
		slog.Int("count", len(tools.Definitions())))
	return s, nil
}

func run(cfg *Config) error {
	s, err := newServer(cfg)
	if err != nil {
		return err
	}

	switch cfg.Server.Transport {
	case transportSSE:
		slog.Info("serving sse", slog.String("addr", cfg.Server.Addr))
		return server.NewSSEServer(s).Start(cfg.Server.Addr)
	default:
		slog.Info("serving stdio")
		return server.ServeStdio(s)
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		slog.Error("twitter-mcp failed", slog.Any("error", err))
		os.Exit(1)
	}
}
