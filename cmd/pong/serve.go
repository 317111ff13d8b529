package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pong/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout time.Duration
	flagMetricsAddr string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the pong SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own session with the title menu and its own
match. Match history is stored per server and shared by all users.
New sessions are rate limited per remote address.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, uses server.host_key_path from the config

Examples:
  pong serve                           # Listen on the configured address
  pong serve --ssh :2222               # Listen on port 2222
  pong serve --metrics 127.0.0.1:9100  # Also serve /metrics and /healthz
  pong serve --db ./pong.db            # Use specific database

Users can connect with:
  ssh localhost -p 2222`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (generated if missing)")
	serveCmd.Flags().DurationVar(&flagIdleTimeout, "idle-timeout", 0, "Disconnect idle sessions after this long")
	serveCmd.Flags().StringVar(&flagMetricsAddr, "metrics", "", "Metrics listen address (empty disables)")
}

func runServe(cmd *cobra.Command, _ []string) {
	flags := cmd.Flags()
	if flags.Changed("ssh") {
		cfg.Server.Address = flagSSHAddr
	}
	if flags.Changed("host-key") {
		cfg.Server.HostKeyPath = flagHostKey
	}
	if flags.Changed("idle-timeout") {
		cfg.Server.IdleTimeout = flagIdleTimeout
	}
	if flags.Changed("metrics") {
		cfg.Server.MetricsAddress = flagMetricsAddr
	}

	store := openStore(logger)
	defer func() {
		if store != nil {
			store.Close()
		}
	}()

	server, err := tui.NewSSHServer(tui.SSHServerConfigFrom(cfg), store, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("press Ctrl+C to stop", "connect", "ssh -p <port> <host>")
	if err := server.ListenAndServe(ctx); err != nil {
		logger.Error("server stopped", "error", err)
		if store != nil {
			store.Close()
		}
		os.Exit(1)
	}
}
