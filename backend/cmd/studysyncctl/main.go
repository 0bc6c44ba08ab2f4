// ============================================================================
// backend/cmd/studysyncctl/main.go
// Operator CLI: grade lookups, calendar, CSV exports and dev tokens
// ============================================================================

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"studysync/backend/internal/analytics"
	"studysync/backend/internal/calendar"
	"studysync/backend/internal/gateway"
	"studysync/backend/internal/shared"
	"studysync/backend/internal/store"
)

var (
	envFile    string
	remoteAddr string
	timeout    time.Duration

	config *shared.ServiceConfig
)

var rootCmd = &cobra.Command{
	Use:   "studysyncctl",
	Short: "Inspect and export StudySync data",
	Long: `studysyncctl works against the configured store directly, or against a
running API's analytics gRPC endpoint when --addr is given.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := shared.LoadEnv(envFile); err != nil {
			slog.Debug("env file not loaded", "file", envFile)
		}
		cfg, err := shared.LoadServiceConfig("studysyncctl")
		if err != nil {
			return fmt.Errorf("load configuration: %w", err)
		}
		shared.SetupLogger(cfg)
		config = cfg
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env", ".env", "environment file to load")
	rootCmd.PersistentFlags().StringVar(&remoteAddr, "addr", "", "analytics gRPC address (host:port); empty uses the local store")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "overall command timeout")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// withServices opens the configured store for the duration of fn
func withServices(ctx context.Context, fn func(ctx context.Context, svcs *gateway.Services) error) error {
	st, err := store.Open(ctx, config)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := st.Close(closeCtx); err != nil {
			slog.Error("error closing store", "error", err)
		}
	}()
	return fn(ctx, gateway.NewServices(st, config, calendar.SystemClock{}))
}

// withRemote dials the analytics service at --addr
func withRemote(fn func(client *analytics.Client) error) error {
	conn, err := grpc.NewClient(remoteAddr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return fmt.Errorf("dial %s: %w", remoteAddr, err)
	}
	defer conn.Close()
	return fn(analytics.NewClient(conn))
}

func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), timeout)
}
