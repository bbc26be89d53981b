package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/cosmo-api/internal/config"
	"github.com/KirkDiggler/cosmo-api/internal/redis"
	"github.com/KirkDiggler/cosmo-api/internal/repositories/shares"
)

var auditFix bool

var sharesCmd = &cobra.Command{
	Use:   "shares",
	Short: "Maintain stored shares",
}

var sharesAuditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Find share records that are unreadable or never expire",
	Long:  `Scan the share keys in Redis. With --fix, unreadable records are deleted and records without a TTL get one from their stored expiry.`,
	RunE:  runSharesAudit,
}

func init() {
	sharesAuditCmd.Flags().BoolVar(&auditFix, "fix", false, "Delete unreadable records and restore missing expiries")
	sharesAuditCmd.Flags().StringVar(&envFile, "env-file", "", "Env file to load before the environment")

	sharesCmd.AddCommand(sharesAuditCmd)
}

func runSharesAudit(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var files []string
	if envFile != "" {
		files = append(files, envFile)
	}
	cfg, err := config.Load(files...)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	client, err := redis.New(cfg.RedisConfig())
	if err != nil {
		return fmt.Errorf("failed to create redis client: %w", err)
	}
	defer func() {
		_ = client.Close()
	}()

	report, err := shares.Audit(ctx, shares.AuditInput{Client: client, Fix: auditFix})
	if err != nil {
		return fmt.Errorf("audit failed: %w", err)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Checked %d shares\n", report.Checked)
	for _, key := range report.Corrupt {
		fmt.Fprintf(w, "  unreadable: %s\n", key)
	}
	for _, key := range report.NoExpiry {
		fmt.Fprintf(w, "  no expiry:  %s\n", key)
	}
	if auditFix {
		fmt.Fprintf(w, "Fixed %d shares\n", report.Fixed)
	}
	return nil
}
