// Package client provides commands that call a running team service over gRPC
package client

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/cosmo-api/internal/errors"
	"github.com/KirkDiggler/cosmo-api/internal/handlers/teams/v1alpha1"
)

var (
	// Connection flags
	serverAddr string
	timeout    time.Duration
)

// ClientCmd is the root command for all client commands
var ClientCmd = &cobra.Command{
	Use:   "client",
	Short: "Call a running team service",
	Long:  `Client commands make real gRPC requests against a cosmo-api server.`,
}

func init() {
	ClientCmd.PersistentFlags().StringVar(&serverAddr, "addr", "localhost:50051", "gRPC server address")
	ClientCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Request timeout")

	ClientCmd.AddCommand(createShareCmd)
	ClientCmd.AddCommand(getShareCmd)
	ClientCmd.AddCommand(synergiesCmd)
	ClientCmd.AddCommand(listCharactersCmd)
}

// createTeamClient creates a team service client
func createTeamClient() (v1alpha1.TeamServiceClient, func(), error) {
	conn, err := grpc.NewClient(serverAddr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to server: %w", err)
	}

	cleanup := func() {
		_ = conn.Close() // nolint:errcheck // safe to ignore in cleanup
	}

	return v1alpha1.NewTeamServiceClient(conn), cleanup, nil
}

// printStruct writes a response message as indented JSON
func printStruct(w io.Writer, s *structpb.Struct) error {
	out, err := protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to format response: %w", err)
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

// callError turns a gRPC status back into a coded error
func callError(operation string, err error) error {
	coded := errors.FromGRPCError(err)
	message := "failed to " + operation
	if errors.IsResourceExhausted(coded) || errors.IsUnavailable(coded) {
		message += " (server busy, try again)"
	}
	return errors.Wrap(coded, message)
}
