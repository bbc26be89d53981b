package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/cosmo-api/internal/engine/sharecode"
	"github.com/KirkDiggler/cosmo-api/internal/entities"
	"github.com/KirkDiggler/cosmo-api/internal/errors"
	"github.com/KirkDiggler/cosmo-api/internal/handlers/wire"
	"github.com/KirkDiggler/cosmo-api/internal/orchestrators/team"
	"github.com/KirkDiggler/cosmo-api/internal/repositories/roster"
)

var (
	tokenFile   string
	tokenStyle  string
	tokenRoster string
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Encode and decode inline share tokens offline",
}

var tokenEncodeCmd = &cobra.Command{
	Use:   "encode",
	Short: "Encode a team file into an inline token",
	Long:  `Read {"team":...,"name":...,"notes":...} from a file (or - for stdin) and print the inline token.`,
	RunE:  runTokenEncode,
}

var tokenDecodeCmd = &cobra.Command{
	Use:   "decode <token>",
	Short: "Decode an inline token into team JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenDecode,
}

func init() {
	tokenEncodeCmd.Flags().StringVar(&tokenFile, "file", "", "Team JSON file, - for stdin (required)")
	tokenEncodeCmd.Flags().StringVar(&tokenStyle, "style", "", "Token style: snapshot or reference, overrides the file")
	_ = tokenEncodeCmd.MarkFlagRequired("file") // nolint:errcheck // safe to ignore in init

	tokenDecodeCmd.Flags().StringVar(&tokenRoster, "roster", "", "Roster file to hydrate characters from")

	tokenCmd.AddCommand(tokenEncodeCmd)
	tokenCmd.AddCommand(tokenDecodeCmd)
}

func runTokenEncode(cmd *cobra.Command, _ []string) error {
	var r io.Reader = cmd.InOrStdin()
	if tokenFile != "-" {
		f, err := os.Open(tokenFile)
		if err != nil {
			return fmt.Errorf("failed to open team file: %w", err)
		}
		defer func() {
			_ = f.Close()
		}()
		r = f
	}

	token, err := encodeToken(r, tokenStyle)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}

func runTokenDecode(cmd *cobra.Command, args []string) error {
	var index *entities.RosterIndex
	if tokenRoster != "" {
		characters, err := roster.LoadFile(tokenRoster)
		if err != nil {
			return fmt.Errorf("failed to read roster: %w", err)
		}
		index = entities.NewRosterIndex(characters)
	}

	out, err := decodeToken(args[0], index)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}

// encodeToken reads a share request and packs it. style, when set,
// overrides the style in the request.
func encodeToken(r io.Reader, style string) (string, error) {
	var in wire.ShareRequest
	if err := json.NewDecoder(r).Decode(&in); err != nil {
		return "", errors.WrapWithCode(err, errors.CodeInvalidArgument, "invalid team file")
	}
	if style == "" {
		style = in.Style
	}

	parsed, err := sharecode.ParseStyle(style)
	if err != nil {
		return "", err
	}
	if in.Team == nil || in.Team.IsEmpty() {
		return "", errors.InvalidArgument("team has no characters")
	}
	if err := in.Team.Validate(); err != nil {
		return "", err
	}

	name := in.Name
	if name == "" {
		name = team.DefaultTeamName
	}
	return sharecode.Encode(sharecode.NewPayload(in.Team, name, in.Notes, parsed))
}

// decodeToken unpacks a token into indented team JSON
func decodeToken(token string, index *entities.RosterIndex) ([]byte, error) {
	payload, err := sharecode.Decode(token)
	if err != nil {
		return nil, err
	}

	return json.MarshalIndent(&wire.TeamResponse{
		Team:  sharecode.Hydrate(payload.Team, index),
		Name:  payload.Name,
		Notes: payload.Notes,
	}, "", "  ")
}
