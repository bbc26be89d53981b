package client

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/cosmo-api/internal/handlers/teams/v1alpha1"
	"github.com/KirkDiggler/cosmo-api/internal/handlers/wire"
)

var (
	teamFile  string
	shareCode string
	locale    string
)

var createShareCmd = &cobra.Command{
	Use:   "create-share",
	Short: "Publish a team under a short code",
	Long:  `Read {"team":...,"name":...,"notes":...} from a file and store it as a share.`,
	RunE:  runCreateShare,
}

var getShareCmd = &cobra.Command{
	Use:   "get-share",
	Short: "Fetch a shared team by short code",
	RunE:  runGetShare,
}

var synergiesCmd = &cobra.Command{
	Use:   "synergies",
	Short: "List the bonds and combine skills a team activates",
	RunE:  runSynergies,
}

var listCharactersCmd = &cobra.Command{
	Use:   "list-characters",
	Short: "List the roster",
	RunE:  runListCharacters,
}

func init() {
	createShareCmd.Flags().StringVar(&teamFile, "file", "", "Team JSON file (required)")
	_ = createShareCmd.MarkFlagRequired("file") // nolint:errcheck // safe to ignore in init

	getShareCmd.Flags().StringVar(&shareCode, "code", "", "Short code (required)")
	_ = getShareCmd.MarkFlagRequired("code") // nolint:errcheck // safe to ignore in init

	synergiesCmd.Flags().StringVar(&teamFile, "file", "", "Team JSON file (required)")
	synergiesCmd.Flags().StringVar(&locale, "locale", "en", "Display language")
	_ = synergiesCmd.MarkFlagRequired("file") // nolint:errcheck // safe to ignore in init
}

func readShareRequest(path string) (*wire.ShareRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read team file: %w", err)
	}
	var req wire.ShareRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse team file: %w", err)
	}
	return &req, nil
}

func runCreateShare(cmd *cobra.Command, _ []string) error {
	req, err := readShareRequest(teamFile)
	if err != nil {
		return err
	}
	msg, err := v1alpha1.ToStruct(req)
	if err != nil {
		return err
	}

	client, cleanup, err := createTeamClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	resp, err := client.CreateShare(ctx, msg)
	if err != nil {
		return callError("create share", err)
	}

	var out wire.CreateShareResponse
	if err := v1alpha1.FromStruct(resp, &out); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Short code: %s\nExpires:    %s\n", out.ShortCode, out.ExpiresAt.Format("2006-01-02 15:04 MST"))
	return nil
}

func runGetShare(cmd *cobra.Command, _ []string) error {
	msg, err := v1alpha1.ToStruct(&wire.GetShareRequest{Code: shareCode})
	if err != nil {
		return err
	}

	client, cleanup, err := createTeamClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	resp, err := client.GetShare(ctx, msg)
	if err != nil {
		return callError("get share", err)
	}
	return printStruct(cmd.OutOrStdout(), resp)
}

func runSynergies(cmd *cobra.Command, _ []string) error {
	req, err := readShareRequest(teamFile)
	if err != nil {
		return err
	}
	msg, err := v1alpha1.ToStruct(&wire.SynergiesRequest{Team: req.Team, Locale: locale})
	if err != nil {
		return err
	}

	client, cleanup, err := createTeamClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	resp, err := client.ResolveSynergies(ctx, msg)
	if err != nil {
		return callError("resolve synergies", err)
	}

	var out wire.SynergiesResponse
	if err := v1alpha1.FromStruct(resp, &out); err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Bonds (%d):\n", len(out.Bonds))
	for _, b := range out.Bonds {
		fmt.Fprintf(w, "  - %s [%s]: %s\n", b.Name, b.SourceName, b.Effect)
	}
	fmt.Fprintf(w, "Combine skills (%d):\n", len(out.CombineSkills))
	for _, c := range out.CombineSkills {
		fmt.Fprintf(w, "  - %s [%s]: %s\n", c.Name, c.SourceName, c.Description)
	}
	return nil
}

func runListCharacters(cmd *cobra.Command, _ []string) error {
	client, cleanup, err := createTeamClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	resp, err := client.ListCharacters(ctx, &structpb.Struct{})
	if err != nil {
		return callError("list characters", err)
	}

	var out wire.CharactersResponse
	if err := v1alpha1.FromStruct(resp, &out); err != nil {
		return err
	}
	for _, c := range out.Characters {
		fmt.Fprintf(cmd.OutOrStdout(), "%-24s %s\n", c.ID, c.Name.Localize("en"))
	}
	return nil
}
