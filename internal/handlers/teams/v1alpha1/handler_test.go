package v1alpha1_test

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/cosmo-api/internal/engine/sharecode"
	"github.com/KirkDiggler/cosmo-api/internal/engine/synergy"
	"github.com/KirkDiggler/cosmo-api/internal/entities"
	"github.com/KirkDiggler/cosmo-api/internal/errors"
	v1alpha1 "github.com/KirkDiggler/cosmo-api/internal/handlers/teams/v1alpha1"
	"github.com/KirkDiggler/cosmo-api/internal/handlers/wire"
	"github.com/KirkDiggler/cosmo-api/internal/orchestrators/team"
	teammock "github.com/KirkDiggler/cosmo-api/internal/orchestrators/team/mock"
	"github.com/KirkDiggler/cosmo-api/internal/repositories/shares"
)

type HandlerTestSuite struct {
	suite.Suite

	ctrl        *gomock.Controller
	mockService *teammock.MockService
	handler     *v1alpha1.Handler
	ctx         context.Context

	seiya *entities.CharacterRecord
	team  *entities.TeamComposition
}

func (s *HandlerTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockService = teammock.NewMockService(s.ctrl)
	s.ctx = context.Background()

	handler, err := v1alpha1.NewHandler(&v1alpha1.HandlerConfig{TeamService: s.mockService})
	s.Require().NoError(err)
	s.handler = handler

	s.seiya = &entities.CharacterRecord{ID: "seiya", Name: entities.EN("Pegasus Seiya")}
	s.team = &entities.TeamComposition{Front1: &entities.SlotEntry{Character: s.seiya}}
}

func (s *HandlerTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *HandlerTestSuite) request(v interface{}) *structpb.Struct {
	req, err := v1alpha1.ToStruct(v)
	s.Require().NoError(err)
	return req
}

func (s *HandlerTestSuite) TestNewHandlerRequiresService() {
	_, err := v1alpha1.NewHandler(&v1alpha1.HandlerConfig{})
	s.True(errors.IsInvalidArgument(err))

	_, err = v1alpha1.NewHandler(nil)
	s.True(errors.IsInvalidArgument(err))
}

func (s *HandlerTestSuite) TestCreateShare() {
	expires := time.Date(2026, 11, 16, 0, 0, 0, 0, time.UTC)

	s.mockService.EXPECT().
		CreateShare(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input *team.CreateShareInput) (*team.CreateShareOutput, error) {
			s.Equal("Bronze", input.Name)
			s.Require().NotNil(input.Team)
			s.Equal("seiya", input.Team.Front1.Character.ID)
			return &team.CreateShareOutput{ShortCode: "Ab12Cd", ExpiresAt: expires}, nil
		})

	resp, err := s.handler.CreateShare(s.ctx, s.request(&wire.ShareRequest{Team: s.team, Name: "Bronze"}))
	s.Require().NoError(err)

	var out wire.CreateShareResponse
	s.Require().NoError(v1alpha1.FromStruct(resp, &out))
	s.Equal("Ab12Cd", out.ShortCode)
	s.True(expires.Equal(out.ExpiresAt))
}

func (s *HandlerTestSuite) TestCreateShareMapsErrors() {
	s.mockService.EXPECT().
		CreateShare(s.ctx, gomock.Any()).
		Return(nil, errors.ResourceExhausted("no free short code after 10 attempts"))

	_, err := s.handler.CreateShare(s.ctx, s.request(&wire.ShareRequest{Team: s.team}))
	s.Require().Error(err)
	s.Equal(codes.ResourceExhausted, status.Code(err))
}

func (s *HandlerTestSuite) TestGetShareNotFound() {
	s.mockService.EXPECT().
		ResolveShare(s.ctx, &team.ResolveShareInput{Code: "ZZZZZZ"}).
		Return(nil, errors.NotFound("share ZZZZZZ not found").WithMeta("short_code", "ZZZZZZ"))

	_, err := s.handler.GetShare(s.ctx, s.request(&wire.GetShareRequest{Code: "ZZZZZZ"}))
	s.Require().Error(err)
	s.Equal(codes.NotFound, status.Code(err))

	back := errors.FromGRPCError(err)
	s.Equal("ZZZZZZ", errors.GetMeta(back)["short_code"])
}

func (s *HandlerTestSuite) TestGetShare() {
	s.mockService.EXPECT().
		ResolveShare(s.ctx, &team.ResolveShareInput{Code: "Ab12Cd"}).
		Return(&team.ResolveShareOutput{Share: &shares.SharedTeam{
			ShortCode: "Ab12Cd",
			Team:      s.team,
			Name:      "Bronze",
			Notes:     "front heavy",
		}}, nil)

	resp, err := s.handler.GetShare(s.ctx, s.request(&wire.GetShareRequest{Code: "Ab12Cd"}))
	s.Require().NoError(err)

	var out wire.ShareResponse
	s.Require().NoError(v1alpha1.FromStruct(resp, &out))
	s.Equal("Bronze", out.Name)
	s.Equal("front heavy", out.Notes)
	s.Require().NotNil(out.Team.Front1)
	s.Equal("Pegasus Seiya", out.Team.Front1.Character.Name.Localize("en"))
}

func (s *HandlerTestSuite) TestEncodeInlinePassesStyle() {
	s.mockService.EXPECT().
		EncodeInline(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input *team.EncodeInlineInput) (*team.EncodeInlineOutput, error) {
			s.Equal(sharecode.StyleReference, input.Style)
			return &team.EncodeInlineOutput{Token: "eyJ0ZWFtIjp7fX0"}, nil
		})

	resp, err := s.handler.EncodeInline(s.ctx, s.request(&wire.ShareRequest{Team: s.team, Style: "reference"}))
	s.Require().NoError(err)
	s.Equal("eyJ0ZWFtIjp7fX0", resp.GetFields()["token"].GetStringValue())
}

func (s *HandlerTestSuite) TestDecodeInlineInvalidToken() {
	s.mockService.EXPECT().
		DecodeInline(s.ctx, &team.DecodeInlineInput{Token: "!!"}).
		Return(nil, errors.InvalidArgument("invalid share token"))

	_, err := s.handler.DecodeInline(s.ctx, s.request(&wire.DecodeTokenRequest{Token: "!!"}))
	s.Equal(codes.InvalidArgument, status.Code(err))
}

func (s *HandlerTestSuite) TestResolveSynergiesEmptyListsStayLists() {
	s.mockService.EXPECT().
		ResolveSynergies(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input *team.ResolveSynergiesInput) (*team.ResolveSynergiesOutput, error) {
			s.Equal("pt-BR", input.Locale)
			return &team.ResolveSynergiesOutput{Result: &synergy.Result{
				Bonds:         []synergy.ActiveBond{},
				CombineSkills: []synergy.ActiveCombineSkill{},
			}}, nil
		})

	resp, err := s.handler.ResolveSynergies(s.ctx, s.request(&wire.SynergiesRequest{Team: s.team, Locale: "pt-BR"}))
	s.Require().NoError(err)
	s.NotNil(resp.GetFields()["bonds"].GetListValue())
	s.NotNil(resp.GetFields()["combineSkills"].GetListValue())
}

func (s *HandlerTestSuite) TestListCharacters() {
	s.mockService.EXPECT().
		ListCharacters(s.ctx, &team.ListCharactersInput{}).
		Return(&team.ListCharactersOutput{Characters: []*entities.CharacterRecord{s.seiya}}, nil)

	resp, err := s.handler.ListCharacters(s.ctx, nil)
	s.Require().NoError(err)

	var out wire.CharactersResponse
	s.Require().NoError(v1alpha1.FromStruct(resp, &out))
	s.Require().Len(out.Characters, 1)
	s.Equal("seiya", out.Characters[0].ID)
}

func (s *HandlerTestSuite) TestFromStructRejectsWrongShape() {
	req, err := structpb.NewStruct(map[string]interface{}{"code": 42.0})
	s.Require().NoError(err)

	_, err = s.handler.GetShare(s.ctx, req)
	s.Equal(codes.InvalidArgument, status.Code(err))
}

// TestOverTheWire drives the registered service through a real gRPC
// connection
func (s *HandlerTestSuite) TestOverTheWire() {
	lis := bufconn.Listen(1 << 20)
	server := grpc.NewServer()
	v1alpha1.RegisterTeamServiceServer(server, s.handler)
	go func() {
		_ = server.Serve(lis)
	}()
	defer server.Stop()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	s.Require().NoError(err)
	defer func() {
		_ = conn.Close()
	}()

	s.mockService.EXPECT().
		ResolveShare(gomock.Any(), &team.ResolveShareInput{Code: "Ab12Cd"}).
		Return(&team.ResolveShareOutput{Share: &shares.SharedTeam{ShortCode: "Ab12Cd", Team: s.team, Name: "Bronze"}}, nil)

	client := v1alpha1.NewTeamServiceClient(conn)
	resp, err := client.GetShare(s.ctx, s.request(&wire.GetShareRequest{Code: "Ab12Cd"}))
	s.Require().NoError(err)
	s.Equal("Bronze", resp.GetFields()["name"].GetStringValue())
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}
