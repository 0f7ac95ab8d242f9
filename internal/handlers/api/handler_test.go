package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/packvault/collection-api/internal/entities"
	"github.com/packvault/collection-api/internal/errors"
	"github.com/packvault/collection-api/internal/handlers/api"
	"github.com/packvault/collection-api/internal/orchestrators/economy"
	economymock "github.com/packvault/collection-api/internal/orchestrators/economy/mock"
	"github.com/packvault/collection-api/internal/packs"
)

type HandlerTestSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	service *economymock.MockService
	server  *httptest.Server
}

func (s *HandlerTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.service = economymock.NewMockService(s.ctrl)

	handler, err := api.NewHandler(&api.Config{Service: s.service})
	s.Require().NoError(err)
	s.server = httptest.NewServer(handler.Routes())
	s.T().Cleanup(s.server.Close)
}

func (s *HandlerTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *HandlerTestSuite) request(method, path, body string) *http.Response {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("{}")
	} else {
		reader = strings.NewReader(body)
	}

	req, err := http.NewRequest(method, s.server.URL+path, reader)
	s.Require().NoError(err)
	req.Header.Set("X-Player-ID", "player_1")
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.server.Client().Do(req)
	s.Require().NoError(err)
	return resp
}

func (s *HandlerTestSuite) decode(resp *http.Response, target any) {
	defer func() { _ = resp.Body.Close() }()
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(target))
}

func (s *HandlerTestSuite) errorCode(resp *http.Response) string {
	var body struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	s.decode(resp, &body)
	return body.Error.Code
}

func (s *HandlerTestSuite) TestGetProfile() {
	s.service.EXPECT().
		GetProfile(gomock.Any(), &economy.GetProfileInput{PlayerID: "player_1"}).
		Return(&economy.GetProfileOutput{
			Profile: &entities.Profile{PlayerID: "player_1", Name: "Tamer", Balance: 500},
		}, nil)

	resp := s.request(http.MethodGet, "/v1/profile", "")
	s.Equal(http.StatusOK, resp.StatusCode)

	var profile entities.Profile
	s.decode(resp, &profile)
	s.Equal("player_1", profile.PlayerID)
	s.Equal(int64(500), profile.Balance)
}

func (s *HandlerTestSuite) TestMissingPlayerHeader() {
	req, err := http.NewRequest(http.MethodGet, s.server.URL+"/v1/profile", nil)
	s.Require().NoError(err)

	resp, err := s.server.Client().Do(req)
	s.Require().NoError(err)
	s.Equal(http.StatusBadRequest, resp.StatusCode)
	s.Equal("INVALID_ARGUMENT", s.errorCode(resp))
}

func (s *HandlerTestSuite) TestListCollection() {
	s.service.EXPECT().
		ListCollection(gomock.Any(), &economy.ListCollectionInput{PlayerID: "player_1"}).
		Return(&economy.ListCollectionOutput{
			Instances: []*entities.CardInstance{
				{ID: "card_1", OwnerID: "player_1", AcquiredCreatureID: "agumon", CurrentCreatureID: "greymon"},
			},
		}, nil)

	resp := s.request(http.MethodGet, "/v1/collection", "")
	s.Equal(http.StatusOK, resp.StatusCode)

	var body struct {
		Instances []*entities.CardInstance `json:"instances"`
	}
	s.decode(resp, &body)
	s.Len(body.Instances, 1)
	s.Equal("greymon", body.Instances[0].CurrentCreatureID)
}

func (s *HandlerTestSuite) TestPurchasePack() {
	s.service.EXPECT().
		PurchasePack(gomock.Any(), &economy.PurchasePackInput{PlayerID: "player_1", PackID: "pack_common"}).
		Return(&economy.PurchasePackOutput{
			Pack: &packs.StarterPack{ID: "pack_common", Price: 200},
			Instances: []*entities.CardInstance{
				{ID: "card_1", OwnerID: "player_1", AcquiredCreatureID: "agumon", CurrentCreatureID: "agumon"},
			},
			Profile: &entities.Profile{PlayerID: "player_1", Balance: 300},
		}, nil)

	resp := s.request(http.MethodPost, "/v1/packs/pack_common/purchase", "")
	s.Equal(http.StatusOK, resp.StatusCode)

	var body struct {
		PackID    string                   `json:"pack_id"`
		Instances []*entities.CardInstance `json:"instances"`
		Profile   *entities.Profile        `json:"profile"`
	}
	s.decode(resp, &body)
	s.Equal("pack_common", body.PackID)
	s.Len(body.Instances, 1)
	s.Equal(int64(300), body.Profile.Balance)
}

func (s *HandlerTestSuite) TestPurchaseErrorMapping() {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"unknown pack", errors.UnknownPackf("pack pack_bogus not found"), http.StatusNotFound, "UNKNOWN_PACK"},
		{"insufficient funds", errors.InsufficientFundsf("balance too low"), http.StatusUnprocessableEntity, "INSUFFICIENT_FUNDS"},
	}

	for _, tc := range cases {
		s.Run(tc.name, func() {
			s.service.EXPECT().
				PurchasePack(gomock.Any(), gomock.Any()).
				Return(nil, tc.err)

			resp := s.request(http.MethodPost, "/v1/packs/pack_x/purchase", "")
			s.Equal(tc.wantStatus, resp.StatusCode)
			s.Equal(tc.wantCode, s.errorCode(resp))
		})
	}
}

func (s *HandlerTestSuite) TestEvolveCard() {
	s.service.EXPECT().
		EvolveCard(gomock.Any(), &economy.EvolveCardInput{
			PlayerID:         "player_1",
			InstanceID:       "card_1",
			TargetCreatureID: "greymon",
		}).
		Return(&economy.EvolveCardOutput{
			Instance: &entities.CardInstance{
				ID: "card_1", OwnerID: "player_1",
				AcquiredCreatureID: "agumon", CurrentCreatureID: "greymon",
			},
		}, nil)

	resp := s.request(http.MethodPost, "/v1/cards/card_1/evolve",
		`{"target_creature_id":"greymon"}`)
	s.Equal(http.StatusOK, resp.StatusCode)

	var body struct {
		Instance *entities.CardInstance `json:"instance"`
	}
	s.decode(resp, &body)
	s.Equal("greymon", body.Instance.CurrentCreatureID)
}

func (s *HandlerTestSuite) TestEvolveErrorMapping() {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"illegal target", errors.InvalidEvolutionf("no edge"), http.StatusUnprocessableEntity, "INVALID_EVOLUTION_TARGET"},
		{"already pending", errors.AlreadyInProgressf("busy"), http.StatusConflict, "ALREADY_IN_PROGRESS"},
		{"catalog down", errors.CatalogUnavailable("down"), http.StatusServiceUnavailable, "CATALOG_UNAVAILABLE"},
		{"not found", errors.NotFoundf("missing"), http.StatusNotFound, "NOT_FOUND"},
	}

	for _, tc := range cases {
		s.Run(tc.name, func() {
			s.service.EXPECT().
				EvolveCard(gomock.Any(), gomock.Any()).
				Return(nil, tc.err)

			resp := s.request(http.MethodPost, "/v1/cards/card_1/evolve",
				`{"target_creature_id":"greymon"}`)
			s.Equal(tc.wantStatus, resp.StatusCode)
			s.Equal(tc.wantCode, s.errorCode(resp))
		})
	}
}

func (s *HandlerTestSuite) TestEvolveMalformedBody() {
	resp := s.request(http.MethodPost, "/v1/cards/card_1/evolve", "{not json")
	s.Equal(http.StatusBadRequest, resp.StatusCode)
	s.Equal("INVALID_ARGUMENT", s.errorCode(resp))
}

func (s *HandlerTestSuite) TestSellCard() {
	s.service.EXPECT().
		SellCard(gomock.Any(), &economy.SellCardInput{
			PlayerID:     "player_1",
			InstanceID:   "card_1",
			ClaimedValue: 50,
		}).
		Return(&economy.SellCardOutput{
			Value:   50,
			Profile: &entities.Profile{PlayerID: "player_1", Balance: 550},
		}, nil)

	resp := s.request(http.MethodPost, "/v1/cards/card_1/sell", `{"claimed_value":50}`)
	s.Equal(http.StatusOK, resp.StatusCode)

	var body struct {
		Value   int64             `json:"value"`
		Profile *entities.Profile `json:"profile"`
	}
	s.decode(resp, &body)
	s.Equal(int64(50), body.Value)
	s.Equal(int64(550), body.Profile.Balance)
}

func (s *HandlerTestSuite) TestSellPriceMismatch() {
	s.service.EXPECT().
		SellCard(gomock.Any(), gomock.Any()).
		Return(nil, errors.PriceMismatchf("claimed 9999, computed 50"))

	resp := s.request(http.MethodPost, "/v1/cards/card_1/sell", `{"claimed_value":9999}`)
	s.Equal(http.StatusUnprocessableEntity, resp.StatusCode)
	s.Equal("PRICE_MISMATCH", s.errorCode(resp))
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}
