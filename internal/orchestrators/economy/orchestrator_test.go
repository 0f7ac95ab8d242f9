package economy_test

import (
	"context"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/packvault/collection-api/internal/clients/catalog"
	catalogmock "github.com/packvault/collection-api/internal/clients/catalog/mock"
	"github.com/packvault/collection-api/internal/coordinator"
	"github.com/packvault/collection-api/internal/entities"
	"github.com/packvault/collection-api/internal/errors"
	"github.com/packvault/collection-api/internal/orchestrators/economy"
	"github.com/packvault/collection-api/internal/packs"
	"github.com/packvault/collection-api/internal/pkg/clock"
	"github.com/packvault/collection-api/internal/pkg/idgen"
	"github.com/packvault/collection-api/internal/repositories/collection"
	"github.com/packvault/collection-api/internal/repositories/profile"
)

const testPlayerID = "player_1"

type OrchestratorTestSuite struct {
	suite.Suite
	ctrl *gomock.Controller
	ctx  context.Context

	profileRepo    *profile.InMemoryRepository
	collectionRepo *collection.InMemoryRepository
	catalogClient  *catalogmock.MockClient
	coord          *coordinator.Coordinator

	orch *economy.Orchestrator
}

func (s *OrchestratorTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.ctx = context.Background()

	s.profileRepo = profile.NewInMemory()
	s.collectionRepo = collection.NewInMemory()
	s.catalogClient = catalogmock.NewMockClient(s.ctrl)
	s.coord = coordinator.New()

	packCatalog, err := packs.NewCatalog(packs.DefaultPacks())
	s.Require().NoError(err)

	orch, err := economy.NewOrchestrator(&economy.Config{
		ProfileRepo:    s.profileRepo,
		CollectionRepo: s.collectionRepo,
		CatalogClient:  s.catalogClient,
		PackCatalog:    packCatalog,
		Coordinator:    s.coord,
		IDGenerator:    idgen.NewSequential("card"),
		Clock:          &clock.Fixed{T: time.Unix(1700000000, 0)},
		Rng:            rand.New(rand.NewSource(42)),
	})
	s.Require().NoError(err)
	s.orch = orch
}

func (s *OrchestratorTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

// expectCreature registers a catalog entry the engine may look up.
func (s *OrchestratorTestSuite) expectCreature(id, level string, nextIDs ...string) {
	next := make([]catalog.EvolutionOption, 0, len(nextIDs))
	for _, n := range nextIDs {
		next = append(next, catalog.EvolutionOption{CreatureID: n})
	}
	s.catalogClient.EXPECT().
		GetCreature(gomock.Any(), id).
		Return(&catalog.CreatureEntry{ID: id, Level: level, NextEvolutions: next}, nil).
		AnyTimes()
}

// ownInstance seeds a card instance directly into the collection.
func (s *OrchestratorTestSuite) ownInstance(id, owner, acquired, current string) *entities.CardInstance {
	inst := &entities.CardInstance{
		ID:                 id,
		OwnerID:            owner,
		AcquiredCreatureID: acquired,
		CurrentCreatureID:  current,
		AcquiredAt:         1690000000,
	}
	_, err := s.collectionRepo.AddBatch(s.ctx, collection.AddBatchInput{
		Instances: []*entities.CardInstance{inst},
	})
	s.Require().NoError(err)
	return inst
}

func (s *OrchestratorTestSuite) balance() int64 {
	out, err := s.orch.GetProfile(s.ctx, &economy.GetProfileInput{PlayerID: testPlayerID})
	s.Require().NoError(err)
	return out.Profile.Balance
}

func (s *OrchestratorTestSuite) setBalance(balance int64) {
	out, err := s.orch.GetProfile(s.ctx, &economy.GetProfileInput{PlayerID: testPlayerID})
	s.Require().NoError(err)
	prof := *out.Profile
	prof.Balance = balance
	_, err = s.profileRepo.Save(s.ctx, profile.SaveInput{Profile: &prof})
	s.Require().NoError(err)
}

func (s *OrchestratorTestSuite) TestGetProfileInitializesWithWelcomeGrant() {
	out, err := s.orch.GetProfile(s.ctx, &economy.GetProfileInput{PlayerID: testPlayerID})
	s.Require().NoError(err)
	s.Equal(testPlayerID, out.Profile.PlayerID)
	s.Equal(int64(500), out.Profile.Balance)
	s.Equal(int64(1700000000), out.Profile.CreatedAt)

	// A second load returns the persisted profile, no second grant.
	s.setBalance(123)
	s.Equal(int64(123), s.balance())
}

func (s *OrchestratorTestSuite) TestPurchasePack() {
	out, err := s.orch.PurchasePack(s.ctx, &economy.PurchasePackInput{
		PlayerID: testPlayerID,
		PackID:   "pack_common",
	})
	s.Require().NoError(err)

	s.Equal("pack_common", out.Pack.ID)
	s.Len(out.Instances, 4)

	pool := make(map[string]bool)
	for _, entry := range out.Pack.Pool {
		pool[entry.CreatureID] = true
	}
	for _, inst := range out.Instances {
		s.Equal(testPlayerID, inst.OwnerID)
		s.Equal(inst.AcquiredCreatureID, inst.CurrentCreatureID)
		s.True(pool[inst.AcquiredCreatureID], "drawn creature %s outside pack pool", inst.AcquiredCreatureID)
	}

	// 500 welcome grant minus the 200 pack price.
	s.Equal(int64(300), out.Profile.Balance)

	listOut, err := s.orch.ListCollection(s.ctx, &economy.ListCollectionInput{PlayerID: testPlayerID})
	s.Require().NoError(err)
	s.Len(listOut.Instances, 4)
}

func (s *OrchestratorTestSuite) TestPurchaseExactBalance() {
	// Purchasing with balance exactly covering the price leaves zero,
	// never negative.
	packCatalog, err := packs.NewCatalog([]*packs.StarterPack{{
		ID:        "pack_micro",
		Name:      "Micro Pack",
		Tier:      packs.TierCommon,
		Price:     5,
		DrawCount: 1,
		Pool:      []packs.PoolEntry{{CreatureID: "agumon", Weight: 1}},
	}})
	s.Require().NoError(err)

	orch, err := economy.NewOrchestrator(&economy.Config{
		ProfileRepo:    s.profileRepo,
		CollectionRepo: s.collectionRepo,
		CatalogClient:  s.catalogClient,
		PackCatalog:    packCatalog,
		Coordinator:    s.coord,
		IDGenerator:    idgen.NewSequential("micro"),
		Clock:          &clock.Fixed{T: time.Unix(1700000000, 0)},
		Rng:            rand.New(rand.NewSource(1)),
	})
	s.Require().NoError(err)

	s.setBalance(10)
	out, err := orch.PurchasePack(s.ctx, &economy.PurchasePackInput{
		PlayerID: testPlayerID,
		PackID:   "pack_micro",
	})
	s.Require().NoError(err)
	s.Equal(int64(5), out.Profile.Balance)

	out, err = orch.PurchasePack(s.ctx, &economy.PurchasePackInput{
		PlayerID: testPlayerID,
		PackID:   "pack_micro",
	})
	s.Require().NoError(err)
	s.Equal(int64(0), out.Profile.Balance)
}

func (s *OrchestratorTestSuite) TestPurchaseUnknownPack() {
	_, err := s.orch.PurchasePack(s.ctx, &economy.PurchasePackInput{
		PlayerID: testPlayerID,
		PackID:   "pack_bogus",
	})
	s.Require().Error(err)
	s.True(errors.IsUnknownPack(err))
}

func (s *OrchestratorTestSuite) TestPurchaseInsufficientFundsIsIdempotent() {
	s.setBalance(100)

	for i := 0; i < 2; i++ {
		_, err := s.orch.PurchasePack(s.ctx, &economy.PurchasePackInput{
			PlayerID: testPlayerID,
			PackID:   "pack_common",
		})
		s.Require().Error(err)
		s.True(errors.IsInsufficientFunds(err))
	}

	// Repeated failures change nothing.
	s.Equal(int64(100), s.balance())
	listOut, err := s.orch.ListCollection(s.ctx, &economy.ListCollectionInput{PlayerID: testPlayerID})
	s.Require().NoError(err)
	s.Empty(listOut.Instances)
}

func (s *OrchestratorTestSuite) TestEvolveCard() {
	inst := s.ownInstance("card_1", testPlayerID, "agumon", "agumon")
	s.expectCreature("agumon", catalog.LevelRookie, "greymon")

	out, err := s.orch.EvolveCard(s.ctx, &economy.EvolveCardInput{
		PlayerID:         testPlayerID,
		InstanceID:       "card_1",
		TargetCreatureID: "greymon",
	})
	s.Require().NoError(err)

	s.Equal(inst.ID, out.Instance.ID)
	s.Equal("greymon", out.Instance.CurrentCreatureID)
	s.Equal("agumon", out.Instance.AcquiredCreatureID)
	s.Equal(inst.AcquiredAt, out.Instance.AcquiredAt)
	s.True(out.Instance.Evolved())

	// Evolution is free.
	s.Equal(int64(500), s.balance())

	// The pending flag cleared on settlement.
	_, pending := s.coord.EvolvingTo("card_1")
	s.False(pending)
}

func (s *OrchestratorTestSuite) TestEvolveSkippingLevelIsIllegal() {
	s.ownInstance("card_1", testPlayerID, "agumon", "agumon")
	s.expectCreature("agumon", catalog.LevelRookie, "greymon")

	_, err := s.orch.EvolveCard(s.ctx, &economy.EvolveCardInput{
		PlayerID:         testPlayerID,
		InstanceID:       "card_1",
		TargetCreatureID: "metalgreymon",
	})
	s.Require().Error(err)
	s.True(errors.IsInvalidEvolution(err))

	// No mutation on failure.
	getOut, err := s.collectionRepo.Get(s.ctx, collection.GetInput{ID: "card_1"})
	s.Require().NoError(err)
	s.Equal("agumon", getOut.Instance.CurrentCreatureID)
}

func (s *OrchestratorTestSuite) TestEvolveTerminalForm() {
	s.ownInstance("card_1", testPlayerID, "wargreymon", "wargreymon")
	s.expectCreature("wargreymon", catalog.LevelMega)

	_, err := s.orch.EvolveCard(s.ctx, &economy.EvolveCardInput{
		PlayerID:         testPlayerID,
		InstanceID:       "card_1",
		TargetCreatureID: "omnimon",
	})
	s.Require().Error(err)
	s.True(errors.IsInvalidEvolution(err))
}

func (s *OrchestratorTestSuite) TestEvolveForeignInstanceReadsAsNotFound() {
	s.ownInstance("card_1", "player_2", "agumon", "agumon")

	_, err := s.orch.EvolveCard(s.ctx, &economy.EvolveCardInput{
		PlayerID:         testPlayerID,
		InstanceID:       "card_1",
		TargetCreatureID: "greymon",
	})
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
}

func (s *OrchestratorTestSuite) TestEvolveCatalogDown() {
	s.ownInstance("card_1", testPlayerID, "agumon", "agumon")
	s.catalogClient.EXPECT().
		GetCreature(gomock.Any(), "agumon").
		Return(nil, errors.CatalogUnavailable("catalog is down"))

	_, err := s.orch.EvolveCard(s.ctx, &economy.EvolveCardInput{
		PlayerID:         testPlayerID,
		InstanceID:       "card_1",
		TargetCreatureID: "greymon",
	})
	s.Require().Error(err)
	s.True(errors.IsCatalogUnavailable(err))

	// Catalog failure mutates nothing and releases the instance.
	getOut, err := s.collectionRepo.Get(s.ctx, collection.GetInput{ID: "card_1"})
	s.Require().NoError(err)
	s.Equal("agumon", getOut.Instance.CurrentCreatureID)
	_, pending := s.coord.EvolvingTo("card_1")
	s.False(pending)
}

func (s *OrchestratorTestSuite) TestEvolveWhilePendingRejected() {
	s.ownInstance("card_1", testPlayerID, "agumon", "agumon")

	s.Require().NoError(s.coord.BeginEvolve("card_1", "greymon"))

	_, err := s.orch.EvolveCard(s.ctx, &economy.EvolveCardInput{
		PlayerID:         testPlayerID,
		InstanceID:       "card_1",
		TargetCreatureID: "greymon",
	})
	s.Require().Error(err)
	s.True(errors.IsAlreadyInProgress(err))

	// Once the pending operation settles the instance is admitted again.
	s.coord.FinishEvolve("card_1")
	s.expectCreature("agumon", catalog.LevelRookie, "greymon")

	out, err := s.orch.EvolveCard(s.ctx, &economy.EvolveCardInput{
		PlayerID:         testPlayerID,
		InstanceID:       "card_1",
		TargetCreatureID: "greymon",
	})
	s.Require().NoError(err)
	s.Equal("greymon", out.Instance.CurrentCreatureID)
}

func (s *OrchestratorTestSuite) TestSellCard() {
	s.ownInstance("card_1", testPlayerID, "agumon", "agumon")
	s.expectCreature("agumon", catalog.LevelRookie, "greymon")

	before := s.balance()
	out, err := s.orch.SellCard(s.ctx, &economy.SellCardInput{
		PlayerID:     testPlayerID,
		InstanceID:   "card_1",
		ClaimedValue: 50,
	})
	s.Require().NoError(err)

	// Coins are conserved: the credit equals the sale value exactly.
	s.Equal(int64(50), out.Value)
	s.Equal(before+50, out.Profile.Balance)

	_, err = s.collectionRepo.Get(s.ctx, collection.GetInput{ID: "card_1"})
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))

	s.False(s.coord.IsSelling("card_1"))
}

func (s *OrchestratorTestSuite) TestSellEvolvedValuesCurrentForm() {
	// Acquired as a Rookie, evolved to a Champion: the Champion value applies.
	s.ownInstance("card_1", testPlayerID, "agumon", "greymon")
	s.expectCreature("greymon", catalog.LevelChampion, "metalgreymon")

	out, err := s.orch.SellCard(s.ctx, &economy.SellCardInput{
		PlayerID:     testPlayerID,
		InstanceID:   "card_1",
		ClaimedValue: 150,
	})
	s.Require().NoError(err)
	s.Equal(int64(150), out.Value)
}

func (s *OrchestratorTestSuite) TestSellPriceMismatch() {
	s.ownInstance("card_1", testPlayerID, "agumon", "agumon")
	s.expectCreature("agumon", catalog.LevelRookie, "greymon")

	before := s.balance()
	_, err := s.orch.SellCard(s.ctx, &economy.SellCardInput{
		PlayerID:     testPlayerID,
		InstanceID:   "card_1",
		ClaimedValue: 9999,
	})
	s.Require().Error(err)
	s.True(errors.IsPriceMismatch(err))

	// Nothing changed: the card stays, the balance stays.
	s.Equal(before, s.balance())
	_, err = s.collectionRepo.Get(s.ctx, collection.GetInput{ID: "card_1"})
	s.Require().NoError(err)
}

func (s *OrchestratorTestSuite) TestSellWhilePendingRejected() {
	s.ownInstance("card_1", testPlayerID, "agumon", "agumon")
	s.Require().NoError(s.coord.BeginSell("card_1"))

	_, err := s.orch.SellCard(s.ctx, &economy.SellCardInput{
		PlayerID:     testPlayerID,
		InstanceID:   "card_1",
		ClaimedValue: 50,
	})
	s.Require().Error(err)
	s.True(errors.IsAlreadyInProgress(err))
}

func (s *OrchestratorTestSuite) TestConcurrentSellsConserveCoins() {
	// Different instances are admitted concurrently, but they share one
	// wallet: every credit must land, never be lost to a stale balance read.
	s.ownInstance("card_1", testPlayerID, "agumon", "agumon")
	s.ownInstance("card_2", testPlayerID, "gabumon", "gabumon")
	s.expectCreature("agumon", catalog.LevelRookie, "greymon")
	s.expectCreature("gabumon", catalog.LevelRookie, "garurumon")

	before := s.balance()

	var wg sync.WaitGroup
	errCh := make(chan error, 2)
	for _, instanceID := range []string{"card_1", "card_2"} {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			_, err := s.orch.SellCard(s.ctx, &economy.SellCardInput{
				PlayerID:     testPlayerID,
				InstanceID:   id,
				ClaimedValue: 50,
			})
			errCh <- err
		}(instanceID)
	}
	wg.Wait()
	close(errCh)

	for err := range errCh {
		s.Require().NoError(err)
	}

	s.Equal(before+100, s.balance())
}

func (s *OrchestratorTestSuite) TestConcurrentSellAndPurchaseConserveCoins() {
	// Seed outside the suite generator's "card_" namespace so the pack
	// draw's generated IDs cannot collide with the fixture instance.
	s.ownInstance("owned_1", testPlayerID, "agumon", "agumon")
	s.expectCreature("agumon", catalog.LevelRookie, "greymon")

	before := s.balance()

	var wg sync.WaitGroup
	errCh := make(chan error, 2)

	wg.Add(2)
	go func() {
		defer wg.Done()
		_, err := s.orch.SellCard(s.ctx, &economy.SellCardInput{
			PlayerID:     testPlayerID,
			InstanceID:   "owned_1",
			ClaimedValue: 50,
		})
		errCh <- err
	}()
	go func() {
		defer wg.Done()
		_, err := s.orch.PurchasePack(s.ctx, &economy.PurchasePackInput{
			PlayerID: testPlayerID,
			PackID:   "pack_common",
		})
		errCh <- err
	}()
	wg.Wait()
	close(errCh)

	for err := range errCh {
		s.Require().NoError(err)
	}

	// +50 sale credit, -200 pack debit, regardless of interleaving.
	s.Equal(before+50-200, s.balance())
}

func (s *OrchestratorTestSuite) TestSellMissingInstance() {
	_, err := s.orch.SellCard(s.ctx, &economy.SellCardInput{
		PlayerID:     testPlayerID,
		InstanceID:   "card_404",
		ClaimedValue: 50,
	})
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
}

func (s *OrchestratorTestSuite) TestConfigValidation() {
	_, err := economy.NewOrchestrator(&economy.Config{})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
}

func TestOrchestratorSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorTestSuite))
}
