package economy

import (
	"context"
	"log/slog"
	"math/rand"
	"sync"

	"github.com/packvault/collection-api/internal/clients/catalog"
	"github.com/packvault/collection-api/internal/coordinator"
	"github.com/packvault/collection-api/internal/entities"
	"github.com/packvault/collection-api/internal/errors"
	"github.com/packvault/collection-api/internal/packs"
	"github.com/packvault/collection-api/internal/pkg/clock"
	"github.com/packvault/collection-api/internal/pkg/idgen"
	"github.com/packvault/collection-api/internal/repositories/collection"
	"github.com/packvault/collection-api/internal/repositories/profile"
)

const (
	// welcomeGrant is the coin balance a brand-new profile starts with.
	welcomeGrant = 500

	defaultPlayerName = "Tamer"
)

// Config holds the dependencies for the economy orchestrator
type Config struct {
	ProfileRepo    profile.Repository
	CollectionRepo collection.Repository
	CatalogClient  catalog.Client
	PackCatalog    *packs.Catalog
	Coordinator    *coordinator.Coordinator
	IDGenerator    idgen.Generator
	Clock          clock.Clock
	// Rng drives pack draws. Optional; defaults to a clock-seeded source.
	Rng *rand.Rand
}

// Validate validates the Config
func (cfg *Config) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	if cfg.ProfileRepo == nil {
		vb.RequiredField("ProfileRepo")
	}
	if cfg.CollectionRepo == nil {
		vb.RequiredField("CollectionRepo")
	}
	if cfg.CatalogClient == nil {
		vb.RequiredField("CatalogClient")
	}
	if cfg.PackCatalog == nil {
		vb.RequiredField("PackCatalog")
	}
	if cfg.Coordinator == nil {
		vb.RequiredField("Coordinator")
	}
	if cfg.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if cfg.Clock == nil {
		vb.RequiredField("Clock")
	}
	return vb.Build()
}

// Orchestrator implements the economy Service
type Orchestrator struct {
	profileRepo    profile.Repository
	collectionRepo collection.Repository
	catalogClient  catalog.Client
	packCatalog    *packs.Catalog
	coordinator    *coordinator.Coordinator
	idGenerator    idgen.Generator
	clock          clock.Clock

	// rngMu serializes draws; rand.Rand is not safe for concurrent use.
	rngMu sync.Mutex
	rng   *rand.Rand

	// walletMu guards wallets. Each per-player mutex serializes balance
	// read-modify-write sequences: the coordinator only serializes per
	// instance, and two operations on different instances share one wallet.
	walletMu sync.Mutex
	wallets  map[string]*sync.Mutex
}

// NewOrchestrator creates a new economy orchestrator
func NewOrchestrator(cfg *Config) (*Orchestrator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	rng := cfg.Rng
	if rng == nil {
		rng = rand.New(rand.NewSource(cfg.Clock.Now().UnixNano()))
	}

	return &Orchestrator{
		profileRepo:    cfg.ProfileRepo,
		collectionRepo: cfg.CollectionRepo,
		catalogClient:  cfg.CatalogClient,
		packCatalog:    cfg.PackCatalog,
		coordinator:    cfg.Coordinator,
		idGenerator:    cfg.IDGenerator,
		clock:          cfg.Clock,
		rng:            rng,
		wallets:        make(map[string]*sync.Mutex),
	}, nil
}

// lockWallet acquires the player's wallet lock and returns the release
// function. Every operation that loads the balance and saves it back holds
// the lock across the whole sequence, so a concurrent credit or debit can
// never be lost to a stale read.
func (o *Orchestrator) lockWallet(playerID string) func() {
	o.walletMu.Lock()
	mu, ok := o.wallets[playerID]
	if !ok {
		mu = &sync.Mutex{}
		o.wallets[playerID] = mu
	}
	o.walletMu.Unlock()

	mu.Lock()
	return mu.Unlock
}

// PurchasePack debits the pack price and adds the drawn instances to the
// player's collection. Instances are written first; if the profile debit
// fails they are removed again so nothing is partially applied.
func (o *Orchestrator) PurchasePack(ctx context.Context, input *PurchasePackInput) (*PurchasePackOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input cannot be nil")
	}
	if input.PlayerID == "" {
		return nil, errors.InvalidArgument("player ID cannot be empty")
	}

	pack, err := o.packCatalog.Find(input.PackID)
	if err != nil {
		return nil, err
	}

	unlock := o.lockWallet(input.PlayerID)
	defer unlock()

	prof, err := o.getOrInitProfile(ctx, input.PlayerID)
	if err != nil {
		return nil, err
	}

	if !prof.CanAfford(pack.Price) {
		return nil, errors.InsufficientFundsf(
			"balance %d cannot cover pack %s priced at %d", prof.Balance, pack.ID, pack.Price).
			WithMeta("balance", prof.Balance).
			WithMeta("price", pack.Price)
	}

	drawnIDs := o.draw(pack)
	now := o.clock.Now().Unix()
	instances := make([]*entities.CardInstance, 0, len(drawnIDs))
	for _, creatureID := range drawnIDs {
		instances = append(instances, &entities.CardInstance{
			ID:                 o.idGenerator.Generate(),
			OwnerID:            input.PlayerID,
			AcquiredCreatureID: creatureID,
			CurrentCreatureID:  creatureID,
			AcquiredAt:         now,
		})
	}

	if _, err := o.collectionRepo.AddBatch(ctx, collection.AddBatchInput{Instances: instances}); err != nil {
		return nil, errors.Wrap(err, "failed to store drawn instances")
	}

	prof.Balance -= pack.Price
	prof.UpdatedAt = now
	if _, err := o.profileRepo.Save(ctx, profile.SaveInput{Profile: prof}); err != nil {
		o.removeInstances(ctx, instances)
		return nil, errors.Wrap(err, "failed to debit pack price")
	}

	slog.InfoContext(ctx, "pack purchased",
		"player_id", input.PlayerID,
		"pack_id", pack.ID,
		"price", pack.Price,
		"drawn", drawnIDs,
		"balance", prof.Balance)

	return &PurchasePackOutput{
		Pack:      pack,
		Instances: instances,
		Profile:   prof,
	}, nil
}

// EvolveCard replaces the instance's current form with the target form when
// the catalog lists it as a legal next evolution.
func (o *Orchestrator) EvolveCard(ctx context.Context, input *EvolveCardInput) (*EvolveCardOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input cannot be nil")
	}
	if input.PlayerID == "" {
		return nil, errors.InvalidArgument("player ID cannot be empty")
	}
	if input.TargetCreatureID == "" {
		return nil, errors.InvalidArgument("target creature ID cannot be empty")
	}

	if err := o.coordinator.BeginEvolve(input.InstanceID, input.TargetCreatureID); err != nil {
		return nil, err
	}
	defer o.coordinator.FinishEvolve(input.InstanceID)

	inst, err := o.getOwnedInstance(ctx, input.PlayerID, input.InstanceID)
	if err != nil {
		return nil, err
	}

	entry, err := o.catalogClient.GetCreature(ctx, inst.CurrentCreatureID)
	if err != nil {
		return nil, err
	}

	if !entry.CanEvolveTo(input.TargetCreatureID) {
		return nil, errors.InvalidEvolutionf(
			"%s cannot evolve to %s", inst.CurrentCreatureID, input.TargetCreatureID).
			WithMeta("allowed_targets", entry.NextEvolutionIDs())
	}

	evolved := *inst
	evolved.CurrentCreatureID = input.TargetCreatureID
	updateOut, err := o.collectionRepo.Update(ctx, collection.UpdateInput{Instance: &evolved})
	if err != nil {
		return nil, errors.Wrap(err, "failed to persist evolution")
	}

	slog.InfoContext(ctx, "card evolved",
		"player_id", input.PlayerID,
		"instance_id", inst.ID,
		"from", inst.CurrentCreatureID,
		"to", input.TargetCreatureID)

	return &EvolveCardOutput{Instance: updateOut.Instance}, nil
}

// SellCard removes the instance and credits the sale value of its current
// form. The instance is removed first; if the credit fails it is restored.
func (o *Orchestrator) SellCard(ctx context.Context, input *SellCardInput) (*SellCardOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input cannot be nil")
	}
	if input.PlayerID == "" {
		return nil, errors.InvalidArgument("player ID cannot be empty")
	}

	if err := o.coordinator.BeginSell(input.InstanceID); err != nil {
		return nil, err
	}
	defer o.coordinator.FinishSell(input.InstanceID)

	inst, err := o.getOwnedInstance(ctx, input.PlayerID, input.InstanceID)
	if err != nil {
		return nil, err
	}

	entry, err := o.catalogClient.GetCreature(ctx, inst.CurrentCreatureID)
	if err != nil {
		return nil, err
	}

	value := SaleValue(entry.Level)
	if input.ClaimedValue != value {
		return nil, errors.PriceMismatchf(
			"claimed value %d does not match computed value %d for %s",
			input.ClaimedValue, value, inst.CurrentCreatureID).
			WithMeta("claimed", input.ClaimedValue).
			WithMeta("computed", value)
	}

	unlock := o.lockWallet(input.PlayerID)
	defer unlock()

	prof, err := o.getOrInitProfile(ctx, input.PlayerID)
	if err != nil {
		return nil, err
	}

	removeOut, err := o.collectionRepo.Remove(ctx, collection.RemoveInput{ID: inst.ID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to remove sold instance")
	}

	prof.Balance += value
	prof.UpdatedAt = o.clock.Now().Unix()
	if _, err := o.profileRepo.Save(ctx, profile.SaveInput{Profile: prof}); err != nil {
		o.restoreInstance(ctx, removeOut.Removed)
		return nil, errors.Wrap(err, "failed to credit sale value")
	}

	slog.InfoContext(ctx, "card sold",
		"player_id", input.PlayerID,
		"instance_id", inst.ID,
		"creature_id", inst.CurrentCreatureID,
		"value", value,
		"balance", prof.Balance)

	return &SellCardOutput{Value: value, Profile: prof}, nil
}

// GetProfile loads the player's profile, creating it with the welcome grant
// when absent or unreadable.
func (o *Orchestrator) GetProfile(ctx context.Context, input *GetProfileInput) (*GetProfileOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input cannot be nil")
	}

	unlock := o.lockWallet(input.PlayerID)
	defer unlock()

	prof, err := o.getOrInitProfile(ctx, input.PlayerID)
	if err != nil {
		return nil, err
	}
	return &GetProfileOutput{Profile: prof}, nil
}

// ListCollection returns the latest instance snapshots for the player.
func (o *Orchestrator) ListCollection(ctx context.Context, input *ListCollectionInput) (*ListCollectionOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input cannot be nil")
	}

	out, err := o.collectionRepo.ListByOwner(ctx, collection.ListByOwnerInput{OwnerID: input.PlayerID})
	if err != nil {
		return nil, err
	}
	return &ListCollectionOutput{Instances: out.Instances}, nil
}

func (o *Orchestrator) draw(pack *packs.StarterPack) []string {
	o.rngMu.Lock()
	defer o.rngMu.Unlock()
	return packs.Draw(pack, o.rng)
}

// getOwnedInstance fetches the instance and verifies ownership. A foreign
// owner reads as NotFound so existence is not leaked across players.
func (o *Orchestrator) getOwnedInstance(ctx context.Context, playerID, instanceID string) (*entities.CardInstance, error) {
	out, err := o.collectionRepo.Get(ctx, collection.GetInput{ID: instanceID})
	if err != nil {
		return nil, err
	}
	if out.Instance.OwnerID != playerID {
		return nil, errors.NotFoundf("card instance %s not found", instanceID)
	}
	return out.Instance, nil
}

func (o *Orchestrator) getOrInitProfile(ctx context.Context, playerID string) (*entities.Profile, error) {
	if playerID == "" {
		return nil, errors.InvalidArgument("player ID cannot be empty")
	}

	out, err := o.profileRepo.Get(ctx, profile.GetInput{PlayerID: playerID})
	if err == nil {
		return out.Profile, nil
	}
	if !errors.IsNotFound(err) {
		return nil, err
	}

	now := o.clock.Now().Unix()
	prof := &entities.Profile{
		PlayerID:  playerID,
		Name:      defaultPlayerName,
		Balance:   welcomeGrant,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := o.profileRepo.Save(ctx, profile.SaveInput{Profile: prof}); err != nil {
		return nil, errors.Wrap(err, "failed to initialize profile")
	}

	slog.InfoContext(ctx, "profile initialized",
		"player_id", playerID,
		"balance", welcomeGrant)

	return prof, nil
}

// removeInstances is best-effort compensation for a failed purchase debit.
func (o *Orchestrator) removeInstances(ctx context.Context, instances []*entities.CardInstance) {
	for _, inst := range instances {
		if _, err := o.collectionRepo.Remove(ctx, collection.RemoveInput{ID: inst.ID}); err != nil {
			slog.ErrorContext(ctx, "failed to roll back drawn instance",
				"instance_id", inst.ID,
				"error", err.Error())
		}
	}
}

// restoreInstance is best-effort compensation for a failed sale credit.
func (o *Orchestrator) restoreInstance(ctx context.Context, inst *entities.CardInstance) {
	if inst == nil {
		return
	}
	if _, err := o.collectionRepo.AddBatch(ctx, collection.AddBatchInput{
		Instances: []*entities.CardInstance{inst},
	}); err != nil {
		slog.ErrorContext(ctx, "failed to restore sold instance",
			"instance_id", inst.ID,
			"error", err.Error())
	}
}
