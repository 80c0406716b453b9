package economy

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/gamiempire/sovereign/internal/dependencies/clock"
	"github.com/gamiempire/sovereign/internal/model"
	"github.com/gamiempire/sovereign/internal/services/audit"
	"github.com/gamiempire/sovereign/internal/services/identity"
	"github.com/gamiempire/sovereign/internal/storage"
)

const instantDeliverySurcharge = 1.1

// Params is the economic parameter block read as pricing multipliers.
// Values are driven by nature/physics/shop setting effects.
type Params struct {
	CrowRentalRate   float64
	TreeRentalCost   float64
	TreeOxygenTax    float64
	TaxationRate     float64
	WealthMultiplier float64
	AutoHarvest      bool
	PassiveIncome    float64
	LeafGrowthSpeed  float64

	SkyRotationAngle float64
	GravityShift     float64
	ObjectPhysics    bool
}

// DefaultParams returns the platform's initial economic parameters.
func DefaultParams() Params {
	return Params{
		CrowRentalRate:   15,
		TreeRentalCost:   10,
		TreeOxygenTax:    5,
		TaxationRate:     10,
		WealthMultiplier: 1.0,
		PassiveIncome:    100,
		LeafGrowthSpeed:  1.0,
		ObjectPhysics:    true,
	}
}

// Receipt is the result of one completed transaction.
type Receipt struct {
	Type      model.TransactionType `json:"type"`
	Gross     float64               `json:"gross_amount"`
	Tax       float64               `json:"tax_amount"`
	Net       float64               `json:"net_amount"`
	Wealth    float64               `json:"wealth"`
	EntityID  string                `json:"entity_id,omitempty"`
	Timestamp time.Time             `json:"timestamp"`
}

// EntityInfo is the structured answer to an "info" interaction.
type EntityInfo struct {
	Entity           model.WorldEntity `json:"entity"`
	AvailableActions []string          `json:"available_actions"`
}

// InteractResult is the outcome of a rent/purchase/info interaction.
type InteractResult struct {
	Entity  model.WorldEntity `json:"entity"`
	Receipt *Receipt          `json:"receipt,omitempty"`
	Info    *EntityInfo       `json:"info,omitempty"`
}

// Aggregates summarizes economic state across all world entities.
type Aggregates struct {
	TotalIncome   float64 `json:"total_income"`
	ActiveRentals int     `json:"active_rentals"`
	Entities      int     `json:"entities"`
}

// Engine computes and applies all wealth-affecting operations. It is
// the only component allowed to mutate account wealth; mutations are
// serialized per account by a keyed mutex.
type Engine struct {
	storage storage.Storage
	audit   *audit.Logger
	clock   clock.Clock
	logger  *slog.Logger

	paramsMu sync.RWMutex
	params   Params

	worldMu sync.Mutex
	world   map[string]*model.WorldEntity
	order   []string

	accounts *keyedMutex

	frozenMu sync.RWMutex
	frozen   bool
}

// New creates an Engine with the seeded world population.
func New(store storage.Storage, auditor *audit.Logger, clk clock.Clock, logger *slog.Logger) *Engine {
	e := &Engine{
		storage:  store,
		audit:    auditor,
		clock:    clk,
		logger:   logger,
		params:   DefaultParams(),
		world:    make(map[string]*model.WorldEntity),
		accounts: newKeyedMutex(),
	}
	for _, entity := range seedEntities() {
		e.world[entity.ID] = entity
		e.order = append(e.order, entity.ID)
	}
	return e
}

// Apply computes, taxes and applies one economic transaction for the
// session. An unknown type passes the base amount through untaxed by no
// multiplier; tax still applies. An unknown entity id is tolerated.
func (e *Engine) Apply(ctx context.Context, txnType model.TransactionType, base float64, entityID string, session *identity.Session) (*Receipt, error) {
	receipt, err := e.apply(ctx, txnType, base, entityID, session)
	if err != nil {
		username := ""
		if session != nil {
			username = session.Username
		}
		e.audit.Record(ctx, model.AuditTransactionFailed, username, map[string]any{
			"type":      string(txnType),
			"amount":    base,
			"entity_id": entityID,
			"error":     err.Error(),
		})
		return nil, err
	}

	e.audit.Record(ctx, model.AuditTransaction, session.Username, map[string]any{
		"type":       string(txnType),
		"amount":     receipt.Net,
		"entity_id":  entityID,
		"new_wealth": receipt.Wealth,
	})
	return receipt, nil
}

func (e *Engine) apply(ctx context.Context, txnType model.TransactionType, base float64, entityID string, session *identity.Session) (*Receipt, error) {
	if session == nil {
		return nil, model.ErrNotAuthenticated
	}
	if e.Frozen() {
		return nil, model.ErrAssetsFrozen
	}

	gross := e.grossFor(txnType, base, entityID)

	e.paramsMu.RLock()
	rate := e.params.TaxationRate
	e.paramsMu.RUnlock()
	if rate < 0 {
		rate = 0
	}
	if rate > 100 {
		rate = 100
	}
	tax := gross * rate / 100
	net := gross - tax

	now := e.clock.Now()
	record := &model.TransactionRecord{
		Type:      txnType,
		Gross:     gross,
		Tax:       tax,
		Net:       net,
		EntityID:  entityID,
		Username:  session.Username,
		Timestamp: now,
	}
	// The ledger is authoritative: the record must be durable before
	// any balance mutation, so a failed append leaves wealth untouched.
	if err := e.storage.AppendTransaction(ctx, record); err != nil {
		return nil, err
	}

	// Serialize the wealth read-modify-write per account so interleaved
	// transactions on the same account cannot lose updates.
	unlock := e.accounts.lock(session.Username)
	wealth, err := e.settle(ctx, session, net)
	unlock()
	if err != nil {
		return nil, err
	}

	if entityID != "" {
		e.worldMu.Lock()
		if entity, ok := e.world[entityID]; ok {
			entity.IncomeGenerated += net
		}
		e.worldMu.Unlock()
	}

	return &Receipt{
		Type:      txnType,
		Gross:     gross,
		Tax:       tax,
		Net:       net,
		Wealth:    wealth,
		EntityID:  entityID,
		Timestamp: now,
	}, nil
}

// settle applies the net amount to the stored account and the session.
// Sessions without a stored account (the root bypass) mutate the
// session snapshot only. Caller holds the account's keyed lock.
func (e *Engine) settle(ctx context.Context, session *identity.Session, net float64) (float64, error) {
	account, err := e.storage.GetAccount(ctx, session.Username)
	if err != nil {
		if errors.Is(err, model.ErrAccountNotFound) {
			return session.Credit(net), nil
		}
		return 0, err
	}

	account.Wealth += net
	if err := e.storage.SaveAccount(ctx, account); err != nil {
		return 0, err
	}
	session.SyncWealth(account.Wealth)
	return account.Wealth, nil
}

// grossFor applies the type-specific pricing formula.
func (e *Engine) grossFor(txnType model.TransactionType, base float64, entityID string) float64 {
	e.paramsMu.RLock()
	params := e.params
	e.paramsMu.RUnlock()

	switch txnType {
	case model.TxnCrowRental:
		return base * params.CrowRentalRate

	case model.TxnTreeRental:
		gross := base * params.TreeRentalCost
		return gross + gross*(params.TreeOxygenTax/100)

	case model.TxnShopPurchase:
		e.worldMu.Lock()
		entity, ok := e.world[entityID]
		var gross float64
		if ok {
			gross = entity.BasePrice
			if entity.InstantDelivery {
				gross *= instantDeliverySurcharge
			}
		} else {
			gross = base
		}
		e.worldMu.Unlock()
		return gross

	case model.TxnPassiveIncome:
		gross := base * params.WealthMultiplier
		if params.AutoHarvest {
			gross *= 1.5
		}
		return gross

	default:
		// Unknown types fall through with no multiplier applied.
		return base
	}
}

// Interact performs a rent/purchase/info action against an entity.
func (e *Engine) Interact(ctx context.Context, session *identity.Session, entityID, action string) (*InteractResult, error) {
	if session == nil {
		return nil, model.ErrNotAuthenticated
	}

	switch action {
	case "info":
		return e.info(entityID)
	case "rent":
		return e.rent(ctx, session, entityID)
	case "purchase":
		return e.purchase(ctx, session, entityID)
	default:
		return nil, model.ErrInvalidAction
	}
}

func (e *Engine) info(entityID string) (*InteractResult, error) {
	e.worldMu.Lock()
	defer e.worldMu.Unlock()
	entity, ok := e.world[entityID]
	if !ok {
		return nil, model.ErrEntityNotFound
	}
	cp := *entity
	return &InteractResult{
		Entity: cp,
		Info: &EntityInfo{
			Entity:           cp,
			AvailableActions: cp.AvailableActions(),
		},
	}, nil
}

func (e *Engine) rent(ctx context.Context, session *identity.Session, entityID string) (*InteractResult, error) {
	var txnType model.TransactionType

	// Reserve the occupancy slot first; release it if the charge fails.
	e.worldMu.Lock()
	entity, ok := e.world[entityID]
	if !ok {
		e.worldMu.Unlock()
		return nil, model.ErrEntityNotFound
	}
	if entity.Occupied() {
		e.worldMu.Unlock()
		return nil, model.ErrEntityOccupied
	}
	switch entity.Kind {
	case model.EntityTree:
		entity.Tenant = session.Username
		txnType = model.TxnTreeRental
	case model.EntityCrow:
		entity.Renter = session.Username
		txnType = model.TxnCrowRental
	default:
		e.worldMu.Unlock()
		return nil, model.ErrInvalidAction
	}
	e.worldMu.Unlock()

	receipt, err := e.Apply(ctx, txnType, 1, entityID, session)
	if err != nil {
		e.worldMu.Lock()
		entity.Tenant = ""
		entity.Renter = ""
		e.worldMu.Unlock()
		return nil, err
	}

	e.worldMu.Lock()
	cp := *entity
	e.worldMu.Unlock()
	return &InteractResult{Entity: cp, Receipt: receipt}, nil
}

func (e *Engine) purchase(ctx context.Context, session *identity.Session, entityID string) (*InteractResult, error) {
	e.worldMu.Lock()
	entity, ok := e.world[entityID]
	if !ok {
		e.worldMu.Unlock()
		return nil, model.ErrEntityNotFound
	}
	if entity.Kind != model.EntityShop {
		e.worldMu.Unlock()
		return nil, model.ErrInvalidAction
	}
	e.worldMu.Unlock()

	receipt, err := e.Apply(ctx, model.TxnShopPurchase, 1, entityID, session)
	if err != nil {
		return nil, err
	}

	e.worldMu.Lock()
	entity.Owner = session.Username
	cp := *entity
	e.worldMu.Unlock()
	return &InteractResult{Entity: cp, Receipt: receipt}, nil
}

// Entities returns a stable-ordered copy of the world table.
func (e *Engine) Entities() []*model.WorldEntity {
	e.worldMu.Lock()
	defer e.worldMu.Unlock()
	out := make([]*model.WorldEntity, 0, len(e.order))
	for _, id := range e.order {
		cp := *e.world[id]
		out = append(out, &cp)
	}
	return out
}

// Aggregate computes income and occupancy totals. Read-only.
func (e *Engine) Aggregate() Aggregates {
	e.worldMu.Lock()
	defer e.worldMu.Unlock()
	agg := Aggregates{Entities: len(e.world)}
	for _, entity := range e.world {
		agg.TotalIncome += entity.IncomeGenerated
		if entity.Occupied() {
			agg.ActiveRentals++
		}
	}
	return agg
}

// Params returns a copy of the current parameter block.
func (e *Engine) Params() Params {
	e.paramsMu.RLock()
	defer e.paramsMu.RUnlock()
	return e.params
}

// SetFrozen toggles the global transaction freeze.
func (e *Engine) SetFrozen(frozen bool) {
	e.frozenMu.Lock()
	e.frozen = frozen
	e.frozenMu.Unlock()
}

// Frozen reports whether economic transactions are frozen.
func (e *Engine) Frozen() bool {
	e.frozenMu.RLock()
	defer e.frozenMu.RUnlock()
	return e.frozen
}

// ApplySettingEffect routes nature, physics and shop setting changes
// into the parameter block and the world table.
func (e *Engine) ApplySettingEffect(_ context.Context, entry *model.SettingEntry, value any) {
	switch entry.Category {
	case model.CategoryNature, model.CategoryPhysics:
		e.applyParamEffects(entry.Affects, value)
	case model.CategoryShop:
		e.applyShopEffects(entry.Affects, value)
	}
}

func (e *Engine) applyParamEffects(affects []string, value any) {
	e.paramsMu.Lock()
	defer e.paramsMu.Unlock()
	for _, effect := range affects {
		switch effect {
		case "crow_rental_rate":
			if v, ok := toFloat(value); ok {
				e.params.CrowRentalRate = v
			}
		case "tree_oxygen_tax":
			if v, ok := toFloat(value); ok {
				e.params.TreeOxygenTax = v
			}
		case "leaf_growth_speed":
			if v, ok := toFloat(value); ok {
				e.params.LeafGrowthSpeed = v
			}
		case "sky_rotation_angle":
			if v, ok := toFloat(value); ok {
				e.params.SkyRotationAngle = v
			}
		case "gravity_shift":
			if v, ok := toFloat(value); ok {
				e.params.GravityShift = v
			}
		case "object_physics":
			if v, ok := value.(bool); ok {
				e.params.ObjectPhysics = v
			}
		}
	}
}

func (e *Engine) applyShopEffects(affects []string, value any) {
	e.worldMu.Lock()
	defer e.worldMu.Unlock()
	for _, effect := range affects {
		switch effect {
		case "instant_delivery":
			if v, ok := value.(bool); ok {
				for _, entity := range e.world {
					if entity.Kind == model.EntityShop {
						entity.InstantDelivery = v
					}
				}
			}
		case "shop_visibility":
			if v, ok := toFloat(value); ok {
				for _, entity := range e.world {
					if entity.Kind == model.EntityShop {
						entity.Visibility = v
					}
				}
			}
		}
	}
}

// SetParams replaces parameters wholesale (used by tests and wiring).
func (e *Engine) SetParams(params Params) {
	e.paramsMu.Lock()
	e.params = params
	e.paramsMu.Unlock()
}

func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	}
	return 0, false
}
