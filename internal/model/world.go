package model

// EntityKind is the kind of an ownable world entity.
type EntityKind string

const (
	EntityTree EntityKind = "tree"
	EntityCrow EntityKind = "crow"
	EntityShop EntityKind = "shop"
)

// WorldEntity is an ownable, occupiable economic asset instance.
// At most one of Tenant/Renter is set at any time.
type WorldEntity struct {
	ID   string     `json:"id"`
	Kind EntityKind `json:"kind"`
	Name string     `json:"name"`

	Owner string `json:"owner"`

	// Kind-specific economic parameters. Trees use RentalRate and
	// OxygenTax, crows use RentalRate, shops use BasePrice.
	RentalRate      float64 `json:"rental_rate,omitempty"`
	OxygenTax       float64 `json:"oxygen_tax,omitempty"`
	GrowthSpeed     float64 `json:"growth_speed,omitempty"`
	BasePrice       float64 `json:"base_price,omitempty"`
	Visibility      float64 `json:"visibility,omitempty"`
	InstantDelivery bool    `json:"instant_delivery,omitempty"`

	Tenant          string  `json:"tenant,omitempty"`
	Renter          string  `json:"renter,omitempty"`
	IncomeGenerated float64 `json:"income_generated"`
}

// Occupied reports whether the entity currently has a tenant or renter.
func (e *WorldEntity) Occupied() bool {
	return e.Tenant != "" || e.Renter != ""
}

// AvailableActions lists the actions the interaction endpoint accepts
// for this entity's kind.
func (e *WorldEntity) AvailableActions() []string {
	switch e.Kind {
	case EntityTree:
		return []string{"rent", "info", "collect_oxygen"}
	case EntityCrow:
		return []string{"rent", "info", "send_message"}
	case EntityShop:
		return []string{"purchase", "info", "upgrade"}
	default:
		return []string{"info"}
	}
}
