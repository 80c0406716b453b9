package economy

import "github.com/gamiempire/sovereign/internal/model"

// seedEntities returns the fixed world population created at
// initialization. Instance state lives for the process lifetime.
func seedEntities() []*model.WorldEntity {
	return []*model.WorldEntity{
		{
			ID:          "tree_001",
			Kind:        model.EntityTree,
			Name:        "Sovereign Tree",
			Owner:       "system",
			RentalRate:  10,
			OxygenTax:   5,
			GrowthSpeed: 1.0,
		},
		{
			ID:         "crow_001",
			Kind:       model.EntityCrow,
			Name:       "Crow Rental Service",
			Owner:      "system",
			RentalRate: 15,
		},
		{
			ID:              "shop_001",
			Kind:            model.EntityShop,
			Name:            "Business Center",
			Owner:           "system",
			BasePrice:       1000,
			Visibility:      100,
			InstantDelivery: true,
		},
	}
}
