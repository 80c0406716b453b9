package settings

import (
	"fmt"

	"github.com/gamiempire/sovereign/internal/model"
)

// categorySpec declares how one category's entries are generated. The
// catalog is evaluated exactly once at registry construction and yields
// identical keys, kinds and defaults across runs.
type categorySpec struct {
	category model.SettingCategory
	count    int
	path     string
	affects  []string
	kind     func(i int) model.ControlKind
	def      func(i int) any
}

// catalog is the full declarative table: five categories, 100 entries
// each, keys {category}_setting_{i} with 1-based contiguous indexes.
var catalog = []categorySpec{
	{
		category: model.CategoryNature,
		count:    100,
		path:     "sovereign_menu > economic_dashboard > nature_control",
		affects:  []string{"crow_rental_rate", "tree_oxygen_tax", "leaf_growth_speed"},
		kind: func(i int) model.ControlKind {
			if i <= 50 {
				return model.KindToggle
			}
			return model.KindSlider
		},
		def: func(i int) any {
			if i <= 50 {
				return false
			}
			return float64(50)
		},
	},
	{
		category: model.CategoryPhysics,
		count:    100,
		path:     "sovereign_menu > world_control > physics_engine",
		affects:  []string{"sky_rotation_angle", "gravity_shift", "object_physics"},
		kind: func(i int) model.ControlKind {
			if i <= 25 {
				return model.KindToggle
			}
			return model.KindSlider
		},
		def: func(i int) any {
			if i <= 25 {
				return true
			}
			return float64(0)
		},
	},
	{
		category: model.CategoryAdmin,
		count:    100,
		path:     "sovereign_menu > admin_protocols > control_panel",
		affects:  []string{"user_intercept", "ghost_access", "asset_freeze"},
		kind:     func(int) model.ControlKind { return model.KindToggle },
		def:      func(int) any { return false },
	},
	{
		category: model.CategoryShop,
		count:    100,
		path:     "sovereign_menu > asset_management > shop_control",
		affects:  []string{"instant_delivery", "shop_visibility", "pricing_algorithm"},
		kind: func(i int) model.ControlKind {
			if i <= 50 {
				return model.KindToggle
			}
			return model.KindSlider
		},
		def: func(i int) any {
			if i <= 50 {
				return true
			}
			return float64(100)
		},
	},
	{
		category: model.CategoryVisual,
		count:    100,
		path:     "sovereign_menu > interface_control > theme_editor",
		affects:  []string{"primary_color", "logo_opacity", "interface_brightness"},
		kind: func(i int) model.ControlKind {
			if i <= 25 {
				return model.KindColor
			}
			return model.KindSlider
		},
		def: func(i int) any {
			if i <= 25 {
				return "#FFFFFF"
			}
			return float64(100)
		},
	},
}

// generate materializes the catalog in registration order.
func generate() []*model.SettingEntry {
	var entries []*model.SettingEntry
	for _, spec := range catalog {
		for i := 1; i <= spec.count; i++ {
			def := spec.def(i)
			entries = append(entries, &model.SettingEntry{
				Key:      fmt.Sprintf("%s_setting_%d", spec.category, i),
				Category: spec.category,
				Kind:     spec.kind(i),
				Default:  def,
				Current:  def,
				Path:     spec.path,
				Affects:  spec.affects,
			})
		}
	}
	return entries
}
