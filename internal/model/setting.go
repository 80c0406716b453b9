package model

import "reflect"

// SettingCategory identifies which subsystem a setting routes to.
// Dispatch is keyed on this value, resolved once at registration time.
type SettingCategory string

const (
	CategoryNature  SettingCategory = "nature"
	CategoryPhysics SettingCategory = "physics"
	CategoryAdmin   SettingCategory = "admin"
	CategoryShop    SettingCategory = "shop"
	CategoryVisual  SettingCategory = "visual"
)

// ControlKind is the UI control type of a setting entry.
type ControlKind string

const (
	KindToggle   ControlKind = "toggle"
	KindSlider   ControlKind = "slider"
	KindColor    ControlKind = "color"
	KindReadOnly ControlKind = "readonly"
)

// SettingEntry is one addressable configuration control. The key is
// immutable once registered; only Current changes.
type SettingEntry struct {
	Key      string          `json:"key"`
	Category SettingCategory `json:"category"`
	Kind     ControlKind     `json:"kind"`
	Default  any             `json:"default"`
	Current  any             `json:"current"`
	Path     string          `json:"path"`
	Affects  []string        `json:"affects"`
}

// IsDefault reports whether the entry still holds its default value.
// DeepEqual keeps the comparison total even for values that arrive
// from JSON as slices or maps.
func (e *SettingEntry) IsDefault() bool {
	return reflect.DeepEqual(e.Current, e.Default)
}
