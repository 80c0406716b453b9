package theme

import (
	"context"
	"sync"

	"github.com/gamiempire/sovereign/internal/model"
)

// State holds the visual theme values driven by visual-category
// settings. Rendering happens outside the core; this is the structured
// boundary the presentation layer reads from.
type State struct {
	mu sync.RWMutex

	primaryColor string
	logoOpacity  float64
	brightness   float64
}

// Values is a read-only copy of the theme state.
type Values struct {
	PrimaryColor string  `json:"primary_color"`
	LogoOpacity  float64 `json:"logo_opacity"`
	Brightness   float64 `json:"brightness"`
}

// New creates a theme State with the platform defaults.
func New() *State {
	return &State{
		primaryColor: "#50C878",
		logoOpacity:  30,
		brightness:   100,
	}
}

// ApplySettingEffect implements the visual-category effect handler.
func (s *State) ApplySettingEffect(_ context.Context, entry *model.SettingEntry, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, effect := range entry.Affects {
		switch effect {
		case "primary_color":
			if v, ok := value.(string); ok {
				s.primaryColor = v
			}
		case "logo_opacity":
			if v, ok := toFloat(value); ok {
				s.logoOpacity = v
			}
		case "interface_brightness":
			if v, ok := toFloat(value); ok {
				s.brightness = v
			}
		}
	}
}

// Values returns the current theme values.
func (s *State) Values() Values {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Values{
		PrimaryColor: s.primaryColor,
		LogoOpacity:  s.logoOpacity,
		Brightness:   s.brightness,
	}
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
