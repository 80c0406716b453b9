package settings

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/gamiempire/sovereign/internal/model"
	"github.com/gamiempire/sovereign/internal/services/audit"
)

// EffectHandler applies a setting change to the subsystem owning the
// entry's category. Handlers consult the entry's Affects list; they
// never re-parse the key.
type EffectHandler interface {
	ApplySettingEffect(ctx context.Context, entry *model.SettingEntry, value any)
}

// Registry is the in-memory catalog of configuration entries. It is
// populated once at construction; keys are immutable, only current
// values change. All mutation goes through Update so every change is
// dispatched and audited.
type Registry struct {
	audit  *audit.Logger
	logger *slog.Logger

	mu      sync.RWMutex
	entries []*model.SettingEntry
	index   map[string]int
	routes  map[model.SettingCategory]EffectHandler
}

// New creates a Registry populated from the declarative catalog.
func New(auditor *audit.Logger, logger *slog.Logger) *Registry {
	entries := generate()
	index := make(map[string]int, len(entries))
	for i, entry := range entries {
		index[entry.Key] = i
	}

	return &Registry{
		audit:   auditor,
		logger:  logger,
		entries: entries,
		index:   index,
		routes:  make(map[model.SettingCategory]EffectHandler),
	}
}

// Route binds a category to its effect handler. Called once at wiring
// time; an unrouted category's updates still store and audit.
func (r *Registry) Route(category model.SettingCategory, handler EffectHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.routes[category] = handler
}

// Lookup finds the first entry (in registration order) whose key
// contains the query, case-insensitively. A nil result is a normal
// outcome, not an error.
func (r *Registry) Lookup(query string) *model.SettingEntry {
	if query == "" {
		return nil
	}
	needle := strings.ToLower(query)

	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, entry := range r.entries {
		if strings.Contains(strings.ToLower(entry.Key), needle) {
			cp := *entry
			return &cp
		}
	}
	return nil
}

// Update stores a new current value for key and dispatches the change
// to the owning subsystem. Returns false for an unknown key without
// auditing; an unknown key is a documented non-exceptional outcome.
func (r *Registry) Update(ctx context.Context, username, key string, value any) bool {
	value = normalize(value)

	r.mu.Lock()
	i, ok := r.index[key]
	if !ok {
		r.mu.Unlock()
		return false
	}
	entry := r.entries[i]
	entry.Current = value
	cp := *entry
	handler := r.routes[entry.Category]
	r.mu.Unlock()

	if handler != nil {
		handler.ApplySettingEffect(ctx, &cp, value)
	} else {
		r.logger.Debug("no effect handler routed for category",
			slog.String("category", string(cp.Category)))
	}

	r.audit.Record(ctx, model.AuditSettingUpdated, username, map[string]any{
		"setting": key,
		"value":   value,
	})
	return true
}

// ActiveCount returns how many entries differ from their default.
func (r *Registry) ActiveCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	count := 0
	for _, entry := range r.entries {
		if !entry.IsDefault() {
			count++
		}
	}
	return count
}

// Total returns the number of registered entries.
func (r *Registry) Total() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Overrides returns the current values of all non-default entries,
// keyed by setting key. Used by the snapshot task.
func (r *Registry) Overrides() map[string]any {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]any)
	for _, entry := range r.entries {
		if !entry.IsDefault() {
			out[entry.Key] = entry.Current
		}
	}
	return out
}

// normalize folds every numeric representation into float64 so stored
// current values compare uniformly against slider defaults.
func normalize(value any) any {
	switch v := value.(type) {
	case int:
		return float64(v)
	case int32:
		return float64(v)
	case int64:
		return float64(v)
	case float32:
		return float64(v)
	default:
		return value
	}
}
