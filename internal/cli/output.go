package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case SessionResult:
		o.printSession(v)
	case Setting:
		o.printSetting(v)
	case SettingUpdate:
		o.printSettingUpdate(v)
	case Receipt:
		o.printReceipt(v)
	case EntityList:
		o.printEntityList(v)
	case InteractResult:
		o.printInteractResult(v)
	case WealthResult:
		o.printWealth(v)
	case TransactionList:
		o.printTransactions(v)
	case AuditList:
		o.printAudit(v)
	case StatusResult:
		o.printStatus(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// SessionResult response type (matches API)
type SessionResult struct {
	Token     string   `json:"token"`
	Username  string   `json:"username"`
	Admin     bool     `json:"admin"`
	Ghost     bool     `json:"ghost"`
	Wealth    float64  `json:"wealth"`
	Assets    []string `json:"assets"`
	CreatedAt string   `json:"created_at"`
}

// Setting response type
type Setting struct {
	Key      string   `json:"key"`
	Category string   `json:"category"`
	Kind     string   `json:"kind"`
	Default  any      `json:"default"`
	Current  any      `json:"current"`
	Path     string   `json:"path"`
	Affects  []string `json:"affects"`
}

// SettingUpdate response type
type SettingUpdate struct {
	Key     string `json:"key"`
	Updated bool   `json:"updated"`
}

// Receipt response type
type Receipt struct {
	Type      string    `json:"type"`
	Gross     float64   `json:"gross_amount"`
	Tax       float64   `json:"tax_amount"`
	Net       float64   `json:"net_amount"`
	Wealth    float64   `json:"wealth"`
	EntityID  string    `json:"entity_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Entity response type
type Entity struct {
	ID              string  `json:"id"`
	Kind            string  `json:"kind"`
	Name            string  `json:"name"`
	Owner           string  `json:"owner"`
	Tenant          string  `json:"tenant,omitempty"`
	Renter          string  `json:"renter,omitempty"`
	IncomeGenerated float64 `json:"income_generated"`
}

// EntityEntry pairs an entity with its action surface
type EntityEntry struct {
	Entity  Entity   `json:"entity"`
	Actions []string `json:"actions"`
}

// EntityList response type
type EntityList struct {
	Entities []EntityEntry `json:"entities"`
}

// InteractResult response type
type InteractResult struct {
	Entity  Entity   `json:"entity"`
	Receipt *Receipt `json:"receipt,omitempty"`
	Info    any      `json:"info,omitempty"`
}

// WealthResult response type
type WealthResult struct {
	Username            string   `json:"username"`
	Wealth              float64  `json:"wealth"`
	Assets              []string `json:"assets"`
	AssetCount          int      `json:"asset_count"`
	EstimatedAssetValue float64  `json:"estimated_asset_value"`
	NetWorth            float64  `json:"net_worth"`
	RankTier            string   `json:"rank_tier"`
	DailyIncome         float64  `json:"daily_income"`
}

// Transaction response type
type Transaction struct {
	Sequence  int64     `json:"sequence"`
	Type      string    `json:"type"`
	Gross     float64   `json:"gross_amount"`
	Tax       float64   `json:"tax_amount"`
	Net       float64   `json:"net_amount"`
	EntityID  string    `json:"entity_id,omitempty"`
	Username  string    `json:"username"`
	Timestamp time.Time `json:"timestamp"`
}

// TransactionList response type
type TransactionList struct {
	Transactions []Transaction `json:"transactions"`
}

// AuditEvent response type
type AuditEvent struct {
	Kind      string         `json:"kind"`
	Username  string         `json:"username,omitempty"`
	Payload   map[string]any `json:"payload,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// AuditList response type
type AuditList struct {
	Events []AuditEvent `json:"events"`
}

// StatusResult response type
type StatusResult struct {
	ActiveSessions int     `json:"active_sessions"`
	ActiveUsers    int     `json:"active_users"`
	UptimeSeconds  float64 `json:"uptime_seconds"`

	ActiveSettings int  `json:"active_settings"`
	TotalSettings  int  `json:"total_settings"`
	GhostEnabled   bool `json:"ghost_enabled"`
	AssetsFrozen   bool `json:"assets_frozen"`
	Economy        struct {
		TotalIncome   float64 `json:"total_income"`
		ActiveRentals int     `json:"active_rentals"`
		Entities      int     `json:"entities"`
	} `json:"economy"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printSession(s SessionResult) {
	adminStr := "no"
	if s.Admin {
		adminStr = "yes"
	}
	fmt.Printf("User: %s\n", s.Username)
	fmt.Printf("Admin: %s\n", adminStr)
	if s.Ghost {
		fmt.Println("Ghost session: yes")
	}
	fmt.Printf("Wealth: %.2f\n", s.Wealth)
	if len(s.Assets) > 0 {
		fmt.Printf("Assets: %s\n", strings.Join(s.Assets, ", "))
	}
	fmt.Printf("Token: %s\n", s.Token)
}

func (o *Output) printSetting(s Setting) {
	fmt.Printf("Setting: %s\n", s.Key)
	fmt.Printf("Category: %s\n", s.Category)
	fmt.Printf("Kind: %s\n", s.Kind)
	fmt.Printf("Path: %s\n", s.Path)
	fmt.Printf("Default: %v\n", s.Default)
	fmt.Printf("Current: %v\n", s.Current)
	if len(s.Affects) > 0 {
		fmt.Printf("Affects: %s\n", strings.Join(s.Affects, ", "))
	}
}

func (o *Output) printSettingUpdate(u SettingUpdate) {
	if u.Updated {
		fmt.Printf("Setting %s updated\n", u.Key)
	} else {
		fmt.Printf("Setting %s not updated\n", u.Key)
	}
}

func (o *Output) printReceipt(r Receipt) {
	fmt.Printf("Transaction: %s\n", r.Type)
	if r.EntityID != "" {
		fmt.Printf("Entity: %s\n", r.EntityID)
	}
	fmt.Printf("Gross: %.2f\n", r.Gross)
	fmt.Printf("Tax: %.2f\n", r.Tax)
	fmt.Printf("Net: %.2f\n", r.Net)
	fmt.Printf("Wealth: %.2f\n", r.Wealth)
}

func (o *Output) printEntityList(l EntityList) {
	fmt.Printf("Entities (%d):\n", len(l.Entities))
	for _, e := range l.Entities {
		occupant := ""
		if e.Entity.Tenant != "" {
			occupant = fmt.Sprintf(" [tenant: %s]", e.Entity.Tenant)
		} else if e.Entity.Renter != "" {
			occupant = fmt.Sprintf(" [renter: %s]", e.Entity.Renter)
		}
		fmt.Printf("  - %s (%s, %s)%s\n", e.Entity.Name, e.Entity.ID, e.Entity.Kind, occupant)
		fmt.Printf("    income: %.2f, actions: %s\n", e.Entity.IncomeGenerated, strings.Join(e.Actions, ", "))
	}
}

func (o *Output) printInteractResult(r InteractResult) {
	fmt.Printf("Entity: %s (%s)\n", r.Entity.Name, r.Entity.ID)
	if r.Receipt != nil {
		o.printReceipt(*r.Receipt)
	}
	if r.Info != nil {
		o.printJSON(r.Info)
	}
}

func (o *Output) printWealth(w WealthResult) {
	fmt.Printf("User: %s\n", w.Username)
	fmt.Printf("Wealth: %.2f (%s)\n", w.Wealth, w.RankTier)
	fmt.Printf("Net worth: %.2f (%d assets valued at %.2f)\n", w.NetWorth, w.AssetCount, w.EstimatedAssetValue)
	fmt.Printf("Daily income: %.2f\n", w.DailyIncome)
	if len(w.Assets) > 0 {
		fmt.Printf("Assets: %s\n", strings.Join(w.Assets, ", "))
	}
}

func (o *Output) printTransactions(l TransactionList) {
	fmt.Printf("Transactions (%d):\n", len(l.Transactions))
	for _, t := range l.Transactions {
		fmt.Printf("  #%d %s gross=%.2f tax=%.2f net=%.2f\n", t.Sequence, t.Type, t.Gross, t.Tax, t.Net)
	}
}

func (o *Output) printAudit(l AuditList) {
	fmt.Printf("Audit events (%d):\n", len(l.Events))
	for _, e := range l.Events {
		user := e.Username
		if user == "" {
			user = "-"
		}
		fmt.Printf("  %s %s %s\n", e.Timestamp.Format(time.RFC3339), e.Kind, user)
	}
}

func (o *Output) printStatus(s StatusResult) {
	fmt.Printf("Active Sessions: %d (%d users)\n", s.ActiveSessions, s.ActiveUsers)
	fmt.Printf("Uptime: %.0fs\n", s.UptimeSeconds)
	fmt.Printf("Active Settings: %d / %d\n", s.ActiveSettings, s.TotalSettings)
	fmt.Printf("Ghost Access: %t\n", s.GhostEnabled)
	fmt.Printf("Assets Frozen: %t\n", s.AssetsFrozen)
	fmt.Printf("Economy: income=%.2f rentals=%d entities=%d\n",
		s.Economy.TotalIncome, s.Economy.ActiveRentals, s.Economy.Entities)
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
