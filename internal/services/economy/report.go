package economy

import (
	"github.com/gamiempire/sovereign/internal/services/identity"
)

const (
	// Flat per-asset valuation used by the wealth report.
	assetUnitValue = 1000

	dailyIncomeBase = 100
)

// WealthReport is the valuation summary for one session's holdings.
type WealthReport struct {
	Username            string   `json:"username"`
	Wealth              float64  `json:"wealth"`
	Assets              []string `json:"assets"`
	AssetCount          int      `json:"asset_count"`
	EstimatedAssetValue float64  `json:"estimated_asset_value"`
	NetWorth            float64  `json:"net_worth"`
	RankTier            string   `json:"rank_tier"`
	DailyIncome         float64  `json:"daily_income"`
}

// Report values the session's wealth and assets against the current
// economic parameters.
func (e *Engine) Report(session *identity.Session) WealthReport {
	params := e.Params()
	wealth, assets := session.Balance()
	assetValue := float64(len(assets)) * assetUnitValue

	return WealthReport{
		Username:            session.Username,
		Wealth:              wealth,
		Assets:              assets,
		AssetCount:          len(assets),
		EstimatedAssetValue: assetValue,
		NetWorth:            wealth + assetValue,
		RankTier:            rankTier(wealth),
		DailyIncome:         dailyIncomeBase * params.WealthMultiplier * params.PassiveIncome / 100,
	}
}

func rankTier(wealth float64) string {
	switch {
	case wealth < 1000:
		return "Novice"
	case wealth < 10000:
		return "Apprentice"
	case wealth < 100000:
		return "Professional"
	case wealth < 1000000:
		return "Expert"
	default:
		return "Sovereign"
	}
}
