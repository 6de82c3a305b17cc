package analysis

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/siherrmann/companygraph/core/graph"
	"github.com/siherrmann/companygraph/model"
)

var (
	positions = []string{"leading", "important", "key", "core"}
	strengths = []string{"technology", "market", "brand", "supply chain"}

	baseRisks = []string{
		"impact of macroeconomic fluctuations on the industry",
		"industry policy changes",
		"competitive pressure from technology iteration",
		"raw material price volatility",
		"shifts in market demand",
	}

	suggestionsByRisk = map[string][]string{
		model.RiskLevelLow: {
			"consider raising the credit line to support expanded production",
			"offer preferential interest rates to consolidate the banking relationship",
			"explore supply chain finance cooperation to widen the business scope",
		},
		model.RiskLevelMedium: {
			"grant a moderate credit line and keep the risk exposure under control",
			"require full collateral or guarantees",
			"increase the frequency of pre-loan review and post-loan management",
		},
	}
	suggestionsDefault = []string{
		"grant credit cautiously and strictly limit the risk exposure",
		"require strong guarantees and strict conditions on the use of funds",
		"set up an early warning mechanism and review the company regularly",
	}

	creditLimits = map[[2]string]string{
		{model.ScaleLarge, "AAA"}:  "CNY 500M-1B",
		{model.ScaleLarge, "AA"}:   "CNY 300M-800M",
		{model.ScaleLarge, "A"}:    "CNY 100M-500M",
		{model.ScaleMedium, "AAA"}: "CNY 100M-300M",
		{model.ScaleMedium, "AA"}:  "CNY 50M-200M",
		{model.ScaleMedium, "A"}:   "CNY 30M-100M",
	}
	creditLimitDefault = "CNY 30M-80M"

	creditFactors = map[string]float64{
		"AAA": 1.0,
		"AA":  0.9,
		"A":   0.8,
		"BBB": 0.7,
	}
)

const maxCoreRisks = 4

// Analyzer produces credit-analysis narratives and scores from a profile and its graph.
// The narrative parts draw from a random source that can be seeded for reproducible output.
type Analyzer struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// Option configures an Analyzer
type Option func(*Analyzer)

// WithRand sets the random source
func WithRand(rng *rand.Rand) Option {
	return func(a *Analyzer) {
		if rng != nil {
			a.rng = rng
		}
	}
}

// WithSeed seeds a new PCG random source
func WithSeed(seed uint64) Option {
	return func(a *Analyzer) {
		a.rng = rand.New(rand.NewPCG(seed, seed))
	}
}

// NewAnalyzer creates an analyzer, seeded from the current time unless an option sets the source
func NewAnalyzer(opts ...Option) *Analyzer {
	now := uint64(time.Now().UnixNano())
	a := &Analyzer{
		rng: rand.New(rand.NewPCG(now, now>>1)),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *Analyzer) pick(options []string) string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return options[a.rng.IntN(len(options))]
}

// GenerateCreditReport runs every analysis step on profile and payload.
// A nil payload is treated as an empty graph.
func (a *Analyzer) GenerateCreditReport(profile *model.CompanyProfile, payload *model.GraphPayload) *model.CreditReport {
	return &model.CreditReport{
		IndustryChainAnalysis: a.IndustryPosition(profile, payload),
		CoreRisks:             a.CoreRisks(profile),
		FinancialHealth:       a.FinancialHealth(profile),
		CreditSuggestions:     a.CreditSuggestions(profile),
		SupplyChainPosition:   a.SupplyChainStrength(profile),
		EstimatedCreditLimit:  a.EstimateCreditLimit(profile),
	}
}

// IndustryPosition describes the company's place in its industrial chain
func (a *Analyzer) IndustryPosition(profile *model.CompanyProfile, payload *model.GraphPayload) string {
	industry := profile.Industry
	if industry == "" {
		industry = "related"
	}
	scale := profile.Scale
	if scale == "" {
		scale = "company"
	}

	return fmt.Sprintf(
		"As a %s in the %s industry, %s holds a %s position in its industrial chain. "+
			"Built on its %s advantage, it has established a fairly complete industrial ecosystem. "+
			"The relationship graph shows %d associated companies and %d supply-chain relations, "+
			"indicating strong industrial integration capability.",
		scale,
		industry,
		profile.Name,
		a.pick(positions),
		a.pick(strengths),
		graph.CountGroup(payload, model.GroupCompany),
		graph.CountSupplyChainEdges(payload),
	)
}

// CoreRisks samples up to four distinct risks from the macro risks and the company's own risk factors
func (a *Analyzer) CoreRisks(profile *model.CompanyProfile) []string {
	all := make([]string, 0, len(baseRisks)+len(profile.RiskFactors))
	all = append(all, baseRisks...)
	all = append(all, profile.RiskFactors...)

	n := min(maxCoreRisks, len(all))

	a.mu.Lock()
	perm := a.rng.Perm(len(all))
	a.mu.Unlock()

	risks := make([]string, 0, n)
	for _, i := range perm[:n] {
		risks = append(risks, all[i])
	}
	return risks
}

// FinancialHealth scores solvency, profitability, operation, growth and cash flow in [0, 1]
func (a *Analyzer) FinancialHealth(profile *model.CompanyProfile) map[string]float64 {
	scaleFactor := 0.7
	if profile.Scale == model.ScaleLarge {
		scaleFactor = 1.0
	}

	creditFactor, ok := creditFactors[profile.CreditRating]
	if !ok {
		creditFactor = creditFactors["BBB"]
	}

	return map[string]float64{
		"solvency":      score(0.6 + 0.3*scaleFactor*creditFactor),
		"profitability": score(0.5 + 0.4*scaleFactor),
		"operation":     score(0.7 + 0.2*scaleFactor),
		"growth":        score(0.6 + 0.3*creditFactor),
		"cash_flow":     score(0.65 + 0.25*scaleFactor),
	}
}

// SupplyChainStrength scores the company's grip on its upstream and downstream partners
func (a *Analyzer) SupplyChainStrength(profile *model.CompanyProfile) map[string]float64 {
	upstream := float64(len(profile.SupplyChain.Upstream))
	downstream := float64(len(profile.SupplyChain.Downstream))

	return map[string]float64{
		"upstream_integration":  score(0.3 + 0.5*upstream/10),
		"downstream_control":    score(0.4 + 0.4*downstream/10),
		"stability":             0.75,
		"cost_control":          0.68,
		"innovation_dependency": 0.82,
	}
}

// CreditSuggestions returns three lending suggestions for the company's risk level.
// An empty risk level counts as medium.
func (a *Analyzer) CreditSuggestions(profile *model.CompanyProfile) []string {
	level := profile.RiskLevel
	if level == "" {
		level = model.RiskLevelMedium
	}

	suggestions, ok := suggestionsByRisk[level]
	if !ok {
		suggestions = suggestionsDefault
	}
	return append([]string(nil), suggestions...)
}

// EstimateCreditLimit looks up a credit line range by scale and credit rating
func (a *Analyzer) EstimateCreditLimit(profile *model.CompanyProfile) string {
	if limit, ok := creditLimits[[2]string{profile.Scale, profile.CreditRating}]; ok {
		return limit
	}
	return creditLimitDefault
}

// score rounds to two decimals and clamps to [0, 1]
func score(v float64) float64 {
	v = math.Round(v*100) / 100
	return math.Max(0, math.Min(1, v))
}
