package provider

import (
	"github.com/siherrmann/companygraph/model"
)

// MockProvider serves a fixed in-memory set of sample companies
type MockProvider struct {
	profiles map[string]*model.CompanyProfile
}

// NewMockProvider returns a provider with the bundled sample companies
func NewMockProvider() *MockProvider {
	return NewStaticProvider(sampleProfiles()...)
}

// NewStaticProvider returns a provider serving the given profiles, keyed by name
func NewStaticProvider(profiles ...*model.CompanyProfile) *MockProvider {
	m := &MockProvider{profiles: make(map[string]*model.CompanyProfile, len(profiles))}
	for _, p := range profiles {
		m.profiles[p.Name] = p.Clone()
	}
	return m
}

// Lookup returns a copy of the stored profile
func (m *MockProvider) Lookup(name string) (*model.CompanyProfile, error) {
	p, ok := m.profiles[name]
	if !ok {
		return nil, model.ErrProfileNotFound
	}
	return p.Clone(), nil
}

// Names lists the companies the provider knows
func (m *MockProvider) Names() []string {
	names := make([]string, 0, len(m.profiles))
	for name := range m.profiles {
		names = append(names, name)
	}
	return names
}

func sampleProfiles() []*model.CompanyProfile {
	return []*model.CompanyProfile{
		{
			Name:          "华为技术有限公司",
			Scale:         model.ScaleLarge,
			EstablishYear: 36,
			Industry:      "technology",
			CreditRating:  "AA",
			RiskLevel:     model.RiskLevelLow,
			Revenue:       "CNY 891.4B",
			Employees:     "195000",
			BusinessScope: "ICT infrastructure and smart devices",
			Shareholders: []model.Shareholder{
				{Name: "华为投资控股有限公司", Ratio: "100%"},
			},
			Executives: []model.Executive{
				{Name: "梁华", Position: "Chairman"},
				{Name: "孟晚舟", Position: "Deputy Chairwoman, CFO"},
			},
			Subsidiaries: []string{"华为终端有限公司", "华为海洋网络有限公司", "海思半导体有限公司"},
			SupplyChain: model.SupplyChain{
				Upstream:   []string{"台积电", "中芯国际", "索尼"},
				Downstream: []string{"中国移动", "中国电信", "德国电信"},
			},
			RiskFactors: []string{
				"changes in the international trade environment",
				"technology embargo risk",
				"intensifying market competition",
			},
		},
		{
			Name:          "腾讯科技有限公司",
			Scale:         model.ScaleLarge,
			EstablishYear: 25,
			Industry:      "technology",
			CreditRating:  "AAA",
			RiskLevel:     model.RiskLevelLow,
			Revenue:       "CNY 560.1B",
			Employees:     "112771",
			BusinessScope: "social networking, games, digital content",
			Shareholders: []model.Shareholder{
				{Name: "MIH TC Holdings Limited", Ratio: "28.82%"},
				{Name: "马化腾", Ratio: "8.38%"},
			},
			Executives: []model.Executive{
				{Name: "马化腾", Position: "Chairman and CEO"},
				{Name: "刘炽平", Position: "Executive Director and President"},
			},
			Subsidiaries: []string{"腾讯计算机系统有限公司", "腾讯音乐娱乐集团", "阅文集团"},
			SupplyChain: model.SupplyChain{
				Upstream:   []string{"content creators", "game developers", "technology service providers"},
				Downstream: []string{"end users", "advertisers", "enterprise customers"},
			},
			RiskFactors: []string{
				"regulatory policy changes",
				"slowing user growth",
				"disruption from emerging technologies",
			},
		},
	}
}
