package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompanyProfileClone(t *testing.T) {
	t.Run("Clone is a deep copy", func(t *testing.T) {
		profile := &CompanyProfile{
			Name:         "Acme",
			Shareholders: []Shareholder{{Name: "Holdco", Ratio: "100%"}},
			Executives:   []Executive{{Name: "Jane", Position: "CEO"}},
			Subsidiaries: []string{"AcmeSub"},
			SupplyChain:  SupplyChain{Upstream: []string{"Foundry"}, Downstream: []string{"RetailCo"}},
			RiskFactors:  []string{"risk"},
		}

		clone := profile.Clone()
		assert.Equal(t, profile, clone)

		clone.Shareholders[0].Name = "Other"
		clone.Executives[0].Position = "CFO"
		clone.Subsidiaries[0] = "Other"
		clone.SupplyChain.Upstream[0] = "Other"
		clone.SupplyChain.Downstream[0] = "Other"
		clone.RiskFactors[0] = "Other"

		assert.Equal(t, "Holdco", profile.Shareholders[0].Name)
		assert.Equal(t, "CEO", profile.Executives[0].Position)
		assert.Equal(t, "AcmeSub", profile.Subsidiaries[0])
		assert.Equal(t, "Foundry", profile.SupplyChain.Upstream[0])
		assert.Equal(t, "RetailCo", profile.SupplyChain.Downstream[0])
		assert.Equal(t, "risk", profile.RiskFactors[0])
	})

	t.Run("Clone of nil is nil", func(t *testing.T) {
		var profile *CompanyProfile
		assert.Nil(t, profile.Clone())
	})
}

func TestRelationType(t *testing.T) {
	assert.True(t, RelationUpstream.IsSupplyChain())
	assert.True(t, GraphEdge{Type: RelationDownstream}.IsSupplyChain())
	assert.False(t, RelationSubsidiary.IsSupplyChain())
	assert.False(t, RelationShareholding.IsSupplyChain())
}
