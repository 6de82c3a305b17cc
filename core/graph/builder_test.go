package graph

import (
	"encoding/json"
	"testing"

	"github.com/siherrmann/companygraph/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func acmeProfile() *model.CompanyProfile {
	return &model.CompanyProfile{
		Name:         "Acme",
		Industry:     "manufacturing",
		Scale:        model.ScaleMedium,
		CreditRating: "A",
		Shareholders: []model.Shareholder{{Name: "Holdco", Ratio: "100%"}},
		Executives:   []model.Executive{{Name: "Jane", Position: "CEO"}},
		Subsidiaries: []string{"AcmeSub"},
		SupplyChain: model.SupplyChain{
			Upstream:   []string{"Foundry"},
			Downstream: []string{"RetailCo"},
		},
	}
}

func nodeIDs(payload *model.GraphPayload) []string {
	ids := make([]string, 0, len(payload.Nodes))
	for _, n := range payload.Nodes {
		ids = append(ids, n.ID)
	}
	return ids
}

func findEdge(t *testing.T, payload *model.GraphPayload, from, to string) model.GraphEdge {
	t.Helper()
	for _, e := range payload.Edges {
		if e.From == from && e.To == to {
			return e
		}
	}
	require.Failf(t, "edge not found", "%s -> %s", from, to)
	return model.GraphEdge{}
}

func TestBuild(t *testing.T) {
	t.Run("Full profile yields six nodes and five edges", func(t *testing.T) {
		payload := Build(acmeProfile())

		assert.Equal(t, []string{"Acme", "Holdco", "Jane", "AcmeSub", "Foundry", "RetailCo"}, nodeIDs(payload))
		require.Len(t, payload.Edges, 5, "Expected one edge per relation")

		supply := findEdge(t, payload, "Foundry", "Acme")
		assert.True(t, supply.Dashed, "Expected supplier edge to be dashed")
		assert.Equal(t, model.RelationUpstream, supply.Type)

		control := findEdge(t, payload, "Acme", "AcmeSub")
		assert.Equal(t, 3, control.Weight, "Expected subsidiary edge weight 3")
		assert.Equal(t, model.ColorRed, control.Color)
		assert.False(t, control.Dashed)
	})

	t.Run("Empty profile yields only the root node", func(t *testing.T) {
		payload := Build(&model.CompanyProfile{Name: "Acme"})

		require.Len(t, payload.Nodes, 1)
		assert.Equal(t, "Acme", payload.Nodes[0].ID)
		assert.Empty(t, payload.Edges)
	})

	t.Run("Root node attributes", func(t *testing.T) {
		payload := Build(acmeProfile())

		root := payload.Nodes[0]
		assert.Equal(t, model.GroupCompany, root.Group)
		assert.Equal(t, float64(40), root.Size)
		assert.Equal(t, model.ColorPrimaryBlue, root.Color)
		assert.Contains(t, root.TooltipText, "Industry: manufacturing")
		assert.Contains(t, root.TooltipText, "Credit rating: A")
	})

	t.Run("Missing descriptive fields default to unknown", func(t *testing.T) {
		payload := Build(&model.CompanyProfile{Name: "Acme"})

		assert.Contains(t, payload.Nodes[0].TooltipText, "Industry: unknown")
		assert.Contains(t, payload.Nodes[0].TooltipText, "Scale: unknown")
	})

	t.Run("Relation attributes follow the role policy", func(t *testing.T) {
		payload := Build(acmeProfile())

		holds := findEdge(t, payload, "Holdco", "Acme")
		assert.Equal(t, "holds 100%", holds.RelationTooltip)
		assert.Equal(t, 2, holds.Weight)
		assert.Equal(t, model.RelationShareholding, holds.Type)

		serves := findEdge(t, payload, "Acme", "Jane")
		assert.Equal(t, "serves as CEO", serves.RelationTooltip)
		assert.Equal(t, 1, serves.Weight)
		assert.Equal(t, model.ColorGreen, serves.Color)

		customer := findEdge(t, payload, "Acme", "RetailCo")
		assert.True(t, customer.Dashed)
		assert.Equal(t, model.ColorBrown, customer.Color)
		assert.Equal(t, "customer relation", customer.RelationTooltip)

		jane, ok := payload.Node("Jane")
		require.True(t, ok)
		assert.Equal(t, model.GroupPerson, jane.Group)
		assert.Equal(t, "Position: CEO", jane.TooltipText)
	})

	t.Run("Exactly one node per company name", func(t *testing.T) {
		payload := Build(acmeProfile())

		count := 0
		for _, n := range payload.Nodes {
			if n.ID == "Acme" {
				count++
			}
		}
		assert.Equal(t, 1, count)
	})

	t.Run("Duplicate shareholders coalesce to one node", func(t *testing.T) {
		profile := &model.CompanyProfile{
			Name: "Acme",
			Shareholders: []model.Shareholder{
				{Name: "Holdco", Ratio: "60%"},
				{Name: "Fund", Ratio: "30%"},
				{Name: "Holdco", Ratio: "10%"},
			},
		}

		payload := Build(profile)

		assert.Equal(t, 2, CountGroup(payload, model.GroupShareholder))
		holdco, ok := payload.Node("Holdco")
		require.True(t, ok)
		assert.Equal(t, "Holding ratio: 10%", holdco.TooltipText, "Expected last write to win")
		assert.Len(t, payload.Edges, 3, "Expected multi-edge policy to keep every relation")
	})

	t.Run("Supply-chain edges equal upstream plus downstream", func(t *testing.T) {
		profile := &model.CompanyProfile{
			Name: "Acme",
			SupplyChain: model.SupplyChain{
				Upstream:   []string{"A", "B", "A"},
				Downstream: []string{"C", "D"},
			},
		}

		payload := Build(profile)

		assert.Equal(t, 5, CountSupplyChainEdges(payload))
	})

	t.Run("Referential integrity", func(t *testing.T) {
		payload := Build(acmeProfile())

		ids := make(map[string]bool)
		for _, n := range payload.Nodes {
			ids[n.ID] = true
		}
		for _, e := range payload.Edges {
			assert.True(t, ids[e.From], "Expected edge source %s to exist", e.From)
			assert.True(t, ids[e.To], "Expected edge target %s to exist", e.To)
		}
	})

	t.Run("Build is pure and does not mutate input", func(t *testing.T) {
		profile := acmeProfile()
		before := profile.Clone()
		builder := NewBuilder(model.DefaultBuildConfig())

		first := builder.Build(profile)
		second := builder.Build(profile)

		assert.Equal(t, first, second, "Expected identical payloads")
		assert.Equal(t, before, profile, "Expected profile to be unchanged")
	})

	t.Run("Builder keeps no state between calls", func(t *testing.T) {
		builder := NewBuilder(model.DefaultBuildConfig())

		builder.Build(acmeProfile())
		payload := builder.Build(&model.CompanyProfile{Name: "Other"})

		assert.Equal(t, []string{"Other"}, nodeIDs(payload))
		assert.Empty(t, payload.Edges)
	})

	t.Run("Person in two roles keeps first position and last group", func(t *testing.T) {
		profile := &model.CompanyProfile{
			Name:         "Tencent",
			Shareholders: []model.Shareholder{{Name: "Pony", Ratio: "8.38%"}},
			Executives:   []model.Executive{{Name: "Pony", Position: "Chairman"}},
		}

		payload := Build(profile)

		assert.Equal(t, []string{"Tencent", "Pony"}, nodeIDs(payload))
		assert.Equal(t, model.GroupPerson, payload.Nodes[1].Group)
		assert.Nil(t, payload.Nodes[1].Roles, "Expected roles only under merge policy")
		assert.Len(t, payload.Edges, 2)
	})

	t.Run("Subsidiary named like the root overwrites root attributes", func(t *testing.T) {
		profile := &model.CompanyProfile{Name: "Acme", Subsidiaries: []string{"Acme"}}

		payload := Build(profile)

		require.Len(t, payload.Nodes, 1)
		assert.Equal(t, float64(30), payload.Nodes[0].Size)
		assert.Equal(t, "subsidiary", payload.Nodes[0].TooltipText)
		require.Len(t, payload.Edges, 1)
		assert.Equal(t, "Acme", payload.Edges[0].From)
		assert.Equal(t, "Acme", payload.Edges[0].To)
	})
}

func TestBuildJSON(t *testing.T) {
	t.Run("Round trip preserves payload", func(t *testing.T) {
		payload := Build(acmeProfile())

		data, err := json.Marshal(payload)
		require.NoError(t, err)

		var restored model.GraphPayload
		require.NoError(t, json.Unmarshal(data, &restored))

		assert.Equal(t, *payload, restored)
	})

	t.Run("Payload uses vis-network field names", func(t *testing.T) {
		payload := Build(acmeProfile())

		data, err := json.Marshal(payload)
		require.NoError(t, err)

		var raw map[string][]map[string]interface{}
		require.NoError(t, json.Unmarshal(data, &raw))

		node := raw["nodes"][0]
		for _, key := range []string{"id", "label", "group", "title", "size", "color"} {
			assert.Contains(t, node, key)
		}
		assert.NotContains(t, node, "roles")

		edge := raw["edges"][0]
		for _, key := range []string{"from", "to", "title", "value", "color", "dashes", "type"} {
			assert.Contains(t, edge, key)
		}
	})

	t.Run("Empty payload serializes arrays", func(t *testing.T) {
		data, err := json.Marshal(model.GraphPayload{})

		require.NoError(t, err)
		assert.JSONEq(t, `{"nodes":[],"edges":[]}`, string(data))
	})
}
