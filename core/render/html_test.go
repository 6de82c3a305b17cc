package render

import (
	"testing"

	"github.com/siherrmann/companygraph/core/graph"
	"github.com/siherrmann/companygraph/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderHTML(t *testing.T) {
	profile := &model.CompanyProfile{
		Name:         "Acme",
		Shareholders: []model.Shareholder{{Name: "Holdco", Ratio: "100%"}},
		SupplyChain:  model.SupplyChain{Upstream: []string{"Foundry"}},
	}

	t.Run("Renders nodes, edges and network options", func(t *testing.T) {
		html, err := RenderHTML(graph.Build(profile), DefaultOptions())
		require.NoError(t, err)

		assert.Contains(t, html, defaultLibraryURL)
		assert.Contains(t, html, "new vis.Network")
		assert.Contains(t, html, `"id":"Acme"`)
		assert.Contains(t, html, `"from":"Holdco"`)
		assert.Contains(t, html, `"dashes":true`)
		assert.Contains(t, html, `"iterations":100`)
		assert.Contains(t, html, `"tooltipDelay":200`)
		assert.Contains(t, html, `"improvedLayout":true`)
		assert.Contains(t, html, `"arrows":"to"`)
		assert.NotContains(t, html, "No relationship data available")
	})

	t.Run("Empty payload renders placeholder", func(t *testing.T) {
		for _, payload := range []*model.GraphPayload{nil, {}} {
			html, err := RenderHTML(payload, Options{})
			require.NoError(t, err)

			assert.Contains(t, html, "No relationship data available")
			assert.NotContains(t, html, "vis.Network")
		}
	})

	t.Run("Options fall back to defaults", func(t *testing.T) {
		html, err := RenderHTML(graph.Build(profile), Options{Title: "Acme graph"})
		require.NoError(t, err)

		assert.Contains(t, html, "<title>Acme graph</title>")
		assert.Contains(t, html, "height: 600px")
		assert.Contains(t, html, "width: 100%")
	})

	t.Run("Unsafe size values are filtered", func(t *testing.T) {
		html, err := RenderHTML(graph.Build(profile), Options{Height: "1px; } body { display:none", Width: "80%"})
		require.NoError(t, err)

		assert.NotContains(t, html, "display:none", "Expected CSS injection to be filtered")
		assert.Contains(t, html, "ZgotmplZ", "Expected unsafe height to be replaced")
		assert.Contains(t, html, "width: 80%")
	})

	t.Run("Labels are escaped", func(t *testing.T) {
		html, err := RenderHTML(graph.Build(&model.CompanyProfile{Name: "</script><b>x"}), DefaultOptions())
		require.NoError(t, err)

		assert.NotContains(t, html, "</script><b>x")
	})
}
