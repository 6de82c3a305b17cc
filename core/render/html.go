package render

import (
	"bytes"
	"html/template"

	"github.com/siherrmann/companygraph/helper"
	"github.com/siherrmann/companygraph/model"
)

const defaultLibraryURL = "https://unpkg.com/vis-network@9.1.9/standalone/umd/vis-network.min.js"

// Options configures the rendered page
type Options struct {
	Title      string
	Height     string
	Width      string
	LibraryURL string
}

// DefaultOptions returns a 600px high full-width page
func DefaultOptions() Options {
	return Options{
		Title:      "Company relationship graph",
		Height:     "600px",
		Width:      "100%",
		LibraryURL: defaultLibraryURL,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Title == "" {
		o.Title = d.Title
	}
	if o.Height == "" {
		o.Height = d.Height
	}
	if o.Width == "" {
		o.Width = d.Width
	}
	if o.LibraryURL == "" {
		o.LibraryURL = d.LibraryURL
	}
	return o
}

type networkOptions struct {
	Edges       edgeOptions                `json:"edges"`
	Physics     physicsOptions             `json:"physics"`
	Interaction interactionOptions         `json:"interaction"`
	Layout      layoutOptions              `json:"layout"`
	Groups      map[model.Group]groupStyle `json:"groups"`
}

type edgeOptions struct {
	Arrows string `json:"arrows"`
}

type physicsOptions struct {
	Enabled       bool                 `json:"enabled"`
	Stabilization stabilizationOptions `json:"stabilization"`
}

type stabilizationOptions struct {
	Iterations int `json:"iterations"`
}

type interactionOptions struct {
	Hover        bool `json:"hover"`
	TooltipDelay int  `json:"tooltipDelay"`
}

type layoutOptions struct {
	ImprovedLayout bool `json:"improvedLayout"`
}

type groupStyle struct {
	Color string `json:"color"`
	Shape string `json:"shape"`
}

func defaultNetworkOptions() networkOptions {
	return networkOptions{
		Edges:       edgeOptions{Arrows: "to"},
		Physics:     physicsOptions{Enabled: true, Stabilization: stabilizationOptions{Iterations: 100}},
		Interaction: interactionOptions{Hover: true, TooltipDelay: 200},
		Layout:      layoutOptions{ImprovedLayout: true},
		Groups: map[model.Group]groupStyle{
			model.GroupCompany:     {Color: model.ColorPrimaryBlue, Shape: "dot"},
			model.GroupShareholder: {Color: model.ColorSecondaryOrange, Shape: "dot"},
			model.GroupPerson:      {Color: model.ColorGreen, Shape: "dot"},
			model.GroupSupplier:    {Color: model.ColorPurple, Shape: "diamond"},
			model.GroupCustomer:    {Color: model.ColorBrown, Shape: "triangle"},
			model.GroupDefault:     {Color: model.ColorDefaultNode, Shape: "dot"},
		},
	}
}

var page = template.Must(template.New("graph").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
{{- if not .Empty}}
<script type="text/javascript" src="{{.LibraryURL}}"></script>
{{- end}}
<style>
#graph { width: {{.Width}}; height: {{.Height}}; border: 1px solid lightgray; }
.placeholder { display: flex; align-items: center; justify-content: center; color: gray; font-family: sans-serif; }
</style>
</head>
<body>
{{- if .Empty}}
<div id="graph" class="placeholder">No relationship data available</div>
{{- else}}
<div id="graph"></div>
<script type="text/javascript">
var nodes = new vis.DataSet({{.Nodes}});
var edges = new vis.DataSet({{.Edges}});
var container = document.getElementById("graph");
var network = new vis.Network(container, {nodes: nodes, edges: edges}, {{.Options}});
</script>
{{- end}}
</body>
</html>
`))

type pageData struct {
	Title      string
	Height     string
	Width      string
	LibraryURL string
	Empty      bool
	Nodes      []model.GraphNode
	Edges      []model.GraphEdge
	Options    networkOptions
}

// RenderHTML renders payload as a self-contained interactive vis-network page.
// An empty payload renders a placeholder page instead of an empty canvas.
func RenderHTML(payload *model.GraphPayload, opts Options) (string, error) {
	opts = opts.withDefaults()

	data := pageData{
		Title:      opts.Title,
		Height:     opts.Height,
		Width:      opts.Width,
		LibraryURL: opts.LibraryURL,
		Empty:      payload == nil || len(payload.Nodes) == 0,
		Options:    defaultNetworkOptions(),
	}
	if !data.Empty {
		data.Nodes = payload.Nodes
		data.Edges = payload.Edges
		if data.Edges == nil {
			data.Edges = []model.GraphEdge{}
		}
	}

	var buf bytes.Buffer
	err := page.Execute(&buf, data)
	if err != nil {
		return "", helper.NewError("render html", err)
	}

	return buf.String(), nil
}
