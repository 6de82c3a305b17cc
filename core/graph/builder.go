package graph

import (
	"fmt"
	"strings"

	"github.com/siherrmann/companygraph/model"
)

const unknown = "unknown"

// Builder converts a company profile into a graph payload.
// A Builder holds one working graph that is cleared on every Build call,
// so an instance must not be shared between goroutines.
type Builder struct {
	graph *workingGraph
}

// NewBuilder creates a builder with the given node and edge policies
func NewBuilder(config model.BuildConfig) *Builder {
	return &Builder{
		graph: newWorkingGraph(config),
	}
}

// Config returns the effective configuration after defaults were applied
func (b *Builder) Config() model.BuildConfig {
	return b.graph.config
}

// Build constructs the relationship graph of profile and serializes it.
// The profile is not modified and no state survives between calls.
// profile.Name must be set, missing optional fields are treated as empty.
func (b *Builder) Build(profile *model.CompanyProfile) *model.GraphPayload {
	b.graph.reset()

	company := profile.Name
	b.addCompany(profile)

	for _, shareholder := range profile.Shareholders {
		b.addShareholder(company, shareholder)
	}

	for _, executive := range profile.Executives {
		b.addExecutive(company, executive)
	}

	for _, subsidiary := range profile.Subsidiaries {
		b.addSubsidiary(company, subsidiary)
	}

	for _, supplier := range profile.SupplyChain.Upstream {
		b.addSupplier(company, supplier)
	}

	for _, customer := range profile.SupplyChain.Downstream {
		b.addCustomer(company, customer)
	}

	return b.graph.payload()
}

func (b *Builder) addCompany(profile *model.CompanyProfile) {
	b.graph.addNode(model.GraphNode{
		ID:    profile.Name,
		Label: profile.Name,
		Group: model.GroupCompany,
		TooltipText: strings.Join([]string{
			"Company: " + profile.Name,
			"Industry: " + orUnknown(profile.Industry),
			"Scale: " + orUnknown(profile.Scale),
			"Credit rating: " + orUnknown(profile.CreditRating),
		}, "\n"),
		Size:  40,
		Color: model.ColorPrimaryBlue,
	})
}

func (b *Builder) addShareholder(company string, shareholder model.Shareholder) {
	b.graph.addNode(model.GraphNode{
		ID:          shareholder.Name,
		Label:       shareholder.Name,
		Group:       model.GroupShareholder,
		TooltipText: fmt.Sprintf("Holding ratio: %s", shareholder.Ratio),
		Size:        25,
		Color:       model.ColorSecondaryOrange,
	})

	b.graph.addEdge(model.GraphEdge{
		From:            shareholder.Name,
		To:              company,
		RelationTooltip: strings.TrimSpace(fmt.Sprintf("holds %s", shareholder.Ratio)),
		Weight:          2,
		Color:           model.ColorSecondaryOrange,
		Type:            model.RelationShareholding,
	})
}

func (b *Builder) addExecutive(company string, executive model.Executive) {
	b.graph.addNode(model.GraphNode{
		ID:          executive.Name,
		Label:       executive.Name,
		Group:       model.GroupPerson,
		TooltipText: fmt.Sprintf("Position: %s", executive.Position),
		Size:        20,
		Color:       model.ColorGreen,
	})

	b.graph.addEdge(model.GraphEdge{
		From:            company,
		To:              executive.Name,
		RelationTooltip: strings.TrimSpace(fmt.Sprintf("serves as %s", executive.Position)),
		Weight:          1,
		Color:           model.ColorGreen,
		Type:            model.RelationEmployment,
	})
}

func (b *Builder) addSubsidiary(company string, subsidiary string) {
	b.graph.addNode(model.GraphNode{
		ID:          subsidiary,
		Label:       subsidiary,
		Group:       model.GroupCompany,
		TooltipText: "subsidiary",
		Size:        30,
		Color:       model.ColorPrimaryBlue,
	})

	b.graph.addEdge(model.GraphEdge{
		From:            company,
		To:              subsidiary,
		RelationTooltip: "controlling subsidiary",
		Weight:          3,
		Color:           model.ColorRed,
		Type:            model.RelationSubsidiary,
	})
}

func (b *Builder) addSupplier(company string, supplier string) {
	b.graph.addNode(model.GraphNode{
		ID:          supplier,
		Label:       supplier,
		Group:       model.GroupSupplier,
		TooltipText: "upstream supplier",
		Size:        20,
		Color:       model.ColorPurple,
	})

	b.graph.addEdge(model.GraphEdge{
		From:            supplier,
		To:              company,
		RelationTooltip: "supply relation",
		Weight:          2,
		Color:           model.ColorPurple,
		Dashed:          true,
		Type:            model.RelationUpstream,
	})
}

func (b *Builder) addCustomer(company string, customer string) {
	b.graph.addNode(model.GraphNode{
		ID:          customer,
		Label:       customer,
		Group:       model.GroupCustomer,
		TooltipText: "downstream customer",
		Size:        20,
		Color:       model.ColorBrown,
	})

	b.graph.addEdge(model.GraphEdge{
		From:            company,
		To:              customer,
		RelationTooltip: "customer relation",
		Weight:          2,
		Color:           model.ColorBrown,
		Dashed:          true,
		Type:            model.RelationDownstream,
	})
}

func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return unknown
	}
	return s
}

// Build is a convenience wrapper building with a fresh default builder
func Build(profile *model.CompanyProfile) *model.GraphPayload {
	return NewBuilder(model.DefaultBuildConfig()).Build(profile)
}
