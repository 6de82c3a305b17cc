package main

import (
	"context"
	"fmt"
	"log"

	"github.com/siherrmann/companygraph"
	"github.com/siherrmann/companygraph/helper"
	"github.com/siherrmann/companygraph/model"
)

func main() {
	// Start a test PostgreSQL container
	teardown, dbPort, err := helper.MustStartPostgresContainer()
	if err != nil {
		log.Fatalf("Failed to start PostgreSQL container: %v", err)
	}
	defer teardown(context.Background())

	// Create database configuration using the container port
	dbConfig := &helper.DatabaseConfiguration{
		Host:     "localhost",
		Port:     dbPort,
		Database: "database",
		Username: "user",
		Password: "password",
		Schema:   "public",
		SSLMode:  "disable",
	}

	cg, err := companygraph.NewWithDatabase(dbConfig)
	if err != nil {
		log.Fatalf("Failed to create company graph: %v", err)
	}
	defer cg.Close()

	// Profiles stored in the database take precedence over the bundled samples
	profile := &model.CompanyProfile{
		Name:          "Acme Manufacturing",
		Industry:      "manufacturing",
		Scale:         model.ScaleMedium,
		CreditRating:  "A",
		RiskLevel:     model.RiskLevelMedium,
		EstablishYear: 18,
		Shareholders: []model.Shareholder{
			{Name: "Acme Holding", Ratio: "70%"},
			{Name: "Regional Fund", Ratio: "30%"},
		},
		Executives:   []model.Executive{{Name: "Jane Doe", Position: "CEO"}},
		Subsidiaries: []string{"Acme Tooling"},
		SupplyChain: model.SupplyChain{
			Upstream:   []string{"Steel Mill", "Foundry"},
			Downstream: []string{"RetailCo"},
		},
		RiskFactors: []string{"customer concentration"},
	}

	if _, err := cg.ImportProfile(profile); err != nil {
		log.Fatalf("Failed to import profile: %v", err)
	}

	for _, company := range []string{profile.Name, "腾讯科技有限公司", "Unknown Trading Ltd"} {
		result, err := cg.Analyze(context.Background(), company)
		if err != nil {
			log.Fatalf("Failed to analyze %s: %v", company, err)
		}

		fmt.Printf("%s (found: %t): %d nodes, %d edges, limit %s\n",
			result.Company, result.Found, result.Stats.Nodes, result.Stats.Edges, result.Report.EstimatedCreditLimit)
		fmt.Printf("  stored graph %s, report %s\n", result.GraphID, result.ReportID)
	}

	// Stored history of the imported company
	graphs, err := cg.Graphs.SelectGraphsByCompany(profile.Name, 10)
	if err != nil {
		log.Fatalf("Failed to list graphs: %v", err)
	}
	fmt.Printf("\n%d stored graph(s) for %s\n", len(graphs), profile.Name)

	matches, err := cg.Profiles.SelectProfilesBySearch("manufact", 10)
	if err != nil {
		log.Fatalf("Failed to search profiles: %v", err)
	}
	for _, m := range matches {
		fmt.Printf("Search match: %s (%s)\n", m.Name, m.Profile.Industry)
	}
}
