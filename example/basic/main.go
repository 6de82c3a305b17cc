package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/siherrmann/companygraph"
	"github.com/siherrmann/companygraph/helper"
)

func main() {
	company := "华为技术有限公司"
	if len(os.Args) > 1 {
		company = os.Args[1]
	}

	// Output dir, log level, seed and cache size from the environment or a .env file
	config, err := helper.NewConfiguration()
	if err != nil {
		log.Fatalf("Failed to read configuration: %v", err)
	}

	cg, err := companygraph.New(companygraph.WithConfiguration(config))
	if err != nil {
		log.Fatalf("Failed to create company graph: %v", err)
	}
	defer cg.Close()

	result, err := cg.Analyze(context.Background(), company)
	if err != nil {
		log.Fatalf("Failed to analyze %s: %v", company, err)
	}

	fmt.Printf("Company: %s (found: %t)\n", result.Company, result.Found)
	fmt.Printf("Graph: %d nodes, %d edges, %d supply-chain relations\n", result.Stats.Nodes, result.Stats.Edges, result.Stats.SupplyChainEdges)
	for group, count := range result.Stats.ByGroup {
		fmt.Printf("  %-12s %d\n", group, count)
	}

	fmt.Printf("\nIndustry chain analysis:\n%s\n", result.Report.IndustryChainAnalysis)

	fmt.Println("\nCore risks:")
	for i, risk := range result.Report.CoreRisks {
		fmt.Printf("  %d. %s\n", i+1, risk)
	}

	fmt.Println("\nFinancial health:")
	for key, value := range result.Report.FinancialHealth {
		fmt.Printf("  %-14s %.2f\n", key, value)
	}

	fmt.Println("\nCredit suggestions:")
	for _, suggestion := range result.Report.CreditSuggestions {
		fmt.Printf("  - %s\n", suggestion)
	}
	fmt.Printf("\nEstimated credit limit: %s\n", result.Report.EstimatedCreditLimit)

	// Interactive graph page next to the saved analysis
	html, err := cg.RenderGraph(result.Graph, result.Company)
	if err != nil {
		log.Fatalf("Failed to render graph: %v", err)
	}

	if err := os.MkdirAll(config.OutputDir, 0o750); err != nil {
		log.Fatalf("Failed to create output directory: %v", err)
	}
	htmlPath := filepath.Join(config.OutputDir, "graph.html")
	if err := os.WriteFile(htmlPath, []byte(html), 0o600); err != nil {
		log.Fatalf("Failed to write graph page: %v", err)
	}
	fmt.Printf("\nGraph page written to %s\n", htmlPath)

	path, err := cg.SaveAnalysis("", result)
	if err != nil {
		log.Fatalf("Failed to save analysis: %v", err)
	}
	fmt.Printf("Analysis saved to %s\n", path)
}
