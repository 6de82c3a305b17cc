package model

import (
	"database/sql/driver"
	"time"

	"github.com/google/uuid"
)

// CreditReport is the narrative and numeric output of the analysis layer
type CreditReport struct {
	IndustryChainAnalysis string             `json:"industry_chain_analysis"`
	CoreRisks             []string           `json:"core_risks"`
	FinancialHealth       map[string]float64 `json:"financial_health"`
	CreditSuggestions     []string           `json:"credit_suggestions"`
	SupplyChainPosition   map[string]float64 `json:"supply_chain_position"`
	EstimatedCreditLimit  string             `json:"estimated_credit_limit"`
}

// Value implements the driver.Valuer interface for database storage
func (r CreditReport) Value() (driver.Value, error) {
	return marshalJSONB(r)
}

// Scan implements the sql.Scanner interface for database retrieval
func (r *CreditReport) Scan(value interface{}) error {
	return unmarshalJSONB(value, r)
}

// Analysis bundles everything produced for one company lookup
type Analysis struct {
	Company    string          `json:"company"`
	Found      bool            `json:"found"`
	Profile    *CompanyProfile `json:"profile"`
	Graph      *GraphPayload   `json:"graph"`
	Stats      GraphStats      `json:"stats"`
	Report     *CreditReport   `json:"report"`
	GraphID    *uuid.UUID      `json:"graph_id,omitempty"`
	ReportID   *uuid.UUID      `json:"report_id,omitempty"`
	AnalyzedAt time.Time       `json:"analyzed_at"`
}

// StoredGraph is a persisted graph payload
type StoredGraph struct {
	ID          uuid.UUID    `json:"id"`
	CompanyName string       `json:"company_name"`
	Payload     GraphPayload `json:"payload"`
	NodeCount   int          `json:"node_count"`
	EdgeCount   int          `json:"edge_count"`
	CreatedAt   time.Time    `json:"created_at"`
}

// StoredReport is a persisted credit report
type StoredReport struct {
	ID          uuid.UUID    `json:"id"`
	CompanyName string       `json:"company_name"`
	Report      CreditReport `json:"report"`
	CreatedAt   time.Time    `json:"created_at"`
}

// StoredProfile is a persisted company profile
type StoredProfile struct {
	Name      string         `json:"name"`
	Profile   CompanyProfile `json:"profile"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}
