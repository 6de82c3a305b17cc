package model

import (
	"database/sql/driver"
	"errors"
)

// ErrProfileNotFound is returned by providers that have no record for a company name.
var ErrProfileNotFound = errors.New("company profile not found")

// Scale values used by the sample data and the analysis lookup tables.
const (
	ScaleLarge  = "large enterprise"
	ScaleMedium = "medium enterprise"
)

// RiskLevel values understood by the analysis layer.
const (
	RiskLevelLow    = "low"
	RiskLevelMedium = "medium"
	RiskLevelHigh   = "high"
)

// Shareholder is a holder of company equity
type Shareholder struct {
	Name  string `json:"name" validate:"required"`
	Ratio string `json:"ratio,omitempty"`
}

// Executive is a person holding a position in the company
type Executive struct {
	Name     string `json:"name" validate:"required"`
	Position string `json:"position,omitempty"`
}

// SupplyChain lists upstream suppliers and downstream customers by name
type SupplyChain struct {
	Upstream   []string `json:"upstream"`
	Downstream []string `json:"downstream"`
}

// CompanyProfile describes one company's ownership, leadership and supply relationships.
// Name is the only required field, it doubles as the root node id of the graph.
type CompanyProfile struct {
	Name          string        `json:"name" validate:"required"`
	Industry      string        `json:"industry,omitempty"`
	Scale         string        `json:"scale,omitempty"`
	CreditRating  string        `json:"credit_rating,omitempty"`
	RiskLevel     string        `json:"risk_level,omitempty"`
	EstablishYear int           `json:"establish_years,omitempty"`
	Revenue       string        `json:"revenue,omitempty"`
	Employees     string        `json:"employees,omitempty"`
	BusinessScope string        `json:"business_scope,omitempty"`
	Shareholders  []Shareholder `json:"shareholders" validate:"dive"`
	Executives    []Executive   `json:"executives" validate:"dive"`
	Subsidiaries  []string      `json:"subsidiaries"`
	SupplyChain   SupplyChain   `json:"supply_chain"`
	RiskFactors   []string      `json:"risk_factors"`
}

// Clone returns a deep copy so callers can never mutate a shared profile.
func (p *CompanyProfile) Clone() *CompanyProfile {
	if p == nil {
		return nil
	}

	c := *p
	c.Shareholders = append([]Shareholder(nil), p.Shareholders...)
	c.Executives = append([]Executive(nil), p.Executives...)
	c.Subsidiaries = append([]string(nil), p.Subsidiaries...)
	c.SupplyChain.Upstream = append([]string(nil), p.SupplyChain.Upstream...)
	c.SupplyChain.Downstream = append([]string(nil), p.SupplyChain.Downstream...)
	c.RiskFactors = append([]string(nil), p.RiskFactors...)

	return &c
}

// Value implements the driver.Valuer interface for database storage
func (p CompanyProfile) Value() (driver.Value, error) {
	return marshalJSONB(p)
}

// Scan implements the sql.Scanner interface for database retrieval
func (p *CompanyProfile) Scan(value interface{}) error {
	return unmarshalJSONB(value, p)
}
