package provider

import (
	"errors"
	"fmt"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/siherrmann/companygraph/helper"
	"github.com/siherrmann/companygraph/model"
)

// Provider looks up company profiles by name.
// Lookup returns model.ErrProfileNotFound for unknown names.
type Provider interface {
	Lookup(name string) (*model.CompanyProfile, error)
}

// ProviderFunc adapts a function to the Provider interface
type ProviderFunc func(name string) (*model.CompanyProfile, error)

// Lookup calls f(name)
func (f ProviderFunc) Lookup(name string) (*model.CompanyProfile, error) {
	return f(name)
}

// GenericFallback returns the template record used for companies no provider knows
func GenericFallback(name string) *model.CompanyProfile {
	return &model.CompanyProfile{
		Name:          name,
		Industry:      "diversified",
		Scale:         model.ScaleMedium,
		CreditRating:  "BBB",
		RiskLevel:     model.RiskLevelMedium,
		EstablishYear: 10,
		Revenue:       "pending update",
		Employees:     "pending update",
		BusinessScope: "pending update",
		Shareholders:  []model.Shareholder{},
		Executives:    []model.Executive{},
		Subsidiaries:  []string{},
		SupplyChain: model.SupplyChain{
			Upstream:   []string{},
			Downstream: []string{},
		},
		RiskFactors: []string{"incomplete company data, further verification recommended"},
	}
}

// Resolver asks a chain of providers in order, caches hits and falls back to the generic template
type Resolver struct {
	providers []Provider
	cache     *lru.Cache[string, *model.CompanyProfile]
}

// NewResolver creates a resolver with an LRU cache of cacheSize profiles
func NewResolver(cacheSize int, providers ...Provider) (*Resolver, error) {
	if cacheSize <= 0 {
		return nil, helper.NewError("create resolver", fmt.Errorf("cache size must be positive, got %d", cacheSize))
	}

	cache, err := lru.New[string, *model.CompanyProfile](cacheSize)
	if err != nil {
		return nil, helper.NewError("create profile cache", err)
	}

	return &Resolver{
		providers: providers,
		cache:     cache,
	}, nil
}

// Resolve returns the profile for name. found is false when the generic fallback was used.
// The returned profile is a copy and may be modified by the caller.
func (r *Resolver) Resolve(name string) (profile *model.CompanyProfile, found bool, err error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, false, helper.NewError("resolve profile", errors.New("company name is empty"))
	}

	if cached, ok := r.cache.Get(name); ok {
		return cached.Clone(), true, nil
	}

	for _, p := range r.providers {
		profile, err := p.Lookup(name)
		if errors.Is(err, model.ErrProfileNotFound) {
			continue
		}
		if err != nil {
			return nil, false, helper.NewError("lookup profile", err)
		}

		r.cache.Add(name, profile.Clone())
		return profile.Clone(), true, nil
	}

	return GenericFallback(name), false, nil
}

// Invalidate drops name from the cache
func (r *Resolver) Invalidate(name string) {
	r.cache.Remove(strings.TrimSpace(name))
}

// Purge empties the cache
func (r *Resolver) Purge() {
	r.cache.Purge()
}
