package plans

import (
	"slices"

	"github.com/lucid-hq/lucid-api/internal/quota"
)

// Plan describes what a subscription tier is entitled to. The catalog is
// read-only at runtime; which plan an account is on comes from the billing
// side, not from here.
type Plan struct {
	Name            string
	Limits          quota.Limits
	Models          []string
	Personalization bool
}

// AllowsModel reports whether the plan includes access to the target model.
func (p Plan) AllowsModel(model string) bool {
	return slices.Contains(p.Models, model)
}

// Catalog maps plan names to their entitlements.
type Catalog struct {
	plans map[string]Plan
}

// NewCatalog creates a catalog from the given plans.
func NewCatalog(list ...Plan) *Catalog {
	plans := make(map[string]Plan, len(list))
	for _, p := range list {
		plans[p.Name] = p
	}

	return &Catalog{plans: plans}
}

// DefaultCatalog returns the production plan table.
func DefaultCatalog() *Catalog {
	base := []string{"chatgpt"}
	all := []string{"chatgpt", "claude", "gemini"}

	return NewCatalog(
		Plan{Name: "free", Limits: quota.Limits{PerMinute: 5, PerDay: 20}, Models: base},
		Plan{Name: "pro", Limits: quota.Limits{PerMinute: 30, PerDay: 1000}, Models: all, Personalization: true},
		Plan{Name: "team", Limits: quota.Limits{PerMinute: 60, PerDay: 5000}, Models: all, Personalization: true},
		Plan{Name: "business", Limits: quota.Limits{PerMinute: 120, PerDay: 20000}, Models: all, Personalization: true},
		Plan{Name: "api", Limits: quota.Limits{PerMinute: 200, PerDay: 50000}, Models: all, Personalization: true},
	)
}

// Get returns the plan by name.
func (c *Catalog) Get(name string) (Plan, bool) {
	p, ok := c.plans[name]

	return p, ok
}

// LimitsFor implements quota.PlanResolver.
func (c *Catalog) LimitsFor(name string) (quota.Limits, bool) {
	p, ok := c.plans[name]

	return p.Limits, ok
}
