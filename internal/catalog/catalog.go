/* Copyright (c) 2025 Hamed Shams <https://hamedshams.com>
 * SPDX-License-Identifier: BSD-3-Clause */

// Package catalog holds the list of manuals the product is expected to publish.
// It is configuration: the store is never consulted to build it, so a manual
// missing here is simply never reported on.
package catalog

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultTotalModules is the number of product modules expected to ship a quick-start guide.
const DefaultTotalModules = 18

type Manual struct {
	ID            string `yaml:"id" json:"id"`
	Name          string `yaml:"name" json:"name"`
	SectionsCount int    `yaml:"sectionsCount" json:"sectionsCount"`
	ModuleCode    string `yaml:"moduleCode" json:"moduleCode"`
}

type Catalog struct {
	Manuals      []Manual `yaml:"manuals"`
	TotalModules int      `yaml:"totalModules"`
}

func Default() Catalog {
	return Catalog{
		TotalModules: DefaultTotalModules,
		Manuals: []Manual{
			{ID: "admin-manual", Name: "Administrator Manual", SectionsCount: 45, ModuleCode: "ADMIN"},
			{ID: "hr-manual", Name: "Core HR Manual", SectionsCount: 38, ModuleCode: "HR"},
			{ID: "payroll-manual", Name: "Payroll Manual", SectionsCount: 52, ModuleCode: "PAYROLL"},
			{ID: "time-attendance-manual", Name: "Time & Attendance Manual", SectionsCount: 30, ModuleCode: "TIME"},
			{ID: "leave-manual", Name: "Leave Management Manual", SectionsCount: 24, ModuleCode: "LEAVE"},
			{ID: "benefits-manual", Name: "Benefits Administration Manual", SectionsCount: 28, ModuleCode: "BENEFITS"},
			{ID: "performance-manual", Name: "Performance Management Manual", SectionsCount: 33, ModuleCode: "PERFORMANCE"},
			{ID: "learning-manual", Name: "Learning & Development Manual", SectionsCount: 26, ModuleCode: "LEARNING"},
			{ID: "recruitment-manual", Name: "Recruitment Manual", SectionsCount: 31, ModuleCode: "RECRUITMENT"},
			{ID: "ess-manual", Name: "Employee Self-Service Guide", SectionsCount: 18, ModuleCode: "ESS"},
		},
	}
}

func (c Catalog) Len() int { return len(c.Manuals) }

func (c Catalog) Lookup(id string) (Manual, bool) {
	for _, m := range c.Manuals {
		if m.ID == id {
			return m, true
		}
	}
	return Manual{}, false
}

// Modules returns the distinct module codes in catalog order.
func (c Catalog) Modules() []string {
	seen := map[string]bool{}
	out := make([]string, 0, len(c.Manuals))
	for _, m := range c.Manuals {
		if m.ModuleCode == "" || seen[m.ModuleCode] {
			continue
		}
		seen[m.ModuleCode] = true
		out = append(out, m.ModuleCode)
	}
	return out
}

func (c Catalog) Validate() error {
	if len(c.Manuals) == 0 {
		return errors.New("catalog: no manuals")
	}
	if c.TotalModules <= 0 {
		return fmt.Errorf("catalog: totalModules must be positive, got %d", c.TotalModules)
	}
	ids := map[string]bool{}
	for i, m := range c.Manuals {
		if strings.TrimSpace(m.ID) == "" {
			return fmt.Errorf("catalog: manual #%d has empty id", i)
		}
		if ids[m.ID] {
			return fmt.Errorf("catalog: duplicate manual id %q", m.ID)
		}
		ids[m.ID] = true
	}
	return nil
}

// Load reads a YAML catalog. A missing totalModules falls back to DefaultTotalModules.
func Load(path string) (Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("catalog: read %s: %w", path, err)
	}
	return Parse(raw)
}

func Parse(raw []byte) (Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return Catalog{}, fmt.Errorf("catalog: parse: %w", err)
	}
	if c.TotalModules == 0 {
		c.TotalModules = DefaultTotalModules
	}
	if err := c.Validate(); err != nil {
		return Catalog{}, err
	}
	return c, nil
}
