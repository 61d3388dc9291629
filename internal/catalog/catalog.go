// Package catalog holds the read-only keyword dictionary driving keyword
// and industry matching. The catalog is loaded once per process and never
// mutated afterwards, so it is safe to share across concurrent queries.
package catalog

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// AllKeywordsBucket is the synthetic category holding the flattened
// cross-category keyword list used only for similarity matching.
const AllKeywordsBucket = "all_keywords"

// Catalog maps business-domain categories to keyword lists, plus a
// mapping of industry names to closely related keyword sets.
type Catalog struct {
	categories map[string][]string
	industries map[string][]string

	// iteration order is fixed at load so repeated queries against one
	// catalog produce identical ranked match lists
	categoryNames []string
	industryNames []string
}

// Load reads the keyword and industry definition files. A missing or
// malformed file degrades to an empty section with a warning; it never
// fails the caller. Files ending in .yaml/.yml are parsed as YAML,
// anything else as JSON.
func Load(keywordPath, industryPath string) *Catalog {
	c := &Catalog{
		categories: map[string][]string{},
		industries: map[string][]string{},
	}

	if m, ok := loadKeywordMap(keywordPath); ok {
		c.categories = m
	}
	if m, ok := loadKeywordMap(industryPath); ok {
		c.industries = m
	}

	for name := range c.categories {
		c.categoryNames = append(c.categoryNames, name)
	}
	sort.Strings(c.categoryNames)
	for name := range c.industries {
		c.industryNames = append(c.industryNames, name)
	}
	sort.Strings(c.industryNames)

	return c
}

// Empty returns a catalog with no entries, the degraded mode used when
// definition files are unavailable.
func Empty() *Catalog {
	return &Catalog{
		categories: map[string][]string{},
		industries: map[string][]string{},
	}
}

func loadKeywordMap(path string) (map[string][]string, bool) {
	if path == "" {
		return nil, false
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		zap.L().Warn("catalog: definition file unavailable, using empty catalog",
			zap.String("path", path),
			zap.Error(err),
		)
		return nil, false
	}

	var m map[string][]string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(raw, &m)
	default:
		err = json.Unmarshal(raw, &m)
	}
	if err != nil {
		zap.L().Warn("catalog: definition file unparsable, using empty catalog",
			zap.String("path", path),
			zap.Error(err),
		)
		return nil, false
	}
	return m, true
}

// Categories returns category name -> keywords, excluding the synthetic
// all-keywords bucket. CategoryNames gives the fixed iteration order.
func (c *Catalog) Categories() map[string][]string {
	return c.categories
}

// CategoryNames returns category names in the catalog's fixed order,
// excluding the synthetic all-keywords bucket.
func (c *Catalog) CategoryNames() []string {
	var names []string
	for _, n := range c.categoryNames {
		if n != AllKeywordsBucket {
			names = append(names, n)
		}
	}
	return names
}

// Keywords returns the keyword list for one category.
func (c *Catalog) Keywords(category string) []string {
	return c.categories[category]
}

// AllKeywords returns the flattened cross-category keyword list. The
// definition file may carry an explicit all_keywords bucket; absent that,
// the category lists are flattened in catalog order. Duplicates across
// categories are preserved.
func (c *Catalog) AllKeywords() []string {
	if all, ok := c.categories[AllKeywordsBucket]; ok {
		return all
	}
	var all []string
	for _, name := range c.CategoryNames() {
		all = append(all, c.categories[name]...)
	}
	return all
}

// SimilarIndustries returns industry name -> related keywords.
func (c *Catalog) SimilarIndustries() map[string][]string {
	return c.industries
}

// IndustryNames returns industry names in the catalog's fixed order.
func (c *Catalog) IndustryNames() []string {
	return c.industryNames
}

// Len reports the number of non-synthetic categories.
func (c *Catalog) Len() int {
	return len(c.CategoryNames())
}
