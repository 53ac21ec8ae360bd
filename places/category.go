// Package places resolves place information (attractions, restaurants, activities,
// transportation) against a structured provider with a web-search fallback.
package places

import (
	"fmt"
	"strings"
)

// Category is one of the fixed place-information topics
type Category string

const (
	Attractions    Category = "attractions"
	Restaurants    Category = "restaurants"
	Activities     Category = "activities"
	Transportation Category = "transportation"
)

type queryTemplates struct {
	structured string
	search     string
}

var templates = map[Category]queryTemplates{
	Attractions: {
		structured: "top attractive places in and around %s",
		search:     "top attractive places in and around %s",
	},
	Restaurants: {
		structured: "what are the top 10 restaurants and eateries in and around %s?",
		search:     "what are the top 10 restaurants and eateries in and around %s.",
	},
	Activities: {
		structured: "Activities in and around %s",
		search:     "activities in and around %s",
	},
	Transportation: {
		structured: "What are the different modes of transportations available in %s",
		search:     "What are the different modes of transportations available in %s",
	},
}

// Categories returns all categories in a stable order
func Categories() []Category {
	return []Category{Attractions, Restaurants, Activities, Transportation}
}

// ParseCategory converts free text into a Category
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("unknown category %q (expected one of attractions, restaurants, activities, transportation)", s)
	}
	return c, nil
}

// Valid reports whether c is one of the known categories
func (c Category) Valid() bool {
	_, ok := templates[c]
	return ok
}

// StructuredQuery is the phrase sent to the structured places provider
func (c Category) StructuredQuery(place string) string {
	return fmt.Sprintf(templates[c].structured, place)
}

// SearchQuery is the phrase sent to the web search provider
func (c Category) SearchQuery(place string) string {
	return fmt.Sprintf(templates[c].search, place)
}

// ToolName is the name the category is exposed under to the agent
func (c Category) ToolName() string {
	return "search_" + string(c)
}

func (c Category) String() string {
	return string(c)
}
