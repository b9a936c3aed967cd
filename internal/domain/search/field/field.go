// Package field resolves the searchable text fields of a feature.
//
// Property bags carry the same semantic field under several historical key
// names. Each Role owns an ordered alias chain; the first key holding a
// non-empty value wins. New schema aliases are added to the aliases table.
package field

import (
	"slices"
	"strings"

	"github.com/kailas-cloud/projectsearch/internal/domain/feature"
)

// Role is a semantic searchable field.
type Role int

// Searchable roles.
const (
	ProjectName Role = iota
	Description
	City
	InfrastructureType
	Category
	DisasterFocus
)

// Count is the number of searchable roles.
const Count = 6

var roleNames = [Count]string{
	ProjectName:        "project_name",
	Description:        "description",
	City:               "city",
	InfrastructureType: "infrastructure_type",
	Category:           "category",
	DisasterFocus:      "disaster_focus",
}

// legacy short key first, then the descriptive long form, then generic fallbacks
var aliases = [Count][]string{
	ProjectName:        {"Project_Na", "Project Name"},
	Description:        {"New_15_25_", "New 15-25 Words Project Description"},
	City:               {"NAME", "City"},
	InfrastructureType: {"Infrastruc", "Infrastructure Type", "Type"},
	Category:           {"Categories"},
	DisasterFocus:      {"Disaster_F", "Disaster Focus"},
}

// String returns the role's wire name.
func (r Role) String() string {
	if !r.IsValid() {
		return "unknown"
	}
	return roleNames[r]
}

// IsValid reports whether r is a known role.
func (r Role) IsValid() bool {
	return r >= 0 && int(r) < Count
}

// Roles returns every role in declaration order.
func Roles() []Role {
	out := make([]Role, Count)
	for i := range out {
		out[i] = Role(i)
	}
	return out
}

// Aliases returns a copy of the role's alias chain.
func Aliases(r Role) []string {
	if !r.IsValid() {
		return nil
	}
	return slices.Clone(aliases[r])
}

// Resolve returns the value under the first key in chain whose value is
// non-empty, or "" when none is.
func Resolve(props feature.Properties, chain []string) string {
	for _, key := range chain {
		if v := props[key]; v != "" {
			return v
		}
	}
	return ""
}

// Normalize trims surrounding whitespace and case-folds s. Invalid UTF-8
// bytes are dropped so they never fold into a shared replacement rune.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(strings.ToValidUTF8(s, "")))
}

// Fields holds the normalized text of every role, indexed by Role.
type Fields [Count]string

// Extract resolves and normalizes every role from a property bag.
func Extract(props feature.Properties) Fields {
	var f Fields
	for r := range Count {
		f[r] = Normalize(Resolve(props, aliases[r]))
	}
	return f
}

// Get returns the normalized text of role r.
func (f *Fields) Get(r Role) string {
	if !r.IsValid() {
		return ""
	}
	return f[r]
}
