package normalize

import (
	"encoding/json"

	"wfsort/internal/document"
)

// Kind identifies the entity kinds a cleanup profile applies to.
type Kind string

const (
	// KindGroup is a top-level workflow container
	KindGroup Kind = "group"
	// KindItem is a workflow step within a group
	KindItem Kind = "item"
	// KindDependency is a relation between workflow items
	KindDependency Kind = "dependency"
)

// conditionalRule removes a key only when its current value matches.
type conditionalRule struct {
	key    string
	remove func(value interface{}) bool
}

// Profile describes the cleanup applied to one entity kind: a denylist of
// keys that are always dropped plus conditional removals.
type Profile struct {
	remove      map[string]struct{}
	conditional []conditionalRule
}

// Clean strips the profile's denylisted keys from the entity and applies the
// conditional removals. Missing keys are silently skipped.
func (p *Profile) Clean(entity *document.Object) {
	for key := range p.remove {
		entity.Delete(key)
	}
	for _, rule := range p.conditional {
		if value, ok := entity.Get(rule.key); ok && rule.remove(value) {
			entity.Delete(rule.key)
		}
	}
}

// Removes reports whether the profile unconditionally drops key.
func (p *Profile) Removes(key string) bool {
	_, ok := p.remove[key]
	return ok
}

// ProfileSet holds one cleanup profile per entity kind.
type ProfileSet struct {
	byKind map[Kind]*Profile
}

// Profile returns the profile for kind, or an empty profile for unknown kinds.
func (s *ProfileSet) Profile(kind Kind) *Profile {
	if p, ok := s.byKind[kind]; ok {
		return p
	}
	return &Profile{remove: map[string]struct{}{}}
}

// Extend adds extra always-remove keys to a kind's denylist. Built-in keys
// are never removed from the list, only added to.
func (s *ProfileSet) Extend(kind Kind, keys []string) {
	p, ok := s.byKind[kind]
	if !ok {
		return
	}
	for _, key := range keys {
		p.remove[key] = struct{}{}
	}
}

// Transient bookkeeping fields shared by every entity kind: risk statistics,
// operator commentary and execution toggles that the workflow engine derives
// or re-attaches at load time.
var commonTransientKeys = []string{
	"highRisk",
	"highRiskStatisticMethod",
	"highRiskStatisticPeriod",
	"highRiskThreshold",
	"statisticMethod",
	"statisticPeriod",
	"comment",
	"reason",
	"ignoreProcessingStateRegistry",
	"verboseMode",
	"disableManualExecution",
	"forceLoad",
	"eagerScriptExecution",
	"useScripts",
}

// DefaultProfiles returns the built-in cleanup profiles.
func DefaultProfiles() *ProfileSet {
	group := newProfile(append([]string{
		"layoutPreset",
		"layoutSettings",
		"groupId",
	}, commonTransientKeys...))
	group.conditional = []conditionalRule{
		{key: "description", remove: isNull},
		{key: "passActionsToChildren", remove: isFalsy},
	}

	item := newProfile(append([]string{
		"title",
		"sortOrder",
		"groupId",
	}, commonTransientKeys...))
	item.conditional = []conditionalRule{
		{key: "description", remove: isNull},
	}

	dependency := newProfile(append([]string{
		"groupId",
		"sortKey",
		"layoutPreset",
		"layoutSettings",
	}, commonTransientKeys...))
	dependency.conditional = []conditionalRule{
		{key: "description", remove: isNull},
	}

	return &ProfileSet{byKind: map[Kind]*Profile{
		KindGroup:      group,
		KindItem:       item,
		KindDependency: dependency,
	}}
}

func newProfile(keys []string) *Profile {
	remove := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		remove[key] = struct{}{}
	}
	return &Profile{remove: remove}
}

// isNull matches only the JSON null sentinel; an empty string stays.
func isNull(value interface{}) bool {
	return value == nil
}

// isFalsy matches null, false, zero numbers and the empty string.
func isFalsy(value interface{}) bool {
	switch v := value.(type) {
	case nil:
		return true
	case bool:
		return !v
	case string:
		return v == ""
	case json.Number:
		f, err := v.Float64()
		return err == nil && f == 0
	case float64:
		return v == 0
	case int:
		return v == 0
	default:
		return false
	}
}
