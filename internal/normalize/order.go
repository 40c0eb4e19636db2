package normalize

import (
	"sort"

	"wfsort/internal/document"
)

// stringField extracts a sort key from an entity: the field's string value,
// or "" when the field is absent or not a string. Every comparator goes
// through this one helper so missing keys collapse to the same default.
func stringField(entity *document.Object, key string) string {
	value, ok := entity.Get(key)
	if !ok {
		return ""
	}
	s, _ := value.(string)
	return s
}

// sortItems sorts a group's items ascending by name (locale-aware).
// Ties keep their original relative order.
func (n *Normalizer) sortItems(items []interface{}) {
	sort.SliceStable(items, func(i, j int) bool {
		return n.cmp.Less(elementField(items[i], "name"), elementField(items[j], "name"))
	})
}

// sortDependencies sorts dependencies ascending by the
// (dependencyType, name, workflowItem) tuple, byte-wise per component.
// True tuple comparison, not a joined composite key, so field values
// containing any separator character cannot collide.
func (n *Normalizer) sortDependencies(deps []interface{}) {
	sort.SliceStable(deps, func(i, j int) bool {
		a, b := deps[i], deps[j]
		// Primary: dependencyType ASC
		if at, bt := elementField(a, "dependencyType"), elementField(b, "dependencyType"); at != bt {
			return at < bt
		}
		// Secondary: name ASC
		if an, bn := elementField(a, "name"), elementField(b, "name"); an != bn {
			return an < bn
		}
		// Tertiary: workflowItem ASC
		return elementField(a, "workflowItem") < elementField(b, "workflowItem")
	})
}

// sortTags sorts tags ascending by byte-wise string ordering.
func (n *Normalizer) sortTags(tags []interface{}) {
	sort.SliceStable(tags, func(i, j int) bool {
		return tagString(tags[i]) < tagString(tags[j])
	})
}

// sortGroups sorts the top-level groups ascending by (domainClass, id),
// locale-aware per component.
func (n *Normalizer) sortGroups(groups []interface{}) {
	sort.SliceStable(groups, func(i, j int) bool {
		a, b := groups[i], groups[j]
		// Primary: domainClass ASC
		if c := n.cmp.Compare(elementField(a, "domainClass"), elementField(b, "domainClass")); c != 0 {
			return c < 0
		}
		// Secondary: id ASC
		return n.cmp.Less(elementField(a, "id"), elementField(b, "id"))
	})
}

// elementField is stringField for untyped sequence elements; non-object
// elements sort as "".
func elementField(element interface{}, key string) string {
	entity, ok := element.(*document.Object)
	if !ok {
		return ""
	}
	return stringField(entity, key)
}

func tagString(tag interface{}) string {
	s, _ := tag.(string)
	return s
}
