// Package normalize canonicalizes workflow-definition documents so that two
// semantically equivalent documents serialize to byte-identical JSON.
//
// The pipeline runs three stages over a parsed document (a sequence of
// groups): per-kind field cleanup, a recursive key sort over the whole tree,
// and deterministic reordering of the known collections (items, dependencies,
// tags, and the groups themselves). The transformation is idempotent and
// purely in-memory.
package normalize

import (
	"sync"

	"wfsort/internal/document"
)

// Options configures a Normalizer.
type Options struct {
	// Profiles are the cleanup profiles to apply; nil means the built-in
	// defaults.
	Profiles *ProfileSet
	// Locale is the BCP 47 tag for locale-aware comparisons (item names,
	// group identity). Empty means "en".
	Locale string
	// Workers bounds per-group parallelism. 0 or 1 runs sequentially.
	// Groups are independent until the final top-level sort, which always
	// runs after all per-group work has joined.
	Workers int
}

// Normalizer applies the cleanup + key-sort + reorder pipeline.
type Normalizer struct {
	profiles *ProfileSet
	cmp      *Comparer
	locale   string
	workers  int
}

// New creates a Normalizer.
func New(opts Options) *Normalizer {
	profiles := opts.Profiles
	if profiles == nil {
		profiles = DefaultProfiles()
	}
	locale := opts.Locale
	if locale == "" {
		locale = "en"
	}
	return &Normalizer{
		profiles: profiles,
		cmp:      NewComparer(locale),
		locale:   locale,
		workers:  opts.Workers,
	}
}

// Normalize canonicalizes the document in place and returns it. A top-level
// value that is not a sequence is returned unchanged; normalization never
// fails on unexpected shapes, it skips them.
func (n *Normalizer) Normalize(doc interface{}) interface{} {
	groups, ok := doc.([]interface{})
	if !ok {
		return doc
	}

	if n.workers > 1 && len(groups) > 1 {
		n.eachGroupParallel(groups)
	} else {
		for _, group := range groups {
			n.normalizeGroup(group)
		}
	}

	// Top-level ordering runs only after every group is in canonical form.
	n.sortGroups(groups)
	return groups
}

// normalizeGroup runs cleanup, key-sort and the per-group collection sorts
// on one group. Non-object groups are left untouched.
func (n *Normalizer) normalizeGroup(value interface{}) {
	group, ok := value.(*document.Object)
	if !ok {
		return
	}

	n.profiles.Profile(KindGroup).Clean(group)
	n.cleanNested(group, "items", KindItem)
	n.cleanNested(group, "dependencies", KindDependency)

	SortKeys(group)

	if items, ok := sequenceField(group, "items"); ok {
		n.sortItems(items)
	}
	if deps, ok := sequenceField(group, "dependencies"); ok {
		n.sortDependencies(deps)
	}
	if tags, ok := sequenceField(group, "tags"); ok {
		n.sortTags(tags)
	}
}

// cleanNested applies a kind's profile to every object element of a nested
// sequence. Absent or non-sequence fields are skipped.
func (n *Normalizer) cleanNested(group *document.Object, field string, kind Kind) {
	elements, ok := sequenceField(group, field)
	if !ok {
		return
	}
	profile := n.profiles.Profile(kind)
	for _, element := range elements {
		if entity, ok := element.(*document.Object); ok {
			profile.Clean(entity)
		}
	}
}

// eachGroupParallel fans normalizeGroup out over a bounded worker pool and
// joins before returning.
func (n *Normalizer) eachGroupParallel(groups []interface{}) {
	workers := n.workers
	if workers > len(groups) {
		workers = len(groups)
	}

	indices := make(chan int)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			// A collator mutates internal buffers on every comparison,
			// so workers must not share n.cmp.
			worker := &Normalizer{
				profiles: n.profiles,
				cmp:      NewComparer(n.locale),
				locale:   n.locale,
			}
			for i := range indices {
				worker.normalizeGroup(groups[i])
			}
		}()
	}
	for i := range groups {
		indices <- i
	}
	close(indices)
	wg.Wait()
}

func sequenceField(entity *document.Object, key string) ([]interface{}, bool) {
	value, ok := entity.Get(key)
	if !ok {
		return nil, false
	}
	seq, ok := value.([]interface{})
	return seq, ok
}
