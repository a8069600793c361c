package nav

import (
	"fmt"
	"strings"
)

// NavEntry is a top-level navigation link. Path identifies the entry.
type NavEntry struct {
	Label string  `json:"label"`
	Icon  IconTag `json:"icon"`
	Path  string  `json:"path"`
}

// ReportSubItem is a link inside a ReportGroup. Slug and Path are derived from the label.
type ReportSubItem struct {
	Label string `json:"label"`
	Slug  string `json:"slug"`
	Path  string `json:"path"`
}

// ReportGroup is a collapsible cluster of report links sharing one disclosure toggle.
// ID keys the group's expansion state.
type ReportGroup struct {
	ID    string          `json:"id"`
	Label string          `json:"label"`
	Icon  IconTag         `json:"icon"`
	Items []ReportSubItem `json:"items"`
}

// ReportPath builds the navigable path of a report sub-item.
func ReportPath(groupID, slug string) string {
	return "/reports/" + groupID + "/" + slug
}

// NewReportGroup builds a group whose sub-items are derived from labels in order.
func NewReportGroup(id, label string, icon IconTag, itemLabels ...string) ReportGroup {
	items := make([]ReportSubItem, 0, len(itemLabels))
	for _, l := range itemLabels {
		slug := Slugify(l)
		items = append(items, ReportSubItem{
			Label: l,
			Slug:  slug,
			Path:  ReportPath(id, slug),
		})
	}
	return ReportGroup{ID: id, Label: label, Icon: icon, Items: items}
}

// RegistryError describes static navigation data that violates a uniqueness rule.
type RegistryError struct {
	Kind  string // duplicate_path, invalid_path, duplicate_group, empty_group, empty_slug, slug_collision
	Value string
	Group string
}

func (e *RegistryError) Error() string {
	if e.Group != "" {
		return fmt.Sprintf("navigation registry: %s %q in group %q", e.Kind, e.Value, e.Group)
	}
	return fmt.Sprintf("navigation registry: %s %q", e.Kind, e.Value)
}

type reportRef struct {
	group int
	item  int
}

// Registry is the immutable, ordered set of navigation entries and report groups.
type Registry struct {
	entries   []NavEntry
	groups    []ReportGroup
	byPath    map[string]int
	byGroup   map[string]int
	byReport  map[string]reportRef
	groupKeys []string
}

// NewRegistry validates and indexes the navigation data. Top-level paths must be unique and
// absolute, group ids must be unique, and slugs must be non-empty and unique within a group.
// Colliding labels are rejected rather than silently overwriting a route.
func NewRegistry(entries []NavEntry, groups []ReportGroup) (*Registry, error) {
	r := &Registry{
		entries:  make([]NavEntry, len(entries)),
		groups:   make([]ReportGroup, len(groups)),
		byPath:   make(map[string]int, len(entries)),
		byGroup:  make(map[string]int, len(groups)),
		byReport: make(map[string]reportRef),
	}
	copy(r.entries, entries)

	for i, e := range entries {
		if !strings.HasPrefix(e.Path, "/") {
			return nil, &RegistryError{Kind: "invalid_path", Value: e.Path}
		}
		if _, dup := r.byPath[e.Path]; dup {
			return nil, &RegistryError{Kind: "duplicate_path", Value: e.Path}
		}
		r.byPath[e.Path] = i
	}

	for gi, g := range groups {
		if g.ID == "" {
			return nil, &RegistryError{Kind: "empty_group", Value: g.Label}
		}
		if _, dup := r.byGroup[g.ID]; dup {
			return nil, &RegistryError{Kind: "duplicate_group", Value: g.ID}
		}
		r.byGroup[g.ID] = gi
		r.groupKeys = append(r.groupKeys, g.ID)

		items := make([]ReportSubItem, len(g.Items))
		copy(items, g.Items)
		seen := make(map[string]bool, len(items))
		for ii, item := range items {
			if item.Slug == "" {
				return nil, &RegistryError{Kind: "empty_slug", Value: item.Label, Group: g.ID}
			}
			if seen[item.Slug] {
				return nil, &RegistryError{Kind: "slug_collision", Value: item.Slug, Group: g.ID}
			}
			seen[item.Slug] = true
			items[ii].Path = ReportPath(g.ID, item.Slug)
			r.byReport[items[ii].Path] = reportRef{group: gi, item: ii}
		}
		g.Items = items
		r.groups[gi] = g
	}

	return r, nil
}

// MustNewRegistry is NewRegistry for static data; it panics on invalid input.
func MustNewRegistry(entries []NavEntry, groups []ReportGroup) *Registry {
	r, err := NewRegistry(entries, groups)
	if err != nil {
		panic(err)
	}
	return r
}

// Entries returns the top-level entries in display order.
func (r *Registry) Entries() []NavEntry {
	out := make([]NavEntry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Groups returns the report groups in display order.
func (r *Registry) Groups() []ReportGroup {
	out := make([]ReportGroup, len(r.groups))
	for i, g := range r.groups {
		g.Items = append([]ReportSubItem(nil), g.Items...)
		out[i] = g
	}
	return out
}

// GroupIDs returns the closed set of group ids in display order.
func (r *Registry) GroupIDs() []string {
	return append([]string(nil), r.groupKeys...)
}

// HasGroup reports whether id names a report group.
func (r *Registry) HasGroup(id string) bool {
	_, ok := r.byGroup[id]
	return ok
}

// Group returns the report group with the given id.
func (r *Registry) Group(id string) (ReportGroup, bool) {
	i, ok := r.byGroup[id]
	if !ok {
		return ReportGroup{}, false
	}
	g := r.groups[i]
	g.Items = append([]ReportSubItem(nil), g.Items...)
	return g, true
}

// Entry returns the top-level entry whose path equals path exactly.
func (r *Registry) Entry(path string) (NavEntry, bool) {
	i, ok := r.byPath[path]
	if !ok {
		return NavEntry{}, false
	}
	return r.entries[i], true
}

// Report returns the group and sub-item addressed by path, if any.
func (r *Registry) Report(path string) (ReportGroup, ReportSubItem, bool) {
	ref, ok := r.byReport[path]
	if !ok {
		return ReportGroup{}, ReportSubItem{}, false
	}
	g := r.groups[ref.group]
	item := g.Items[ref.item]
	g.Items = append([]ReportSubItem(nil), g.Items...)
	return g, item, true
}

// IsActive reports whether a navigation item is the current page. Only exact string
// equality counts: no prefix matching and no trailing-slash normalisation.
func IsActive(itemPath, currentPath string) bool {
	return itemPath == currentPath
}
