// Package hierarchy flattens and summarizes the epic → story → task
// tree returned by the API.
package hierarchy

import (
	"github.com/tactyo/tactyo/internal/api"
)

// TypeUndefined is the counting key for items with no item_type.
const TypeUndefined = "undefined"

// FlatItem is one node of the flattened tree with its grouping
// context.
type FlatItem struct {
	Item     api.HierarchyItem
	EpicName string
	Depth    int
	Orphan   bool
}

// Flatten walks every epic's trees in order, then every orphan
// subtree, depth-first with parents before children. The traversal is
// iterative; children keep their order. Input is not mutated and every
// node appears exactly once.
func Flatten(h *api.Hierarchy) []FlatItem {
	var out []FlatItem
	if h == nil {
		return out
	}
	for _, epic := range h.Epics {
		out = appendSubtrees(out, epic.Items, epic.EpicName, false)
	}
	out = appendSubtrees(out, h.Orphans, "", true)
	return out
}

type frame struct {
	item  api.HierarchyItem
	depth int
}

func appendSubtrees(out []FlatItem, roots []api.HierarchyItem, epicName string, orphan bool) []FlatItem {
	for _, root := range roots {
		stack := []frame{{item: root, depth: 0}}
		for len(stack) > 0 {
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			out = append(out, FlatItem{
				Item:     top.item,
				EpicName: epicName,
				Depth:    top.depth,
				Orphan:   orphan,
			})

			// Push children in reverse so the first child pops first.
			children := top.item.Children
			for i := len(children) - 1; i >= 0; i-- {
				stack = append(stack, frame{item: children[i], depth: top.depth + 1})
			}
		}
	}
	return out
}

// CountByType tallies flattened items by item_type, bucketing missing
// types under the literal "undefined" key.
func CountByType(items []FlatItem) map[string]int {
	counts := map[string]int{}
	for _, fi := range items {
		key := fi.Item.ItemType
		if key == "" {
			key = TypeUndefined
		}
		counts[key]++
	}
	return counts
}

// Stories filters the flattened sequence to story items.
func Stories(items []FlatItem) []FlatItem {
	var out []FlatItem
	for _, fi := range items {
		if fi.Item.ItemType == "story" {
			out = append(out, fi)
		}
	}
	return out
}

// Tasks filters the flattened sequence to task-level items: tasks,
// features, and bugs.
func Tasks(items []FlatItem) []FlatItem {
	var out []FlatItem
	for _, fi := range items {
		switch fi.Item.ItemType {
		case "task", "feature", "bug":
			out = append(out, fi)
		}
	}
	return out
}
