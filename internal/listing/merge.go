package listing

import "github.com/MrSnakeDoc/banho/internal/content"

// MergeStaticFirst returns the static items followed by every dynamic item
// whose id is not already present. Static entries win on collision. Items
// without an id cannot collide and are always kept.
func MergeStaticFirst(static, dynamic []content.Entity) []content.Entity {
	out := make([]content.Entity, 0, len(static)+len(dynamic))
	seen := make(map[string]struct{}, len(static)+len(dynamic))
	add := func(items []content.Entity) {
		for _, it := range items {
			if it.ID != "" {
				if _, dup := seen[it.ID]; dup {
					continue
				}
				seen[it.ID] = struct{}{}
			}
			out = append(out, it)
		}
	}
	add(static)
	add(dynamic)
	return out
}

// DedupeEvents drops events sharing both id and title with an earlier one.
func DedupeEvents(events []content.Entity) []content.Entity {
	out := make([]content.Entity, 0, len(events))
	seen := make(map[string]struct{}, len(events))
	for _, ev := range events {
		key := ev.ID + "\x00" + eventTitle(ev)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, ev)
	}
	return out
}

func eventTitle(ev content.Entity) string {
	if t := ev.Fields["title"]; t != "" {
		return t
	}
	return content.ResolveField(&ev, content.DefaultLang, "title")
}
