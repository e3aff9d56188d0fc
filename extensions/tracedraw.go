package extensions

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/m1gwings/treedrawer/tree"

	owned "github.com/pumped-fn/owned-go"
)

// DrawTrace renders a recorder's event history as a tree: one branch
// per owned value, in order of first appearance, with that value's
// events as leaves.
func DrawTrace(r *owned.Recorder) string {
	events := r.Events()

	var order []uuid.UUID
	byEntity := make(map[uuid.UUID][]owned.Event)
	for _, ev := range events {
		if _, seen := byEntity[ev.Entity]; !seen {
			order = append(order, ev.Entity)
		}
		byEntity[ev.Entity] = append(byEntity[ev.Entity], ev)
	}

	root := tree.NewTree(tree.NodeString("lifecycle"))
	for i, entity := range order {
		root.AddChild(tree.NodeString(entityTitle(byEntity[entity])))

		branch, err := root.Child(i)
		if err != nil {
			continue
		}
		for _, ev := range byEntity[entity] {
			branch.AddChild(tree.NodeString(eventText(ev)))
		}
	}

	return fmt.Sprint(root)
}

func entityTitle(events []owned.Event) string {
	for _, ev := range events {
		if ev.Label != "" {
			return ev.Label
		}
	}
	return events[0].Entity.String()[:8]
}

func eventText(ev owned.Event) string {
	if ev.Detail != "" {
		return fmt.Sprintf("%s (%s)", ev.Kind, ev.Detail)
	}
	return string(ev.Kind)
}
