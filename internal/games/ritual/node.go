package ritual

import (
	"math"

	"github.com/vovakirdan/chain-arcade/internal/config"
	"github.com/vovakirdan/chain-arcade/internal/core"
)

// NodeState is the lifecycle of one circle node.
type NodeState int

const (
	NodeInactive NodeState = iota
	NodePending
	NodeCompleted
	NodeFailed
)

func (s NodeState) String() string {
	switch s {
	case NodeInactive:
		return "inactive"
	case NodePending:
		return "pending"
	case NodeCompleted:
		return "completed"
	case NodeFailed:
		return "failed"
	}
	return "unknown"
}

// Node is one element anchor on the ritual circle.
type Node struct {
	ID      int
	Element string
	Pos     core.Vec2
	State   NodeState
}

// PlaceNodes spreads elements evenly around the circle, starting at the top
// and going clockwise on screen. Positions are truncated to whole pixels.
func PlaceNodes(elements []string, c config.CircleConfig) []Node {
	n := len(elements)
	nodes := make([]Node, n)
	for i, el := range elements {
		angle := float64(i)/float64(n)*2*math.Pi - math.Pi/2
		nodes[i] = Node{
			ID:      i,
			Element: el,
			Pos: core.V(
				math.Trunc(c.CenterX+math.Cos(angle)*c.NodeRadius),
				math.Trunc(c.CenterY+math.Sin(angle)*c.NodeRadius),
			),
		}
	}
	return nodes
}

// NodeAt returns the node whose hit circle contains p, or -1.
func NodeAt(nodes []Node, p core.Vec2, hitRadius float64) int {
	for i, n := range nodes {
		if n.Pos.Dist(p) < hitRadius {
			return i
		}
	}
	return -1
}

// matching returns the ids of every node carrying element, whatever its
// state. Challenges pick uniformly among them.
func matching(nodes []Node, element string) []int {
	var ids []int
	for i, n := range nodes {
		if n.Element == element {
			ids = append(ids, i)
		}
	}
	return ids
}
