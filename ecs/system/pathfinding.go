package system

import (
	"container/heap"

	"github.com/sirupsen/logrus"

	"github.com/milk9111/raycaster/ecs"
	"github.com/milk9111/raycaster/ecs/component"
	"github.com/milk9111/raycaster/logger"
)

var (
	orthogonal = [4]component.Cell{{X: 0, Y: -1}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: -1, Y: 0}}
	diagonal   = [4]component.Cell{{X: 1, Y: -1}, {X: 1, Y: 1}, {X: -1, Y: 1}, {X: -1, Y: -1}}
)

// Pathfinder routes actors through the level: a greedy local grid search
// stitched together through a graph of doors when the endpoints lie in
// different rooms.
type Pathfinder struct {
	w     *ecs.World
	graph component.DoorGraph
	// MaxNodes bounds how many cells one local search may expand.
	MaxNodes int
}

// NewPathfinder builds the door graph for w's static geometry.
func NewPathfinder(w *ecs.World) *Pathfinder {
	p := &Pathfinder{w: w, MaxNodes: w.Static.Width * w.Static.Height}
	p.graph = p.BuildDoorGraph()
	return p
}

func (p *Pathfinder) Graph() component.DoorGraph {
	return p.graph
}

// BuildDoorGraph floods out of every door and records the doors it reaches.
func (p *Pathfinder) BuildDoorGraph() component.DoorGraph {
	graph := make(component.DoorGraph)
	edges := 0
	p.w.Static.Each(func(c component.Cell, _ int) {
		if !p.w.IsDoor(c) {
			return
		}
		_, doors := p.Flood(c)
		graph[c] = doors
		edges += len(doors)
	})
	logger.Log.WithFields(logrus.Fields{
		"doors": len(graph),
		"edges": edges,
	}).Debug("door graph built")
	return graph
}

// Flood fills the room around start through statically walkable cells and
// returns its cells plus the doors bounding it. A door start floods into
// every room it touches.
func (p *Pathfinder) Flood(start component.Cell) (room []component.Cell, doors []component.Cell) {
	return Flood(p.w, start)
}

// Flood is Pathfinder.Flood without a prebuilt door graph, for callers that
// only need rooms.
func Flood(w *ecs.World, start component.Cell) (room []component.Cell, doors []component.Cell) {
	static := w.Static
	if !static.InBounds(start) {
		return nil, nil
	}
	startDoor := w.IsDoor(start)
	if !startDoor && static.At(start) > 0 {
		return nil, nil
	}

	visited := map[component.Cell]bool{start: true}
	queue := []component.Cell{start}
	if !startDoor {
		room = append(room, start)
	}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, d := range orthogonal {
			n := cur.Add(d.X, d.Y)
			if visited[n] || !static.InBounds(n) {
				continue
			}
			visited[n] = true
			if w.IsDoor(n) {
				doors = append(doors, n)
				continue
			}
			if static.At(n) > 0 {
				continue
			}
			room = append(room, n)
			queue = append(queue, n)
		}
	}
	return room, doors
}

// passable reports whether a local search may step into c. Doors count as
// passable because actors open them on arrival.
func (p *Pathfinder) passable(c component.Cell) bool {
	if !p.w.Grid.InBounds(c) {
		return false
	}
	return p.w.Grid.At(c) <= 0 || p.w.IsDoor(c)
}

func (p *Pathfinder) plain(c component.Cell) bool {
	return p.passable(c) && !p.w.IsDoor(c)
}

// LocalSearch is a best-first grid search ordered by squared distance to
// end, ties broken by discovery order. The path excludes start and ends at
// end; it is empty when end cannot be reached.
func (p *Pathfinder) LocalSearch(start, end component.Cell) []component.Cell {
	if start == end || !p.w.Grid.InBounds(start) || !p.passable(end) {
		return nil
	}

	parent := map[component.Cell]component.Cell{start: start}
	open := &frontier{}
	heap.Init(open)
	seq := 0
	heap.Push(open, &frontierItem{cell: start, cost: start.DistSq(end), seq: seq})

	expanded := 0
	for open.Len() > 0 && expanded < p.MaxNodes {
		cur := heap.Pop(open).(*frontierItem).cell
		expanded++
		if cur == end {
			return retrace(parent, start, end)
		}

		for _, d := range orthogonal {
			n := cur.Add(d.X, d.Y)
			if _, seen := parent[n]; seen || !p.passable(n) {
				continue
			}
			parent[n] = cur
			seq++
			heap.Push(open, &frontierItem{cell: n, cost: n.DistSq(end), seq: seq})
		}
		for _, d := range diagonal {
			n := cur.Add(d.X, d.Y)
			if _, seen := parent[n]; seen || !p.plain(n) {
				continue
			}
			if !p.plain(cur.Add(d.X, 0)) || !p.plain(cur.Add(0, d.Y)) {
				continue
			}
			parent[n] = cur
			seq++
			heap.Push(open, &frontierItem{cell: n, cost: n.DistSq(end), seq: seq})
		}
	}
	return nil
}

// retrace walks the parent map back from end and returns the forward path.
func retrace(parent map[component.Cell]component.Cell, start, end component.Cell) []component.Cell {
	var stack []component.Cell
	for cur := end; cur != start; cur = parent[cur] {
		stack = append(stack, cur)
	}
	path := make([]component.Cell, 0, len(stack))
	for i := len(stack) - 1; i >= 0; i-- {
		path = append(path, stack[i])
	}
	return path
}

// Pathfind returns the cells to walk from start to end, or nil when end is
// unreachable or equal to start.
func (p *Pathfinder) Pathfind(start, end component.Cell) []component.Cell {
	segs := p.Route(start, end)
	if len(segs) == 0 {
		return nil
	}
	var path []component.Cell
	for _, s := range segs {
		path = append(path, s.Cells...)
	}
	return path
}

// Route returns the local-search segments Pathfind concatenates.
func (p *Pathfinder) Route(start, end component.Cell) []component.Segment {
	if start == end {
		return nil
	}
	startRoom, startDoors := p.Flood(start)
	_, endDoors := p.Flood(end)

	if containsCell(startRoom, end) || nearAny(start, endDoors) || nearAny(end, startDoors) {
		cells := p.LocalSearch(start, end)
		if len(cells) == 0 {
			return nil
		}
		return []component.Segment{{From: start, To: end, Cells: cells}}
	}

	doors := p.doorRoute(startDoors, endDoors, end)
	if len(doors) == 0 {
		return nil
	}

	segs := make([]component.Segment, 0, len(doors)+1)
	from := start
	for _, d := range append(doors, end) {
		if d == from {
			continue
		}
		cells := p.LocalSearch(from, d)
		if len(cells) == 0 {
			return nil
		}
		segs = append(segs, component.Segment{From: from, To: d, Cells: cells})
		from = d
	}
	return segs
}

// doorRoute greedily walks the door graph from the start room's door nearest
// to end, backtracking out of dead ends, until it reaches a door of the end
// room.
func (p *Pathfinder) doorRoute(startDoors, endDoors []component.Cell, end component.Cell) []component.Cell {
	first, ok := nearestTo(startDoors, end, nil)
	if !ok {
		return nil
	}
	visited := map[component.Cell]bool{first: true}
	stack := []component.Cell{first}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		if containsCell(endDoors, top) {
			return stack
		}
		next, ok := nearestTo(p.graph[top], end, visited)
		if !ok {
			stack = stack[:len(stack)-1]
			continue
		}
		visited[next] = true
		stack = append(stack, next)
	}
	return nil
}

func nearestTo(cells []component.Cell, target component.Cell, skip map[component.Cell]bool) (component.Cell, bool) {
	var best component.Cell
	bestDist := -1
	for _, c := range cells {
		if skip[c] {
			continue
		}
		if d := c.DistSq(target); bestDist < 0 || d < bestDist {
			best, bestDist = c, d
		}
	}
	return best, bestDist >= 0
}

func containsCell(cells []component.Cell, c component.Cell) bool {
	for _, x := range cells {
		if x == c {
			return true
		}
	}
	return false
}

// nearAny reports whether c is one of cells or orthogonally next to one.
func nearAny(c component.Cell, cells []component.Cell) bool {
	for _, x := range cells {
		dx := x.X - c.X
		dy := x.Y - c.Y
		if dx*dx+dy*dy <= 1 {
			return true
		}
	}
	return false
}

type frontierItem struct {
	cell  component.Cell
	cost  int
	seq   int
	index int
}

// frontier orders cells by cost, then by discovery sequence.
type frontier []*frontierItem

func (f frontier) Len() int { return len(f) }
func (f frontier) Less(i, j int) bool {
	if f[i].cost != f[j].cost {
		return f[i].cost < f[j].cost
	}
	return f[i].seq < f[j].seq
}
func (f frontier) Swap(i, j int) {
	f[i], f[j] = f[j], f[i]
	f[i].index = i
	f[j].index = j
}
func (f *frontier) Push(x any) {
	item := x.(*frontierItem)
	item.index = len(*f)
	*f = append(*f, item)
}
func (f *frontier) Pop() any {
	old := *f
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*f = old[:n-1]
	return item
}
