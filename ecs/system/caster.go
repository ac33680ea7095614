package system

import (
	"math"

	"github.com/milk9111/raycaster/common"
	"github.com/milk9111/raycaster/ecs"
	"github.com/milk9111/raycaster/ecs/component"
)

// Hit is the result of a cast.
type Hit struct {
	Value    int
	X        float64
	Y        float64
	Column   int
	Vertical bool
	Cell     component.Cell
	Category component.TileCategory
}

// Dist returns the Euclidean distance from (ox, oy) to the hit point.
func (h Hit) Dist(ox, oy float64) float64 {
	return math.Sqrt(common.DistSq(ox, oy, h.X, h.Y))
}

// DoorEncounter is a door cell a ray reached. The caller decides whether to
// insert it into the door set.
type DoorEncounter struct {
	Cell  component.Cell
	Value int
}

// Sightings collects the objects a frame's rays passed through and the doors
// they met, each deduplicated by cell.
type Sightings struct {
	Objects []component.Cell
	Doors   []DoorEncounter

	objSeen  map[component.Cell]struct{}
	doorSeen map[component.Cell]struct{}
}

func NewSightings() *Sightings {
	return &Sightings{
		objSeen:  make(map[component.Cell]struct{}),
		doorSeen: make(map[component.Cell]struct{}),
	}
}

func (s *Sightings) addObject(c component.Cell) {
	if s == nil {
		return
	}
	if _, ok := s.objSeen[c]; ok {
		return
	}
	s.objSeen[c] = struct{}{}
	s.Objects = append(s.Objects, c)
}

func (s *Sightings) addDoor(c component.Cell, v int) {
	if s == nil {
		return
	}
	if _, ok := s.doorSeen[c]; ok {
		return
	}
	s.doorSeen[c] = struct{}{}
	s.Doors = append(s.Doors, DoorEncounter{Cell: c, Value: v})
}

// ViewCone restricts CanSee to bearings within FOV/2 of Angle.
type ViewCone struct {
	Angle float64
	FOV   float64
}

// Caster marches rays through the grid. It reads door open fractions but
// never mutates the world.
type Caster struct {
	Grid         *component.Grid
	Tiles        component.TileTable
	Doors        *component.DoorSet
	TextureWidth int
}

func NewCaster(w *ecs.World, textureWidth int) *Caster {
	if textureWidth <= 0 {
		textureWidth = 64
	}
	return &Caster{
		Grid:         w.Grid,
		Tiles:        w.Tiles,
		Doors:        w.Doors,
		TextureWidth: textureWidth,
	}
}

// Cast marches a ray from (ox, oy) and returns the first occluding tile.
// Objects and doors met on the way are recorded in seen when it is non-nil.
func (c *Caster) Cast(angle, ox, oy float64, seen *Sightings) Hit {
	return c.march(angle, ox, oy, seen)
}

// SimpleCast returns only the hit point and records nothing.
func (c *Caster) SimpleCast(angle, ox, oy float64) (float64, float64) {
	h := c.march(angle, ox, oy, nil)
	return h.X, h.Y
}

// CanSee reports whether (tx, ty) is visible from (fx, fy). With a cone, a
// target outside the cone is never visible.
func (c *Caster) CanSee(fx, fy, tx, ty float64, cone *ViewCone) bool {
	target := common.DistSq(fx, fy, tx, ty)
	if target == 0 {
		return true
	}
	bearing := math.Atan2(ty-fy, tx-fx)
	if cone != nil && cone.FOV > 0 {
		if math.Abs(common.AngleDiff(cone.Angle, bearing)) > cone.FOV/2 {
			return false
		}
	}
	hx, hy := c.SimpleCast(bearing, fx, fy)
	return common.DistSq(fx, fy, hx, hy) > target
}

func (c *Caster) march(angle, ox, oy float64, seen *Sightings) Hit {
	angle = common.NudgeAngle(angle)
	slope := math.Tan(angle)

	stepX := 1
	if math.Cos(angle) < 0 {
		stepX = -1
	}
	stepY := 1
	if math.Sin(angle) < 0 {
		stepY = -1
	}

	cell := component.CellAt(ox, oy)
	maxSteps := c.Grid.Width + c.Grid.Height + 2
	var hx, hy float64

	for step := 0; step < maxSteps; step++ {
		nextX := float64(cell.X)
		if stepX > 0 {
			nextX++
		}
		nextY := float64(cell.Y)
		if stepY > 0 {
			nextY++
		}

		// The vertical grid line is crossed first when the ray's y at that
		// line has not yet passed the next horizontal line.
		yAtX := oy + (nextX-ox)*slope
		vertical := yAtX <= nextY
		if stepY < 0 {
			vertical = yAtX >= nextY
		}

		var offset float64
		if vertical {
			hx, hy = nextX, yAtX
			cell.X += stepX
			offset = hy - math.Floor(hy)
		} else {
			hx, hy = ox+(nextY-oy)/slope, nextY
			cell.Y += stepY
			offset = hx - math.Floor(hx)
		}

		if !c.Grid.InBounds(cell) {
			return Hit{X: hx, Y: hy, Cell: cell, Vertical: vertical}
		}

		value := c.Grid.At(cell)
		open := 0.0
		isDoor := false
		if d, ok := c.Doors.Get(cell); ok {
			value = d.Value
			open = d.Open
			isDoor = true
		} else if value > 0 && c.Tiles.Is(value, component.CategoryDoor) {
			isDoor = true
		}
		if value == 0 {
			continue
		}

		desc, known := c.Tiles.Lookup(value)
		switch {
		case isDoor:
			seen.addDoor(cell, value)
			if offset < open {
				continue
			}
			return c.hit(value, hx, hy, offset-open, vertical, cell, component.CategoryDoor)
		case value < 0 || (known && desc.Category == component.CategoryObject):
			seen.addObject(cell)
			continue
		case known && desc.Category == component.CategoryEnemy:
			continue
		default:
			cat := component.CategoryWall
			if known {
				cat = desc.Category
			}
			return c.hit(value, hx, hy, offset, vertical, cell, cat)
		}
	}

	return Hit{X: hx, Y: hy, Cell: cell}
}

func (c *Caster) hit(value int, hx, hy, offset float64, vertical bool, cell component.Cell, cat component.TileCategory) Hit {
	col := int(offset * float64(c.TextureWidth))
	col = common.Clamp(col, 0, c.TextureWidth-1)
	if vertical {
		col += c.TextureWidth
	}
	return Hit{
		Value:    value,
		X:        hx,
		Y:        hy,
		Column:   col,
		Vertical: vertical,
		Cell:     cell,
		Category: cat,
	}
}
