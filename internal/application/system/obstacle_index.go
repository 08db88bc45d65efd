package system

import (
	"math"
	"sort"

	"github.com/solarlune/resolv"

	"github.com/younwookim/duskblade/internal/domain/entity"
)

const (
	tagObstacle = "obstacle"
	tagProbe    = "probe"
)

// Prober answers AI ground and wall probes
type Prober interface {
	// Probe reports whether r overlaps any probeable obstacle
	Probe(r entity.Rect) bool
}

// ObstacleScan probes by scanning every obstacle
type ObstacleScan []*entity.Obstacle

// Probe implements Prober
func (s ObstacleScan) Probe(r entity.Rect) bool {
	for _, o := range s {
		if o.Probeable() && r.Intersects(o.Bounds) {
			return true
		}
	}
	return false
}

// ObstacleIndex is a spatial hash over the probeable obstacles of a stage.
// The resolv space does the broadphase; candidates are confirmed against the
// exact obstacle bounds.
type ObstacleIndex struct {
	space   *resolv.Space
	probe   *resolv.Object
	objects []*resolv.Object
	moving  []*resolv.Object
}

// NewObstacleIndex indexes the probeable obstacles of stage
func NewObstacleIndex(stage *entity.Stage) *ObstacleIndex {
	cell := int(stage.TileSize)
	if cell <= 0 {
		cell = 64
	}
	w := int(math.Ceil(stage.Width))
	h := int(math.Ceil(stage.Height))

	ix := &ObstacleIndex{
		space: resolv.NewSpace(w, h, cell, cell),
		probe: resolv.NewObject(0, 0, 1, 1, tagProbe),
	}
	ix.space.Add(ix.probe)

	for _, o := range stage.Obstacles {
		if !o.Probeable() {
			continue
		}
		obj := resolv.NewObject(0, 0, 1, 1, tagObstacle)
		setCellBounds(obj, o.Bounds)
		obj.Data = o
		ix.space.Add(obj)
		ix.objects = append(ix.objects, obj)
		if o.Kind == entity.KindMovingPlatform {
			ix.moving = append(ix.moving, obj)
		}
	}

	return ix
}

// Sync moves indexed moving platforms to their current bounds
func (ix *ObstacleIndex) Sync() {
	for _, obj := range ix.moving {
		o := obj.Data.(*entity.Obstacle)
		if obj.X == math.Floor(o.Bounds.X) && obj.Y == math.Floor(o.Bounds.Y) {
			continue
		}
		setCellBounds(obj, o.Bounds)
		obj.Update()
	}
}

// setCellBounds widens obj to whole pixels covering r. resolv computes the
// last cell from X+W-1, so fractional edges would otherwise drop a cell.
func setCellBounds(obj *resolv.Object, r entity.Rect) {
	x, y := math.Floor(r.X), math.Floor(r.Y)
	obj.X, obj.Y = x, y
	obj.W = math.Ceil(r.X+r.W) - x + 1
	obj.H = math.Ceil(r.Y+r.H) - y + 1
}

// Len returns the number of indexed obstacles
func (ix *ObstacleIndex) Len() int {
	return len(ix.objects)
}

// Probe implements Prober
func (ix *ObstacleIndex) Probe(r entity.Rect) bool {
	return len(ix.query(r, true)) > 0
}

// Query returns the probeable obstacles overlapping r in raster order
func (ix *ObstacleIndex) Query(r entity.Rect) []*entity.Obstacle {
	return ix.query(r, false)
}

func (ix *ObstacleIndex) query(r entity.Rect, first bool) []*entity.Obstacle {
	setCellBounds(ix.probe, r)
	ix.probe.Update()

	check := ix.probe.Check(0, 0, tagObstacle)
	if check == nil {
		return nil
	}

	var found []*entity.Obstacle
	seen := make(map[*entity.Obstacle]bool)
	for _, obj := range check.Objects {
		o, ok := obj.Data.(*entity.Obstacle)
		if !ok || seen[o] || !r.Intersects(o.Bounds) {
			continue
		}
		seen[o] = true
		found = append(found, o)
		if first {
			return found
		}
	}

	sort.Slice(found, func(i, j int) bool { return found[i].Index < found[j].Index })
	return found
}
