package gridmap

import (
	"sort"

	"github.com/dhconnelly/rtreego"

	"gridpath/core"
)

// Cells are indexed as half-size squares centred in their grid cell, so a
// query rectangle aligned to cell edges never touches a neighbouring cell
// regardless of how the tree treats shared edges.
const cellInset = 0.25

type obstacleEntry struct {
	p    core.Point
	rect rtreego.Rect
}

func (e *obstacleEntry) Bounds() rtreego.Rect { return e.rect }

func (m *Map) buildIndex() {
	m.index = rtreego.NewTree(2, 25, 50)
	for p := range m.Obstacles() {
		rect, err := rtreego.NewRect(
			rtreego.Point{float64(p.X) + cellInset, float64(p.Y) + cellInset},
			[]float64{1 - 2*cellInset, 1 - 2*cellInset},
		)
		if err != nil {
			continue
		}
		m.index.Insert(&obstacleEntry{p: p, rect: rect})
	}
}

// ObstaclesIn returns the occupied cells inside b in row-major order.
// Renderers use it to draw only the visible part of a large map.
func (m *Map) ObstaclesIn(b core.Bounds) []core.Point {
	b = b.Intersect(m.Bounds())
	if b.Empty() || m.count == 0 {
		return nil
	}
	m.indexOnce.Do(m.buildIndex)

	query, err := rtreego.NewRect(
		rtreego.Point{float64(b.Min.X), float64(b.Min.Y)},
		[]float64{float64(b.Width()), float64(b.Height())},
	)
	if err != nil {
		return nil
	}

	hits := m.index.SearchIntersect(query)
	points := make([]core.Point, 0, len(hits))
	for _, h := range hits {
		points = append(points, h.(*obstacleEntry).p)
	}
	sort.Slice(points, func(i, j int) bool {
		if points[i].Y != points[j].Y {
			return points[i].Y < points[j].Y
		}
		return points[i].X < points[j].X
	})
	return points
}
