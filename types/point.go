package types

import "math"

// Point 引脚空间位置
type Point struct {
	X, Y, Z float64
}

// Distance 欧氏距离
func (p Point) Distance(q Point) float64 {
	dx, dy, dz := p.X-q.X, p.Y-q.Y, p.Z-q.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// Unplaced 未放置位置标记
// 未放置引脚不参与距离归并, 仅能通过接线点归属节点。
func Unplaced() Point {
	nan := math.NaN()
	return Point{X: nan, Y: nan, Z: nan}
}

// IsValid 坐标是否有效
func (p Point) IsValid() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) &&
		!math.IsNaN(p.Y) && !math.IsInf(p.Y, 0) &&
		!math.IsNaN(p.Z) && !math.IsInf(p.Z, 0)
}
