package spatial

import (
	"github.com/golang/geo/r2"
	"github.com/jengzang/trajectory-classifier/internal/models"
)

// Point converts a sample into a planar point
func Point(s models.Sample) r2.Point {
	return r2.Point{X: float64(s.X), Y: float64(s.Y)}
}

// PlanarDistance calculates the Euclidean distance between two samples
func PlanarDistance(a, b models.Sample) float64 {
	return Point(b).Sub(Point(a)).Norm()
}

// PathLength sums the distances between consecutive samples.
// Fewer than two samples yield 0.
func PathLength(samples []models.Sample) float64 {
	length := 0.0
	for i := 1; i < len(samples); i++ {
		length += PlanarDistance(samples[i-1], samples[i])
	}
	return length
}

// Bounds returns the bounding rectangle of the samples.
// An empty slice yields the empty rectangle.
func Bounds(samples []models.Sample) r2.Rect {
	if len(samples) == 0 {
		return r2.EmptyRect()
	}
	rect := r2.RectFromPoints(Point(samples[0]))
	for _, s := range samples[1:] {
		rect = rect.AddPoint(Point(s))
	}
	return rect
}

// BoundingBox converts a rectangle to its API representation.
// The empty rectangle maps to the zero box.
func BoundingBox(rect r2.Rect) models.BoundingBox {
	if rect.IsEmpty() {
		return models.BoundingBox{}
	}
	return models.BoundingBox{
		MinX: rect.X.Lo,
		MinY: rect.Y.Lo,
		MaxX: rect.X.Hi,
		MaxY: rect.Y.Hi,
	}
}
