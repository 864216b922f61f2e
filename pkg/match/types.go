package match

import "math"

// TeamLabel identifies one of the configured sides. The zero value means
// "no team" - it is used for referees, unclassified players and the
// pre-kickoff possession state.
type TeamLabel string

// TeamNone is the sentinel label for referees/unclassified detections.
const TeamNone TeamLabel = ""

// Point is a pixel-space coordinate.
type Point struct {
	X float64
	Y float64
}

// DistanceTo returns the Euclidean distance between two points.
func (p Point) DistanceTo(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Ball is the single ball detection of a frame.
type Ball struct {
	Center Point
}

// Player is a classified player detection for one frame. ID is the stable
// track identifier assigned by the external tracker. LeftFoot and RightFoot
// are the bottom corners of the bounding box - ball control is judged from
// the nearer foot, not the box center.
type Player struct {
	ID        int
	Team      TeamLabel
	LeftFoot  Point
	RightFoot Point
}

// PlayerFromBox builds a Player from a tracker bounding box.
func PlayerFromBox(id int, team TeamLabel, xmin, ymin, xmax, ymax int) Player {
	return Player{
		ID:        id,
		Team:      team,
		LeftFoot:  Point{X: float64(xmin), Y: float64(ymax)},
		RightFoot: Point{X: float64(xmax), Y: float64(ymax)},
	}
}

// DistanceToBall returns the distance from the player's closest foot to the
// ball center.
func (p Player) DistanceToBall(b Ball) float64 {
	left := p.LeftFoot.DistanceTo(b.Center)
	right := p.RightFoot.DistanceTo(b.Center)
	return math.Min(left, right)
}
