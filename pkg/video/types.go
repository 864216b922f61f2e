package video

import "github.com/matchlens/soccer-analytics/pkg/utils"

type playerBoundingBox struct {
	ID   int
	Xmin int
	Ymin int
	Xmax int
	Ymax int
}

type objectBoundingBox struct {
	Class      int
	Confidence float32
	Xmin       int
	Ymin       int
	Xmax       int
	Ymax       int
}

type frameObjects struct {
	frameNumber         int
	playerBoundingBoxes map[int]*playerBoundingBox
	objectBoundingBoxes []*objectBoundingBox
}

func newFrameObjects(frameNum int) *frameObjects {
	x := frameObjects{}
	x.frameNumber = frameNum
	x.playerBoundingBoxes = make(map[int]*playerBoundingBox)
	x.objectBoundingBoxes = make([]*objectBoundingBox, 0)
	return &x
}

//ballBox returns the ball detection of this frame, nil if the detector missed it
func (f *frameObjects) ballBox() *objectBoundingBox {
	for _, obj := range f.objectBoundingBoxes {
		if obj.Class == utils.BallClass {
			if obj.Xmin == 0 && obj.Ymin == 0 && obj.Xmax == 0 && obj.Ymax == 0 { //invalid placeholder box
				continue
			}
			return obj
		}
	}
	return nil
}
