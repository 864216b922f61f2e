package video

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const trackerOutput = `Frame #: 1
FPS: 24.1
{"ID":7,"Xmin":100,"Ymin":50,"Xmax":140,"Ymax":150}
{"ID":9,"Xmin":300,"Ymin":60,"Xmax":340,"Ymax":160}
{"Class":0,"Confidence":0.91,"Xmin":120,"Ymin":140,"Xmax":130,"Ymax":150}
Frame #: 2
{"ID":7,"Xmin":102,"Ymin":50,"Xmax":142,"Ymax":150}
{"Class":2,"Confidence":0.88,"Xmin":500,"Ymin":40,"Xmax":540,"Ymax":140}
EOF
`

func collectFrames(t *testing.T, output string) []*frameObjects {
	t.Helper()

	framesC := make(chan *frameObjects)
	go func() {
		consumeTrackerOutput(strings.NewReader(output), framesC)
		close(framesC)
	}()

	var frames []*frameObjects
	for f := range framesC {
		frames = append(frames, f)
	}
	return frames
}

func TestConsumeTrackerOutput(t *testing.T) {
	frames := collectFrames(t, trackerOutput)
	require.Len(t, frames, 2)

	first := frames[0]
	assert.Equal(t, 1, first.frameNumber)
	require.Len(t, first.playerBoundingBoxes, 2)
	assert.Equal(t, 100, first.playerBoundingBoxes[7].Xmin)
	assert.Equal(t, 150, first.playerBoundingBoxes[7].Ymax)

	ball := first.ballBox()
	require.NotNil(t, ball)
	assert.Equal(t, float32(0.91), ball.Confidence)

	second := frames[1]
	assert.Equal(t, 2, second.frameNumber)
	assert.Len(t, second.playerBoundingBoxes, 1)
	assert.Nil(t, second.ballBox(), "frame 2 has a referee box but no ball")
}

func TestConsumeTrackerOutputWithoutEOF(t *testing.T) {
	truncated := "Frame #: 1\n{\"ID\":7,\"Xmin\":1,\"Ymin\":2,\"Xmax\":3,\"Ymax\":4}\n"

	frames := collectFrames(t, truncated)
	require.Len(t, frames, 1, "a dying detector must not swallow the open frame")
	assert.Len(t, frames[0].playerBoundingBoxes, 1)
}

func TestConsumeTrackerOutputSkipsMalformedLines(t *testing.T) {
	noisy := "Frame #: 1\n{\"ID\":broken json\nnot even json\nEOF\n"

	frames := collectFrames(t, noisy)
	require.Len(t, frames, 1)
	assert.Empty(t, frames[0].playerBoundingBoxes)
}

func TestBallBoxSkipsPlaceholder(t *testing.T) {
	f := newFrameObjects(1)
	f.objectBoundingBoxes = append(f.objectBoundingBoxes, &objectBoundingBox{Class: 0})

	assert.Nil(t, f.ballBox(), "all-zero placeholder boxes are not detections")
}
