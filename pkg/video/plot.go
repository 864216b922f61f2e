package video

import (
	"fmt"
	"image"
	"image/color"

	"github.com/matchlens/soccer-analytics/pkg/config"
	"github.com/matchlens/soccer-analytics/pkg/match"
	"gocv.io/x/gocv"
)

var refereeColor = color.RGBA{0, 0, 255, 0}
var unclassifiedColor = color.RGBA{0, 255, 0, 0}
var whiteRGB = color.RGBA{255, 255, 255, 0}
var scoreboardBackground = color.RGBA{30, 30, 30, 0}

//plotPlayerOnFrame plots given bounding box and writes the player's ID and team abbreviation above it
func plotPlayerOnFrame(frame *gocv.Mat, box *playerBoundingBox, abbreviation string, plotColor color.RGBA) {
	//tracker could not find this object this frame but kept the slot, should not be plotted
	if box.Xmin == 0 && box.Ymin == 0 && box.Xmax == 0 && box.Ymax == 0 {
		return
	}

	boundingBoxRect := image.Rect(box.Xmin, box.Ymin, box.Xmax, box.Ymax)
	gocv.Rectangle(frame, boundingBoxRect, plotColor, 3)

	textToPut := fmt.Sprintf("%d %s", box.ID, abbreviation)
	startPoint := image.Pt(boundingBoxRect.Min.X, boundingBoxRect.Min.Y-5)
	textBackgroundRect := image.Rect(startPoint.X, startPoint.Y-15, startPoint.X+80, startPoint.Y+5)

	gocv.Rectangle(frame, textBackgroundRect, plotColor, -1) //thickness -1 == filled rectangle
	gocv.PutText(frame, textToPut, startPoint, gocv.FontHersheyPlain, 1, whiteRGB, 2)
}

//plotBall plots the ball bounding box, colored by the team currently in possession
func plotBall(frame *gocv.Mat, box *objectBoundingBox, plotColor color.RGBA) {
	boundingBoxRect := image.Rect(box.Xmin, box.Ymin, box.Xmax, box.Ymax)
	gocv.Rectangle(frame, boundingBoxRect, plotColor, 3)
}

//plotScoreboard draws the running possession/pass statistics in the frame's top left corner:
//one line per team (abbreviation, possession clock, possession percentage, passes) and a
//possession bar split by the teams' possession ratios
func plotScoreboard(frame *gocv.Mat, snap match.Snapshot, cfg *config.MatchConfig) {
	const barWidth = 300
	const lineHeight = 25

	boardRect := image.Rect(10, 10, 30+barWidth, 30+lineHeight*(len(snap.Teams)+1))
	gocv.Rectangle(frame, boardRect, scoreboardBackground, -1)

	y := 10 + lineHeight
	for _, team := range snap.Teams {
		text := fmt.Sprintf("%s %s  %3.0f%%  %d passes",
			cfg.AbbreviationFor(team.Label), team.PossessionClock, team.PossessionRatio*100, team.Passes)
		gocv.PutText(frame, text, image.Pt(20, y), gocv.FontHersheyPlain, 1.2, cfg.ColorFor(team.Label), 2)
		y += lineHeight
	}

	//possession bar: each team's slice is proportional to it's possession ratio
	barY := y
	x := 20
	for _, team := range snap.Teams {
		sliceWidth := int(float64(barWidth) * team.PossessionRatio)
		if x+sliceWidth > 20+barWidth {
			sliceWidth = 20 + barWidth - x
		}
		if sliceWidth <= 0 {
			continue
		}
		gocv.Rectangle(frame, image.Rect(x, barY, x+sliceWidth, barY+12), cfg.ColorFor(team.Label), -1)
		x += sliceWidth
	}
}
