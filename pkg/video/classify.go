package video

import (
	"image"
	"sort"

	"github.com/matchlens/soccer-analytics/pkg/config"
	"github.com/matchlens/soccer-analytics/pkg/match"
	"github.com/matchlens/soccer-analytics/pkg/utils"
	"gocv.io/x/gocv"
	"gonum.org/v1/gonum/stat"
)

//TeamClassifier assigns a team label to every tracked player bounding box of one frame.
//The possession core depends on it only through this function type, so tests can swap
//in a canned mapping without any image data.
type TeamClassifier func(frame *gocv.Mat, boxes map[int]*playerBoundingBox) map[int]match.TeamLabel

//NewClassifier picks the jersey classifier the configuration supports: HSV color
//ranges when every team defines one, otherwise the dark/light grayscale split.
func NewClassifier(cfg *config.MatchConfig) TeamClassifier {
	if cfg.HasHSVRanges() {
		return NewHSVClassifier(cfg)
	}
	return NewShadeClassifier(cfg)
}

//NewHSVClassifier classifies each player by the share of jersey-colored pixels inside
//the middle third of it's bounding box (trying to catch uniform only). A box matching
//the referee range, or matching no team strongly enough, gets no team.
func NewHSVClassifier(cfg *config.MatchConfig) TeamClassifier {
	labels := cfg.Labels()

	return func(frame *gocv.Mat, boxes map[int]*playerBoundingBox) map[int]match.TeamLabel {
		teamsMap := make(map[int]match.TeamLabel, len(boxes))
		if len(boxes) == 0 {
			return teamsMap
		}

		hsvFrame := gocv.NewMat()
		defer hsvFrame.Close()
		gocv.CvtColor(*frame, &hsvFrame, gocv.ColorBGRToHSV)

		for id, bbox := range boxes {
			roiRect := torsoRect(bbox, frame.Cols(), frame.Rows())
			if roiRect.Empty() {
				teamsMap[id] = match.TeamNone
				continue
			}

			roi := hsvFrame.Region(roiRect)
			ratios := make([]float64, len(cfg.Teams))
			for i, team := range cfg.Teams {
				ratios[i] = maskRatio(roi, team.LowerHSV, team.UpperHSV)
			}
			refereeRatio := maskRatio(roi, cfg.Referee.LowerHSV, cfg.Referee.UpperHSV)
			roi.Close()

			teamsMap[id] = pickTeamByRatio(labels, ratios, refereeRatio)
		}

		return teamsMap
	}
}

//pickTeamByRatio resolves jersey mask ratios to a label. Referee wins whenever it's
//ratio beats every team's, otherwise the strongest team above MinJerseyRatio wins.
func pickTeamByRatio(labels []match.TeamLabel, ratios []float64, refereeRatio float64) match.TeamLabel {
	best := -1
	bestRatio := utils.MinJerseyRatio
	for i, r := range ratios {
		if r > bestRatio {
			best = i
			bestRatio = r
		}
	}

	if best < 0 || refereeRatio > bestRatio {
		return match.TeamNone
	}
	return labels[best]
}

//maskRatio returns the share of roi pixels falling inside the given HSV range
func maskRatio(roi gocv.Mat, lower, upper []int) float64 {
	if len(lower) != 3 || len(upper) != 3 {
		return 0
	}

	mask := gocv.NewMat()
	defer mask.Close()

	gocv.InRangeWithScalar(roi,
		gocv.NewScalar(float64(lower[0]), float64(lower[1]), float64(lower[2]), 0),
		gocv.NewScalar(float64(upper[0]), float64(upper[1]), float64(upper[2]), 0),
		&mask)

	total := mask.Rows() * mask.Cols()
	if total == 0 {
		return 0
	}

	return float64(gocv.CountNonZero(mask)) / float64(total)
}

//NewShadeClassifier splits the frame's players into a darker and a lighter uniform
//group around the median torso intensity. The first configured team takes the darker
//shirts, the second the lighter ones.
func NewShadeClassifier(cfg *config.MatchConfig) TeamClassifier {
	labels := cfg.Labels()
	darkTeam, lightTeam := labels[0], labels[1]

	return func(frame *gocv.Mat, boxes map[int]*playerBoundingBox) map[int]match.TeamLabel {
		teamsMap := make(map[int]match.TeamLabel, len(boxes))
		if len(boxes) == 0 {
			return teamsMap
		}

		grayFrame := gocv.NewMat()
		defer grayFrame.Close()
		gocv.CvtColor(*frame, &grayFrame, gocv.ColorBGRToGray)

		avgValues := make([]float64, 0, len(boxes))
		avgValuesMap := make(map[int]float64, len(boxes))

		for id, bbox := range boxes {
			roiRect := torsoRect(bbox, frame.Cols(), frame.Rows())
			if roiRect.Empty() {
				teamsMap[id] = match.TeamNone
				continue
			}
			roiGrayFrame := grayFrame.Region(roiRect)
			avg := roiGrayFrame.Mean()
			roiGrayFrame.Close()
			avgValues = append(avgValues, avg.Val1)
			avgValuesMap[id] = avg.Val1
		}

		if len(avgValues) == 0 {
			return teamsMap
		}

		sort.Float64s(avgValues)
		median := stat.Quantile(0.5, stat.Empirical, avgValues, nil)

		for id, avg := range avgValuesMap {
			if avg < median {
				teamsMap[id] = darkTeam
			} else {
				teamsMap[id] = lightTeam
			}
		}

		return teamsMap
	}
}

//torsoRect returns the middle third of the bounding box clamped to the frame
func torsoRect(bbox *playerBoundingBox, frameWidth, frameHeight int) image.Rectangle {
	boxWidth := bbox.Xmax - bbox.Xmin
	boxHeight := bbox.Ymax - bbox.Ymin
	rect := image.Rect(bbox.Xmin+boxWidth/3, bbox.Ymin+boxHeight/3, bbox.Xmax-boxWidth/3, bbox.Ymax-boxHeight/3)
	return rect.Intersect(image.Rect(0, 0, frameWidth, frameHeight))
}
