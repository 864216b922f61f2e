package video

import (
	"log"
	"math"
	"os"
	"os/exec"
	"path"
	"strings"

	"github.com/matchlens/soccer-analytics/pkg/config"
	"github.com/matchlens/soccer-analytics/pkg/match"
	"github.com/matchlens/soccer-analytics/pkg/store"
	"github.com/spf13/viper"
	"gocv.io/x/gocv"
)

//Analyze reads a video from given source, runs the external detector/tracker over it and
//advances the possession/pass state machine frame by frame, plotting player boxes, the ball
//and the running statistics scoreboard above each frame. The tagged video (XVID (== MPEG-4 codec)
//format, '.avi' extension) is converted to the production format in the 'ready' directory and the
//final statistics are written to the results database.
//srcVideoName should include file's extension ('.mp4', etc.)
func Analyze(srcVideoName, jobID string, matchCfg *config.MatchConfig, db *store.DB) {
	srcVideoPath := path.Join(viper.GetString("directory.source"), srcVideoName)
	tmpVideoPath := path.Join(viper.GetString("directory.temp"), strings.Split(srcVideoName, ".")[0]+"."+"avi")
	outputVideoPath := path.Join(viper.GetString("directory.ready"), srcVideoName)

	registerJob(srcVideoName, jobID)
	defer finishJob(srcVideoName)

	cap, err := gocv.VideoCaptureFile(srcVideoPath)
	if err != nil {
		log.Printf("Analyze: Error, Got '%v'", err)
		return
	}
	defer cap.Close()

	fps := int(math.Round(cap.Get(gocv.VideoCaptureFPS)))
	m, err := match.New(matchCfg.MatchSettings(fps))
	if err != nil {
		log.Printf("Analyze: Error, Got '%v'", err)
		return
	}

	videoWriter, err := gocv.VideoWriterFile(tmpVideoPath, "XVID", cap.Get(gocv.VideoCaptureFPS), int(cap.Get(gocv.VideoCaptureFrameWidth)), int(cap.Get(gocv.VideoCaptureFrameHeight)), true)
	if err != nil {
		log.Printf("Analyze: Error, Got '%v'", err)
		return
	}
	defer videoWriter.Close()
	defer os.Remove(tmpVideoPath) //remove '.avi' temp file at the end of this function

	classifier := NewClassifier(matchCfg)

	framesC := make(chan *frameObjects)
	go RunTracker(srcVideoPath, framesC)

	frameMat := gocv.NewMat()
	defer frameMat.Close()

	for frameStats := range framesC {
		if !cap.Read(&frameMat) { //finished to read all video's frames
			break
		}
		if frameMat.Empty() {
			continue
		}

		width, height := frameMat.Cols(), frameMat.Rows()
		for _, bbox := range frameStats.playerBoundingBoxes {
			fixBbox(bbox, height, width)
		}

		teamsMap := classifier(&frameMat, frameStats.playerBoundingBoxes)

		players := make([]match.Player, 0, len(frameStats.playerBoundingBoxes))
		for id, bbox := range frameStats.playerBoundingBoxes {
			players = append(players, match.PlayerFromBox(id, teamsMap[id], bbox.Xmin, bbox.Ymin, bbox.Xmax, bbox.Ymax))
		}

		var ball *match.Ball
		ballBbox := frameStats.ballBox()
		if ballBbox != nil {
			ball = &match.Ball{Center: match.Point{
				X: float64(ballBbox.Xmin+ballBbox.Xmax) / 2,
				Y: float64(ballBbox.Ymin+ballBbox.Ymax) / 2,
			}}
		}

		snap := m.Step(ball, players)
		publishSnapshot(srcVideoName, snap)

		for id, bbox := range frameStats.playerBoundingBoxes {
			if label := teamsMap[id]; label == match.TeamNone {
				plotPlayerOnFrame(&frameMat, bbox, "REF", refereeColor)
			} else {
				plotPlayerOnFrame(&frameMat, bbox, matchCfg.AbbreviationFor(label), matchCfg.ColorFor(label))
			}
		}

		if ballBbox != nil {
			//the ball takes the possessing team's color, like the broadcast graphics do
			ballColor := unclassifiedColor
			if team := m.TeamInPossession(); team != match.TeamNone {
				ballColor = matchCfg.ColorFor(team)
			}
			plotBall(&frameMat, ballBbox, ballColor)
		}

		plotScoreboard(&frameMat, snap, matchCfg)

		videoWriter.Write(frameMat)
	}

	//Convert from 'avi' to the production format. example: ffmpeg -i derby.avi derby.mp4
	cmd := exec.Command("ffmpeg", "-i", tmpVideoPath, outputVideoPath)
	if err := cmd.Run(); err != nil {
		log.Printf("Analyze: Error from ffmpeg, got '%v'", err)
	}

	if db != nil {
		if err := db.SaveResult(jobID, srcVideoName, m.Snapshot()); err != nil {
			log.Printf("Analyze: Error, Got '%v'", err)
		}
	}
}

//fixBbox fixes bounding boxes values in case they are out of frame's range
func fixBbox(bbox *playerBoundingBox, frameHeight, frameWidth int) {
	if bbox.Xmin < 0 {
		bbox.Xmin = 0
	} else if bbox.Xmin > frameWidth {
		bbox.Xmin = frameWidth
	}

	if bbox.Ymin < 0 {
		bbox.Ymin = 0
	} else if bbox.Ymin > frameHeight {
		bbox.Ymin = frameHeight
	}

	if bbox.Xmax < 0 {
		bbox.Xmax = 0
	} else if bbox.Xmax > frameWidth {
		bbox.Xmax = frameWidth
	}

	if bbox.Ymax < 0 {
		bbox.Ymax = 0
	} else if bbox.Ymax > frameHeight {
		bbox.Ymax = frameHeight
	}
}
