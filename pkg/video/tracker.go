package video

import (
	"bufio"
	"encoding/json"
	"io"
	"log"
	"os/exec"
	"strings"

	"github.com/spf13/viper"
)

func newDetectorCmd(script, videoPath string) *exec.Cmd {
	return exec.Command("python3", script, "--video", videoPath)
}

//RunTracker executes python code that runs a YOLOv5 detector with a tracking layer in order to detect
//players, goalkeepers, referees and the ball in each frame and keep persistent track IDs between frames.
//This function listens to python's standard output and sends each completed frame's detections through
//a chan to the analysis loop, so frames are processed while the next ones are still being detected.
//Because this function is the only one who writes to given chan, it will close it before it's finishing.
func RunTracker(videoPath string, framesC chan<- *frameObjects) {
	cmd := newDetectorCmd(viper.GetString("detector.script"), videoPath)

	defer func(framesC chan<- *frameObjects) {
		close(framesC)
	}(framesC)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		log.Printf("RunTracker: Error, got '%v'", err)
		return
	}
	defer stdout.Close()

	if err := cmd.Start(); err != nil {
		log.Printf("RunTracker: Error, got '%v'", err)
		return
	}

	consumeTrackerOutput(stdout, framesC)

	if err := cmd.Wait(); err != nil {
		log.Printf("RunTracker: Error waiting python's process, Got '%v'", err)
		return
	}
}

//consumeTrackerOutput parses the detector's line protocol: a "Frame #:" line opens a new frame,
//JSON lines carry one bounding box each, "EOF" ends the stream. Log prints ("FPS: ...") are skipped.
func consumeTrackerOutput(stdout io.Reader, framesC chan<- *frameObjects) {
	scanner := bufio.NewScanner(stdout)

	framesCounter := 0
	var current *frameObjects

	for scanner.Scan() {
		line := scanner.Text()

		if strings.Contains(line, "Frame #:") {
			if current != nil {
				framesC <- current
			}
			framesCounter++
			current = newFrameObjects(framesCounter)
			continue
		}

		if line == "EOF" { //finished to read all frames - send left data and stop
			if current != nil {
				framesC <- current
			}
			return
		}

		if strings.Contains(line, "FPS: ") { //this is a log print, skip it
			continue
		}

		if current == nil { //bounding box line before the first frame marker, nothing to attach it to
			continue
		}

		if strings.Contains(line, "{\"ID\":") { //it's printing a tracked player bounding box
			p := playerBoundingBox{}
			if err := json.Unmarshal(scanner.Bytes(), &p); err == nil {
				current.playerBoundingBoxes[p.ID] = &p
			} else {
				log.Printf("RunTracker: Error, got '%v'", err)
			}
			continue
		}

		if strings.Contains(line, "{\"Class\":") { //ball/referee/goalkeeper bounding box
			obj := objectBoundingBox{}
			if err := json.Unmarshal(scanner.Bytes(), &obj); err == nil {
				current.objectBoundingBoxes = append(current.objectBoundingBoxes, &obj)
			} else {
				log.Printf("RunTracker: Error, got '%v'", err)
			}
			continue
		}
	}

	if current != nil { //detector died without printing EOF, keep what we have
		framesC <- current
	}
}
