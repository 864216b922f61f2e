package video

import (
	"sync"

	"github.com/matchlens/soccer-analytics/pkg/match"
)

//jobStatus is the live state of one analysis run, readable by the web API while
//the video is still being processed
type jobStatus struct {
	jobID    string
	snapshot match.Snapshot
	done     bool
}

var liveMu sync.RWMutex
var liveJobs = make(map[string]*jobStatus)

func registerJob(videoName, jobID string) {
	liveMu.Lock()
	defer liveMu.Unlock()
	liveJobs[videoName] = &jobStatus{jobID: jobID}
}

func publishSnapshot(videoName string, snap match.Snapshot) {
	liveMu.Lock()
	defer liveMu.Unlock()
	if job, ok := liveJobs[videoName]; ok {
		job.snapshot = snap
	}
}

func finishJob(videoName string) {
	liveMu.Lock()
	defer liveMu.Unlock()
	if job, ok := liveJobs[videoName]; ok {
		job.done = true
	}
}

//LiveSnapshot returns the latest statistics snapshot of a registered analysis run
//and whether that run is still going
func LiveSnapshot(videoName string) (match.Snapshot, bool, bool) {
	liveMu.RLock()
	defer liveMu.RUnlock()
	if job, ok := liveJobs[videoName]; ok {
		return job.snapshot, !job.done, true
	}
	return match.Snapshot{}, false, false
}
