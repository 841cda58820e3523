package domain

import "regexp"

// VideoCompletionThreshold is the watched percentage at which a video
// counts as completed.
const VideoCompletionThreshold = 90

// Video is one tracked video with watch progress.
type Video struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Progress  int    `json:"progress"`
	Completed bool   `json:"completed"`
}

// IsCompleted reports whether the video crossed the completion
// threshold, regardless of the stored Completed flag.
func (v Video) IsCompleted() bool {
	return v.Progress >= VideoCompletionThreshold
}

var youtubeIDPattern = regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/)([^&?/]+)`)

// ExtractYouTubeID pulls the video ID out of a watch or short URL.
// Returns "" when the URL is not recognized.
func ExtractYouTubeID(url string) string {
	m := youtubeIDPattern.FindStringSubmatch(url)
	if m == nil {
		return ""
	}
	return m[1]
}
