package audio

// Track is what the client needs to start playback of one video.
type Track struct {
	AudioURL  string `json:"audioUrl"`
	Title     string `json:"title"`
	Thumbnail string `json:"thumbnail"`
	Channel   string `json:"channel"`
}
