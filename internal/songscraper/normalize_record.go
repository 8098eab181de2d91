package songscraper

import (
	"strings"

	"github.com/tidwall/gjson"
)

// MinDurationSeconds is the shortest video kept. Anything below is a short-form clip.
const MinDurationSeconds = 60

// NormalizeRecord turns a result-item node into a SongRecord. Nodes that are not
// regular videos, or that fail the duration gate, come back with a SkipReason.
func NormalizeRecord(node gjson.Result) (SongRecord, SkipReason) {
	video := dig(node, "videoRenderer")
	if !video.IsObject() {
		return SongRecord{}, SkipNotVideo
	}

	videoID := strings.TrimSpace(dig(video, "videoId").String())
	if videoID == "" {
		return SongRecord{}, SkipMissingID
	}

	// Shorts and live streams carry no length label.
	durationText := strings.TrimSpace(dig(video, "lengthText", "simpleText").String())
	if durationText == "" {
		return SongRecord{}, SkipNoDuration
	}
	durationSeconds := ParseDuration(durationText)
	if durationSeconds < MinDurationSeconds {
		return SongRecord{}, SkipTooShort
	}

	return SongRecord{
		Title: firstText(video,
			[]string{"title", "runs", "0", "text"},
			[]string{"title", "simpleText"},
		),
		VideoID: videoID,
		Channel: firstText(video,
			[]string{"ownerText", "runs", "0", "text"},
			[]string{"longBylineText", "runs", "0", "text"},
		),
		Views:           firstText(video, []string{"viewCountText", "simpleText"}),
		Thumbnail:       largestThumbnail(video),
		DurationSeconds: durationSeconds,
		DurationText:    durationText,
	}, SkipNone
}

// firstText returns the first non-empty string found at any of paths.
func firstText(node gjson.Result, paths ...[]string) string {
	for _, path := range paths {
		if text := strings.TrimSpace(dig(node, path...).String()); text != "" {
			return text
		}
	}
	return ""
}

// largestThumbnail picks the last thumbnail, which the platform lists in
// ascending resolution.
func largestThumbnail(video gjson.Result) string {
	thumbnails := dig(video, "thumbnail", "thumbnails").Array()
	for i := len(thumbnails) - 1; i >= 0; i-- {
		if url := dig(thumbnails[i], "url").String(); url != "" {
			return url
		}
	}
	return ""
}
