package songscraper

// SongRecord is one playable result, normalized from a result-item node.
// Every field is always present in JSON; missing source fields become "".
type SongRecord struct {
	Title           string `json:"title"`
	VideoID         string `json:"videoId"`
	Channel         string `json:"channel"`
	Views           string `json:"views"`
	Thumbnail       string `json:"thumbnail"`
	DurationSeconds int    `json:"durationSeconds"`
	DurationText    string `json:"durationText"`
}

// ExtractOutcome is the terminal state an extraction run stopped in.
type ExtractOutcome string

const (
	OutcomeOK            ExtractOutcome = "ok"
	OutcomeNoItems       ExtractOutcome = "no_items"
	OutcomeBlobMissing   ExtractOutcome = "blob_missing"
	OutcomeBlobMalformed ExtractOutcome = "blob_malformed"
	OutcomeFetchFailed   ExtractOutcome = "fetch_failed"
)

// SkipReason says why a result-item node produced no record.
type SkipReason string

const (
	SkipNone       SkipReason = ""
	SkipNotVideo   SkipReason = "not_video"
	SkipMissingID  SkipReason = "missing_id"
	SkipNoDuration SkipReason = "no_duration"
	SkipTooShort   SkipReason = "too_short"
)

// ExtractReport describes a single run over one page.
type ExtractReport struct {
	Outcome ExtractOutcome
	// Items is the number of result-item nodes found under the item list.
	Items int
	// Kept counts records that passed normalization, before truncation.
	Kept    int
	Skipped map[SkipReason]int
	// Records is truncated to the requested maximum and never nil.
	Records []SongRecord
}
