package songscraper

import (
	"context"
	"math/rand/v2"
	"strings"
)

// Recommend searches for mood plus the configured suffix, shuffles the whole
// pool and returns at most maxResults of it. Order and subset change between
// calls for the same mood.
func (s *Searcher) Recommend(ctx context.Context, mood string, maxResults int) ([]SongRecord, error) {
	mood = strings.TrimSpace(mood)
	if mood == "" {
		mood = s.opts.DefaultMood
	}

	pool, err := s.Search(ctx, mood+s.opts.MoodSuffix, max(s.opts.RecommendPoolSize, maxResults))
	if err != nil {
		return nil, err
	}

	rand.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	return truncate(pool, maxResults), nil
}
