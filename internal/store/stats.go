package store

import (
	"context"
	"time"
)

// RecentWindow bounds Stats.RecentlyCreated.
const RecentWindow = 7 * 24 * time.Hour

// Stats summarizes stored personas.
type Stats struct {
	Total           int            `json:"total"`
	ByProfession    map[string]int `json:"byProfession"`
	ByTone          map[string]int `json:"byTone"`
	RecentlyCreated int            `json:"recentlyCreated"`
}

// Stats counts personas by profession and tone and those created within
// RecentWindow.
func (s *Store) Stats(ctx context.Context) (*Stats, error) {
	items, err := s.FindAll(ctx, nil)
	if err != nil {
		return nil, err
	}
	ret := &Stats{Total: len(items), ByProfession: map[string]int{}, ByTone: map[string]int{}}
	since := s.now().Add(-RecentWindow)
	for _, item := range items {
		ret.ByProfession[item.Profession]++
		ret.ByTone[item.Tone]++
		if item.CreatedAt.After(since) {
			ret.RecentlyCreated++
		}
	}
	return ret, nil
}
