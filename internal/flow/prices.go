package flow

import (
	"context"

	"islandtracker/internal/cache"
	"islandtracker/internal/types"

	log "github.com/sirupsen/logrus"
)

// GetCurrentWeek returns this week's saved price sheet, or the empty template.
// It never touches the network.
func (s *Service) GetCurrentWeek(ctx context.Context) types.Week {
	key := s.CurrentWeekKey()
	w, ok := cache.GetJSON[types.Week](ctx, s.cache, key)
	if !ok || w.Validate() != nil {
		log.WithField("key", key).Debug("no price sheet for this week")
		return types.WeekTemplate()
	}
	return w
}

func (s *Service) SaveCurrentWeek(ctx context.Context, w types.Week) error {
	if err := w.Validate(); err != nil {
		return err
	}
	return cache.PutJSON(ctx, s.cache, s.CurrentWeekKey(), w, s.ttl.Week)
}

// UpdateTurnipPrices sends one day's prices, stamped with today's date. A nil day
// means today's entry of the current week.
func (s *Service) UpdateTurnipPrices(ctx context.Context, d *types.Day) error {
	now := s.now()
	if d == nil {
		today := s.GetCurrentWeek(ctx)[now.Weekday()]
		d = &today
	}
	if err := s.requireOnline("PUT"); err != nil {
		return err
	}
	pub, err := s.publicKey(ctx)
	if err != nil {
		return err
	}
	return s.gw.UpdateTurnipPrices(ctx, types.NewTurnipUpdate(pub, *d, now))
}
