// Package trending recomputes the trending-hashtag table on a cron
// schedule in the background.
package trending

import (
	"time"

	"github.com/juliencrn/twitter-clone/internal/services"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Updater periodically rebuilds the trending table.
type Updater struct {
	hashtagSvc services.HashtagServiceProvider
	schedule   cron.Schedule
	window     time.Duration
	ticker     *time.Ticker
	done       chan bool
	nextRun    time.Time
}

// NewUpdater creates an Updater. The cron expression uses the standard
// five-field format; window is the sliding interval tweets are counted
// over.
func NewUpdater(hashtagSvc services.HashtagServiceProvider, cronExpr string, window time.Duration) (*Updater, error) {
	schedule, err := cron.ParseStandard(cronExpr)
	if err != nil {
		return nil, err
	}

	return &Updater{
		hashtagSvc: hashtagSvc,
		schedule:   schedule,
		window:     window,
		done:       make(chan bool),
	}, nil
}

// Run starts the updater's ticking loop.
func (u *Updater) Run() {
	log.Info().Msg("Starting trending updater...")
	u.ticker = time.NewTicker(30 * time.Second)
	defer u.ticker.Stop()

	// Run once immediately on start
	u.recompute()
	u.nextRun = u.schedule.Next(time.Now())

	for {
		select {
		case <-u.done:
			log.Info().Msg("Stopping trending updater.")
			return
		case now := <-u.ticker.C:
			if now.Before(u.nextRun) {
				continue
			}
			u.recompute()
			u.nextRun = u.schedule.Next(now)
		}
	}
}

// Stop halts the updater.
func (u *Updater) Stop() {
	u.done <- true
}

func (u *Updater) recompute() {
	count, err := u.hashtagSvc.RecomputeTrending(u.window)
	if err != nil {
		log.Error().Err(err).Msg("Failed to recompute trending hashtags")
		return
	}
	log.Debug().Int("hashtags", count).Msg("Recomputed trending hashtags")
}
