package results

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2/log"
)

// ResultSource delivers finished-match scores from an external provider.
type ResultSource interface {
	FetchResults(ctx context.Context) ([]ResultUpdate, error)
}

// SyncSummary is the outcome of one sync run.
type SyncSummary struct {
	Total   int      `json:"total"`
	Updated int      `json:"updated"`
	Failed  int      `json:"failed"`
	Errors  []string `json:"errors,omitempty"`
}

// SyncService periodically pulls results from a source and feeds them through
// the resolver. Each update is isolated: one bad tuple never aborts the run.
type SyncService struct {
	resolver *Resolver
	source   ResultSource
	validate *validator.Validate
}

func NewSyncService(resolver *Resolver, source ResultSource) *SyncService {
	return &SyncService{
		resolver: resolver,
		source:   source,
		validate: validator.New(),
	}
}

// Run fetches the current result set and applies it.
func (s *SyncService) Run(ctx context.Context) (SyncSummary, error) {
	updates, err := s.source.FetchResults(ctx)
	if err != nil {
		return SyncSummary{}, fmt.Errorf("fetch results: %w", err)
	}
	return s.RunBatch(ctx, updates), nil
}

// RunBatch applies a set of result updates and reports per-tuple outcomes.
// Updates without any stored match are counted as failed but not retried;
// the next sync cycle will see them again if the match appears later.
func (s *SyncService) RunBatch(ctx context.Context, updates []ResultUpdate) SyncSummary {
	summary := SyncSummary{Total: len(updates)}

	for _, upd := range updates {
		if err := s.validate.Struct(upd); err != nil {
			summary.Failed++
			summary.Errors = append(summary.Errors,
				fmt.Sprintf("invalid update %q vs %q: %v", upd.HomeTeam, upd.AwayTeam, err))
			continue
		}

		if err := s.resolver.Resolve(ctx, upd); err != nil {
			summary.Failed++
			msg := fmt.Sprintf("%s vs %s: %v", upd.HomeTeam, upd.AwayTeam, err)
			summary.Errors = append(summary.Errors, msg)
			if errors.Is(err, ErrNoMatchFound) {
				log.Infof("[ResultSync] %s", msg)
			} else {
				log.Errorf("[ResultSync] %s", msg)
			}
			continue
		}
		summary.Updated++
	}

	log.Infof("[ResultSync] run done: total=%d updated=%d failed=%d",
		summary.Total, summary.Updated, summary.Failed)
	return summary
}

// StartScheduler runs the sync on a fixed interval until the returned
// scheduler is shut down.
func (s *SyncService) StartScheduler(interval time.Duration) (gocron.Scheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
			defer cancel()
			if _, err := s.Run(ctx); err != nil {
				log.Errorf("[ResultSync] scheduled run failed: %v", err)
			}
		}),
	)
	if err != nil {
		return nil, err
	}

	scheduler.Start()
	log.Infof("[ResultSync] scheduler started, interval %s", interval)
	return scheduler, nil
}
