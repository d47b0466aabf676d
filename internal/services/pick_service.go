package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"voyager/internal/metrics"
	"voyager/internal/models/itinerary"
	"voyager/internal/models/request_models"
	"voyager/pkg/utils"
)

type PickServiceInterface interface {
	AddPick(session string, req request_models.AddPickRequest) ([]Pick, error)
	RemovePick(session string, req request_models.RemovePickRequest) []Pick
	ListPicks(session string) []Pick
	SubmitPicks(ctx context.Context, session string, meta itinerary.TripMeta) (*itinerary.PicksResponse, error)
}

// PickService keeps one working pick set per session.
type PickService struct {
	provider ItineraryProvider
	log      *zap.Logger
	timeout  time.Duration

	mu   sync.Mutex
	sets map[string]*PickSet
}

func NewPickService(provider ItineraryProvider, log *zap.Logger, timeout time.Duration) *PickService {
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &PickService{
		provider: provider,
		log:      log,
		timeout:  timeout,
		sets:     make(map[string]*PickSet),
	}
}

// set must be called with p.mu held.
func (p *PickService) set(session string) *PickSet {
	s, ok := p.sets[session]
	if !ok {
		s = NewPickSet()
		p.sets[session] = s
	}
	return s
}

func (p *PickService) AddPick(session string, req request_models.AddPickRequest) ([]Pick, error) {
	pick, ok := NormalizePick(Pick{Label: req.Label, MapLink: req.MapLink, Source: req.Source})
	if !ok {
		return nil, fmt.Errorf("%w: a pick needs a label or a map link", utils.ErrInvalidInput)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	s := p.set(session)
	s.Add(pick)
	return s.List(), nil
}

func (p *PickService) RemovePick(session string, req request_models.RemovePickRequest) []Pick {
	key := PickKey{Label: req.Label, MapLink: req.MapLink}
	if normalized, ok := NormalizePick(Pick{Label: req.Label, MapLink: req.MapLink}); ok {
		key = normalized.Key()
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	s := p.set(session)
	s.Remove(key)
	return s.List()
}

func (p *PickService) ListPicks(session string) []Pick {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.set(session).List()
}

// SubmitPicks sends the whole current pick set to the planner. The set is kept
// whatever the outcome.
func (p *PickService) SubmitPicks(ctx context.Context, session string, meta itinerary.TripMeta) (*itinerary.PicksResponse, error) {
	picks := p.ListPicks(session)
	if len(picks) == 0 {
		return nil, utils.ErrEmptyPicks
	}

	req := itinerary.PicksRequest{
		Picks:    make([]itinerary.PickInput, 0, len(picks)),
		TripMeta: meta,
	}
	for _, pick := range picks {
		req.Picks = append(req.Picks, itinerary.PickInput{Label: pick.Label, GoogleMapsURL: pick.MapLink})
	}

	callCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	resp, err := p.provider.PlanWithPicks(callCtx, req)
	if err != nil {
		metrics.PickPlansTotal.WithLabelValues(metrics.OutcomeFailed).Inc()
		p.log.Warn("plan with picks failed", zap.String("session", session), zap.Int("picks", len(picks)), zap.Error(err))
		return nil, err
	}

	metrics.PickPlansTotal.WithLabelValues(metrics.OutcomeSucceeded).Inc()
	return resp, nil
}
