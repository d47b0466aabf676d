package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"voyager/internal/metrics"
	"voyager/internal/models/itinerary"
	"voyager/internal/models/request_models"
	mem "voyager/pkg/memcache"
	"voyager/pkg/utils"
)

type GenerationState string

const (
	StateIdle       GenerationState = "idle"
	StateSubmitting GenerationState = "submitting"
	StateSucceeded  GenerationState = "succeeded"
	StateEmpty      GenerationState = "empty"
	StateFailed     GenerationState = "failed"
)

const unloadWarning = "Your itinerary is still being generated. If you leave now you may lose the result."

type GenerationResult struct {
	Outcome          GenerationState    `json:"outcome"`
	Options          []itinerary.Option `json:"options"`
	SelectedOptionID string             `json:"selected_option_id,omitempty"`
	Trip             itinerary.TripMeta `json:"trip"`
	SuggestedDays    *int               `json:"suggested_days,omitempty"`
	SavedPlanID      string             `json:"saved_plan_id,omitempty"`
}

type GenerationFailure struct {
	Message   string `json:"message"`
	Retryable bool   `json:"retryable"`
}

type GenerationView struct {
	State         GenerationState    `json:"state"`
	Generation    uint64             `json:"generation"`
	Result        *GenerationResult  `json:"result,omitempty"`
	Error         *GenerationFailure `json:"error,omitempty"`
	UnloadWarning string             `json:"unload_warning,omitempty"`
}

type MountResult struct {
	// InOperation is true while a generation marker exists for the session; the
	// client must not redirect away while it is set.
	InOperation bool `json:"in_operation"`
	// Live reports whether this process still has the request in flight.
	Live     bool                  `json:"live"`
	Restored bool                  `json:"restored"`
	Trip     itinerary.TripRequest `json:"trip"`
}

type GenerationServiceInterface interface {
	SaveDraft(ctx context.Context, session string, req itinerary.TripRequest) error
	Submit(ctx context.Context, userID uuid.UUID, session string, req itinerary.TripRequest) (*GenerationResult, error)
	Retry(ctx context.Context, userID uuid.UUID, session string) (*GenerationResult, error)
	Mount(ctx context.Context, session string, req request_models.MountRequest) (*MountResult, error)
	Teardown(session string) uint64
	UnloadWarning(session string) string
	Status(session string) GenerationView
}

type generationSession struct {
	state       GenerationState
	generation  uint64
	inFlight    int
	attempts    uint64
	lastRequest *itinerary.TripRequest
	result      *GenerationResult
	failure     *GenerationFailure
}

// GenerationService drives the trip form through one itinerary generation. Draft
// and in-progress marker live in the session store so a reloaded page can
// recover; the view state lives here.
type GenerationService struct {
	provider ItineraryProvider
	store    mem.SessionStateStore
	plans    SavedPlanServiceInterface
	log      *zap.Logger
	timeout  time.Duration

	mu       sync.Mutex
	sessions map[string]*generationSession
}

func NewGenerationService(
	provider ItineraryProvider,
	store mem.SessionStateStore,
	plans SavedPlanServiceInterface,
	log *zap.Logger,
	timeout time.Duration,
) *GenerationService {
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &GenerationService{
		provider: provider,
		store:    store,
		plans:    plans,
		log:      log,
		timeout:  timeout,
		sessions: make(map[string]*generationSession),
	}
}

// session must be called with g.mu held.
func (g *GenerationService) session(key string) *generationSession {
	s, ok := g.sessions[key]
	if !ok {
		s = &generationSession{state: StateIdle}
		g.sessions[key] = s
	}
	return s
}

func (g *GenerationService) SaveDraft(ctx context.Context, session string, req itinerary.TripRequest) error {
	draft, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("%w: %v", utils.ErrInvalidInput, err)
	}
	if err := g.store.SaveDraft(ctx, session, draft); err != nil {
		return fmt.Errorf("%w: save draft: %v", utils.ErrDatabaseError, err)
	}
	return nil
}

func (g *GenerationService) Submit(ctx context.Context, userID uuid.UUID, session string, req itinerary.TripRequest) (*GenerationResult, error) {
	if err := itinerary.ValidateTripRequest(&req); err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrInvalidInput, err)
	}

	a, _, err := g.begin(session, &req, false)
	if err != nil {
		return nil, err
	}
	return g.run(ctx, userID, session, a, req)
}

// Retry re-issues the last failed request unchanged.
func (g *GenerationService) Retry(ctx context.Context, userID uuid.UUID, session string) (*GenerationResult, error) {
	a, req, err := g.begin(session, nil, true)
	if err != nil {
		return nil, err
	}
	return g.run(ctx, userID, session, a, req)
}

// attempt identifies one provider call. gen is the view generation it reports to;
// seq orders attempts within the session.
type attempt struct {
	gen uint64
	seq uint64
}

// begin moves the session into submitting and returns the attempt along with the
// request to send. A nil req reuses the last one.
func (g *GenerationService) begin(session string, req *itinerary.TripRequest, retry bool) (attempt, itinerary.TripRequest, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	s := g.session(session)
	if s.state == StateSubmitting {
		return attempt{}, itinerary.TripRequest{}, utils.ErrGenerationInProgress
	}
	if retry && (s.state != StateFailed || s.lastRequest == nil) {
		return attempt{}, itinerary.TripRequest{}, utils.ErrNothingToRetry
	}
	if req != nil {
		copied := *req
		s.lastRequest = &copied
	}

	s.state = StateSubmitting
	s.result = nil
	s.failure = nil
	s.inFlight++
	s.attempts++
	return attempt{gen: s.generation, seq: s.attempts}, *s.lastRequest, nil
}

// ownsStore reports whether a is the newest attempt of the session. Only the
// newest attempt may clear the shared marker and draft.
func (g *GenerationService) ownsStore(session string, a attempt) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.session(session).attempts == a.seq
}

func (g *GenerationService) run(ctx context.Context, userID uuid.UUID, session string, a attempt, req itinerary.TripRequest) (*GenerationResult, error) {
	gen := a.gen
	// Store writes and the provider call outlive the caller; a closed tab must not
	// abort the request or leave the marker behind.
	detached := context.WithoutCancel(ctx)
	log := g.log.With(zap.String("session", session), zap.Uint64("generation", gen))

	if err := g.SaveDraft(detached, session, req); err != nil {
		log.Warn("save draft before generation", zap.Error(err))
	}
	if err := g.store.SetInProgress(detached, session); err != nil {
		log.Warn("set in-progress marker", zap.Error(err))
	}

	callCtx, cancel := context.WithTimeout(detached, g.timeout)
	defer cancel()

	startTime := time.Now()
	resp, err := g.provider.Generate(callCtx, req)
	metrics.GenerationDuration.Observe(time.Since(startTime).Seconds())

	owner := g.ownsStore(session, a)
	if owner {
		if clearErr := g.store.ClearInProgress(detached, session); clearErr != nil {
			log.Error("clear in-progress marker", zap.Error(clearErr))
		}
	} else {
		log.Debug("newer attempt owns session store; leaving marker and draft")
	}

	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			err = fmt.Errorf("%w: request timed out after %s", utils.ErrItineraryService, g.timeout)
		}
		metrics.GenerationsTotal.WithLabelValues(metrics.OutcomeFailed).Inc()
		log.Warn("itinerary generation failed", zap.Error(err))
		g.finish(session, gen, StateFailed, nil, &GenerationFailure{Message: err.Error(), Retryable: true})
		return nil, err
	}

	result := &GenerationResult{
		Options:       resp.Options,
		Trip:          req.Meta(),
		SuggestedDays: resp.SuggestedDays,
	}

	if len(resp.Options) == 0 {
		// The draft stays so the user can adjust and resubmit.
		result.Outcome = StateEmpty
		result.Options = []itinerary.Option{}
		metrics.GenerationsTotal.WithLabelValues(metrics.OutcomeEmpty).Inc()
		g.finish(session, gen, StateEmpty, result, nil)
		return result, nil
	}

	result.Outcome = StateSucceeded
	result.SelectedOptionID = resp.Options[0].ID

	if owner {
		if err := g.store.ClearDraft(detached, session); err != nil {
			log.Error("clear draft", zap.Error(err))
		}
	}

	saved, err := g.plans.Create(detached, userID, request_models.CreateSavedPlanRequest{
		Origin:      req.Origin,
		Destination: req.Destination,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Interests:   req.Interests,
		Options:     resp.Options,
	})
	if err != nil {
		log.Warn("save plan after generation", zap.Error(err))
	} else {
		result.SavedPlanID = saved.ID
	}

	metrics.GenerationsTotal.WithLabelValues(metrics.OutcomeSucceeded).Inc()
	g.finish(session, gen, StateSucceeded, result, nil)
	return result, nil
}

// finish applies a terminal result unless the session was torn down since the
// attempt began.
func (g *GenerationService) finish(session string, gen uint64, state GenerationState, result *GenerationResult, failure *GenerationFailure) {
	g.mu.Lock()
	defer g.mu.Unlock()

	s := g.session(session)
	if s.inFlight > 0 {
		s.inFlight--
	}
	if s.generation != gen {
		g.log.Debug("dropping stale generation result",
			zap.String("session", session),
			zap.Uint64("generation", gen),
			zap.Uint64("current", s.generation))
		return
	}

	s.state = state
	s.result = result
	s.failure = failure
}

// Mount reports whether a generation is running for the session and otherwise
// restores every untouched form field from the saved draft.
func (g *GenerationService) Mount(ctx context.Context, session string, req request_models.MountRequest) (*MountResult, error) {
	inProgress, err := g.store.InProgress(ctx, session)
	if err != nil {
		return nil, fmt.Errorf("%w: read in-progress marker: %v", utils.ErrDatabaseError, err)
	}
	if inProgress {
		g.mu.Lock()
		live := g.session(session).inFlight > 0
		g.mu.Unlock()
		return &MountResult{InOperation: true, Live: live, Trip: req.Current}, nil
	}

	draft, ok, err := g.store.LoadDraft(ctx, session)
	if err != nil {
		return nil, fmt.Errorf("%w: load draft: %v", utils.ErrDatabaseError, err)
	}
	if !ok {
		return &MountResult{Trip: req.Current}, nil
	}

	merged, err := mergeDraft(req.Current, draft, req.Touched)
	if err != nil {
		g.log.Warn("ignore unreadable draft", zap.String("session", session), zap.Error(err))
		return &MountResult{Trip: req.Current}, nil
	}
	return &MountResult{Restored: true, Trip: merged}, nil
}

// mergeDraft overlays draft fields onto current, skipping the json field names in touched.
func mergeDraft(current itinerary.TripRequest, draft []byte, touched []string) (itinerary.TripRequest, error) {
	var draftFields map[string]json.RawMessage
	if err := json.Unmarshal(draft, &draftFields); err != nil {
		return current, err
	}

	currentJSON, err := json.Marshal(current)
	if err != nil {
		return current, err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(currentJSON, &fields); err != nil {
		return current, err
	}

	skip := make(map[string]bool, len(touched))
	for _, name := range touched {
		skip[name] = true
	}
	for name, value := range draftFields {
		if !skip[name] {
			fields[name] = value
		}
	}

	mergedJSON, err := json.Marshal(fields)
	if err != nil {
		return current, err
	}
	var merged itinerary.TripRequest
	if err := json.Unmarshal(mergedJSON, &merged); err != nil {
		return current, err
	}
	return merged, nil
}

// Teardown detaches the session view from any running attempt. The attempt still
// finishes its store side effects.
func (g *GenerationService) Teardown(session string) uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	s := g.session(session)
	s.generation++
	s.state = StateIdle
	s.result = nil
	s.failure = nil
	s.lastRequest = nil
	return s.generation
}

func (g *GenerationService) UnloadWarning(session string) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.session(session).state == StateSubmitting {
		return unloadWarning
	}
	return ""
}

func (g *GenerationService) Status(session string) GenerationView {
	g.mu.Lock()
	defer g.mu.Unlock()

	s := g.session(session)
	view := GenerationView{
		State:      s.state,
		Generation: s.generation,
		Result:     s.result,
		Error:      s.failure,
	}
	if s.state == StateSubmitting {
		view.UnloadWarning = unloadWarning
	}
	return view
}
