package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"voyager/internal/models/itinerary"
	"voyager/internal/models/request_models"
	mem "voyager/pkg/memcache"
	"voyager/pkg/utils"
)

func validTrip() itinerary.TripRequest {
	return itinerary.TripRequest{
		Origin:      "SFO",
		Destination: "Tokyo",
		StartDate:   "2026-03-15",
		EndDate:     "2026-03-19",
		NumPersons:  2,
		Interests:   []string{"food"},
	}
}

func tokyoResponse(context.Context, itinerary.TripRequest) (*itinerary.GenerateResponse, error) {
	return &itinerary.GenerateResponse{Options: mockTokyoOptions()}, nil
}

type generationFixture struct {
	svc      *GenerationService
	provider *fakeProvider
	store    *mem.MemorySessionState
	plans    *fakeSavedPlans
	userID   uuid.UUID
}

func newGenerationFixture() *generationFixture {
	f := &generationFixture{
		provider: &fakeProvider{},
		store:    mem.NewMemorySessionState(time.Hour),
		plans:    &fakeSavedPlans{},
		userID:   uuid.New(),
	}
	f.svc = NewGenerationService(f.provider, f.store, f.plans, zap.NewNop(), 5*time.Second)
	return f
}

// blockingGenerate holds the provider call until release is closed.
func (f *generationFixture) blockingGenerate() (started, release chan struct{}) {
	started = make(chan struct{})
	release = make(chan struct{})
	f.provider.generate = func(ctx context.Context, req itinerary.TripRequest) (*itinerary.GenerateResponse, error) {
		close(started)
		<-release
		return tokyoResponse(ctx, req)
	}
	return started, release
}

func TestGeneration_Success(t *testing.T) {
	f := newGenerationFixture()
	f.provider.generate = tokyoResponse
	ctx := context.Background()

	result, err := f.svc.Submit(ctx, f.userID, "s1", validTrip())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if result.Outcome != StateSucceeded || len(result.Options) != 3 {
		t.Fatalf("result = %+v", result)
	}
	if result.SelectedOptionID != "opt_1" {
		t.Errorf("selected = %q, want opt_1", result.SelectedOptionID)
	}
	if result.Trip.Origin != "SFO" || result.Trip.Destination != "Tokyo" || result.Trip.StartDate != "2026-03-15" {
		t.Errorf("trip meta = %+v", result.Trip)
	}
	if result.SavedPlanID != "plan-1" || f.plans.count() != 1 {
		t.Errorf("plan not saved: id=%q count=%d", result.SavedPlanID, f.plans.count())
	}

	if _, ok, _ := f.store.LoadDraft(ctx, "s1"); ok {
		t.Error("draft should be cleared after success")
	}
	if on, _ := f.store.InProgress(ctx, "s1"); on {
		t.Error("marker should be cleared after the call")
	}

	view := f.svc.Status("s1")
	if view.State != StateSucceeded || view.Result == nil || view.UnloadWarning != "" {
		t.Errorf("view = %+v", view)
	}
}

func TestGeneration_EmptyKeepsDraft(t *testing.T) {
	f := newGenerationFixture()
	ctx := context.Background()

	result, err := f.svc.Submit(ctx, f.userID, "s1", validTrip())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if result.Outcome != StateEmpty || result.Options == nil || len(result.Options) != 0 {
		t.Fatalf("result = %+v", result)
	}
	if _, ok, _ := f.store.LoadDraft(ctx, "s1"); !ok {
		t.Error("draft should survive an empty result")
	}
	if f.plans.count() != 0 {
		t.Error("empty results must not be saved")
	}
	if got := f.svc.Status("s1").State; got != StateEmpty {
		t.Errorf("state = %s, want empty", got)
	}
}

func TestGeneration_FailureThenRetry(t *testing.T) {
	f := newGenerationFixture()
	ctx := context.Background()
	f.provider.generate = func(context.Context, itinerary.TripRequest) (*itinerary.GenerateResponse, error) {
		return nil, errors.New("itinerary service error: Itinerary API error 503")
	}

	trip := validTrip()
	if _, err := f.svc.Submit(ctx, f.userID, "s1", trip); err == nil {
		t.Fatal("expected failure")
	}

	view := f.svc.Status("s1")
	if view.State != StateFailed || view.Error == nil || !view.Error.Retryable {
		t.Fatalf("view = %+v", view)
	}
	if on, _ := f.store.InProgress(ctx, "s1"); on {
		t.Error("marker should be cleared after a failure")
	}
	if _, ok, _ := f.store.LoadDraft(ctx, "s1"); !ok {
		t.Error("draft should survive a failure")
	}

	f.provider.generate = tokyoResponse
	result, err := f.svc.Retry(ctx, f.userID, "s1")
	if err != nil {
		t.Fatalf("Retry: %v", err)
	}
	if result.Outcome != StateSucceeded {
		t.Fatalf("retry outcome = %s", result.Outcome)
	}
	if f.provider.lastSubmit.Destination != trip.Destination || f.provider.generateCalls() != 2 {
		t.Errorf("retry did not resend the request: %+v", f.provider.lastSubmit)
	}
}

func TestGeneration_RetryWithoutFailure(t *testing.T) {
	f := newGenerationFixture()
	if _, err := f.svc.Retry(context.Background(), f.userID, "s1"); !errors.Is(err, utils.ErrNothingToRetry) {
		t.Fatalf("err = %v, want ErrNothingToRetry", err)
	}
}

func TestGeneration_InvalidRequestNeverCallsProvider(t *testing.T) {
	f := newGenerationFixture()
	trip := validTrip()
	trip.Destination = "   "

	if _, err := f.svc.Submit(context.Background(), f.userID, "s1", trip); !errors.Is(err, utils.ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}

	trip = validTrip()
	trip.EndDate = "2026-03-01"
	if _, err := f.svc.Submit(context.Background(), f.userID, "s1", trip); !errors.Is(err, utils.ErrInvalidInput) {
		t.Fatalf("date order err = %v, want ErrInvalidInput", err)
	}

	if f.provider.generateCalls() != 0 {
		t.Fatalf("provider called %d times", f.provider.generateCalls())
	}
}

func TestGeneration_MarkerAndGuardWhileInFlight(t *testing.T) {
	f := newGenerationFixture()
	started, release := f.blockingGenerate()
	ctx := context.Background()

	done := make(chan error, 1)
	go func() {
		_, err := f.svc.Submit(ctx, f.userID, "s1", validTrip())
		done <- err
	}()
	<-started

	if on, _ := f.store.InProgress(ctx, "s1"); !on {
		t.Error("marker should be set during the call")
	}
	if f.svc.UnloadWarning("s1") == "" {
		t.Error("unload warning should be set while submitting")
	}
	if _, err := f.svc.Submit(ctx, f.userID, "s1", validTrip()); !errors.Is(err, utils.ErrGenerationInProgress) {
		t.Errorf("second submit err = %v, want ErrGenerationInProgress", err)
	}

	mount, err := f.svc.Mount(ctx, "s1", request_models.MountRequest{})
	if err != nil {
		t.Fatalf("Mount: %v", err)
	}
	if !mount.InOperation || !mount.Live || mount.Restored {
		t.Errorf("mount during call = %+v", mount)
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if on, _ := f.store.InProgress(ctx, "s1"); on {
		t.Error("marker should be cleared")
	}
	if f.svc.UnloadWarning("s1") != "" {
		t.Error("unload warning should be gone")
	}
	if f.provider.generateCalls() != 1 {
		t.Errorf("provider calls = %d, want 1", f.provider.generateCalls())
	}
}

func TestGeneration_TeardownDropsStaleResult(t *testing.T) {
	f := newGenerationFixture()
	started, release := f.blockingGenerate()
	ctx := context.Background()

	done := make(chan error, 1)
	go func() {
		_, err := f.svc.Submit(ctx, f.userID, "s1", validTrip())
		done <- err
	}()
	<-started

	f.svc.Teardown("s1")
	close(release)
	if err := <-done; err != nil {
		t.Fatalf("Submit: %v", err)
	}

	view := f.svc.Status("s1")
	if view.State != StateIdle || view.Result != nil {
		t.Fatalf("stale result applied: %+v", view)
	}
	if on, _ := f.store.InProgress(ctx, "s1"); on {
		t.Error("marker should still be cleared by the detached attempt")
	}
	if f.plans.count() != 1 {
		t.Error("the plan is still saved for the finished attempt")
	}
}

func TestGeneration_StaleAttemptLeavesNewerAttemptState(t *testing.T) {
	f := newGenerationFixture()
	ctx := context.Background()

	calls := make(chan chan struct{}, 2)
	f.provider.generate = func(ctx context.Context, req itinerary.TripRequest) (*itinerary.GenerateResponse, error) {
		release := make(chan struct{})
		calls <- release
		<-release
		return tokyoResponse(ctx, req)
	}

	first := make(chan error, 1)
	go func() {
		_, err := f.svc.Submit(ctx, f.userID, "s1", validTrip())
		first <- err
	}()
	releaseFirst := <-calls

	f.svc.Teardown("s1")

	second := make(chan error, 1)
	go func() {
		_, err := f.svc.Submit(ctx, f.userID, "s1", validTrip())
		second <- err
	}()
	releaseSecond := <-calls

	close(releaseFirst)
	if err := <-first; err != nil {
		t.Fatalf("first Submit: %v", err)
	}

	if on, _ := f.store.InProgress(ctx, "s1"); !on {
		t.Error("marker cleared while the newer attempt is in flight")
	}
	if _, ok, _ := f.store.LoadDraft(ctx, "s1"); !ok {
		t.Error("draft cleared while the newer attempt is in flight")
	}
	mount, err := f.svc.Mount(ctx, "s1", request_models.MountRequest{})
	if err != nil {
		t.Fatalf("Mount: %v", err)
	}
	if !mount.InOperation {
		t.Errorf("mount during newer attempt = %+v", mount)
	}
	if view := f.svc.Status("s1"); view.State != StateSubmitting {
		t.Errorf("state = %s, want submitting", view.State)
	}

	close(releaseSecond)
	if err := <-second; err != nil {
		t.Fatalf("second Submit: %v", err)
	}
	if on, _ := f.store.InProgress(ctx, "s1"); on {
		t.Error("marker should be cleared once the newer attempt ends")
	}
	if view := f.svc.Status("s1"); view.State != StateSucceeded {
		t.Errorf("state = %s, want succeeded", view.State)
	}
}

func TestGeneration_CallerCancellationDoesNotAbortCall(t *testing.T) {
	f := newGenerationFixture()
	f.provider.generate = func(ctx context.Context, req itinerary.TripRequest) (*itinerary.GenerateResponse, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return tokyoResponse(ctx, req)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := f.svc.Submit(ctx, f.userID, "s1", validTrip())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if result.Outcome != StateSucceeded {
		t.Fatalf("outcome = %s", result.Outcome)
	}
}

func TestGeneration_BestEffortSideEffects(t *testing.T) {
	f := newGenerationFixture()
	f.provider.generate = tokyoResponse
	f.plans.err = errors.New("db down")
	f.svc.store = failingStore{SessionStateStore: f.store}

	result, err := f.svc.Submit(context.Background(), f.userID, "s1", validTrip())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if result.Outcome != StateSucceeded || result.SavedPlanID != "" {
		t.Fatalf("result = %+v", result)
	}
}

func TestGeneration_MountRestoresUntouchedFields(t *testing.T) {
	f := newGenerationFixture()
	ctx := context.Background()

	if err := f.svc.SaveDraft(ctx, "s1", validTrip()); err != nil {
		t.Fatalf("SaveDraft: %v", err)
	}

	current := itinerary.TripRequest{Origin: "LAX", NumPersons: 1}
	mount, err := f.svc.Mount(ctx, "s1", request_models.MountRequest{
		Current: current,
		Touched: []string{"origin"},
	})
	if err != nil {
		t.Fatalf("Mount: %v", err)
	}

	if mount.InOperation || !mount.Restored {
		t.Fatalf("mount = %+v", mount)
	}
	got := mount.Trip
	if got.Origin != "LAX" {
		t.Errorf("touched origin overwritten: %q", got.Origin)
	}
	if got.Destination != "Tokyo" || got.StartDate != "2026-03-15" || got.NumPersons != 2 {
		t.Errorf("draft fields not restored: %+v", got)
	}
	if len(got.Interests) != 1 || got.Interests[0] != "food" {
		t.Errorf("interests = %v", got.Interests)
	}
}

func TestGeneration_MountWithoutDraft(t *testing.T) {
	f := newGenerationFixture()
	current := itinerary.TripRequest{Origin: "LAX"}

	mount, err := f.svc.Mount(context.Background(), "s1", request_models.MountRequest{Current: current})
	if err != nil {
		t.Fatalf("Mount: %v", err)
	}
	if mount.Restored || mount.InOperation || mount.Trip.Origin != "LAX" {
		t.Fatalf("mount = %+v", mount)
	}
}

func TestGeneration_MountAfterCrashShowsInOperation(t *testing.T) {
	f := newGenerationFixture()
	ctx := context.Background()
	if err := f.store.SetInProgress(ctx, "s1"); err != nil {
		t.Fatal(err)
	}

	mount, err := f.svc.Mount(ctx, "s1", request_models.MountRequest{})
	if err != nil {
		t.Fatalf("Mount: %v", err)
	}
	if !mount.InOperation || mount.Live {
		t.Fatalf("mount = %+v, want in operation without a live call", mount)
	}
}
