package services

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"gorm.io/gorm"

	dbm "voyager/internal/models/db_models"
	"voyager/internal/models/itinerary"
	"voyager/internal/models/request_models"
	"voyager/internal/models/response_models"
	mem "voyager/pkg/memcache"
)

type fakeProvider struct {
	mu         sync.Mutex
	generate   func(ctx context.Context, req itinerary.TripRequest) (*itinerary.GenerateResponse, error)
	picks      func(ctx context.Context, req itinerary.PicksRequest) (*itinerary.PicksResponse, error)
	calls      int
	pickCalls  int
	lastPicks  itinerary.PicksRequest
	lastSubmit itinerary.TripRequest
}

func (f *fakeProvider) Generate(ctx context.Context, req itinerary.TripRequest) (*itinerary.GenerateResponse, error) {
	f.mu.Lock()
	f.calls++
	f.lastSubmit = req
	fn := f.generate
	f.mu.Unlock()
	if fn == nil {
		return &itinerary.GenerateResponse{Options: []itinerary.Option{}}, nil
	}
	return fn(ctx, req)
}

func (f *fakeProvider) PlanWithPicks(ctx context.Context, req itinerary.PicksRequest) (*itinerary.PicksResponse, error) {
	f.mu.Lock()
	f.pickCalls++
	f.lastPicks = req
	fn := f.picks
	f.mu.Unlock()
	if fn == nil {
		return NewMockItineraryProvider().PlanWithPicks(ctx, req)
	}
	return fn(ctx, req)
}

func (f *fakeProvider) generateCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeSavedPlans struct {
	mu      sync.Mutex
	err     error
	created []request_models.CreateSavedPlanRequest
}

func (f *fakeSavedPlans) Create(_ context.Context, _ uuid.UUID, req request_models.CreateSavedPlanRequest) (*response_models.SavedPlanResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.created = append(f.created, req)
	return &response_models.SavedPlanResponse{ID: "plan-1", Origin: req.Origin, Destination: req.Destination, Options: req.Options}, nil
}

func (f *fakeSavedPlans) List(context.Context, uuid.UUID) ([]response_models.SavedPlanResponse, error) {
	return nil, nil
}

func (f *fakeSavedPlans) Get(context.Context, uuid.UUID, uuid.UUID) (*response_models.SavedPlanResponse, error) {
	return nil, nil
}

func (f *fakeSavedPlans) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.created)
}

// failingStore errors on every write but still answers reads from the wrapped store.
type failingStore struct {
	mem.SessionStateStore
}

var errStoreDown = errors.New("store down")

func (f failingStore) SaveDraft(context.Context, string, []byte) error { return errStoreDown }
func (f failingStore) SetInProgress(context.Context, string) error      { return errStoreDown }
func (f failingStore) ClearInProgress(context.Context, string) error    { return errStoreDown }
func (f failingStore) ClearDraft(context.Context, string) error         { return errStoreDown }

type publishedEvent struct {
	subject string
	data    interface{}
}

type fakePublisher struct {
	mu     sync.Mutex
	err    error
	events []publishedEvent
}

func (f *fakePublisher) Publish(_ context.Context, subject string, data interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, publishedEvent{subject: subject, data: data})
	return f.err
}

func (f *fakePublisher) Close() error { return nil }

type fakeSavedPlanRepo struct {
	rows map[uuid.UUID]*dbm.SavedPlan
}

func newFakeSavedPlanRepo() *fakeSavedPlanRepo {
	return &fakeSavedPlanRepo{rows: make(map[uuid.UUID]*dbm.SavedPlan)}
}

func (f *fakeSavedPlanRepo) Create(_ context.Context, plan *dbm.SavedPlan) error {
	if plan.ID == uuid.Nil {
		plan.ID = uuid.New()
	}
	f.rows[plan.ID] = plan
	return nil
}

func (f *fakeSavedPlanRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]dbm.SavedPlan, error) {
	var out []dbm.SavedPlan
	for _, p := range f.rows {
		if p.UserID == userID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeSavedPlanRepo) FindForUser(_ context.Context, userID, id uuid.UUID) (*dbm.SavedPlan, error) {
	p, ok := f.rows[id]
	if !ok || p.UserID != userID {
		return nil, nil
	}
	return p, nil
}

type fakeSharedTripRepo struct {
	rows map[string]*dbm.SharedTrip
}

func newFakeSharedTripRepo() *fakeSharedTripRepo {
	return &fakeSharedTripRepo{rows: make(map[string]*dbm.SharedTrip)}
}

func (f *fakeSharedTripRepo) Create(_ context.Context, trip *dbm.SharedTrip) error {
	if _, ok := f.rows[trip.InviteCode]; ok {
		return gorm.ErrDuplicatedKey
	}
	f.rows[trip.InviteCode] = trip
	return nil
}

func (f *fakeSharedTripRepo) FindByCode(_ context.Context, code string) (*dbm.SharedTrip, error) {
	return f.rows[code], nil
}

type fakeBookingRepo struct {
	err      error
	docs     []*dbm.TripDocument
	bookings []*dbm.Booking
}

func (f *fakeBookingRepo) CreateWithDocument(_ context.Context, doc *dbm.TripDocument, booking *dbm.Booking) error {
	if f.err != nil {
		return f.err
	}
	doc.ID = uuid.New()
	booking.ID = uuid.New()
	booking.TripDocumentID = doc.ID
	booking.TripDocument = doc
	f.docs = append(f.docs, doc)
	f.bookings = append(f.bookings, booking)
	return nil
}

func (f *fakeBookingRepo) FindForUser(_ context.Context, userID, id uuid.UUID) (*dbm.Booking, error) {
	for _, b := range f.bookings {
		if b.ID == id && b.UserID == userID {
			return b, nil
		}
	}
	return nil, nil
}

func (f *fakeBookingRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]dbm.Booking, error) {
	var out []dbm.Booking
	for _, b := range f.bookings {
		if b.UserID == userID {
			out = append(out, *b)
		}
	}
	return out, nil
}

type fakeDocuments struct {
	content string
	err     error
	calls   int
	last    TripDocumentInput
}

func (f *fakeDocuments) TripDocument(_ context.Context, in TripDocumentInput) (string, error) {
	f.calls++
	f.last = in
	return f.content, f.err
}

func tokyoOption(id string) itinerary.Option {
	for _, o := range mockTokyoOptions() {
		if o.ID == id {
			return o
		}
	}
	panic("unknown mock option " + id)
}
