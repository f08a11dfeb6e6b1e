package match

import (
	"context"
	"errors"
	"testing"
	"time"

	"antar/internal/modules/trip"
	"antar/internal/types"
)

type fakeServiceStore struct {
	matches      map[types.ID]*Match
	byTrip       map[types.ID][]*Match
	statusWrites map[types.ID]Status
}

func newFakeServiceStore(matches ...*Match) *fakeServiceStore {
	s := &fakeServiceStore{
		matches:      make(map[types.ID]*Match),
		byTrip:       make(map[types.ID][]*Match),
		statusWrites: make(map[types.ID]Status),
	}
	for _, m := range matches {
		s.matches[m.ID] = m
		s.byTrip[m.TripID] = append(s.byTrip[m.TripID], m)
		s.byTrip[m.MatchedTripID] = append(s.byTrip[m.MatchedTripID], m)
	}
	return s
}

func (f *fakeServiceStore) Insert(_ context.Context, _ *Match) error { return errors.New("unused") }

func (f *fakeServiceStore) Get(_ context.Context, id types.ID) (*Match, error) {
	m, ok := f.matches[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *m
	return &copied, nil
}

func (f *fakeServiceStore) ListByTrip(_ context.Context, tripID types.ID) ([]*Match, error) {
	return f.byTrip[tripID], nil
}

func (f *fakeServiceStore) ExistsForPair(_ context.Context, _, _ types.ID) (bool, error) {
	return false, nil
}

func (f *fakeServiceStore) HasAcceptedExcluding(_ context.Context, tripID, excludeMatchID types.ID) (bool, error) {
	for _, m := range f.byTrip[tripID] {
		if m.ID != excludeMatchID && m.Status == StatusAccepted {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeServiceStore) UpdateStatus(_ context.Context, id types.ID, status Status) error {
	m, ok := f.matches[id]
	if !ok {
		return ErrNotFound
	}
	m.Status = status
	f.statusWrites[id] = status
	return nil
}

type fakeTripAccess struct {
	statuses map[types.ID]trip.Status
	missing  map[types.ID]bool
}

func (f *fakeTripAccess) Get(_ context.Context, id types.ID) (*trip.Trip, error) {
	if f.missing[id] {
		return nil, trip.ErrNotFound
	}
	return &trip.Trip{ID: id, Status: trip.StatusSearching}, nil
}

func (f *fakeTripAccess) UpdateStatus(_ context.Context, id types.ID, status trip.Status) error {
	if f.statuses == nil {
		f.statuses = make(map[types.ID]trip.Status)
	}
	f.statuses[id] = status
	return nil
}

func pendingMatch(a, b types.ID) *Match {
	now := time.Now()
	return &Match{
		ID:            trip.NewID(),
		TripID:        a,
		MatchedTripID: b,
		Score:         85,
		Status:        StatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func TestAvailableMatches_ExcludesCommittedCounterparts(t *testing.T) {
	// Trips A, B, C. A-B is accepted; B also holds a pending match with C.
	// From C's perspective the B pairing is moot because B committed to A.
	m1 := pendingMatch("trip-a", "trip-b")
	m1.Status = StatusAccepted
	m2 := pendingMatch("trip-c", "trip-b")
	store := newFakeServiceStore(m1, m2)
	svc := NewService(store, &fakeTripAccess{})

	got, err := svc.AvailableMatches(context.Background(), "trip-c")
	if err != nil {
		t.Fatalf("AvailableMatches() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("trip-c sees %d matches, want 0 once trip-b committed elsewhere", len(got))
	}
}

func TestAvailableMatches_AcceptedMatchSurvivesForBothSides(t *testing.T) {
	m1 := pendingMatch("trip-a", "trip-b")
	m1.Status = StatusAccepted
	store := newFakeServiceStore(m1)
	svc := NewService(store, &fakeTripAccess{})

	for _, tripID := range []types.ID{"trip-a", "trip-b"} {
		got, err := svc.AvailableMatches(context.Background(), tripID)
		if err != nil {
			t.Fatalf("AvailableMatches(%s) error = %v", tripID, err)
		}
		if len(got) != 1 || got[0].ID != m1.ID {
			t.Errorf("%s sees %d matches, want the accepted match itself", tripID, len(got))
		}
	}
}

func TestAvailableMatches_PendingWithUncommittedCounterpartVisible(t *testing.T) {
	m1 := pendingMatch("trip-a", "trip-b")
	m2 := pendingMatch("trip-a", "trip-c")
	store := newFakeServiceStore(m1, m2)
	svc := NewService(store, &fakeTripAccess{})

	got, err := svc.AvailableMatches(context.Background(), "trip-a")
	if err != nil {
		t.Fatalf("AvailableMatches() error = %v", err)
	}
	if len(got) != 2 {
		t.Errorf("trip-a sees %d matches, want 2 while everything is pending", len(got))
	}
}

func TestAvailableMatches_UnknownTripNotFound(t *testing.T) {
	store := newFakeServiceStore()
	trips := &fakeTripAccess{missing: map[types.ID]bool{"trip-x": true}}
	svc := NewService(store, trips)

	if _, err := svc.AvailableMatches(context.Background(), "trip-x"); !errors.Is(err, trip.ErrNotFound) {
		t.Errorf("AvailableMatches() err = %v, want trip.ErrNotFound", err)
	}
}

func TestSetStatus_AcceptMovesBothTripsToMatched(t *testing.T) {
	m := pendingMatch("trip-a", "trip-b")
	store := newFakeServiceStore(m)
	trips := &fakeTripAccess{}
	svc := NewService(store, trips)

	got, err := svc.SetStatus(context.Background(), m.ID, StatusAccepted)
	if err != nil {
		t.Fatalf("SetStatus() error = %v", err)
	}
	if got.Status != StatusAccepted {
		t.Errorf("status = %q, want accepted", got.Status)
	}
	if trips.statuses["trip-a"] != trip.StatusMatched || trips.statuses["trip-b"] != trip.StatusMatched {
		t.Errorf("trip statuses = %v, want both matched", trips.statuses)
	}
}

func TestSetStatus_RejectLeavesTripsUntouched(t *testing.T) {
	m := pendingMatch("trip-a", "trip-b")
	store := newFakeServiceStore(m)
	trips := &fakeTripAccess{}
	svc := NewService(store, trips)

	got, err := svc.SetStatus(context.Background(), m.ID, StatusRejected)
	if err != nil {
		t.Fatalf("SetStatus() error = %v", err)
	}
	if got.Status != StatusRejected {
		t.Errorf("status = %q, want rejected", got.Status)
	}
	if len(trips.statuses) != 0 {
		t.Errorf("trip statuses touched on reject: %v", trips.statuses)
	}
}

func TestSetStatus_TerminalAndInvalidTransitions(t *testing.T) {
	accepted := pendingMatch("trip-a", "trip-b")
	accepted.Status = StatusAccepted
	store := newFakeServiceStore(accepted)
	svc := NewService(store, &fakeTripAccess{})

	if _, err := svc.SetStatus(context.Background(), accepted.ID, StatusRejected); !errors.Is(err, ErrInvalidState) {
		t.Errorf("rejecting an accepted match: err = %v, want ErrInvalidState", err)
	}
	if _, err := svc.SetStatus(context.Background(), accepted.ID, StatusPending); !errors.Is(err, ErrInvalidState) {
		t.Errorf("reverting to pending: err = %v, want ErrInvalidState", err)
	}
	if _, err := svc.SetStatus(context.Background(), "deadbeefdeadbeefdeadbeefdeadbeef", StatusAccepted); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown match: err = %v, want ErrNotFound", err)
	}
}
