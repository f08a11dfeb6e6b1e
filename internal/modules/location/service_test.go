package location

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"antar/internal/geo"
	"antar/internal/types"
)

type fakeStore struct {
	updates []*Update
}

func (f *fakeStore) Insert(_ context.Context, u *Update) error {
	f.updates = append(f.updates, u)
	return nil
}

func (f *fakeStore) ListByUser(_ context.Context, userID types.ID, limit int) ([]*Update, error) {
	var out []*Update
	for _, u := range f.updates {
		if u.UserID == userID && len(out) < limit {
			out = append(out, u)
		}
	}
	return out, nil
}

type fakePositions struct {
	set map[types.ID]types.Point
}

func (f *fakePositions) SetCurrentPosition(_ context.Context, id types.ID, p types.Point) error {
	if f.set == nil {
		f.set = make(map[types.ID]types.Point)
	}
	f.set[id] = p
	return nil
}

type fakeIndex struct {
	set map[types.ID]types.Point
	err error
}

func (f *fakeIndex) Set(_ context.Context, userID types.ID, p types.Point) error {
	if f.err != nil {
		return f.err
	}
	if f.set == nil {
		f.set = make(map[types.ID]types.Point)
	}
	f.set[userID] = p
	return nil
}

func (f *fakeIndex) Nearby(_ context.Context, _ types.Point, _ float64) ([]NearbyUser, error) {
	var out []NearbyUser
	for id := range f.set {
		out = append(out, NearbyUser{UserID: id})
	}
	return out, nil
}

type fakeBroadcaster struct {
	payloads [][]byte
}

func (f *fakeBroadcaster) Broadcast(p []byte) {
	f.payloads = append(f.payloads, p)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRecord(t *testing.T) {
	store := &fakeStore{}
	positions := &fakePositions{}
	index := &fakeIndex{}
	hub := &fakeBroadcaster{}
	svc := NewService(store, positions, index, hub, testLogger())

	p := types.Point{Lat: -6.2, Lng: 106.8}
	u, err := svc.Record(context.Background(), "user-1", p, Telemetry{})
	if err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if u.Position != p {
		t.Errorf("position = %v, want %v", u.Position, p)
	}
	if len(store.updates) != 1 {
		t.Errorf("stored %d updates, want 1", len(store.updates))
	}
	if positions.set["user-1"] != p {
		t.Error("latest position not written to the user record")
	}
	if index.set["user-1"] != p {
		t.Error("geo index not refreshed")
	}
	if len(hub.payloads) != 1 {
		t.Errorf("broadcast %d payloads, want 1", len(hub.payloads))
	}
}

func TestRecord_InvalidCoordinate(t *testing.T) {
	svc := NewService(&fakeStore{}, &fakePositions{}, nil, nil, testLogger())
	_, err := svc.Record(context.Background(), "user-1", types.Point{Lat: 91, Lng: 0}, Telemetry{})
	if !errors.Is(err, geo.ErrInvalidCoordinate) {
		t.Errorf("Record() err = %v, want ErrInvalidCoordinate", err)
	}
}

func TestRecord_IndexFailureTolerated(t *testing.T) {
	store := &fakeStore{}
	index := &fakeIndex{err: errors.New("redis down")}
	svc := NewService(store, &fakePositions{}, index, nil, testLogger())

	if _, err := svc.Record(context.Background(), "user-1", types.Point{Lat: -6.2, Lng: 106.8}, Telemetry{}); err != nil {
		t.Fatalf("Record() error = %v, want nil when only the index fails", err)
	}
	if len(store.updates) != 1 {
		t.Error("database write should still happen")
	}
}

func TestHistory_LimitDefaults(t *testing.T) {
	store := &fakeStore{}
	svc := NewService(store, &fakePositions{}, nil, nil, testLogger())
	ctx := context.Background()

	for i := 0; i < 60; i++ {
		if _, err := svc.Record(ctx, "user-1", types.Point{Lat: -6.2, Lng: 106.8}, Telemetry{}); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}

	got, err := svc.History(ctx, "user-1", 0)
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if len(got) != 50 {
		t.Errorf("History() returned %d updates, want the default cap of 50", len(got))
	}
}
