package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"dlccontrol/internal/models"
)

type stubReader struct {
	p   models.Parameters
	err error
}

func (s stubReader) Parameters(context.Context) (models.Parameters, error) { return s.p, s.err }

type fakeSnapshotRepo struct {
	saved   []models.Snapshot
	saveErr error

	gotFrom, gotTo time.Time
	gotLimit       int
}

func (f *fakeSnapshotRepo) Save(_ context.Context, s models.Snapshot) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, s)
	return nil
}

func (f *fakeSnapshotRepo) Latest(context.Context) (models.Snapshot, error) {
	if len(f.saved) == 0 {
		return models.Snapshot{}, errors.New("empty")
	}
	return f.saved[len(f.saved)-1], nil
}

func (f *fakeSnapshotRepo) List(_ context.Context, from, to time.Time, limit int) ([]models.Snapshot, error) {
	f.gotFrom, f.gotTo, f.gotLimit = from, to, limit
	return f.saved, nil
}

func TestSnapshotService_Take(t *testing.T) {
	ts := time.Date(2025, 5, 4, 9, 30, 0, 0, time.FixedZone("CEST", 2*3600))
	reader := stubReader{p: models.Parameters{Timestamp: ts, Scan: models.ScanParameters{Frequency: 20}}}
	repo := &fakeSnapshotRepo{}
	events := &fakeEventRepo{}

	snap, err := NewSnapshotService(reader, repo, events).Take(context.Background(), "api")
	if err != nil {
		t.Fatalf("Take: %v", err)
	}
	if snap.ID == "" || snap.Source != "api" {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
	if !snap.TakenAt.Equal(ts) || snap.TakenAt.Location() != time.UTC {
		t.Fatalf("TakenAt=%v; want %v in UTC", snap.TakenAt, ts)
	}
	if len(repo.saved) != 1 || repo.saved[0].ID != snap.ID {
		t.Fatalf("snapshot not saved: %+v", repo.saved)
	}
	ev := events.appendedEvents()
	if len(ev) != 1 || ev[0].Type != "SNAPSHOT" {
		t.Fatalf("unexpected events %+v", ev)
	}
	meta, _ := ev[0].Metadata.(map[string]any)
	if meta["snapshot_id"] != snap.ID {
		t.Fatalf("event metadata %v does not reference %s", ev[0].Metadata, snap.ID)
	}
}

func TestSnapshotService_TakeErrors(t *testing.T) {
	readErr := errors.New("link down")
	saveErr := errors.New("disk full")

	cases := []struct {
		name       string
		reader     stubReader
		saveErr    error
		wantErr    error
		wantEvents int
	}{
		{name: "read fails", reader: stubReader{err: readErr}, wantErr: readErr},
		{name: "save fails", reader: stubReader{p: models.Parameters{Timestamp: time.Now()}}, saveErr: saveErr, wantErr: saveErr},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			events := &fakeEventRepo{}
			_, err := NewSnapshotService(tc.reader, &fakeSnapshotRepo{saveErr: tc.saveErr}, events).Take(context.Background(), "api")
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v; got %v", tc.wantErr, err)
			}
			if n := len(events.appendedEvents()); n != tc.wantEvents {
				t.Fatalf("events=%d; want %d", n, tc.wantEvents)
			}
		})
	}
}

func TestSnapshotService_List(t *testing.T) {
	repo := &fakeSnapshotRepo{}
	svc := NewSnapshotService(stubReader{}, repo, &fakeEventRepo{})
	ctx := context.Background()

	from := time.Date(2025, 1, 1, 12, 0, 0, 0, time.FixedZone("UTC+1", 3600))
	if _, err := svc.List(ctx, SnapshotFilter{From: from, Limit: 5}); err != nil {
		t.Fatalf("List: %v", err)
	}
	if !repo.gotFrom.Equal(from) || repo.gotFrom.Location() != time.UTC || repo.gotLimit != 5 {
		t.Fatalf("repo got from=%v limit=%d", repo.gotFrom, repo.gotLimit)
	}

	_, err := svc.List(ctx, SnapshotFilter{From: from, To: from.Add(-time.Minute)})
	if !errors.Is(err, ErrInvalidTimeRange) {
		t.Fatalf("expected ErrInvalidTimeRange; got %v", err)
	}
}
