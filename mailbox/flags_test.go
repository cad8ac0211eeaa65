package mailbox

import (
	"errors"
	"strings"
	"testing"

	"github.com/emersion/go-imap"
	"github.com/google/go-cmp/cmp"
)

func TestFlags(t *testing.T) {
	t.Run("returns current flags", func(t *testing.T) {
		backend := &MockBackend{
			FetchMessages: []*imap.Message{
				{Uid: 4, Flags: []string{imap.SeenFlag, "important"}},
			},
		}
		m := openMailbox(t, backend)

		flags, err := m.Flags(4)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if diff := cmp.Diff([]string{imap.SeenFlag, "important"}, flags); diff != "" {
			t.Errorf("flags mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("flagless message yields empty non-nil slice", func(t *testing.T) {
		backend := &MockBackend{
			FetchMessages: []*imap.Message{{Uid: 4}},
		}
		m := openMailbox(t, backend)

		flags, err := m.Flags(4)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if flags == nil {
			t.Fatal("expected non-nil slice")
		}
		if len(flags) != 0 {
			t.Errorf("expected no flags, got %v", flags)
		}
	})

	t.Run("unknown UID", func(t *testing.T) {
		backend := &MockBackend{}
		m := openMailbox(t, backend)

		if _, err := m.Flags(99); !errors.Is(err, ErrNoSuchMessage) {
			t.Fatalf("expected ErrNoSuchMessage, got: %v", err)
		}
	})
}

func TestAddFlags(t *testing.T) {
	t.Run("one silent store per flag", func(t *testing.T) {
		backend := &MockBackend{}
		m := openMailbox(t, backend)

		if err := m.AddFlags(4, imap.SeenFlag, "important"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(backend.StoredItems) != 2 {
			t.Fatalf("expected 2 stores, got %d", len(backend.StoredItems))
		}
		wantItem := imap.FormatFlagsOp(imap.AddFlags, true)
		for i, item := range backend.StoredItems {
			if item != wantItem {
				t.Errorf("store %d: expected item %v, got %v", i, wantItem, item)
			}
		}
		want := [][]interface{}{{imap.SeenFlag}, {"important"}}
		if diff := cmp.Diff(want, backend.StoredValues); diff != "" {
			t.Errorf("stored values mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("empty flag list is a no-op", func(t *testing.T) {
		backend := &MockBackend{}
		m := openMailbox(t, backend)

		if err := m.AddFlags(4); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(backend.StoredItems) != 0 {
			t.Errorf("expected no stores, got %d", len(backend.StoredItems))
		}
	})

	t.Run("partial failure names the flag", func(t *testing.T) {
		backend := &MockBackend{
			StoreErrs: []error{nil, errors.New("NO store failed")},
		}
		m := openMailbox(t, backend)

		err := m.AddFlags(4, imap.SeenFlag, "important", "urgent")
		if !errors.Is(err, ErrNotOK) {
			t.Fatalf("expected ErrNotOK, got: %v", err)
		}
		if !strings.Contains(err.Error(), `"important"`) {
			t.Errorf("expected error to name the failed flag, got: %v", err)
		}
		// The first flag went through, the third was never attempted.
		if len(backend.StoredItems) != 2 {
			t.Errorf("expected 2 store attempts, got %d", len(backend.StoredItems))
		}
	})
}

func TestRemoveFlags(t *testing.T) {
	backend := &MockBackend{}
	m := openMailbox(t, backend)

	if err := m.RemoveFlags(4, imap.FlaggedFlag); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantItem := imap.FormatFlagsOp(imap.RemoveFlags, true)
	if backend.StoredItems[0] != wantItem {
		t.Errorf("expected item %v, got %v", wantItem, backend.StoredItems[0])
	}
	if backend.StoredSets[0] != "4" {
		t.Errorf("expected store on 4, got %q", backend.StoredSets[0])
	}
}

func TestSetFlags(t *testing.T) {
	t.Run("replaces the whole set in one store", func(t *testing.T) {
		backend := &MockBackend{}
		m := openMailbox(t, backend)

		if err := m.SetFlags(4, []string{imap.SeenFlag, imap.FlaggedFlag}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(backend.StoredItems) != 1 {
			t.Fatalf("expected 1 store, got %d", len(backend.StoredItems))
		}
		wantItem := imap.FormatFlagsOp(imap.SetFlags, true)
		if backend.StoredItems[0] != wantItem {
			t.Errorf("expected item %v, got %v", wantItem, backend.StoredItems[0])
		}
		want := [][]interface{}{{imap.SeenFlag, imap.FlaggedFlag}}
		if diff := cmp.Diff(want, backend.StoredValues); diff != "" {
			t.Errorf("stored values mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("empty set clears all flags", func(t *testing.T) {
		backend := &MockBackend{}
		m := openMailbox(t, backend)

		if err := m.SetFlags(4, nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(backend.StoredItems) != 1 {
			t.Fatalf("expected 1 store, got %d", len(backend.StoredItems))
		}
		if len(backend.StoredValues[0]) != 0 {
			t.Errorf("expected empty value list, got %v", backend.StoredValues[0])
		}
	})
}

func TestSize(t *testing.T) {
	t.Run("returns reported size", func(t *testing.T) {
		backend := &MockBackend{
			FetchMessages: []*imap.Message{{Uid: 4, Size: 2048}},
		}
		m := openMailbox(t, backend)

		size, err := m.Size(4)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if size != 2048 {
			t.Errorf("expected 2048, got %d", size)
		}
	})

	t.Run("missing size field", func(t *testing.T) {
		backend := &MockBackend{
			FetchMessages: []*imap.Message{{Uid: 4}},
		}
		m := openMailbox(t, backend)

		if _, err := m.Size(4); !errors.Is(err, ErrMalformedResponse) {
			t.Fatalf("expected ErrMalformedResponse, got: %v", err)
		}
	})
}

func TestInternalDate(t *testing.T) {
	t.Run("returns server timestamp", func(t *testing.T) {
		backend := &MockBackend{
			FetchMessages: []*imap.Message{{Uid: 4, InternalDate: sampleDate}},
		}
		m := openMailbox(t, backend)

		date, err := m.InternalDate(4)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !date.Equal(sampleDate) {
			t.Errorf("expected %v, got %v", sampleDate, date)
		}
	})

	t.Run("missing date field", func(t *testing.T) {
		backend := &MockBackend{
			FetchMessages: []*imap.Message{{Uid: 4}},
		}
		m := openMailbox(t, backend)

		if _, err := m.InternalDate(4); !errors.Is(err, ErrMalformedResponse) {
			t.Fatalf("expected ErrMalformedResponse, got: %v", err)
		}
	})
}
