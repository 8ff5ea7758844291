package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/specwise/backend/internal/domain"
)

func newTestSession(wiki *fakeWikiClient, debounce time.Duration) *Session {
	phones := NewPhoneService(newStubCache(), wiki, PhoneServiceConfig{})
	return NewSession(phones, SessionConfig{Debounce: debounce, FetchTimeout: 2 * time.Second})
}

func TestParseSlot(t *testing.T) {
	for _, valid := range []string{"A", "B"} {
		if _, err := ParseSlot(valid); err != nil {
			t.Errorf("ParseSlot(%q) error = %v, want nil", valid, err)
		}
	}
	for _, invalid := range []string{"", "a", "C", "AB"} {
		if _, err := ParseSlot(invalid); !errors.Is(err, domain.ErrInvalidRequest) {
			t.Errorf("ParseSlot(%q) error = %v, want ErrInvalidRequest", invalid, err)
		}
	}
}

func TestUpdateQuery_DebouncesBursts(t *testing.T) {
	wiki := &fakeWikiClient{searchResults: []domain.Candidate{{Title: "Pixel 9"}}}
	session := newTestSession(wiki, 30*time.Millisecond)

	for _, q := range []string{"p", "pi", "pix", "pixe", "pixel"} {
		if err := session.UpdateQuery(SlotA, q); err != nil {
			t.Fatalf("UpdateQuery(%q) error: %v", q, err)
		}
		time.Sleep(5 * time.Millisecond)
	}

	time.Sleep(150 * time.Millisecond)

	if got := wiki.searchCallCount(); got != 1 {
		t.Fatalf("search calls = %d, want exactly 1 after the burst settles", got)
	}
	if got := wiki.lastSearchCall(); got != "pixel" {
		t.Errorf("searched query = %q, want the last one entered", got)
	}

	view := session.Snapshot()
	if len(view.A.Suggestions) != 1 || view.A.Suggestions[0].Title != "Pixel 9" {
		t.Errorf("suggestions = %v, want the committed search results", view.A.Suggestions)
	}
}

func TestUpdateQuery_ShortQueryClearsWithoutSearching(t *testing.T) {
	wiki := &fakeWikiClient{searchResults: []domain.Candidate{{Title: "Pixel 9"}}}
	session := newTestSession(wiki, 10*time.Millisecond)

	if _, err := session.SearchNow(context.Background(), SlotA, "pixel"); err != nil {
		t.Fatalf("SearchNow error: %v", err)
	}
	if len(session.Snapshot().A.Suggestions) == 0 {
		t.Fatal("expected suggestions before shrinking the query")
	}

	calls := wiki.searchCallCount()
	if err := session.UpdateQuery(SlotA, "p"); err != nil {
		t.Fatalf("UpdateQuery error: %v", err)
	}
	time.Sleep(50 * time.Millisecond)

	if got := session.Snapshot().A.Suggestions; got != nil {
		t.Errorf("suggestions = %v, want cleared for a sub-minimum query", got)
	}
	if wiki.searchCallCount() != calls {
		t.Error("sub-minimum query must not trigger a search")
	}
}

func TestUpdateQuery_StaleSearchNotCommitted(t *testing.T) {
	wiki := &fakeWikiClient{searchResults: []domain.Candidate{{Title: "Pixel 9"}}}
	session := newTestSession(wiki, 10*time.Millisecond)

	if err := session.UpdateQuery(SlotA, "pixel"); err != nil {
		t.Fatalf("UpdateQuery error: %v", err)
	}
	time.Sleep(2 * time.Millisecond)
	// The query changes to a sub-minimum one before the debounced search
	// lands; its results must not resurrect the suggestion list.
	if err := session.UpdateQuery(SlotA, "p"); err != nil {
		t.Fatalf("UpdateQuery error: %v", err)
	}
	time.Sleep(60 * time.Millisecond)

	if got := session.Snapshot().A.Suggestions; got != nil {
		t.Errorf("suggestions = %v, want none for the superseded query", got)
	}
}

func TestSelectPhone_PopulatesSlot(t *testing.T) {
	wiki := &fakeWikiClient{htmlByTitle: map[string]string{"Example Phone": phoneArticleHTML}}
	session := newTestSession(wiki, time.Millisecond)

	if _, err := session.SearchNow(context.Background(), SlotA, "example"); err != nil {
		t.Fatalf("SearchNow error: %v", err)
	}

	spec, err := session.SelectPhone(context.Background(), SlotA, "Example Phone")
	if err != nil {
		t.Fatalf("SelectPhone error: %v", err)
	}
	if spec.OS != "Android 14" {
		t.Errorf("spec.OS = %q, want Android 14", spec.OS)
	}

	view := session.Snapshot()
	if view.A.Spec == nil || view.A.Spec.Name != "Example Phone" {
		t.Fatalf("slot A spec = %+v, want Example Phone", view.A.Spec)
	}
	if view.A.Metrics == nil || view.A.Metrics.BatteryMAh == nil || *view.A.Metrics.BatteryMAh != 5000 {
		t.Errorf("slot A metrics = %+v, want battery 5000", view.A.Metrics)
	}
	if view.A.Suggestions != nil {
		t.Error("selection should clear the suggestion list")
	}
}

func TestSelectPhone_DiscardsStaleResponse(t *testing.T) {
	wiki := &fakeWikiClient{
		htmlByTitle: map[string]string{
			"Old Phone": `<table class="infobox"><tr><th>Operating system</th><td>Android 12</td></tr></table>`,
			"New Phone": `<table class="infobox"><tr><th>Operating system</th><td>Android 15</td></tr></table>`,
		},
		fetchDelay: map[string]time.Duration{"Old Phone": 100 * time.Millisecond},
	}
	session := newTestSession(wiki, time.Millisecond)

	oldErr := make(chan error, 1)
	go func() {
		_, err := session.SelectPhone(context.Background(), SlotA, "Old Phone")
		oldErr <- err
	}()

	time.Sleep(20 * time.Millisecond)
	if _, err := session.SelectPhone(context.Background(), SlotA, "New Phone"); err != nil {
		t.Fatalf("SelectPhone(New Phone) error: %v", err)
	}

	if err := <-oldErr; !errors.Is(err, domain.ErrStaleResponse) {
		t.Errorf("superseded selection error = %v, want ErrStaleResponse", err)
	}

	view := session.Snapshot()
	if view.A.Spec == nil || view.A.Spec.OS != "Android 15" {
		t.Errorf("slot A spec = %+v, want the newer selection to stick", view.A.Spec)
	}
}

func TestSelectPhone_FailureKeepsPriorSpec(t *testing.T) {
	wiki := &fakeWikiClient{htmlByTitle: map[string]string{"Example Phone": phoneArticleHTML}}
	session := newTestSession(wiki, time.Millisecond)

	if _, err := session.SelectPhone(context.Background(), SlotA, "Example Phone"); err != nil {
		t.Fatalf("SelectPhone error: %v", err)
	}

	_, err := session.SelectPhone(context.Background(), SlotA, "Missing Phone")
	if !errors.Is(err, domain.ErrPageNotFound) {
		t.Fatalf("error = %v, want ErrPageNotFound", err)
	}

	view := session.Snapshot()
	if view.A.Spec == nil || view.A.Spec.Name != "Example Phone" {
		t.Errorf("slot A spec = %+v, want the prior selection preserved", view.A.Spec)
	}
}

func TestSnapshot_ComparesWhenBothSlotsFilled(t *testing.T) {
	wiki := &fakeWikiClient{htmlByTitle: map[string]string{
		"Phone A": phoneArticleHTML,
		"Phone B": `<table class="infobox"><tr><th>Battery</th><td>3,000 mAh</td></tr></table>`,
	}}
	session := newTestSession(wiki, time.Millisecond)

	if comparison := session.Snapshot().Comparison; comparison != nil {
		t.Fatalf("comparison = %+v, want none with empty slots", comparison)
	}

	if _, err := session.SelectPhone(context.Background(), SlotA, "Phone A"); err != nil {
		t.Fatalf("SelectPhone A error: %v", err)
	}
	if comparison := session.Snapshot().Comparison; comparison != nil {
		t.Fatalf("comparison = %+v, want none with one slot filled", comparison)
	}

	if _, err := session.SelectPhone(context.Background(), SlotB, "Phone B"); err != nil {
		t.Fatalf("SelectPhone B error: %v", err)
	}

	comparison := session.Snapshot().Comparison
	if comparison == nil {
		t.Fatal("expected a comparison once both slots are filled")
	}
	if comparison.WinsA != 1 || comparison.WinsB != 0 {
		t.Errorf("score = %d-%d, want 1-0 on battery", comparison.WinsA, comparison.WinsB)
	}
}

func TestReset(t *testing.T) {
	t.Run("clears both slots", func(t *testing.T) {
		wiki := &fakeWikiClient{htmlByTitle: map[string]string{"Example Phone": phoneArticleHTML}}
		session := newTestSession(wiki, time.Millisecond)

		if _, err := session.SelectPhone(context.Background(), SlotA, "Example Phone"); err != nil {
			t.Fatalf("SelectPhone error: %v", err)
		}
		session.Reset()

		view := session.Snapshot()
		if view.A.Spec != nil || view.A.Query != "" || view.A.Suggestions != nil {
			t.Errorf("slot A = %+v, want empty after reset", view.A)
		}
		if view.Comparison != nil || view.Status != "" {
			t.Error("expected no comparison and no status after reset")
		}
	})

	t.Run("invalidates in-flight selections", func(t *testing.T) {
		wiki := &fakeWikiClient{
			htmlByTitle: map[string]string{"Slow Phone": phoneArticleHTML},
			fetchDelay:  map[string]time.Duration{"Slow Phone": 80 * time.Millisecond},
		}
		session := newTestSession(wiki, time.Millisecond)

		errCh := make(chan error, 1)
		go func() {
			_, err := session.SelectPhone(context.Background(), SlotA, "Slow Phone")
			errCh <- err
		}()

		time.Sleep(20 * time.Millisecond)
		session.Reset()

		if err := <-errCh; !errors.Is(err, domain.ErrStaleResponse) {
			t.Errorf("in-flight selection error = %v, want ErrStaleResponse after reset", err)
		}
		if view := session.Snapshot(); view.A.Spec != nil {
			t.Errorf("slot A spec = %+v, want a reset slot to stay empty", view.A.Spec)
		}
	})
}
