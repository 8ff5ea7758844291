package usecase

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/specwise/backend/internal/domain"
)

// Slot is one of the two comparison positions a user populates.
type Slot string

const (
	SlotA Slot = "A"
	SlotB Slot = "B"
)

// minQueryLength is the shortest query that triggers a suggestion search;
// shorter input just clears the current suggestions.
const minQueryLength = 2

// ParseSlot validates a slot identifier from an external caller.
func ParseSlot(s string) (Slot, error) {
	switch Slot(s) {
	case SlotA, SlotB:
		return Slot(s), nil
	}
	return "", fmt.Errorf("%w: slot must be A or B", domain.ErrInvalidRequest)
}

// SessionConfig holds configuration for a comparison session
type SessionConfig struct {
	Debounce     time.Duration
	FetchTimeout time.Duration
}

// slotState is the per-slot application state. The pending timer implements
// search debouncing; seq is the monotonic request sequence that lets a slot
// discard fetch responses superseded by a newer selection.
type slotState struct {
	query       string
	suggestions []domain.Candidate
	spec        *domain.PhoneSpec
	metrics     *domain.DerivedMetrics
	seq         uint64
	timer       *time.Timer
}

// Session is the explicit application state for the two comparison slots.
// State transitions are guarded by one mutex; fetches run outside the lock,
// so operations on slot A never wait on slot B's network activity. The
// status message is shared and last-writer-wins.
type Session struct {
	mu           sync.Mutex
	phones       *PhoneService
	debounce     time.Duration
	fetchTimeout time.Duration
	slots        map[Slot]*slotState
	status       string
}

// NewSession creates a session with empty slots
func NewSession(phones *PhoneService, config SessionConfig) *Session {
	debounce := config.Debounce
	if debounce == 0 {
		debounce = 300 * time.Millisecond
	}

	fetchTimeout := config.FetchTimeout
	if fetchTimeout == 0 {
		fetchTimeout = 15 * time.Second
	}

	return &Session{
		phones:       phones,
		debounce:     debounce,
		fetchTimeout: fetchTimeout,
		slots: map[Slot]*slotState{
			SlotA: {},
			SlotB: {},
		},
	}
}

// UpdateQuery records a keystroke for a slot. Any pending debounced search is
// canceled and replaced; only a quiescent period of the configured debounce
// delay triggers one search, carrying the last entered query.
func (s *Session) UpdateQuery(slot Slot, query string) error {
	st, err := s.slot(slot)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	st.query = query
	if st.timer != nil {
		st.timer.Stop()
		st.timer = nil
	}

	if utf8.RuneCountInString(query) < minQueryLength {
		st.suggestions = nil
		return nil
	}

	st.timer = time.AfterFunc(s.debounce, func() {
		s.runSearch(slot, query)
	})
	return nil
}

// runSearch performs the debounced suggestion search for a slot and commits
// the results unless the query changed while the search was in flight.
func (s *Session) runSearch(slot Slot, query string) {
	ctx, cancel := context.WithTimeout(context.Background(), s.fetchTimeout)
	defer cancel()

	candidates := s.phones.SearchPhones(ctx, query)

	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.slots[slot]
	if st.query != query {
		return
	}
	st.suggestions = candidates
	if len(candidates) == 0 {
		s.status = fmt.Sprintf("No results for %q", query)
	} else {
		s.status = ""
	}
}

// SearchNow bypasses the debounce and searches immediately, committing the
// results to the slot's suggestions.
func (s *Session) SearchNow(ctx context.Context, slot Slot, query string) ([]domain.Candidate, error) {
	st, err := s.slot(slot)
	if err != nil {
		return nil, err
	}

	candidates := s.phones.SearchPhones(ctx, query)

	s.mu.Lock()
	defer s.mu.Unlock()
	st.query = query
	st.suggestions = candidates
	return candidates, nil
}

// SelectPhone resolves a title into the given slot. Each selection is tagged
// with the slot's next sequence number; a response whose sequence is no
// longer the latest issued for the slot is discarded, so a slow fetch for an
// old selection can never overwrite a newer one. A failed fetch leaves the
// slot's prior spec untouched.
func (s *Session) SelectPhone(ctx context.Context, slot Slot, title string) (*domain.PhoneSpec, error) {
	st, err := s.slot(slot)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	st.seq++
	seq := st.seq
	s.status = fmt.Sprintf("Loading %s details…", slot)
	s.mu.Unlock()

	fetchCtx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	defer cancel()

	spec, fetchErr := s.phones.GetPhone(fetchCtx, title)

	s.mu.Lock()
	defer s.mu.Unlock()

	if st.seq != seq {
		log.Printf("[SESSION] slot %s: discarding stale response for %q (seq %d, latest %d)", slot, title, seq, st.seq)
		return nil, domain.ErrStaleResponse
	}

	s.status = ""
	if fetchErr != nil {
		return nil, fetchErr
	}

	st.spec = spec
	st.metrics = DeriveMetrics(spec)
	st.suggestions = nil
	return spec, nil
}

// SlotView is the externally visible state of one slot.
type SlotView struct {
	Query       string                  `json:"query,omitempty"`
	Suggestions []domain.Candidate      `json:"suggestions,omitempty"`
	Spec        *domain.PhoneSpec       `json:"spec,omitempty"`
	Metrics     *domain.DerivedMetrics  `json:"metrics,omitempty"`
}

// SessionView is a point-in-time snapshot of the session. The comparison is
// recomputed from the two current specs on every snapshot; it has no
// independent identity.
type SessionView struct {
	A          SlotView                 `json:"a"`
	B          SlotView                 `json:"b"`
	Comparison *domain.ComparisonResult `json:"comparison,omitempty"`
	Status     string                   `json:"status,omitempty"`
}

// Snapshot returns the current session state, including the comparison when
// both slots are populated.
func (s *Session) Snapshot() SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()

	view := SessionView{
		A:      s.slotView(SlotA),
		B:      s.slotView(SlotB),
		Status: s.status,
	}

	specA := s.slots[SlotA].spec
	specB := s.slots[SlotB].spec
	if specA != nil && specB != nil {
		view.Comparison = Compare(specA, specB)
	}
	return view
}

func (s *Session) slotView(slot Slot) SlotView {
	st := s.slots[slot]
	return SlotView{
		Query:       st.query,
		Suggestions: st.suggestions,
		Spec:        st.spec,
		Metrics:     st.metrics,
	}
}

// Reset clears both slots. Sequence counters advance so that any in-flight
// fetch commits as stale instead of resurrecting a cleared slot.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, st := range s.slots {
		if st.timer != nil {
			st.timer.Stop()
			st.timer = nil
		}
		st.seq++
		st.query = ""
		st.suggestions = nil
		st.spec = nil
		st.metrics = nil
	}
	s.status = ""
}

func (s *Session) slot(slot Slot) (*slotState, error) {
	st, ok := s.slots[slot]
	if !ok {
		return nil, fmt.Errorf("%w: unknown slot %q", domain.ErrInvalidRequest, slot)
	}
	return st, nil
}
