package admin

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"rockbot-frontend/pkg/api"
)

// Travel request statuses as the backend stores them.
const (
	StatusPending  = "Pending"
	StatusApproved = "Approved"
	StatusRejected = "Rejected"
)

// Sync states for the gateway-side view of a request. A decision is applied
// locally at once and marked pending until the backend confirms it; a failed
// confirmation stays visible instead of silently diverging.
const (
	SyncSynced  = "synced"
	SyncPending = "pending"
	SyncFailed  = "failed"
)

const travelDateLayout = "2006-01-02"

// Board is the admin triage state: the last fetched request list plus the
// decisions not yet confirmed by the backend. Independent decisions on
// different requests may run concurrently; each confirmation only touches its
// own entry.
type Board struct {
	mu       sync.Mutex
	requests []api.TravelRequest
	pending  map[uuid.UUID]int64 // op id -> request id
}

func NewBoard() *Board {
	return &Board{pending: map[uuid.UUID]int64{}}
}

// Load replaces the board with a freshly fetched list, preserving server
// order. Entries with an unconfirmed local decision keep their optimistic
// status and pending mark; everything else reconciles to server state.
func (b *Board) Load(requests []api.TravelRequest) {
	b.mu.Lock()
	defer b.mu.Unlock()

	carried := make(map[int64]api.TravelRequest)
	for _, prev := range b.requests {
		if prev.SyncState == SyncPending || prev.SyncState == SyncFailed {
			carried[prev.RequestID] = prev
		}
	}

	b.requests = make([]api.TravelRequest, len(requests))
	for i, req := range requests {
		req.SyncState = SyncSynced
		if prev, ok := carried[req.RequestID]; ok {
			if prev.Status == req.Status {
				// The backend caught up; the local mark is resolved.
				req.SyncState = SyncSynced
			} else {
				req.Status = prev.Status
				req.SyncState = prev.SyncState
			}
		}
		b.requests[i] = req
	}
}

// Apply records a triage decision optimistically: the local list reflects the
// new status immediately, independent of the confirming round trip. The
// returned op id ties the later confirmation to this decision.
func (b *Board) Apply(requestID int64, status string) (uuid.UUID, error) {
	if status != StatusApproved && status != StatusRejected {
		return uuid.Nil, fmt.Errorf("invalid triage status %q", status)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	for i := range b.requests {
		if b.requests[i].RequestID != requestID {
			continue
		}
		b.requests[i].Status = status
		b.requests[i].SyncState = SyncPending
		opID := uuid.New()
		b.pending[opID] = requestID
		return opID, nil
	}
	return uuid.Nil, fmt.Errorf("unknown travel request %d", requestID)
}

// Confirm resolves a decision: synced when the backend accepted it, failed
// when it did not. Last response wins for the affected entry only.
func (b *Board) Confirm(opID uuid.UUID, ok bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	requestID, exists := b.pending[opID]
	if !exists {
		return
	}
	delete(b.pending, opID)

	state := SyncSynced
	if !ok {
		state = SyncFailed
	}
	for i := range b.requests {
		if b.requests[i].RequestID == requestID {
			b.requests[i].SyncState = state
			return
		}
	}
}

// Snapshot returns the current list in server order.
func (b *Board) Snapshot() []api.TravelRequest {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]api.TravelRequest, len(b.requests))
	copy(out, b.requests)
	return out
}

// Partition filters by status, imposing no ordering beyond the server's.
func (b *Board) Partition(status string) []api.TravelRequest {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []api.TravelRequest
	for _, req := range b.requests {
		if req.Status == status {
			out = append(out, req)
		}
	}
	return out
}

// Upcoming lists requests departing within the next seven days. Entries with
// an unparseable travel date are skipped.
func (b *Board) Upcoming(now time.Time) []api.TravelRequest {
	b.mu.Lock()
	defer b.mu.Unlock()

	var out []api.TravelRequest
	for _, req := range b.requests {
		travelDate, err := time.ParseInLocation(travelDateLayout, req.TravelDate, now.Location())
		if err != nil {
			continue
		}
		diffDays := travelDate.Sub(now).Hours() / 24
		if diffDays >= 0 && diffDays <= 7 {
			out = append(out, req)
		}
	}
	return out
}
