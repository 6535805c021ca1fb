package service

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"gym_manager/constants"
	"gym_manager/helper"
	"gym_manager/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore giữ vé trong map, ConsumeUse mô phỏng UPDATE có điều kiện của DB.
type fakeStore struct {
	mu        sync.Mutex
	tickets   map[string]*model.Ticket
	customers map[string]*model.Customer // key: phone
	findErr   error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		tickets:   make(map[string]*model.Ticket),
		customers: make(map[string]*model.Customer),
	}
}

func (f *fakeStore) put(t *model.Ticket) {
	f.tickets[t.Code] = t
}

func (f *fakeStore) FindTicketByCode(code string) (*model.Ticket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	t, ok := f.tickets[code]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (f *fakeStore) TicketsByPhone(scope helper.Scope, phone string) ([]model.Ticket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Ticket
	for _, t := range f.tickets {
		if t.OwnerPhone == phone && scope.Owns(t.TenantId) {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (f *fakeStore) ConsumeUse(tenantID uint, code string) (*model.Ticket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tickets[code]
	if !ok || t.TenantId != tenantID || t.RemainingUses <= 0 {
		return nil, ErrNoRemaining
	}
	t.RemainingUses--
	cp := *t
	return &cp, nil
}

func (f *fakeStore) SetTicketFields(scope helper.Scope, code string, fields map[string]any) (*model.Ticket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tickets[code]
	if !ok {
		return nil, ErrNotFound
	}
	if !scope.Owns(t.TenantId) {
		return nil, ErrCrossTenant
	}
	if v, ok := fields["remaining_uses"].(int); ok {
		t.RemainingUses = v
	}
	if v, ok := fields["status"].(string); ok {
		t.Status = v
	}
	cp := *t
	return &cp, nil
}

func (f *fakeStore) CustomerByPhone(tenantID uint, phone string) (*model.Customer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.customers[phone]
	if !ok || c.TenantId != tenantID {
		return nil, ErrNotFound
	}
	return c, nil
}

// recordingAudit gom các log lại để assert thứ tự và nội dung.
type recordingAudit struct {
	mu      sync.Mutex
	entries []model.CheckInLog
}

func (r *recordingAudit) Append(entry *model.CheckInLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *recordingAudit) List(scope helper.Scope, filter model.FilterCheckInLog) ([]model.CheckInLog, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.entries, int64(len(r.entries)), nil
}

func (r *recordingAudit) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

type recordingFeed struct {
	mu     sync.Mutex
	events []FeedEvent
}

func (r *recordingFeed) PublishCheckIn(branchID uint, event FeedEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func baseTicket() *model.Ticket {
	return &model.Ticket{
		Code:          "T001",
		TenantId:      1,
		BranchId:      1,
		OwnerPhone:    "0900000001",
		OwnerName:     "Nguyễn Văn A",
		Type:          constants.TICKET_12_SESSION,
		TotalUses:     12,
		RemainingUses: 12,
		ExpiresAt:     time.Now().Add(30 * 24 * time.Hour),
		Status:        constants.TICKET_ACTIVE,
	}
}

func newTestService(store *fakeStore) (*CheckInService, *recordingAudit, *recordingFeed) {
	audit := &recordingAudit{}
	feed := &recordingFeed{}
	svc := NewCheckInService(store, audit, feed)
	return svc, audit, feed
}

func scopeTenant(id uint) helper.Scope {
	return helper.ScopeForTenant(id)
}

func manualInput(code string) AuthorizeInput {
	return AuthorizeInput{
		Identifier:  code,
		Method:      constants.METHOD_MANUAL,
		BranchId:    1,
		PerformedBy: "staff01",
	}
}

func TestAuthorizeSuccessDecrementsRemaining(t *testing.T) {
	store := newFakeStore()
	store.put(baseTicket())
	svc, audit, feed := newTestService(store)

	outcome := svc.Authorize(scopeTenant(1), manualInput("T001"))

	require.True(t, outcome.Success)
	assert.Equal(t, constants.MSG_CHECKIN_OK, outcome.Message)
	require.NotNil(t, outcome.Remaining)
	assert.Equal(t, 11, *outcome.Remaining)
	require.NotNil(t, outcome.TicketInfo)
	assert.Equal(t, "T001", outcome.TicketInfo.Code)
	assert.Equal(t, 11, outcome.TicketInfo.RemainingUses)

	require.Equal(t, 1, audit.len())
	entry := audit.entries[0]
	assert.Equal(t, constants.CHECKIN_SUCCESS, entry.Status)
	assert.Equal(t, "T001", entry.TicketCode)
	assert.True(t, entry.IsManualByStaff)
	assert.Equal(t, "staff01", entry.PerformedBy)

	require.Len(t, feed.events, 1)
	assert.Equal(t, constants.CHECKIN_SUCCESS, feed.events[0].Status)
	assert.NotNil(t, feed.events[0].TicketInfo)
}

func TestAuthorizeTicketNotFound(t *testing.T) {
	store := newFakeStore()
	svc, audit, _ := newTestService(store)

	outcome := svc.Authorize(scopeTenant(1), manualInput("NOPE"))

	assert.False(t, outcome.Success)
	assert.Equal(t, "ticket not found", outcome.Message)
	// chưa resolve được vé thì không có gì để audit
	assert.Equal(t, 0, audit.len())
}

func TestAuthorizeEmptyIdentifier(t *testing.T) {
	store := newFakeStore()
	svc, audit, _ := newTestService(store)

	outcome := svc.Authorize(scopeTenant(1), manualInput("   "))

	assert.False(t, outcome.Success)
	assert.Equal(t, "ticket not found", outcome.Message)
	assert.Equal(t, 0, audit.len())
}

func TestAuthorizeCrossTenantWinsOverEveryRule(t *testing.T) {
	// Vé của tenant 2 đang hết buổi + hết hạn + khoá: quét từ tenant 1 vẫn
	// chỉ được báo "belongs to another system", không lộ trạng thái vé.
	ticket := baseTicket()
	ticket.TenantId = 2
	ticket.RemainingUses = 0
	ticket.ExpiresAt = time.Now().Add(-time.Hour)
	ticket.Status = constants.TICKET_LOCKED

	store := newFakeStore()
	store.put(ticket)
	svc, audit, feed := newTestService(store)

	outcome := svc.Authorize(scopeTenant(1), manualInput("T001"))

	assert.False(t, outcome.Success)
	assert.Equal(t, "belongs to another system", outcome.Message)
	assert.Nil(t, outcome.TicketInfo)
	assert.Equal(t, 0, audit.len())
	assert.Empty(t, feed.events)
}

func TestAuthorizePlatformAdminScopeOwnsEverything(t *testing.T) {
	store := newFakeStore()
	store.put(baseTicket())
	svc, _, _ := newTestService(store)

	outcome := svc.Authorize(helper.Scope{}, manualInput("T001"))
	assert.True(t, outcome.Success)
}

func TestAuthorizeRuleOrder(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*model.Ticket)
		message string
	}{
		{
			name: "hết buổi thắng hết hạn",
			mutate: func(t *model.Ticket) {
				t.RemainingUses = 0
				t.ExpiresAt = time.Now().Add(-time.Hour)
			},
			message: "no sessions remaining",
		},
		{
			name: "hết buổi thắng cả khoá",
			mutate: func(t *model.Ticket) {
				t.RemainingUses = 0
				t.Status = constants.TICKET_LOCKED
			},
			message: "no sessions remaining",
		},
		{
			name: "hết hạn thắng khoá",
			mutate: func(t *model.Ticket) {
				t.ExpiresAt = time.Now().Add(-time.Minute)
				t.Status = constants.TICKET_LOCKED
			},
			message: "ticket expired",
		},
		{
			name: "khoá",
			mutate: func(t *model.Ticket) {
				t.Status = constants.TICKET_LOCKED
			},
			message: "ticket locked",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ticket := baseTicket()
			tt.mutate(ticket)
			before := ticket.RemainingUses

			store := newFakeStore()
			store.put(ticket)
			svc, audit, _ := newTestService(store)

			outcome := svc.Authorize(scopeTenant(1), manualInput("T001"))

			assert.False(t, outcome.Success)
			assert.Equal(t, tt.message, outcome.Message)
			// rule fail vẫn được audit, nhưng không trừ buổi
			require.Equal(t, 1, audit.len())
			assert.Equal(t, constants.CHECKIN_FAILED, audit.entries[0].Status)
			assert.Equal(t, tt.message, audit.entries[0].Message)
			assert.Equal(t, before, store.tickets["T001"].RemainingUses)
		})
	}
}

func TestAuthorizeExpiryBoundaryIsInclusive(t *testing.T) {
	// Đúng thời điểm hết hạn thì vé đã hết hạn.
	ticket := baseTicket()
	expires := time.Now().Add(time.Hour)
	ticket.ExpiresAt = expires

	store := newFakeStore()
	store.put(ticket)
	svc, _, _ := newTestService(store)
	svc.now = func() time.Time { return expires }

	outcome := svc.Authorize(scopeTenant(1), manualInput("T001"))
	assert.Equal(t, "ticket expired", outcome.Message)
}

func TestAuthorizePinFlow(t *testing.T) {
	pinHash, err := helper.HashPin("1234")
	require.NoError(t, err)

	setup := func() (*CheckInService, *fakeStore, *recordingAudit) {
		ticket := baseTicket()
		ticket.RequirePin = true
		store := newFakeStore()
		store.put(ticket)
		store.customers["0900000001"] = &model.Customer{
			TenantId: 1,
			Phone:    "0900000001",
			PinHash:  pinHash,
		}
		svc, audit, _ := newTestService(store)
		return svc, store, audit
	}

	qrInput := func(pin string) AuthorizeInput {
		return AuthorizeInput{
			Identifier: "T001",
			Method:     constants.METHOD_QR_CHUNG,
			BranchId:   1,
			Pin:        pin,
		}
	}

	t.Run("chưa có PIN trả về requirePin, không trừ buổi, không audit", func(t *testing.T) {
		svc, store, audit := setup()

		outcome := svc.Authorize(scopeTenant(1), qrInput(""))

		assert.False(t, outcome.Success)
		assert.True(t, outcome.RequirePin)
		require.NotNil(t, outcome.TicketInfo)
		assert.Equal(t, 12, store.tickets["T001"].RemainingUses)
		assert.Equal(t, 0, audit.len())
	})

	t.Run("PIN đúng thì trừ đúng 1 buổi", func(t *testing.T) {
		svc, store, audit := setup()

		outcome := svc.Authorize(scopeTenant(1), qrInput("1234"))

		require.True(t, outcome.Success)
		assert.Equal(t, 11, store.tickets["T001"].RemainingUses)
		assert.Equal(t, 1, audit.len())
	})

	t.Run("PIN sai bị từ chối và audit, không set lại requirePin", func(t *testing.T) {
		svc, store, audit := setup()

		outcome := svc.Authorize(scopeTenant(1), qrInput("9999"))

		assert.False(t, outcome.Success)
		assert.False(t, outcome.RequirePin)
		assert.Equal(t, "incorrect PIN", outcome.Message)
		assert.Equal(t, 12, store.tickets["T001"].RemainingUses)
		require.Equal(t, 1, audit.len())
		assert.Equal(t, constants.CHECKIN_FAILED, audit.entries[0].Status)
	})

	t.Run("không có customer record cũng báo PIN sai", func(t *testing.T) {
		svc, store, _ := setup()
		delete(store.customers, "0900000001")

		outcome := svc.Authorize(scopeTenant(1), qrInput("1234"))
		assert.Equal(t, "incorrect PIN", outcome.Message)
	})

	t.Run("MANUAL bỏ qua PIN", func(t *testing.T) {
		svc, store, _ := setup()

		outcome := svc.Authorize(scopeTenant(1), manualInput("T001"))

		require.True(t, outcome.Success)
		assert.Equal(t, 11, store.tickets["T001"].RemainingUses)
	})
}

func TestAuthorizeExhaustionScenario(t *testing.T) {
	ticket := baseTicket()
	ticket.RemainingUses = 1
	store := newFakeStore()
	store.put(ticket)
	svc, audit, _ := newTestService(store)

	first := svc.Authorize(scopeTenant(1), manualInput("T001"))
	require.True(t, first.Success)
	require.NotNil(t, first.Remaining)
	assert.Equal(t, 0, *first.Remaining)

	second := svc.Authorize(scopeTenant(1), manualInput("T001"))
	assert.False(t, second.Success)
	assert.Equal(t, "no sessions remaining", second.Message)
	assert.Equal(t, 0, store.tickets["T001"].RemainingUses)

	require.Equal(t, 2, audit.len())
	assert.Equal(t, constants.CHECKIN_SUCCESS, audit.entries[0].Status)
	assert.Equal(t, constants.CHECKIN_FAILED, audit.entries[1].Status)
}

func TestAuthorizeConcurrentNeverOversells(t *testing.T) {
	ticket := baseTicket()
	ticket.TotalUses = 5
	ticket.RemainingUses = 5
	store := newFakeStore()
	store.put(ticket)
	svc, _, _ := newTestService(store)

	const scanners = 20
	var wg sync.WaitGroup
	results := make([]model.Outcome, scanners)
	for i := 0; i < scanners; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = svc.Authorize(scopeTenant(1), AuthorizeInput{
				Identifier:  "T001",
				Method:      constants.METHOD_MANUAL,
				BranchId:    1,
				PerformedBy: fmt.Sprintf("staff%02d", i),
			})
		}(i)
	}
	wg.Wait()

	accepted := 0
	for _, r := range results {
		if r.Success {
			accepted++
		}
	}
	assert.Equal(t, 5, accepted)
	assert.Equal(t, 0, store.tickets["T001"].RemainingUses)
}

func TestAuthorizeDecodedJSONIdentifier(t *testing.T) {
	store := newFakeStore()
	store.put(baseTicket())
	svc, _, _ := newTestService(store)

	outcome := svc.Authorize(scopeTenant(1), AuthorizeInput{
		Identifier: `{"type":"static_card","id":"T001","name":"Nguyễn Văn A","sig":"deadbeef"}`,
		Method:     constants.METHOD_QR_RIENG,
		BranchId:   1,
	})
	require.True(t, outcome.Success)
}

func TestAuthorizeStorageFaultOnLookup(t *testing.T) {
	store := newFakeStore()
	store.put(baseTicket())
	store.findErr = fmt.Errorf("connection refused")
	svc, audit, _ := newTestService(store)

	outcome := svc.Authorize(scopeTenant(1), manualInput("T001"))

	assert.False(t, outcome.Success)
	assert.Equal(t, "check-in failed", outcome.Message)
	assert.Equal(t, 0, audit.len())
}
