package orchestrators

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"fastbreak/internal/adapters/email"
	"fastbreak/internal/domain/account"
	"fastbreak/internal/domain/assignment"
	"fastbreak/internal/domain/audit"
	"fastbreak/internal/domain/availability"
	"fastbreak/internal/domain/camper"
	"fastbreak/internal/domain/contact"
	"fastbreak/internal/domain/content"
	"fastbreak/internal/domain/guardian"
	"fastbreak/internal/domain/outbox"
	"fastbreak/internal/domain/registration"
	"fastbreak/internal/domain/schedule"
)

var testTime = time.Date(2026, 7, 1, 9, 0, 0, 0, time.UTC)

func testNow() time.Time { return testTime }

// sequentialID returns a generator producing id-1, id-2, ...
func sequentialID() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func slotKey(counselorID, date, session string) string {
	return counselorID + "|" + date + "|" + session
}

// --- availability ---

type mockAvailabilityStore struct {
	recs map[string]availability.Record
}

func newMockAvailabilityStore() *mockAvailabilityStore {
	return &mockAvailabilityStore{recs: make(map[string]availability.Record)}
}

func (m *mockAvailabilityStore) Get(_ context.Context, counselorID, date, session string) (availability.State, error) {
	r, ok := m.recs[slotKey(counselorID, date, session)]
	if !ok {
		return availability.StateUnset, nil
	}
	return r.State, nil
}

func (m *mockAvailabilityStore) Set(_ context.Context, r availability.Record) error {
	if err := r.Validate(); err != nil {
		return err
	}
	m.recs[slotKey(r.CounselorID, r.Date, r.Session)] = r
	return nil
}

func (m *mockAvailabilityStore) Clear(_ context.Context, counselorID, date, session string) error {
	delete(m.recs, slotKey(counselorID, date, session))
	return nil
}

func (m *mockAvailabilityStore) ListMonth(_ context.Context, counselorID, yearMonth string) ([]availability.Record, error) {
	var out []availability.Record
	for _, r := range m.recs {
		if r.CounselorID == counselorID && strings.HasPrefix(r.Date, yearMonth) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockAvailabilityStore) SetMonth(_ context.Context, _ string, records []availability.Record) error {
	for _, r := range records {
		m.recs[slotKey(r.CounselorID, r.Date, r.Session)] = r
	}
	return nil
}

func (m *mockAvailabilityStore) ClearMonth(_ context.Context, counselorID, yearMonth string) error {
	for k, r := range m.recs {
		if r.CounselorID == counselorID && strings.HasPrefix(r.Date, yearMonth) {
			delete(m.recs, k)
		}
	}
	return nil
}

func (m *mockAvailabilityStore) DeleteByCounselor(_ context.Context, counselorID string) error {
	for k, r := range m.recs {
		if r.CounselorID == counselorID {
			delete(m.recs, k)
		}
	}
	return nil
}

// --- schedule mirror ---

type mockScheduleStore struct {
	entries map[string]schedule.Entry // counselorID|date
}

func newMockScheduleStore() *mockScheduleStore {
	return &mockScheduleStore{entries: make(map[string]schedule.Entry)}
}

func (m *mockScheduleStore) Save(_ context.Context, e schedule.Entry) error {
	k := e.CounselorID + "|" + e.Date
	if e.IsEmpty() {
		delete(m.entries, k)
		return nil
	}
	m.entries[k] = e
	return nil
}

func (m *mockScheduleStore) DeleteByCounselor(_ context.Context, counselorID string) error {
	for k, e := range m.entries {
		if e.CounselorID == counselorID {
			delete(m.entries, k)
		}
	}
	return nil
}

func (m *mockScheduleStore) entry(counselorID, date string) (schedule.Entry, bool) {
	e, ok := m.entries[counselorID+"|"+date]
	return e, ok
}

// --- assignments ---

type mockAssignmentStore struct {
	pods map[string]assignment.Pod // date|session|counselorID
}

func newMockAssignmentStore() *mockAssignmentStore {
	return &mockAssignmentStore{pods: make(map[string]assignment.Pod)}
}

func podKey(date, session, counselorID string) string {
	return date + "|" + session + "|" + counselorID
}

func (m *mockAssignmentStore) SavePod(_ context.Context, p assignment.Pod) error {
	k := podKey(p.Date, p.Session, p.CounselorID)
	if len(p.CamperIDs) == 0 {
		delete(m.pods, k)
		return nil
	}
	m.pods[k] = p
	return nil
}

func (m *mockAssignmentStore) CountCampers(_ context.Context, counselorID, date, session string) (int, error) {
	p, ok := m.pods[podKey(date, session, counselorID)]
	if !ok {
		return 0, nil
	}
	return len(p.CamperIDs), nil
}

func (m *mockAssignmentStore) DeleteByCounselor(_ context.Context, counselorID string) error {
	for k, p := range m.pods {
		if p.CounselorID == counselorID {
			delete(m.pods, k)
		}
	}
	return nil
}

func (m *mockAssignmentStore) RemoveCamperEverywhere(_ context.Context, camperID string) error {
	for k, p := range m.pods {
		var kept []string
		for _, id := range p.CamperIDs {
			if id != camperID {
				kept = append(kept, id)
			}
		}
		if len(kept) == 0 {
			delete(m.pods, k)
			continue
		}
		p.CamperIDs = kept
		m.pods[k] = p
	}
	return nil
}

// --- audit ---

type mockAuditStore struct {
	events []audit.Event
}

func (m *mockAuditStore) Save(_ context.Context, e audit.Event) error {
	m.events = append(m.events, e)
	return nil
}

// --- accounts ---

type mockAccountStore struct {
	accounts map[string]account.Account
}

func newMockAccountStore() *mockAccountStore {
	return &mockAccountStore{accounts: make(map[string]account.Account)}
}

func (m *mockAccountStore) GetByID(_ context.Context, id string) (account.Account, error) {
	a, ok := m.accounts[id]
	if !ok {
		return account.Account{}, errors.New("account not found")
	}
	return a, nil
}

func (m *mockAccountStore) GetByEmail(_ context.Context, em string) (account.Account, error) {
	for _, a := range m.accounts {
		if a.Email == account.NormalizeEmail(em) {
			return a, nil
		}
	}
	return account.Account{}, errors.New("account not found")
}

func (m *mockAccountStore) Save(_ context.Context, a account.Account) error {
	m.accounts[a.ID] = a
	return nil
}

func (m *mockAccountStore) Delete(_ context.Context, id string) error {
	delete(m.accounts, id)
	return nil
}

func (m *mockAccountStore) Count(_ context.Context) (int, error) {
	return len(m.accounts), nil
}

// --- campers, links, contacts, registrations ---

type mockCamperStore struct {
	campers map[string]camper.Camper
}

func newMockCamperStore() *mockCamperStore {
	return &mockCamperStore{campers: make(map[string]camper.Camper)}
}

func (m *mockCamperStore) GetByID(_ context.Context, id string) (camper.Camper, error) {
	c, ok := m.campers[id]
	if !ok {
		return camper.Camper{}, errors.New("camper not found")
	}
	return c, nil
}

func (m *mockCamperStore) Save(_ context.Context, c camper.Camper) error {
	m.campers[c.ID] = c
	return nil
}

func (m *mockCamperStore) Delete(_ context.Context, id string) error {
	delete(m.campers, id)
	return nil
}

type mockGuardianStore struct {
	links []guardian.Link
}

func (m *mockGuardianStore) Save(_ context.Context, l guardian.Link) error {
	m.links = append(m.links, l)
	return nil
}

func (m *mockGuardianStore) DeleteByParent(_ context.Context, parentID string) error {
	var kept []guardian.Link
	for _, l := range m.links {
		if l.ParentID != parentID {
			kept = append(kept, l)
		}
	}
	m.links = kept
	return nil
}

func (m *mockGuardianStore) DeleteByCamper(_ context.Context, camperID string) error {
	var kept []guardian.Link
	for _, l := range m.links {
		if l.CamperID != camperID {
			kept = append(kept, l)
		}
	}
	m.links = kept
	return nil
}

type mockContactStore struct {
	contacts []contact.Contact
}

func (m *mockContactStore) Save(_ context.Context, c contact.Contact) error {
	m.contacts = append(m.contacts, c)
	return nil
}

func (m *mockContactStore) DeleteByOwner(_ context.Context, ownerID string) error {
	var kept []contact.Contact
	for _, c := range m.contacts {
		if c.ParentID != ownerID {
			kept = append(kept, c)
		}
	}
	m.contacts = kept
	return nil
}

type mockRegistrationStore struct {
	regs []registration.Registration
}

func (m *mockRegistrationStore) Save(_ context.Context, r registration.Registration) error {
	m.regs = append(m.regs, r)
	return nil
}

// --- outbox ---

type mockOutboxStore struct {
	entries map[string]outbox.Entry
}

func newMockOutboxStore() *mockOutboxStore {
	return &mockOutboxStore{entries: make(map[string]outbox.Entry)}
}

func (m *mockOutboxStore) GetByID(_ context.Context, id string) (outbox.Entry, error) {
	e, ok := m.entries[id]
	if !ok {
		return outbox.Entry{}, errors.New("entry not found")
	}
	return e, nil
}

func (m *mockOutboxStore) Save(_ context.Context, e outbox.Entry) error {
	m.entries[e.ID] = e
	return nil
}

func (m *mockOutboxStore) ListPending(_ context.Context, limit int) ([]outbox.Entry, error) {
	var out []outbox.Entry
	for _, e := range m.entries {
		if e.Status == outbox.StatusPending || e.Status == outbox.StatusRetrying {
			out = append(out, e)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (m *mockOutboxStore) ListFailed(_ context.Context, limit int) ([]outbox.Entry, error) {
	var out []outbox.Entry
	for _, e := range m.entries {
		if e.Status == outbox.StatusFailed || e.Status == outbox.StatusAbandoned {
			out = append(out, e)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (m *mockOutboxStore) ListByActionType(_ context.Context, actionType, status string, limit int) ([]outbox.Entry, error) {
	var out []outbox.Entry
	for _, e := range m.entries {
		if e.ActionType == actionType && (status == "" || e.Status == status) {
			out = append(out, e)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (m *mockOutboxStore) Delete(_ context.Context, id string) error {
	delete(m.entries, id)
	return nil
}

// --- email and photo ---

type mockEmailSender struct {
	sent []email.SendRequest
	fail bool
}

func (m *mockEmailSender) Send(_ context.Context, req email.SendRequest) (email.SendResult, error) {
	if m.fail {
		return email.SendResult{}, errors.New("provider unavailable")
	}
	m.sent = append(m.sent, req)
	return email.SendResult{MessageID: "msg-1", SentAt: testTime}, nil
}

type mockUploader struct {
	url   string
	fail  bool
	calls int
}

func (m *mockUploader) Upload(_ context.Context, _ string) (string, error) {
	m.calls++
	if m.fail {
		return "", errors.New("bucket unreachable")
	}
	return m.url, nil
}

// --- content ---

type mockContentStore struct {
	doc   content.Document
	saved bool
}

func (m *mockContentStore) Get(_ context.Context) (content.Document, error) {
	if !m.saved {
		return content.Document{}, sql.ErrNoRows
	}
	return m.doc, nil
}

func (m *mockContentStore) Save(_ context.Context, d content.Document) error {
	m.doc = d
	m.saved = true
	return nil
}
