package web

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"fastbreak/internal/adapters/email"
	"fastbreak/internal/adapters/http/perf"
	"fastbreak/internal/adapters/photo"
	accountStore "fastbreak/internal/adapters/storage/account"
	auditStore "fastbreak/internal/adapters/storage/audit"
	accountDomain "fastbreak/internal/domain/account"
	assignmentDomain "fastbreak/internal/domain/assignment"
	auditDomain "fastbreak/internal/domain/audit"
	availabilityDomain "fastbreak/internal/domain/availability"
	camperDomain "fastbreak/internal/domain/camper"
	contactDomain "fastbreak/internal/domain/contact"
	contentDomain "fastbreak/internal/domain/content"
	guardianDomain "fastbreak/internal/domain/guardian"
	onboardingDomain "fastbreak/internal/domain/onboarding"
	outboxDomain "fastbreak/internal/domain/outbox"
	registrationDomain "fastbreak/internal/domain/registration"
	scheduleDomain "fastbreak/internal/domain/schedule"
)

// --- In-memory stores implementing the storage interfaces ---

type memAccounts struct{ accounts map[string]accountDomain.Account }

func (m *memAccounts) GetByID(ctx context.Context, id string) (accountDomain.Account, error) {
	if a, ok := m.accounts[id]; ok {
		return a, nil
	}
	return accountDomain.Account{}, sql.ErrNoRows
}

func (m *memAccounts) GetByEmail(ctx context.Context, em string) (accountDomain.Account, error) {
	for _, a := range m.accounts {
		if a.Email == accountDomain.NormalizeEmail(em) {
			return a, nil
		}
	}
	return accountDomain.Account{}, sql.ErrNoRows
}

func (m *memAccounts) Save(ctx context.Context, a accountDomain.Account) error {
	m.accounts[a.ID] = a
	return nil
}

func (m *memAccounts) Delete(ctx context.Context, id string) error {
	delete(m.accounts, id)
	return nil
}

func (m *memAccounts) List(ctx context.Context, filter accountStore.ListFilter) ([]accountDomain.Account, error) {
	var list []accountDomain.Account
	for _, a := range m.accounts {
		if filter.Role == "" || a.Role == filter.Role {
			list = append(list, a)
		}
	}
	return list, nil
}

func (m *memAccounts) Count(ctx context.Context) (int, error) {
	return len(m.accounts), nil
}

type memAvailability struct{ recs map[string]availabilityDomain.Record }

func availKey(c, d, s string) string { return c + "|" + d + "|" + s }

func (m *memAvailability) Get(ctx context.Context, c, d, s string) (availabilityDomain.State, error) {
	if r, ok := m.recs[availKey(c, d, s)]; ok {
		return r.State, nil
	}
	return availabilityDomain.StateUnset, nil
}

func (m *memAvailability) Set(ctx context.Context, r availabilityDomain.Record) error {
	m.recs[availKey(r.CounselorID, r.Date, r.Session)] = r
	return nil
}

func (m *memAvailability) Clear(ctx context.Context, c, d, s string) error {
	delete(m.recs, availKey(c, d, s))
	return nil
}

func (m *memAvailability) ListMonth(ctx context.Context, c, yearMonth string) ([]availabilityDomain.Record, error) {
	var out []availabilityDomain.Record
	for _, r := range m.recs {
		if r.CounselorID == c && strings.HasPrefix(r.Date, yearMonth) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memAvailability) SetMonth(ctx context.Context, c string, records []availabilityDomain.Record) error {
	for _, r := range records {
		m.recs[availKey(r.CounselorID, r.Date, r.Session)] = r
	}
	return nil
}

func (m *memAvailability) ClearMonth(ctx context.Context, c, yearMonth string) error {
	for k, r := range m.recs {
		if r.CounselorID == c && strings.HasPrefix(r.Date, yearMonth) {
			delete(m.recs, k)
		}
	}
	return nil
}

func (m *memAvailability) DeleteByCounselor(ctx context.Context, c string) error {
	for k, r := range m.recs {
		if r.CounselorID == c {
			delete(m.recs, k)
		}
	}
	return nil
}

type memSchedule struct{ entries map[string]scheduleDomain.Entry }

func (m *memSchedule) Get(ctx context.Context, c, d string) (scheduleDomain.Entry, error) {
	if e, ok := m.entries[c+"|"+d]; ok {
		return e, nil
	}
	return scheduleDomain.Entry{}, sql.ErrNoRows
}

func (m *memSchedule) Save(ctx context.Context, e scheduleDomain.Entry) error {
	if e.IsEmpty() {
		delete(m.entries, e.CounselorID+"|"+e.Date)
		return nil
	}
	m.entries[e.CounselorID+"|"+e.Date] = e
	return nil
}

func (m *memSchedule) ListByDate(ctx context.Context, d string) ([]scheduleDomain.Entry, error) {
	var out []scheduleDomain.Entry
	for _, e := range m.entries {
		if e.Date == d {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *memSchedule) ListMonth(ctx context.Context, yearMonth string) ([]scheduleDomain.Entry, error) {
	var out []scheduleDomain.Entry
	for _, e := range m.entries {
		if strings.HasPrefix(e.Date, yearMonth) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *memSchedule) DeleteByCounselor(ctx context.Context, c string) error {
	for k, e := range m.entries {
		if e.CounselorID == c {
			delete(m.entries, k)
		}
	}
	return nil
}

type memAssignments struct{ pods map[string]assignmentDomain.Pod }

func podKey(d, s, c string) string { return d + "|" + s + "|" + c }

func (m *memAssignments) GetPod(ctx context.Context, d, s, c string) (assignmentDomain.Pod, error) {
	if p, ok := m.pods[podKey(d, s, c)]; ok {
		return p, nil
	}
	return assignmentDomain.Pod{}, sql.ErrNoRows
}

func (m *memAssignments) SavePod(ctx context.Context, p assignmentDomain.Pod) error {
	if len(p.CamperIDs) == 0 {
		delete(m.pods, podKey(p.Date, p.Session, p.CounselorID))
		return nil
	}
	m.pods[podKey(p.Date, p.Session, p.CounselorID)] = p
	return nil
}

func (m *memAssignments) ListBySlot(ctx context.Context, d, s string) ([]assignmentDomain.Pod, error) {
	var out []assignmentDomain.Pod
	for _, p := range m.pods {
		if p.Date == d && p.Session == s {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memAssignments) CountCampers(ctx context.Context, c, d, s string) (int, error) {
	return len(m.pods[podKey(d, s, c)].CamperIDs), nil
}

func (m *memAssignments) DeleteByCounselor(ctx context.Context, c string) error {
	for k, p := range m.pods {
		if p.CounselorID == c {
			delete(m.pods, k)
		}
	}
	return nil
}

func (m *memAssignments) RemoveCamperEverywhere(ctx context.Context, camperID string) error {
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

type memCampers struct{ campers map[string]camperDomain.Camper }

func (m *memCampers) GetByID(ctx context.Context, id string) (camperDomain.Camper, error) {
	if c, ok := m.campers[id]; ok {
		return c, nil
	}
	return camperDomain.Camper{}, sql.ErrNoRows
}

func (m *memCampers) Save(ctx context.Context, c camperDomain.Camper) error {
	m.campers[c.ID] = c
	return nil
}

func (m *memCampers) Delete(ctx context.Context, id string) error {
	delete(m.campers, id)
	return nil
}

func (m *memCampers) List(ctx context.Context) ([]camperDomain.Camper, error) {
	var out []camperDomain.Camper
	for _, c := range m.campers {
		out = append(out, c)
	}
	return out, nil
}

func (m *memCampers) ListByIDs(ctx context.Context, ids []string) ([]camperDomain.Camper, error) {
	var out []camperDomain.Camper
	for _, id := range ids {
		if c, ok := m.campers[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

type memGuardians struct{ links []guardianDomain.Link }

func (m *memGuardians) Save(ctx context.Context, l guardianDomain.Link) error {
	m.links = append(m.links, l)
	return nil
}

func (m *memGuardians) ListCamperIDsByParent(ctx context.Context, parentID string) ([]string, error) {
	var out []string
	for _, l := range m.links {
		if l.ParentID == parentID {
			out = append(out, l.CamperID)
		}
	}
	return out, nil
}

func (m *memGuardians) ListParentIDsByCamper(ctx context.Context, camperID string) ([]string, error) {
	var out []string
	for _, l := range m.links {
		if l.CamperID == camperID {
			out = append(out, l.ParentID)
		}
	}
	return out, nil
}

func (m *memGuardians) DeleteByParent(ctx context.Context, parentID string) error {
	var kept []guardianDomain.Link
	for _, l := range m.links {
		if l.ParentID != parentID {
			kept = append(kept, l)
		}
	}
	m.links = kept
	return nil
}

func (m *memGuardians) DeleteByCamper(ctx context.Context, camperID string) error {
	var kept []guardianDomain.Link
	for _, l := range m.links {
		if l.CamperID != camperID {
			kept = append(kept, l)
		}
	}
	m.links = kept
	return nil
}

type memContacts struct{ contacts []contactDomain.Contact }

func (m *memContacts) Save(ctx context.Context, c contactDomain.Contact) error {
	m.contacts = append(m.contacts, c)
	return nil
}

func (m *memContacts) ListByOwner(ctx context.Context, ownerID string) ([]contactDomain.Contact, error) {
	var out []contactDomain.Contact
	for _, c := range m.contacts {
		if c.ParentID == ownerID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memContacts) Delete(ctx context.Context, id string) error {
	var kept []contactDomain.Contact
	for _, c := range m.contacts {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	m.contacts = kept
	return nil
}

func (m *memContacts) DeleteByOwner(ctx context.Context, ownerID string) error {
	var kept []contactDomain.Contact
	for _, c := range m.contacts {
		if c.ParentID != ownerID {
			kept = append(kept, c)
		}
	}
	m.contacts = kept
	return nil
}

type memContent struct {
	doc   contentDomain.Document
	saved bool
	fail  bool
}

func (m *memContent) Get(ctx context.Context) (contentDomain.Document, error) {
	if m.fail || !m.saved {
		return contentDomain.Document{}, sql.ErrNoRows
	}
	return m.doc, nil
}

func (m *memContent) Save(ctx context.Context, d contentDomain.Document) error {
	m.doc = d
	m.saved = true
	return nil
}

type memRegistrations struct{ regs []registrationDomain.Registration }

func (m *memRegistrations) GetByID(ctx context.Context, id string) (registrationDomain.Registration, error) {
	for _, r := range m.regs {
		if r.ID == id {
			return r, nil
		}
	}
	return registrationDomain.Registration{}, sql.ErrNoRows
}

func (m *memRegistrations) Save(ctx context.Context, r registrationDomain.Registration) error {
	m.regs = append(m.regs, r)
	return nil
}

func (m *memRegistrations) ListByAccount(ctx context.Context, accountID string) ([]registrationDomain.Registration, error) {
	var out []registrationDomain.Registration
	for _, r := range m.regs {
		if r.AccountID == accountID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memRegistrations) List(ctx context.Context, limit int) ([]registrationDomain.Registration, error) {
	if limit > len(m.regs) {
		limit = len(m.regs)
	}
	return m.regs[:limit], nil
}

type memAudit struct{ events []auditDomain.Event }

func (m *memAudit) Save(ctx context.Context, e auditDomain.Event) error {
	m.events = append(m.events, e)
	return nil
}

func (m *memAudit) List(ctx context.Context, filter auditStore.Filter, limit int) ([]auditDomain.Event, error) {
	var out []auditDomain.Event
	for _, e := range m.events {
		if filter.Category != nil && e.Category != *filter.Category {
			continue
		}
		if filter.Action != nil && e.Action != *filter.Action {
			continue
		}
		out = append(out, e)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (m *memAudit) GetByID(ctx context.Context, id string) (auditDomain.Event, error) {
	for _, e := range m.events {
		if e.ID == id {
			return e, nil
		}
	}
	return auditDomain.Event{}, sql.ErrNoRows
}

type memOutbox struct{ entries map[string]outboxDomain.Entry }

func (m *memOutbox) GetByID(ctx context.Context, id string) (outboxDomain.Entry, error) {
	if e, ok := m.entries[id]; ok {
		return e, nil
	}
	return outboxDomain.Entry{}, sql.ErrNoRows
}

func (m *memOutbox) Save(ctx context.Context, e outboxDomain.Entry) error {
	m.entries[e.ID] = e
	return nil
}

func (m *memOutbox) ListPending(ctx context.Context, limit int) ([]outboxDomain.Entry, error) {
	var out []outboxDomain.Entry
	for _, e := range m.entries {
		if e.Status == outboxDomain.StatusPending || e.Status == outboxDomain.StatusRetrying {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *memOutbox) ListFailed(ctx context.Context, limit int) ([]outboxDomain.Entry, error) {
	var out []outboxDomain.Entry
	for _, e := range m.entries {
		if e.Status == outboxDomain.StatusFailed {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *memOutbox) ListByActionType(ctx context.Context, actionType, status string, limit int) ([]outboxDomain.Entry, error) {
	var out []outboxDomain.Entry
	for _, e := range m.entries {
		if e.ActionType == actionType && (status == "" || e.Status == status) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *memOutbox) Delete(ctx context.Context, id string) error {
	delete(m.entries, id)
	return nil
}

// --- Harness ---

type testEnv struct {
	accounts      *memAccounts
	availability  *memAvailability
	schedule      *memSchedule
	assignments   *memAssignments
	campers       *memCampers
	guardians     *memGuardians
	contacts      *memContacts
	content       *memContent
	registrations *memRegistrations
	audit         *memAudit
	outbox        *memOutbox

	handler http.Handler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	RateLimitPerSecond = 1000

	env := &testEnv{
		accounts:      &memAccounts{accounts: map[string]accountDomain.Account{}},
		availability:  &memAvailability{recs: map[string]availabilityDomain.Record{}},
		schedule:      &memSchedule{entries: map[string]scheduleDomain.Entry{}},
		assignments:   &memAssignments{pods: map[string]assignmentDomain.Pod{}},
		campers:       &memCampers{campers: map[string]camperDomain.Camper{}},
		guardians:     &memGuardians{},
		contacts:      &memContacts{},
		content:       &memContent{},
		registrations: &memRegistrations{},
		audit:         &memAudit{},
		outbox:        &memOutbox{entries: map[string]outboxDomain.Entry{}},
	}

	SetEmailSender(email.NewNoopSender(), "hello@fastbreakcamp.example")
	SetPhotoUploader(photo.NewNoopUploader())

	env.handler = NewMux(t.TempDir(), &Stores{
		AccountStore:      env.accounts,
		AvailabilityStore: env.availability,
		ScheduleStore:     env.schedule,
		AssignmentStore:   env.assignments,
		CamperStore:       env.campers,
		GuardianStore:     env.guardians,
		ContactStore:      env.contacts,
		RegistrationStore: env.registrations,
		ContentStore:      env.content,
		AuditStore:        env.audit,
		OutboxStore:       env.outbox,
	}, perf.NewCollector(100))
	return env
}

// signIn creates a session directly and returns the cookie for it.
func (e *testEnv) signIn(t *testing.T, accountID, em, name, role string) *http.Cookie {
	t.Helper()
	token, err := sessions.Create(accountID, em, name, role)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	return &http.Cookie{Name: "fastbreak_session", Value: token}
}

// do runs one request through the full middleware chain. body is
// JSON-marshaled; the Content-Type exempts the request from CSRF.
func (e *testEnv) do(t *testing.T, method, path string, body any, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var rd *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		rd = bytes.NewReader(b)
	} else {
		rd = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	e.handler.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

// --- Tests ---

func TestAPI_LoginFlow(t *testing.T) {
	env := newTestEnv(t)

	acct := accountDomain.Account{
		ID:    "a-1",
		Name:  "Camp Director",
		Email: "director@fastbreak.example",
		Role:  accountDomain.RoleAdmin,
	}
	if err := acct.SetPassword("hoop"); err != nil {
		t.Fatalf("set password: %v", err)
	}
	env.accounts.accounts[acct.ID] = acct

	w := env.do(t, "POST", "/api/login", map[string]string{
		"email":    "Director@Fastbreak.Example",
		"password": "hoop",
	}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("login status = %d, body %s", w.Code, w.Body.String())
	}

	var cookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == "fastbreak_session" {
			cookie = c
		}
	}
	if cookie == nil || cookie.Value == "" {
		t.Fatal("expected session cookie on login")
	}

	w = env.do(t, "GET", "/api/me", nil, cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("me status = %d", w.Code)
	}
	var me map[string]string
	decodeBody(t, w, &me)
	if me["accountId"] != "a-1" || me["role"] != accountDomain.RoleAdmin {
		t.Errorf("me = %v", me)
	}

	w = env.do(t, "POST", "/api/login", map[string]string{
		"email":    "director@fastbreak.example",
		"password": "wrong",
	}, nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("bad password status = %d, want 401", w.Code)
	}
}

func TestAPI_ContentFallsBackToDefaults(t *testing.T) {
	env := newTestEnv(t)
	env.content.fail = true

	w := env.do(t, "GET", "/api/content", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 even when storage fails", w.Code)
	}
	var res struct {
		HeroTitle string `json:"heroTitle"`
		Fallback  bool   `json:"fallback"`
	}
	decodeBody(t, w, &res)
	if !res.Fallback {
		t.Error("expected fallback flag")
	}
	if res.HeroTitle != contentDomain.Defaults().HeroTitle {
		t.Errorf("HeroTitle = %q, want default", res.HeroTitle)
	}
}

func TestAPI_ContentUpdateRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	admin := env.signIn(t, "a-1", "director@fastbreak.example", "Camp Director", accountDomain.RoleAdmin)

	doc := contentDomain.Defaults()
	doc.HeroTitle = "Hoops All Summer"
	doc.ProgramBlurb = "We run **stations** every morning."

	w := env.do(t, "PUT", "/api/admin/content", doc, admin)
	if w.Code != http.StatusOK {
		t.Fatalf("update status = %d, body %s", w.Code, w.Body.String())
	}

	w = env.do(t, "GET", "/api/content", nil, nil)
	var res struct {
		HeroTitle        string `json:"heroTitle"`
		ProgramBlurbHTML string `json:"programBlurbHtml"`
		Fallback         bool   `json:"fallback"`
	}
	decodeBody(t, w, &res)
	if res.Fallback {
		t.Error("fallback should be false after save")
	}
	if res.HeroTitle != "Hoops All Summer" {
		t.Errorf("HeroTitle = %q", res.HeroTitle)
	}
	if !strings.Contains(res.ProgramBlurbHTML, "<strong>stations</strong>") {
		t.Errorf("markdown not rendered: %q", res.ProgramBlurbHTML)
	}

	// Empty hero title is rejected.
	doc.HeroTitle = "  "
	w = env.do(t, "PUT", "/api/admin/content", doc, admin)
	if w.Code != http.StatusBadRequest {
		t.Errorf("invalid doc status = %d, want 400", w.Code)
	}
}

func TestAPI_ToggleAvailability(t *testing.T) {
	env := newTestEnv(t)
	counselor := env.signIn(t, "c-1", "riley@fastbreak.example", "Riley James", accountDomain.RoleCounselor)

	toggle := func() *httptest.ResponseRecorder {
		return env.do(t, "POST", "/api/availability/toggle", map[string]any{
			"date":    "2026-07-13",
			"session": availabilityDomain.SessionMorning,
		}, counselor)
	}

	w := toggle()
	if w.Code != http.StatusOK {
		t.Fatalf("toggle status = %d, body %s", w.Code, w.Body.String())
	}
	var res map[string]string
	decodeBody(t, w, &res)
	if res["state"] != string(availabilityDomain.StateAvailable) {
		t.Errorf("state = %q, want available", res["state"])
	}

	w = toggle()
	decodeBody(t, w, &res)
	if res["state"] != string(availabilityDomain.StateUnavailable) {
		t.Errorf("state = %q, want unavailable", res["state"])
	}

	w = env.do(t, "GET", "/api/availability?month=2026-07", nil, counselor)
	if w.Code != http.StatusOK {
		t.Fatalf("calendar status = %d", w.Code)
	}
	var cal struct {
		YearMonth string
		Days      []availabilityDomain.Day
	}
	decodeBody(t, w, &cal)
	if cal.YearMonth != "2026-07" || len(cal.Days) != 31 {
		t.Fatalf("YearMonth = %q, days = %d", cal.YearMonth, len(cal.Days))
	}
}

func TestAPI_ToggleConfirmationConflict(t *testing.T) {
	env := newTestEnv(t)
	counselor := env.signIn(t, "c-1", "riley@fastbreak.example", "Riley James", accountDomain.RoleCounselor)

	env.availability.recs[availKey("c-1", "2026-07-13", "morning")] = availabilityDomain.Record{
		CounselorID: "c-1", Date: "2026-07-13", Session: "morning", State: availabilityDomain.StateAvailable,
	}
	env.assignments.pods[podKey("2026-07-13", "morning", "c-1")] = assignmentDomain.Pod{
		Date: "2026-07-13", Session: "morning", CounselorID: "c-1", CamperIDs: []string{"k-1", "k-2"},
	}

	w := env.do(t, "POST", "/api/availability/toggle", map[string]any{
		"date":    "2026-07-13",
		"session": "morning",
	}, counselor)
	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", w.Code)
	}
	var res struct {
		ConfirmationRequired bool `json:"confirmationRequired"`
		AssignedCampers      int  `json:"assignedCampers"`
	}
	decodeBody(t, w, &res)
	if !res.ConfirmationRequired || res.AssignedCampers != 2 {
		t.Errorf("conflict body = %+v", res)
	}

	w = env.do(t, "POST", "/api/availability/toggle", map[string]any{
		"date":      "2026-07-13",
		"session":   "morning",
		"confirmed": true,
	}, counselor)
	if w.Code != http.StatusOK {
		t.Errorf("confirmed toggle status = %d", w.Code)
	}
}

func TestAPI_MonthAvailability_Conflict(t *testing.T) {
	env := newTestEnv(t)
	counselor := env.signIn(t, "c-1", "riley@fastbreak.example", "Riley James", accountDomain.RoleCounselor)

	env.availability.recs[availKey("c-1", "2026-07-13", "morning")] = availabilityDomain.Record{
		CounselorID: "c-1", Date: "2026-07-13", Session: "morning", State: availabilityDomain.StateAvailable,
	}
	env.assignments.pods[podKey("2026-07-13", "morning", "c-1")] = assignmentDomain.Pod{
		Date: "2026-07-13", Session: "morning", CounselorID: "c-1", CamperIDs: []string{"k-1", "k-2"},
	}

	w := env.do(t, "POST", "/api/availability/month", map[string]any{
		"month": "2026-07",
		"mark":  false,
	}, counselor)
	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409, body %s", w.Code, w.Body.String())
	}
	var res struct {
		ConfirmationRequired bool `json:"confirmationRequired"`
		AssignedCampers      int  `json:"assignedCampers"`
	}
	decodeBody(t, w, &res)
	if !res.ConfirmationRequired || res.AssignedCampers != 2 {
		t.Errorf("conflict body = %+v", res)
	}
	if len(env.availability.recs) != 1 {
		t.Errorf("availability rows after refused clear = %d, want 1", len(env.availability.recs))
	}

	w = env.do(t, "POST", "/api/availability/month", map[string]any{
		"month":     "2026-07",
		"mark":      false,
		"confirmed": true,
	}, counselor)
	if w.Code != http.StatusOK {
		t.Fatalf("confirmed clear status = %d", w.Code)
	}
	if len(env.availability.recs) != 0 {
		t.Errorf("availability rows after confirmed clear = %d, want 0", len(env.availability.recs))
	}
}

func TestAPI_AccountsRoster(t *testing.T) {
	env := newTestEnv(t)
	admin := env.signIn(t, "a-1", "director@fastbreak.example", "Camp Director", accountDomain.RoleAdmin)
	for _, a := range []accountDomain.Account{
		{ID: "a-1", Name: "Camp Director", Email: "director@fastbreak.example", Role: accountDomain.RoleAdmin},
		{ID: "c-1", Name: "Riley James", Email: "riley@fastbreak.example", Role: accountDomain.RoleCounselor},
		{ID: "p-1", Name: "Dana Whitfield", Email: "dana@fastbreak.example", Role: accountDomain.RoleParent},
	} {
		env.accounts.accounts[a.ID] = a
	}

	w := env.do(t, "GET", "/api/admin/accounts", nil, admin)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	var res struct {
		Accounts   []map[string]any `json:"accounts"`
		Page       int              `json:"page"`
		PerPage    int              `json:"perPage"`
		Total      int              `json:"total"`
		TotalPages int              `json:"totalPages"`
		From       int              `json:"from"`
		To         int              `json:"to"`
	}
	decodeBody(t, w, &res)
	if len(res.Accounts) != 3 || res.Total != 3 {
		t.Errorf("accounts = %d, total = %d, want 3", len(res.Accounts), res.Total)
	}
	if res.Page != 1 || res.PerPage != 25 || res.TotalPages != 1 {
		t.Errorf("page meta = %d/%d/%d, want 1/25/1", res.Page, res.PerPage, res.TotalPages)
	}
	if res.From != 1 || res.To != 3 {
		t.Errorf("row range = %d..%d, want 1..3", res.From, res.To)
	}
	for _, a := range res.Accounts {
		if _, leaked := a["passwordHash"]; leaked {
			t.Error("roster response leaks password hash")
		}
	}
}

func TestAPI_OnboardParent(t *testing.T) {
	env := newTestEnv(t)

	draft := onboardingDomain.Draft{
		Name:     "Dana Whitfield",
		Email:    "dana@fastbreak.example",
		Phone:    "5551234567",
		Password: "hoop",
		Campers: []camperDomain.Camper{
			{Name: "Avery Hill", Birthdate: "2016-05-01", Grade: "4th"},
		},
		AgreePolicies: true,
		AgreeWaiver:   true,
	}

	w := env.do(t, "POST", "/api/onboarding/parent", draft, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	var res map[string]string
	decodeBody(t, w, &res)
	if res["accountId"] == "" {
		t.Fatal("expected accountId in response")
	}
	if len(env.registrations.regs) != 1 {
		t.Errorf("registrations = %d, want 1", len(env.registrations.regs))
	}

	// Same email again conflicts.
	w = env.do(t, "POST", "/api/onboarding/parent", draft, nil)
	if w.Code != http.StatusConflict {
		t.Errorf("duplicate email status = %d, want 409", w.Code)
	}

	// A draft missing the waiver never creates anything.
	draft.Email = "other@fastbreak.example"
	draft.AgreeWaiver = false
	w = env.do(t, "POST", "/api/onboarding/parent", draft, nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("invalid draft status = %d, want 400", w.Code)
	}
}

func TestAPI_SaveAndReadAssignments(t *testing.T) {
	env := newTestEnv(t)
	admin := env.signIn(t, "a-1", "director@fastbreak.example", "Camp Director", accountDomain.RoleAdmin)

	env.accounts.accounts["c-1"] = accountDomain.Account{ID: "c-1", Name: "Riley James", Email: "riley@fastbreak.example", Role: accountDomain.RoleCounselor}
	env.campers.campers["k-1"] = camperDomain.Camper{ID: "k-1", Name: "Avery Hill", Birthdate: "2016-05-01"}
	env.availability.recs[availKey("c-1", "2026-07-13", "morning")] = availabilityDomain.Record{
		CounselorID: "c-1", Date: "2026-07-13", Session: "morning", State: availabilityDomain.StateAvailable,
	}
	env.schedule.entries["c-1|2026-07-13"] = scheduleDomain.Entry{
		CounselorID: "c-1", Date: "2026-07-13", Morning: boolPtr(true),
	}

	w := env.do(t, "POST", "/api/assignments", map[string]any{
		"date":    "2026-07-13",
		"session": "morning",
		"pods": []map[string]any{
			{"counselorId": "c-1", "camperIds": []string{"k-1"}},
		},
	}, admin)
	if w.Code != http.StatusOK {
		t.Fatalf("save status = %d, body %s", w.Code, w.Body.String())
	}

	w = env.do(t, "GET", "/api/assignments?date=2026-07-13&session=morning", nil, admin)
	if w.Code != http.StatusOK {
		t.Fatalf("board status = %d", w.Code)
	}
	var board struct {
		Pods []struct {
			CounselorID   string
			CounselorName string
			Campers       []struct{ ID, Name string }
		}
		Available []struct {
			ID       string
			Assigned int
		}
	}
	decodeBody(t, w, &board)
	if len(board.Pods) != 1 || board.Pods[0].CounselorName != "Riley James" {
		t.Fatalf("pods = %+v", board.Pods)
	}
	if len(board.Available) != 1 || board.Available[0].Assigned != 1 {
		t.Errorf("available = %+v", board.Available)
	}

	// A counselor who never declared the slot cannot receive a pod.
	w = env.do(t, "POST", "/api/assignments", map[string]any{
		"date":    "2026-07-13",
		"session": "morning",
		"pods": []map[string]any{
			{"counselorId": "c-2", "camperIds": []string{"k-1"}},
		},
	}, admin)
	if w.Code != http.StatusBadRequest {
		t.Errorf("undeclared counselor status = %d, want 400", w.Code)
	}
}

func TestAPI_DeleteCounselorCascades(t *testing.T) {
	env := newTestEnv(t)
	admin := env.signIn(t, "a-1", "director@fastbreak.example", "Camp Director", accountDomain.RoleAdmin)

	env.accounts.accounts["c-1"] = accountDomain.Account{ID: "c-1", Name: "Riley James", Email: "riley@fastbreak.example", Role: accountDomain.RoleCounselor}
	env.availability.recs[availKey("c-1", "2026-07-13", "morning")] = availabilityDomain.Record{
		CounselorID: "c-1", Date: "2026-07-13", Session: "morning", State: availabilityDomain.StateAvailable,
	}
	env.schedule.entries["c-1|2026-07-13"] = scheduleDomain.Entry{CounselorID: "c-1", Date: "2026-07-13", Morning: boolPtr(true)}
	env.assignments.pods[podKey("2026-07-13", "morning", "c-1")] = assignmentDomain.Pod{
		Date: "2026-07-13", Session: "morning", CounselorID: "c-1", CamperIDs: []string{"k-1"},
	}
	counselorCookie := env.signIn(t, "c-1", "riley@fastbreak.example", "Riley James", accountDomain.RoleCounselor)

	w := env.do(t, "DELETE", "/api/counselors/c-1", nil, admin)
	if w.Code != http.StatusOK {
		t.Fatalf("delete status = %d, body %s", w.Code, w.Body.String())
	}

	if len(env.availability.recs) != 0 || len(env.schedule.entries) != 0 || len(env.assignments.pods) != 0 {
		t.Error("expected cascade to clear availability, mirror, and pods")
	}
	if _, ok := env.accounts.accounts["c-1"]; ok {
		t.Error("account should be deleted")
	}

	// The deleted counselor's session is revoked.
	w = env.do(t, "GET", "/api/me", nil, counselorCookie)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("revoked session status = %d, want 401", w.Code)
	}
}

func TestAPI_ParentHome(t *testing.T) {
	env := newTestEnv(t)
	parent := env.signIn(t, "p-1", "dana@fastbreak.example", "Dana Whitfield", accountDomain.RoleParent)

	env.accounts.accounts["p-1"] = accountDomain.Account{ID: "p-1", Name: "Dana Whitfield", Email: "dana@fastbreak.example", Role: accountDomain.RoleParent}
	env.campers.campers["k-1"] = camperDomain.Camper{ID: "k-1", Name: "Avery Hill", Birthdate: "2016-05-01"}
	env.guardians.links = []guardianDomain.Link{{ID: "g-1", ParentID: "p-1", CamperID: "k-1"}}
	env.contacts.contacts = []contactDomain.Contact{{ID: "ec-1", ParentID: "p-1", Name: "Sam Hill", Relationship: "uncle", Phone: "5559876543"}}

	w := env.do(t, "GET", "/api/home", nil, parent)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	var res struct {
		Campers       []camperDomain.Camper
		Contacts      []contactDomain.Contact
		ContactNotice bool
	}
	decodeBody(t, w, &res)
	if len(res.Campers) != 1 || res.Campers[0].Name != "Avery Hill" {
		t.Errorf("campers = %+v", res.Campers)
	}
	if !res.ContactNotice {
		t.Error("one contact should trigger the notice")
	}
}

func TestAPI_AdminOutboxView(t *testing.T) {
	env := newTestEnv(t)
	admin := env.signIn(t, "a-1", "director@fastbreak.example", "Camp Director", accountDomain.RoleAdmin)

	env.outbox.entries["ob-1"] = outboxDomain.Entry{ID: "ob-1", ActionType: outboxDomain.ActionTypeEmail, Status: outboxDomain.StatusRetrying, Attempts: 2, MaxAttempts: 5}
	env.outbox.entries["ob-2"] = outboxDomain.Entry{ID: "ob-2", ActionType: outboxDomain.ActionTypeEmail, Status: outboxDomain.StatusFailed, Attempts: 5, MaxAttempts: 5}

	w := env.do(t, "GET", "/api/admin/outbox", nil, admin)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var res struct {
		Pending []outboxDomain.Entry `json:"pending"`
		Failed  []outboxDomain.Entry `json:"failed"`
	}
	decodeBody(t, w, &res)
	if len(res.Pending) != 1 || len(res.Failed) != 1 {
		t.Errorf("pending = %d, failed = %d", len(res.Pending), len(res.Failed))
	}
}

func boolPtr(b bool) *bool { return &b }
