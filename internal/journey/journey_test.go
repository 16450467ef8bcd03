package journey

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/rnwolfe/momentum/internal/weight"
)

var now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func at(day int) *time.Time {
	t := time.Date(2026, 1, day, 8, 0, 0, 0, time.UTC)
	return &t
}

func completed(id string, day int) Entry {
	return Entry{ID: id, Status: StatusCompleted, CreatedAt: *at(1), CompletedAt: at(day), Unit: weight.Kilograms}
}

func testState() weight.State {
	return weight.State{CurrentWeight: 80, TargetWeight: 72, Unit: weight.Kilograms, CurrentBodyType: "muscular", TargetBodyType: "lean"}
}

func TestHasJourneyState(t *testing.T) {
	if !HasJourneyState(testState()) {
		t.Error("expected journey state")
	}
	s := testState()
	s.TargetWeight = 0
	if HasJourneyState(s) {
		t.Error("missing target should not count as a journey")
	}
	s = testState()
	s.CurrentWeight = 1e20
	if HasJourneyState(s) {
		t.Error("an out-of-range weight should not count as a journey")
	}
}

func TestBuildCurrentEntry(t *testing.T) {
	s := testState()
	plan := weight.ComputePlan(weight.InputsFromState(s, now))
	logs := []weight.CheckIn{
		weight.NewCheckIn(80.4, weight.Kilograms, *at(10)),
		weight.NewCheckIn(81, weight.Kilograms, *at(3)),
	}
	e := BuildCurrentEntry(s, plan, logs, now)
	if e == nil {
		t.Fatal("expected an entry")
	}
	if e.ID != CurrentID || e.Status != StatusActive {
		t.Errorf("id = %q status = %q", e.ID, e.Status)
	}
	if e.TargetCalories != plan.TargetCalories {
		t.Errorf("plan not frozen into entry")
	}
	if e.StartingWeight != 80 {
		t.Errorf("StartingWeight = %v, want current weight 80", e.StartingWeight)
	}
	if !e.CreatedAt.Equal(*at(3)) {
		t.Errorf("CreatedAt = %v, want first check-in", e.CreatedAt)
	}
	if len(e.CheckIns) != 2 || e.CheckIns[0].Weight != 80.4 {
		t.Errorf("check-ins = %+v", e.CheckIns)
	}

	if BuildCurrentEntry(weight.State{}, nil, nil, now) != nil {
		t.Error("empty state should yield nil")
	}
}

func TestCreateCompletedEntry(t *testing.T) {
	s := testState()
	a := CreateCompletedEntry(s, nil, nil, now, ReasonAchieved)
	b := CreateCompletedEntry(s, nil, nil, now, ReasonAchieved)
	if a.ID == "" || a.ID == b.ID || a.ID == CurrentID {
		t.Errorf("ids should be fresh: %q %q", a.ID, b.ID)
	}
	if a.Status != StatusCompleted || a.CompletedReason != ReasonAchieved {
		t.Errorf("entry = %+v", a)
	}
	if a.CompletedAt == nil || !a.CompletedAt.Equal(now) {
		t.Errorf("CompletedAt = %v, want %v", a.CompletedAt, now)
	}
}

func TestNormalizeHistory_DedupLastWins(t *testing.T) {
	first := completed("a", 5)
	second := completed("a", 9)
	second.CompletedReason = ReasonAbandoned
	got := NormalizeHistory([]Entry{first, second})
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	if !got[0].CompletedAt.Equal(*at(9)) || got[0].CompletedReason != ReasonAbandoned {
		t.Errorf("kept %+v, want the last write", got[0])
	}
}

func TestNormalizeHistory_SortsDescending(t *testing.T) {
	got := NormalizeHistory([]Entry{completed("a", 2), completed("b", 20), completed("c", 11)})
	want := []string{"b", "c", "a"}
	for i, e := range got {
		if e.ID != want[i] {
			t.Errorf("position %d = %q, want %q", i, e.ID, want[i])
		}
	}
}

func TestNormalizeHistory_ActiveUsesCreatedAt(t *testing.T) {
	active := Entry{ID: CurrentID, Status: StatusActive, CreatedAt: *at(15)}
	got := NormalizeHistory([]Entry{completed("a", 10), active, completed("b", 20)})
	if got[0].ID != "b" || got[1].ID != CurrentID || got[2].ID != "a" {
		t.Errorf("order = %s %s %s", got[0].ID, got[1].ID, got[2].ID)
	}
}

func TestNormalizeHistory_DropsInvalid(t *testing.T) {
	zero := time.Time{}
	entries := []Entry{
		{ID: "", Status: StatusCompleted, CreatedAt: *at(1)},
		{ID: "no-created", Status: StatusCompleted},
		{ID: "bad-completed", Status: StatusCompleted, CreatedAt: *at(1), CompletedAt: &zero},
		{ID: "bad-status", Status: "paused", CreatedAt: *at(1)},
		completed("ok", 3),
	}
	got := NormalizeHistory(entries)
	if len(got) != 1 || got[0].ID != "ok" {
		t.Errorf("got %+v, want only ok", got)
	}
}

func TestNormalizeHistory_StableAndIdempotent(t *testing.T) {
	in := []Entry{completed("x", 4), completed("y", 4), completed("z", 7)}
	once := NormalizeHistory(in)
	twice := NormalizeHistory(once)
	ids := func(es []Entry) string {
		s := ""
		for _, e := range es {
			s += e.ID
		}
		return s
	}
	if ids(once) != "zxy" {
		t.Errorf("order = %q, want zxy", ids(once))
	}
	if ids(twice) != ids(once) {
		t.Errorf("not idempotent: %q then %q", ids(once), ids(twice))
	}
}

func TestParseHistoryPayload_Shapes(t *testing.T) {
	bare := `[{"id":"a","status":"completed","createdAt":"2026-01-01T00:00:00Z","completedAt":"2026-01-05T00:00:00Z"}]`
	wrapped := `{"journeys":[{"id":"b","status":"completed","createdAt":1767225600000,"completedAt":"2026-01-09"}, 42, {"id":"c"}]}`

	if got := ParseHistoryPayload([]byte(bare)); len(got) != 1 || got[0].ID != "a" {
		t.Errorf("bare array = %+v", got)
	}
	got := ParseHistoryPayload([]byte(wrapped))
	if len(got) != 1 || got[0].ID != "b" {
		t.Fatalf("wrapped = %+v", got)
	}
	if got[0].CreatedAt.IsZero() {
		t.Error("epoch millisecond createdAt should parse")
	}

	for _, bad := range []string{``, `null`, `"journeys"`, `{"journeys": "nope"}`, `{`} {
		if got := ParseHistoryPayload([]byte(bad)); got == nil || len(got) != 0 {
			t.Errorf("ParseHistoryPayload(%q) = %v, want empty list", bad, got)
		}
	}
}

func TestParseHistoryPayload_LooseCheckIns(t *testing.T) {
	payload := `{"journeys":[{"id":"d","status":"completed","unit":"kg",` +
		`"createdAt":"2026-01-01T00:00:00Z","completedAt":"2026-01-20T00:00:00Z",` +
		`"checkIns":[` +
		`{"weight":80.2,"unit":"kg","loggedAt":1767225600000},` +
		`{"weight":"79.6","unit":"kg","loggedAt":"2026-01-10T08:00:00Z"},` +
		`{"weight":"heavy","loggedAt":"2026-01-11T08:00:00Z"}]}]}`

	got := ParseHistoryPayload([]byte(payload))
	if len(got) != 1 || got[0].ID != "d" {
		t.Fatalf("entries = %+v, want journey d", got)
	}
	logs := got[0].CheckIns
	if len(logs) != 2 {
		t.Fatalf("check-ins = %+v, want 2", logs)
	}
	if logs[0].Weight != 79.6 || logs[1].Weight != 80.2 {
		t.Errorf("weights = %v, %v, want 79.6 then 80.2", logs[0].Weight, logs[1].Weight)
	}
	if logs[1].LoggedAt.IsZero() {
		t.Error("epoch millisecond loggedAt should parse")
	}
}

func TestMarshalHistory_RoundTrip(t *testing.T) {
	s := testState()
	plan := weight.ComputePlan(weight.InputsFromState(s, now))
	e := CreateCompletedEntry(s, plan, []weight.CheckIn{weight.NewCheckIn(79, weight.Kilograms, *at(20))}, now, ReasonAchieved)
	raw, err := MarshalHistory([]Entry{e})
	if err != nil {
		t.Fatal(err)
	}
	var shape map[string]json.RawMessage
	if err := json.Unmarshal(raw, &shape); err != nil {
		t.Fatal(err)
	}
	if _, ok := shape["journeys"]; !ok {
		t.Fatalf("payload missing journeys wrapper: %s", raw)
	}
	back := ParseHistoryPayload(raw)
	if len(back) != 1 {
		t.Fatalf("len = %d, want 1", len(back))
	}
	if back[0].ID != e.ID || back[0].TargetCalories != plan.TargetCalories || len(back[0].CheckIns) != 1 {
		t.Errorf("round trip = %+v", back[0])
	}
}

func TestResolveUserID(t *testing.T) {
	cases := []struct {
		auth, profile, profileUser, want string
	}{
		{"auth", "profile", "user", "auth"},
		{"  ", "profile", "user", "profile"},
		{"", "", "user", "user"},
		{"", "", "", DefaultUserID},
	}
	for _, c := range cases {
		if got := ResolveUserID(c.auth, c.profile, c.profileUser); got != c.want {
			t.Errorf("ResolveUserID(%q, %q, %q) = %q, want %q", c.auth, c.profile, c.profileUser, got, c.want)
		}
	}
}

func TestStorageKeys(t *testing.T) {
	if StateKey("u1") != "weight_manager_state:u1" {
		t.Errorf("StateKey = %q", StateKey("u1"))
	}
	if HistoryKey("u1") != "weight_manager_journey_history:u1" {
		t.Errorf("HistoryKey = %q", HistoryKey("u1"))
	}
	if CheckInsKey("u1") != "weight_manager_checkins:u1" || BadgeSlotsKey("u1") != "badge_slots:u1" {
		t.Error("supplementary keys wrong")
	}
}
