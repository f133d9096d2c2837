package file

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Brawl345/ladderbot/model"
)

type fakeNotifier struct {
	fired []model.Reminder
	err   error
}

func (n *fakeNotifier) Notify(reminder model.Reminder) error {
	n.fired = append(n.fired, reminder)
	return n.err
}

func newTestService(t *testing.T, limit int, notifier model.ReminderNotifier) (*reminderService, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "reminders.json")
	service, err := NewReminderService(path, limit, notifier)
	if err != nil {
		t.Fatalf("NewReminderService: %v", err)
	}
	return service, path
}

func testReminder(userID int64, in time.Duration, text string) model.Reminder {
	return model.Reminder{
		Time:     time.Now().UTC().Add(in),
		UserID:   userID,
		Username: "Burny",
		ChatID:   -1001234567890,
		Text:     text,
	}
}

func TestMissingFileCreatesEmptyStore(t *testing.T) {
	service, path := newTestService(t, 10, &fakeNotifier{})

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("reminder file was not created: %v", err)
	}
	if got := service.RemindersOfUser(1); len(got) != 0 {
		t.Fatalf("expected empty store, got %d reminders", len(got))
	}
}

func TestCorruptFileFailsToLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reminders.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := NewReminderService(path, 10, &fakeNotifier{})
	if err == nil {
		t.Fatal("expected error for corrupt file")
	}
}

func TestRemindersOfUserOrderedByFireTime(t *testing.T) {
	service, _ := newTestService(t, 10, &fakeNotifier{})

	for _, r := range []model.Reminder{
		testReminder(1, 3*time.Hour, "third"),
		testReminder(1, 1*time.Hour, "first"),
		testReminder(2, 30*time.Minute, "other user"),
		testReminder(1, 2*time.Hour, "second"),
	} {
		if err := service.AddReminder(r); err != nil {
			t.Fatalf("AddReminder(%q): %v", r.Text, err)
		}
	}

	got := service.RemindersOfUser(1)
	want := []string{"first", "second", "third"}
	if len(got) != len(want) {
		t.Fatalf("expected %d reminders, got %d", len(want), len(got))
	}
	for i, text := range want {
		if got[i].Text != text {
			t.Errorf("reminder %d: expected %q, got %q", i+1, text, got[i].Text)
		}
	}
}

func TestAddReminderInPast(t *testing.T) {
	service, _ := newTestService(t, 10, &fakeNotifier{})

	err := service.AddReminder(testReminder(1, -time.Minute, "too late"))
	if !errors.Is(err, model.ErrReminderInPast) {
		t.Fatalf("expected ErrReminderInPast, got %v", err)
	}
	if got := service.RemindersOfUser(1); len(got) != 0 {
		t.Fatalf("past reminder was stored")
	}
}

func TestReminderLimit(t *testing.T) {
	service, _ := newTestService(t, 2, &fakeNotifier{})

	for i := 0; i < 2; i++ {
		if err := service.AddReminder(testReminder(1, time.Hour, "ok")); err != nil {
			t.Fatalf("AddReminder: %v", err)
		}
	}

	err := service.AddReminder(testReminder(1, time.Hour, "one too many"))
	var limitErr *model.ReminderLimitError
	if !errors.As(err, &limitErr) {
		t.Fatalf("expected ReminderLimitError, got %v", err)
	}
	if limitErr.Count != 2 || limitErr.Limit != 2 {
		t.Errorf("expected count 2 and limit 2, got %d/%d", limitErr.Count, limitErr.Limit)
	}

	// Other users are not affected by a full user.
	if err := service.AddReminder(testReminder(2, time.Hour, "fine")); err != nil {
		t.Errorf("AddReminder for other user: %v", err)
	}
}

func TestTickFiresDueRemindersInOrder(t *testing.T) {
	notifier := &fakeNotifier{}
	service, _ := newTestService(t, 10, notifier)

	now := time.Now().UTC()
	for _, r := range []model.Reminder{
		testReminder(1, 2*time.Second, "second"),
		testReminder(1, 1*time.Second, "first"),
		testReminder(1, time.Hour, "future"),
	} {
		if err := service.AddReminder(r); err != nil {
			t.Fatalf("AddReminder(%q): %v", r.Text, err)
		}
	}

	service.tick(now.Add(5 * time.Second))

	if len(notifier.fired) != 2 {
		t.Fatalf("expected 2 fired reminders, got %d", len(notifier.fired))
	}
	if notifier.fired[0].Text != "first" || notifier.fired[1].Text != "second" {
		t.Errorf("reminders fired out of order: %q, %q", notifier.fired[0].Text, notifier.fired[1].Text)
	}

	got := service.RemindersOfUser(1)
	if len(got) != 1 || got[0].Text != "future" {
		t.Fatalf("expected only the future reminder to remain, got %v", got)
	}
}

func TestTickConsumesReminderOnNotifyFailure(t *testing.T) {
	notifier := &fakeNotifier{err: errors.New("chat not found")}
	service, _ := newTestService(t, 10, notifier)

	if err := service.AddReminder(testReminder(1, time.Second, "orphan")); err != nil {
		t.Fatalf("AddReminder: %v", err)
	}

	service.tick(time.Now().UTC().Add(time.Minute))

	if len(notifier.fired) != 1 {
		t.Fatalf("expected 1 delivery attempt, got %d", len(notifier.fired))
	}
	if got := service.RemindersOfUser(1); len(got) != 0 {
		t.Fatal("undeliverable reminder was kept")
	}
}

func TestDeleteReminderOfUser(t *testing.T) {
	service, _ := newTestService(t, 10, &fakeNotifier{})

	for _, r := range []model.Reminder{
		testReminder(1, 1*time.Hour, "first"),
		testReminder(1, 2*time.Hour, "second"),
		testReminder(1, 3*time.Hour, "third"),
	} {
		if err := service.AddReminder(r); err != nil {
			t.Fatalf("AddReminder(%q): %v", r.Text, err)
		}
	}

	removed, err := service.DeleteReminderOfUser(1, 2)
	if err != nil {
		t.Fatalf("DeleteReminderOfUser: %v", err)
	}
	if removed.Text != "second" {
		t.Errorf("expected to remove %q, removed %q", "second", removed.Text)
	}

	got := service.RemindersOfUser(1)
	if len(got) != 2 || got[0].Text != "first" || got[1].Text != "third" {
		t.Fatalf("unexpected reminders after delete: %v", got)
	}

	_, err = service.DeleteReminderOfUser(1, 3)
	var ordinalErr *model.OrdinalError
	if !errors.As(err, &ordinalErr) {
		t.Fatalf("expected OrdinalError, got %v", err)
	}
	if ordinalErr.Count != 2 {
		t.Errorf("expected count 2 in OrdinalError, got %d", ordinalErr.Count)
	}

	_, err = service.DeleteReminderOfUser(1, 0)
	if !errors.As(err, &ordinalErr) {
		t.Fatalf("expected OrdinalError for ordinal 0, got %v", err)
	}
}

func TestPersistenceRoundTrip(t *testing.T) {
	notifier := &fakeNotifier{}
	service, path := newTestService(t, 10, notifier)

	want := model.Reminder{
		Time:      time.Now().UTC().Add(time.Hour).Truncate(time.Microsecond),
		UserID:    42,
		Username:  "Burny",
		ChatID:    -1001234567890,
		ThreadID:  7,
		MessageID: 1337,
		Text:      "multi\nline\nnote",
	}
	if err := service.AddReminder(want); err != nil {
		t.Fatalf("AddReminder: %v", err)
	}

	reloaded, err := NewReminderService(path, 10, notifier)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}

	got := reloaded.RemindersOfUser(42)
	if len(got) != 1 {
		t.Fatalf("expected 1 reminder after reload, got %d", len(got))
	}
	if !got[0].Time.Equal(want.Time) {
		t.Errorf("time changed across reload: want %v, got %v", want.Time, got[0].Time)
	}
	if got[0] != (model.Reminder{
		Time:      got[0].Time,
		UserID:    want.UserID,
		Username:  want.Username,
		ChatID:    want.ChatID,
		ThreadID:  want.ThreadID,
		MessageID: want.MessageID,
		Text:      want.Text,
	}) {
		t.Errorf("reminder changed across reload: want %+v, got %+v", want, got[0])
	}
}

func TestSaveIsStableAcrossReload(t *testing.T) {
	service, path := newTestService(t, 10, &fakeNotifier{})

	for i := 0; i < 3; i++ {
		if err := service.AddReminder(testReminder(int64(i), time.Duration(3-i)*time.Hour, "stable")); err != nil {
			t.Fatalf("AddReminder: %v", err)
		}
	}

	before, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	reloaded, err := NewReminderService(path, 10, &fakeNotifier{})
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	reloaded.mu.Lock()
	err = reloaded.save()
	reloaded.mu.Unlock()
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	after, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(before) != string(after) {
		t.Fatalf("file changed after reload+save:\nbefore:\n%s\nafter:\n%s", before, after)
	}
}
