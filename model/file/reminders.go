package file

import (
	"container/heap"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/Brawl345/ladderbot/logger"
	"github.com/Brawl345/ladderbot/model"
	"github.com/robfig/cron/v3"
)

const schemaVersion = 1

type (
	// reminderService keeps all pending reminders in a min-heap ordered by
	// fire time and mirrors every mutation into a JSON file so reminders
	// survive restarts.
	reminderService struct {
		path     string
		limit    int
		notifier model.ReminderNotifier
		log      *logger.Logger

		mu    sync.Mutex
		items reminderHeap
		seq   uint64

		cron *cron.Cron
	}

	reminderItem struct {
		model.Reminder
		seq uint64 // insertion order, breaks ties between equal fire times
	}

	reminderHeap []*reminderItem

	storedReminder struct {
		DueTimestamp float64 `json:"due_timestamp"`
		UserID       int64   `json:"user_id"`
		UserName     string  `json:"user_name"`
		ChatID       int64   `json:"chat_id"`
		ThreadID     int64   `json:"thread_id"`
		MessageID    int64   `json:"message_id"`
		Text         string  `json:"text"`
	}

	storeFile struct {
		SchemaVersion int              `json:"schema_version"`
		Reminders     []storedReminder `json:"reminders"`
	}
)

func (h reminderHeap) Len() int { return len(h) }

func (h reminderHeap) Less(i, j int) bool {
	if h[i].Time.Equal(h[j].Time) {
		return h[i].seq < h[j].seq
	}
	return h[i].Time.Before(h[j].Time)
}

func (h reminderHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *reminderHeap) Push(x any) { *h = append(*h, x.(*reminderItem)) }

func (h *reminderHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}

// NewReminderService loads the reminder file at path, creating it if it does
// not exist yet. A file that exists but cannot be parsed is an error; it is
// better to refuse startup than to silently wipe pending reminders.
func NewReminderService(path string, limit int, notifier model.ReminderNotifier) (*reminderService, error) {
	service := &reminderService{
		path:     path,
		limit:    limit,
		notifier: notifier,
		log:      logger.New("reminderService"),
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return service, service.save()
	}
	if err != nil {
		return nil, err
	}

	var stored storeFile
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, fmt.Errorf("corrupt reminder file %s: %w", path, err)
	}

	for _, s := range stored.Reminders {
		service.seq++
		service.items = append(service.items, &reminderItem{
			Reminder: model.Reminder{
				Time:      time.UnixMicro(int64(math.Round(s.DueTimestamp * 1e6))).UTC(),
				UserID:    s.UserID,
				Username:  s.UserName,
				ChatID:    s.ChatID,
				ThreadID:  s.ThreadID,
				MessageID: s.MessageID,
				Text:      s.Text,
			},
			seq: service.seq,
		})
	}
	heap.Init(&service.items)

	return service, nil
}

// Start begins checking for due reminders once per second. Ticks never
// overlap; a slow delivery just delays the next check.
func (service *reminderService) Start() {
	if service.cron != nil {
		return
	}
	service.cron = cron.New(
		cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
	)
	_, err := service.cron.AddFunc("@every 1s", func() {
		service.tick(time.Now().UTC())
	})
	if err != nil {
		// The hardcoded schedule is valid, this cannot happen.
		service.log.Err(err).Msg("failed to schedule reminder tick")
		return
	}
	service.cron.Start()
}

func (service *reminderService) Stop() {
	if service.cron == nil {
		return
	}
	ctx := service.cron.Stop()
	<-ctx.Done()
	service.cron = nil
}

// tick fires every reminder that is due at now, in ascending fire-time
// order. The file is rewritten once per tick and only when something fired.
func (service *reminderService) tick(now time.Time) {
	service.mu.Lock()
	defer service.mu.Unlock()

	fired := 0
	for service.items.Len() > 0 && !service.items[0].Time.After(now) {
		item := heap.Pop(&service.items).(*reminderItem)
		fired++
		if err := service.notifier.Notify(item.Reminder); err != nil {
			service.log.Err(err).
				Int64("user_id", item.UserID).
				Int64("chat_id", item.ChatID).
				Msg("failed to deliver reminder")
		}
	}

	if fired == 0 {
		return
	}

	if err := service.save(); err != nil {
		service.log.Err(err).Msg("failed to save reminders after tick")
	}
}

func (service *reminderService) AddReminder(reminder model.Reminder) error {
	service.mu.Lock()
	defer service.mu.Unlock()

	if !reminder.Time.After(time.Now().UTC()) {
		return model.ErrReminderInPast
	}

	count := 0
	for _, item := range service.items {
		if item.UserID == reminder.UserID {
			count++
		}
	}
	if count >= service.limit {
		return &model.ReminderLimitError{Count: count, Limit: service.limit}
	}

	service.seq++
	item := &reminderItem{Reminder: reminder, seq: service.seq}
	item.Time = item.Time.UTC()
	heap.Push(&service.items, item)

	if err := service.save(); err != nil {
		service.removeItem(item)
		return err
	}

	return nil
}

// RemindersOfUser returns the user's pending reminders ordered by fire time.
// The ordering matches the 1-based ordinals DeleteReminderOfUser accepts.
func (service *reminderService) RemindersOfUser(userID int64) []model.Reminder {
	service.mu.Lock()
	defer service.mu.Unlock()

	items := service.itemsOfUser(userID)
	reminders := make([]model.Reminder, len(items))
	for i, item := range items {
		reminders[i] = item.Reminder
	}
	return reminders
}

func (service *reminderService) DeleteReminderOfUser(userID int64, ordinal int) (model.Reminder, error) {
	service.mu.Lock()
	defer service.mu.Unlock()

	items := service.itemsOfUser(userID)
	if ordinal < 1 || ordinal > len(items) {
		return model.Reminder{}, &model.OrdinalError{Count: len(items)}
	}

	item := items[ordinal-1]
	service.removeItem(item)

	if err := service.save(); err != nil {
		heap.Push(&service.items, item)
		return model.Reminder{}, err
	}

	return item.Reminder, nil
}

func (service *reminderService) itemsOfUser(userID int64) []*reminderItem {
	var items []*reminderItem
	for _, item := range service.items {
		if item.UserID == userID {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Time.Equal(items[j].Time) {
			return items[i].seq < items[j].seq
		}
		return items[i].Time.Before(items[j].Time)
	})
	return items
}

func (service *reminderService) removeItem(item *reminderItem) {
	for i, other := range service.items {
		if other == item {
			heap.Remove(&service.items, i)
			return
		}
	}
}

// save rewrites the whole file atomically. Reminders are written in fire-time
// order so the file stays stable and diffable across identical states.
func (service *reminderService) save() error {
	sorted := make([]*reminderItem, len(service.items))
	copy(sorted, service.items)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Time.Equal(sorted[j].Time) {
			return sorted[i].seq < sorted[j].seq
		}
		return sorted[i].Time.Before(sorted[j].Time)
	})

	stored := storeFile{
		SchemaVersion: schemaVersion,
		Reminders:     make([]storedReminder, len(sorted)),
	}
	for i, item := range sorted {
		stored.Reminders[i] = storedReminder{
			DueTimestamp: float64(item.Time.UnixMicro()) / 1e6,
			UserID:       item.UserID,
			UserName:     item.Username,
			ChatID:       item.ChatID,
			ThreadID:     item.ThreadID,
			MessageID:    item.MessageID,
			Text:         item.Text,
		}
	}

	data, err := json.MarshalIndent(&stored, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	tmp := service.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, service.path)
}
