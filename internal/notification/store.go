// Package notification maintains an eventually-consistent local mirror of a
// user's server-side notification list, with incremental unread-count
// bookkeeping, periodic polling, and optimistic local mutations.
package notification

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/Mohmmed-Zaid/jobluu-client/internal/model"
)

// API is the slice of the notification client the store depends on
type API interface {
	All(ctx context.Context, userID int) ([]model.Notification, error)
	Count(ctx context.Context, userID int) (int, error)
	ByAction(ctx context.Context, userID int, action string) ([]model.Notification, error)
	Send(ctx context.Context, create model.NotificationCreate) (*model.Notification, error)
	MarkRead(ctx context.Context, id int) error
	MarkAllRead(ctx context.Context, userID int) error
	Delete(ctx context.Context, id int) error
	DeleteAll(ctx context.Context, userID int) error
}

// Store mirrors the server-side notification list. Invariant: after every
// operation settles, UnreadCount equals the number of locally-held UNREAD
// records, and is never negative.
type Store struct {
	api         API
	logger      *zap.Logger
	alerter     Alerter
	currentUser func() int

	mu            sync.Mutex
	notifications []model.Notification
	unread        int
	lastError     string

	// mutations counts local writes; a fetch started before a mutation is
	// stale and must not overwrite the optimistic state it raced with
	mutations uint64
}

// Option configures a Store
type Option func(*Store)

// WithAlerter sets the alert hook fired for new unread notifications
func WithAlerter(a Alerter) Option {
	return func(s *Store) { s.alerter = a }
}

// WithCurrentUser sets the function reporting the signed-in user's id,
// used to mirror sent notifications addressed to ourselves
func WithCurrentUser(fn func() int) Option {
	return func(s *Store) { s.currentUser = fn }
}

// NewStore creates a new notification store
func NewStore(api API, logger *zap.Logger, opts ...Option) *Store {
	s := &Store{
		api:         api,
		logger:      logger,
		currentUser: func() int { return 0 },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Notifications returns a copy of the local list
func (s *Store) Notifications() []model.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Notification, len(s.notifications))
	copy(out, s.notifications)
	return out
}

// UnreadCount returns the current unread counter
func (s *Store) UnreadCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.unread
}

// LastError returns the most recent recorded failure, or ""
func (s *Store) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastError
}

// FetchAll refreshes the local mirror from the backend. A missing user id is
// a silent no-op: notifications are meaningless before authentication
// completes. The list and the unread count are fetched in parallel. A
// response that raced with a local mutation is discarded rather than
// allowed to clobber the optimistic state.
func (s *Store) FetchAll(ctx context.Context, userID int) {
	if userID <= 0 {
		return
	}

	s.mu.Lock()
	startMutations := s.mutations
	s.mu.Unlock()

	var (
		wg       sync.WaitGroup
		list     []model.Notification
		listErr  error
		count    int
		countErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		list, listErr = s.api.All(ctx, userID)
	}()
	go func() {
		defer wg.Done()
		count, countErr = s.api.Count(ctx, userID)
	}()
	wg.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()

	if listErr != nil {
		s.logger.Warn("failed to fetch notifications", zap.Int("userID", userID), zap.Error(listErr))
		s.lastError = "could not refresh notifications"
		return
	}

	if s.mutations != startMutations {
		s.logger.Debug("discarding stale notification snapshot",
			zap.Int("userID", userID),
			zap.Int("fetched", len(list)))
		return
	}

	s.notifications = list
	s.unread = countUnread(list)
	s.lastError = ""

	if countErr == nil && count != s.unread {
		s.logger.Debug("unread count drift between list and count endpoints",
			zap.Int("list", s.unread),
			zap.Int("server", count))
	}
}

// ByAction fetches the user's notifications for one action category,
// without touching the local mirror
func (s *Store) ByAction(ctx context.Context, userID int, action string) []model.Notification {
	if userID <= 0 {
		return nil
	}
	list, err := s.api.ByAction(ctx, userID, action)
	if err != nil {
		s.logger.Warn("failed to fetch notifications by action",
			zap.String("action", action), zap.Error(err))
		return nil
	}
	return list
}

// MarkAsRead marks one notification read: backend first, then the local
// record, decrementing the counter by at most one. A backend failure leaves
// local state unchanged and is recorded, not re-thrown.
func (s *Store) MarkAsRead(ctx context.Context, id int) {
	if err := s.api.MarkRead(ctx, id); err != nil {
		s.recordError("could not mark notification as read", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.mutations++
	for i := range s.notifications {
		if s.notifications[i].ID == id {
			if s.notifications[i].Unread() {
				s.notifications[i].Status = model.NotificationRead
				if s.unread > 0 {
					s.unread--
				}
			}
			break
		}
	}
}

// MarkAllAsRead bulk-sets every local record to read and zeroes the counter
func (s *Store) MarkAllAsRead(ctx context.Context, userID int) {
	if err := s.api.MarkAllRead(ctx, userID); err != nil {
		s.recordError("could not mark notifications as read", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.mutations++
	for i := range s.notifications {
		s.notifications[i].Status = model.NotificationRead
	}
	s.unread = 0
}

// Delete removes one notification; deleting an unread record decrements
// the counter
func (s *Store) Delete(ctx context.Context, id int) {
	if err := s.api.Delete(ctx, id); err != nil {
		s.recordError("could not delete notification", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.mutations++
	for i := range s.notifications {
		if s.notifications[i].ID == id {
			if s.notifications[i].Unread() && s.unread > 0 {
				s.unread--
			}
			s.notifications = append(s.notifications[:i], s.notifications[i+1:]...)
			break
		}
	}
}

// DeleteAll removes every notification and zeroes the counter
func (s *Store) DeleteAll(ctx context.Context, userID int) {
	if err := s.api.DeleteAll(ctx, userID); err != nil {
		s.recordError("could not delete notifications", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.mutations++
	s.notifications = nil
	s.unread = 0
}

// Add prepends a locally-originated notification. An unread record bumps
// the counter and fires the alert hook.
func (s *Store) Add(n model.Notification) {
	s.mu.Lock()
	s.mutations++
	s.notifications = append([]model.Notification{n}, s.notifications...)
	unread := n.Unread()
	if unread {
		s.unread++
	}
	alerter := s.alerter
	s.mu.Unlock()

	if unread && alerter != nil {
		alerter.Alert(n)
	}
}

// Send posts a new notification. When it is addressed to the signed-in
// user, the local mirror is updated immediately so the sender sees it
// without waiting for the next poll.
func (s *Store) Send(ctx context.Context, create model.NotificationCreate) error {
	sent, err := s.api.Send(ctx, create)
	if err != nil {
		s.recordError("could not send notification", err)
		return err
	}

	if sent != nil && sent.UserID == s.currentUser() {
		s.Add(*sent)
	}
	return nil
}

func (s *Store) recordError(msg string, err error) {
	s.logger.Warn(msg, zap.Error(err))
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastError = msg
}

func countUnread(list []model.Notification) int {
	n := 0
	for _, item := range list {
		if item.Unread() {
			n++
		}
	}
	return n
}
