package notification

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Mohmmed-Zaid/jobluu-client/internal/model"
)

// ---- fake notification client ----

type fakeAPI struct {
	mu sync.Mutex

	AllRet []model.Notification
	AllErr error

	CountRet int
	CountErr error

	ByActionRet []model.Notification
	ByActionErr error

	SendRet *model.Notification
	SendErr error

	MarkReadErr    error
	MarkAllReadErr error
	DeleteErr      error
	DeleteAllErr   error

	AllCalls   int
	CountCalls int

	// when set, All blocks until released, to orchestrate poll races
	AllGate chan struct{}
}

func (f *fakeAPI) All(ctx context.Context, userID int) ([]model.Notification, error) {
	f.mu.Lock()
	f.AllCalls++
	gate := f.AllGate
	ret := append([]model.Notification(nil), f.AllRet...)
	err := f.AllErr
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}
	return ret, err
}

func (f *fakeAPI) Count(ctx context.Context, userID int) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.CountCalls++
	return f.CountRet, f.CountErr
}

func (f *fakeAPI) ByAction(ctx context.Context, userID int, action string) ([]model.Notification, error) {
	return f.ByActionRet, f.ByActionErr
}

func (f *fakeAPI) Send(ctx context.Context, create model.NotificationCreate) (*model.Notification, error) {
	return f.SendRet, f.SendErr
}

func (f *fakeAPI) MarkRead(ctx context.Context, id int) error      { return f.MarkReadErr }
func (f *fakeAPI) MarkAllRead(ctx context.Context, id int) error   { return f.MarkAllReadErr }
func (f *fakeAPI) Delete(ctx context.Context, id int) error        { return f.DeleteErr }
func (f *fakeAPI) DeleteAll(ctx context.Context, userID int) error { return f.DeleteAllErr }

type recordingAlerter struct {
	mu    sync.Mutex
	fired []model.Notification
}

func (a *recordingAlerter) Alert(n model.Notification) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.fired = append(a.fired, n)
}

// ---- helpers ----

func sampleList() []model.Notification {
	base := time.Date(2025, time.July, 10, 8, 0, 0, 0, time.UTC)
	return []model.Notification{
		{ID: 1, UserID: 4, Message: "application viewed", Action: "APPLICATION", Status: model.NotificationUnread, Timestamp: base.Add(2 * time.Hour)},
		{ID: 2, UserID: 4, Message: "new job match", Action: "JOB_MATCH", Status: model.NotificationUnread, Timestamp: base.Add(time.Hour)},
		{ID: 3, UserID: 4, Message: "welcome", Action: "ACCOUNT", Status: model.NotificationRead, Timestamp: base},
	}
}

// requireInvariant asserts the unread counter matches the local records
func requireInvariant(t *testing.T, s *Store) {
	t.Helper()
	unread := 0
	for _, n := range s.Notifications() {
		if n.Unread() {
			unread++
		}
	}
	require.Equal(t, unread, s.UnreadCount())
	require.GreaterOrEqual(t, s.UnreadCount(), 0)
}

// ---- TESTS ----

func TestFetchAllMissingUserIsSilentNoop(t *testing.T) {
	api := &fakeAPI{}
	s := NewStore(api, zap.NewNop())

	s.FetchAll(context.Background(), 0)
	s.FetchAll(context.Background(), -3)

	require.Zero(t, api.AllCalls)
	require.Zero(t, api.CountCalls)
	require.Empty(t, s.LastError())
}

func TestFetchAllPopulatesMirror(t *testing.T) {
	api := &fakeAPI{AllRet: sampleList(), CountRet: 2}
	s := NewStore(api, zap.NewNop())

	s.FetchAll(context.Background(), 4)

	require.Len(t, s.Notifications(), 3)
	require.Equal(t, 2, s.UnreadCount())
	requireInvariant(t, s)
}

func TestCounterInvariantAcrossMutationSequence(t *testing.T) {
	api := &fakeAPI{AllRet: sampleList(), CountRet: 2}
	s := NewStore(api, zap.NewNop())
	ctx := context.Background()

	s.FetchAll(ctx, 4)
	requireInvariant(t, s)

	s.MarkAsRead(ctx, 1)
	requireInvariant(t, s)
	require.Equal(t, 1, s.UnreadCount())

	// marking the same record again must not go negative
	s.MarkAsRead(ctx, 1)
	requireInvariant(t, s)
	require.Equal(t, 1, s.UnreadCount())

	s.Delete(ctx, 2) // unread victim
	requireInvariant(t, s)
	require.Equal(t, 0, s.UnreadCount())

	s.MarkAllAsRead(ctx, 4)
	requireInvariant(t, s)

	s.Add(model.Notification{ID: 9, UserID: 4, Status: model.NotificationUnread})
	requireInvariant(t, s)
	require.Equal(t, 1, s.UnreadCount())

	s.DeleteAll(ctx, 4)
	requireInvariant(t, s)
	require.Equal(t, 0, s.UnreadCount())
	require.Empty(t, s.Notifications())
}

func TestMarkAsReadBackendFailureLeavesStateUntouched(t *testing.T) {
	api := &fakeAPI{AllRet: sampleList(), CountRet: 2}
	s := NewStore(api, zap.NewNop())
	ctx := context.Background()

	s.FetchAll(ctx, 4)
	api.MarkReadErr = errors.New("boom")

	s.MarkAsRead(ctx, 1)

	require.Equal(t, 2, s.UnreadCount())
	require.Equal(t, model.NotificationUnread, s.Notifications()[0].Status)
	require.NotEmpty(t, s.LastError())
	requireInvariant(t, s)
}

func TestAddUnreadFiresAlert(t *testing.T) {
	alerter := &recordingAlerter{}
	s := NewStore(&fakeAPI{}, zap.NewNop(), WithAlerter(alerter))

	s.Add(model.Notification{ID: 1, Status: model.NotificationUnread, Message: "hi"})
	s.Add(model.Notification{ID: 2, Status: model.NotificationRead, Message: "old"})

	require.Len(t, alerter.fired, 1)
	require.Equal(t, 1, alerter.fired[0].ID)
	require.Equal(t, 1, s.UnreadCount())

	// newest first
	require.Equal(t, 2, s.Notifications()[0].ID)
}

func TestSendToSelfMirrorsLocally(t *testing.T) {
	sent := model.Notification{ID: 11, UserID: 4, Status: model.NotificationUnread, Message: "you did it"}
	api := &fakeAPI{SendRet: &sent}
	s := NewStore(api, zap.NewNop(), WithCurrentUser(func() int { return 4 }))

	err := s.Send(context.Background(), model.NotificationCreate{UserID: 4, Message: "you did it", Action: "ACCOUNT"})
	require.NoError(t, err)

	require.Len(t, s.Notifications(), 1)
	require.Equal(t, 1, s.UnreadCount())
}

func TestSendToOtherUserDoesNotMirror(t *testing.T) {
	sent := model.Notification{ID: 12, UserID: 99, Status: model.NotificationUnread}
	api := &fakeAPI{SendRet: &sent}
	s := NewStore(api, zap.NewNop(), WithCurrentUser(func() int { return 4 }))

	require.NoError(t, s.Send(context.Background(), model.NotificationCreate{UserID: 99, Message: "m", Action: "A"}))
	require.Empty(t, s.Notifications())
}

func TestStalePollSnapshotDoesNotClobberLocalMutation(t *testing.T) {
	api := &fakeAPI{AllRet: sampleList(), CountRet: 2}
	s := NewStore(api, zap.NewNop())
	ctx := context.Background()

	s.FetchAll(ctx, 4)

	// hold the next poll response in flight
	gate := make(chan struct{})
	api.mu.Lock()
	api.AllGate = gate
	api.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.FetchAll(ctx, 4)
		close(done)
	}()

	// a local mutation lands while the poll response is in flight
	require.Eventually(t, func() bool {
		api.mu.Lock()
		defer api.mu.Unlock()
		return api.AllCalls >= 2
	}, time.Second, 5*time.Millisecond)
	s.MarkAsRead(ctx, 1)

	close(gate)
	<-done

	// the stale snapshot (which still says id 1 is unread) was discarded
	require.Equal(t, 1, s.UnreadCount())
	for _, n := range s.Notifications() {
		if n.ID == 1 {
			require.Equal(t, model.NotificationRead, n.Status)
		}
	}
	requireInvariant(t, s)
}

func TestPollerStopsOnContextCancel(t *testing.T) {
	api := &fakeAPI{AllRet: sampleList(), CountRet: 2}
	s := NewStore(api, zap.NewNop())
	p := NewPoller(s, 10*time.Millisecond, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(ctx, func() int { return 4 })
		close(done)
	}()

	require.Eventually(t, func() bool {
		api.mu.Lock()
		defer api.mu.Unlock()
		return api.AllCalls >= 2
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("poller did not stop")
	}
}
