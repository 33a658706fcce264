package mockapi

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Mohmmed-Zaid/jobluu-client/internal/client"
	"github.com/Mohmmed-Zaid/jobluu-client/internal/config"
	"github.com/Mohmmed-Zaid/jobluu-client/internal/jobs"
	"github.com/Mohmmed-Zaid/jobluu-client/internal/model"
	"github.com/Mohmmed-Zaid/jobluu-client/internal/notification"
	"github.com/Mohmmed-Zaid/jobluu-client/internal/profile"
	"github.com/Mohmmed-Zaid/jobluu-client/internal/session"
	"github.com/Mohmmed-Zaid/jobluu-client/internal/storage"
)

const testSecret = "roundtrip-secret"

// harness wires the real client and stores against an in-process mock backend
type harness struct {
	srv           *httptest.Server
	cfg           config.APIConfig
	store         storage.Store
	api           *client.Client
	auth          *client.AuthClient
	jobs          *client.JobClient
	profiles      *client.ProfileClient
	notifications *client.NotificationClient
	session       *session.Store
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	logger := zap.NewNop()

	srv := httptest.NewServer(NewServer(testSecret, logger).Router())
	t.Cleanup(srv.Close)

	cfg := config.APIConfig{
		BaseURL:        srv.URL,
		RequestTimeout: 5 * time.Second,
		RetryMax:       1,
		RetryInterval:  10 * time.Millisecond,
	}

	api := client.New(cfg, logger)
	h := &harness{
		srv:           srv,
		cfg:           cfg,
		store:         storage.NewMemoryStore(),
		api:           api,
		auth:          client.NewAuthClient(api, logger),
		jobs:          client.NewJobClient(api, logger),
		profiles:      client.NewProfileClient(api, logger),
		notifications: client.NewNotificationClient(api, logger),
	}
	h.session = session.NewStore(h.auth, h.store, logger)
	api.SetTokenProvider(h.session.Token)
	api.SetAuthFailureHandler(h.session.HandleAuthFailure)
	return h
}

func (h *harness) signIn(t *testing.T, accountType string) model.User {
	t.Helper()
	ctx := context.Background()

	reg := model.Registration{
		Name:        "Asha Rao",
		Email:       "asha@example.com",
		Password:    "correct-horse-battery",
		AccountType: accountType,
	}
	require.NoError(t, h.session.Register(ctx, reg))
	require.NoError(t, h.session.Login(ctx, model.Credentials{
		Email:    reg.Email,
		Password: reg.Password,
	}))

	state := h.session.Snapshot()
	require.True(t, state.Authenticated)
	require.NotNil(t, state.User)
	return *state.User
}

func TestJobPostRoundTrip(t *testing.T) {
	h := newHarness(t)
	h.signIn(t, model.AccountTypeEmployer)
	ctx := context.Background()

	jobStore := jobs.NewStore(jobs.NewAPISource(h.jobs), h.jobs, zap.NewNop())

	create := model.JobCreate{
		JobTitle:       "Platform Engineer",
		Company:        "Stackline",
		Location:       "Remote",
		JobType:        "Full-time",
		Experience:     "3-5 years",
		PackageOffered: 2400000,
		Description:    "Own the deployment pipeline end to end.",
		SkillsRequired: []string{"Go", "Kubernetes"},
	}
	posted, err := jobStore.Post(ctx, create)
	require.NoError(t, err)
	require.NotZero(t, posted.ID)

	// A fresh store must see the job through the backend, not the cache
	fresh := jobs.NewStore(jobs.NewAPISource(h.jobs), h.jobs, zap.NewNop())
	all, err := fresh.All(ctx)
	require.NoError(t, err)

	var found *model.Job
	for i := range all {
		if all[i].ID == posted.ID {
			found = &all[i]
		}
	}
	require.NotNil(t, found)
	require.Equal(t, create.JobTitle, found.JobTitle)
	require.Equal(t, create.Location, found.Location)
	require.Equal(t, create.SkillsRequired, found.SkillsRequired)
	require.Equal(t, model.JobActive, found.JobStatus)

	results, err := fresh.Search(ctx, jobs.Criteria{Query: "platform"}, jobs.SortMostRecent)
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, posted.ID, results[0].ID)
}

func TestSessionRestoreAfterRestart(t *testing.T) {
	h := newHarness(t)
	user := h.signIn(t, model.AccountTypeApplicant)

	// A second client sharing the durable store stands in for a new process
	logger := zap.NewNop()
	api := client.New(h.cfg, logger)
	sess := session.NewStore(client.NewAuthClient(api, logger), h.store, logger)
	api.SetTokenProvider(sess.Token)
	api.SetAuthFailureHandler(sess.HandleAuthFailure)

	sess.AutoLogin(context.Background())

	state := sess.Snapshot()
	require.True(t, state.Initialized)
	require.True(t, state.Authenticated)
	require.Equal(t, user.ID, state.User.ID)
	require.Equal(t, user.Email, state.User.Email)
}

func TestExpiredTokenRefreshedAgainstBackend(t *testing.T) {
	h := newHarness(t)
	user := h.signIn(t, model.AccountTypeApplicant)

	// Overwrite the stored token with one that is already expired, keeping
	// the refresh token intact
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  user.ID,
		"type": "access",
		"exp":  time.Now().Add(-time.Hour).Unix(),
		"iat":  time.Now().Add(-2 * time.Hour).Unix(),
	})
	signed, err := expired.SignedString([]byte(testSecret))
	require.NoError(t, err)
	require.NoError(t, h.store.SetToken(signed))

	logger := zap.NewNop()
	api := client.New(h.cfg, logger)
	sess := session.NewStore(client.NewAuthClient(api, logger), h.store, logger)
	api.SetTokenProvider(sess.Token)

	sess.AutoLogin(context.Background())

	state := sess.Snapshot()
	require.True(t, state.Authenticated)
	require.Equal(t, user.ID, state.User.ID)
	require.NotEqual(t, signed, state.Token)
	require.Equal(t, state.Token, h.store.Token())
}

func TestProfileAutosaveRoundTrip(t *testing.T) {
	h := newHarness(t)
	user := h.signIn(t, model.AccountTypeApplicant)
	ctx := context.Background()

	pstore := profile.NewStore(h.profiles, 20*time.Millisecond, zap.NewNop())
	require.NoError(t, pstore.Load(ctx, user.ID))

	// No profile exists yet, so the first autosave has to create one
	pstore.SetAbout("Backend engineer in Pune")
	pstore.SetSkills([]string{"Go", "Postgres"})

	require.Eventually(t, func() bool {
		p, err := h.profiles.Get(ctx, user.ID)
		return err == nil && p.About == "Backend engineer in Pune"
	}, 2*time.Second, 20*time.Millisecond)

	// A later edit updates the now-existing profile
	pstore.AddExperience(model.Experience{
		Title:   "SDE II",
		Company: "Stackline",
	})
	require.Eventually(t, func() bool {
		p, err := h.profiles.Get(ctx, user.ID)
		return err == nil && len(p.Experiences) == 1
	}, 2*time.Second, 20*time.Millisecond)

	avatar := filepath.Join(t.TempDir(), "avatar.png")
	require.NoError(t, os.WriteFile(avatar, []byte("not-a-real-png"), 0600))
	require.NoError(t, pstore.UploadAvatar(ctx, avatar))

	p, err := h.profiles.Get(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, []string{"Go", "Postgres"}, p.Skills)
	require.True(t, strings.HasSuffix(p.AvatarURL, ".png"))

	// The wire format keeps the backend's field spelling
	req, err := http.NewRequest(http.MethodGet,
		h.srv.URL+"/api/profiles/get/"+strconv.Itoa(user.ID), nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+h.session.Token())
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), `"exprience":`)
}

func TestNotificationRoundTrip(t *testing.T) {
	h := newHarness(t)
	user := h.signIn(t, model.AccountTypeApplicant)
	ctx := context.Background()

	nstore := notification.NewStore(h.notifications, zap.NewNop(),
		notification.WithCurrentUser(func() int { return user.ID }))

	require.NoError(t, nstore.Send(ctx, model.NotificationCreate{
		UserID:  user.ID,
		Message: "Your application was viewed",
		Action:  "APPLICATION",
		Route:   "/jobs/1",
		Title:   "Application update",
	}))

	// Sent to ourselves, so it mirrors locally without waiting for a poll
	require.Len(t, nstore.Notifications(), 1)
	require.Equal(t, 1, nstore.UnreadCount())

	// A poll against the backend agrees with the mirror
	nstore.FetchAll(ctx, user.ID)
	list := nstore.Notifications()
	require.Len(t, list, 1)
	require.Equal(t, 1, nstore.UnreadCount())
	require.Equal(t, "Your application was viewed", list[0].Message)

	nstore.MarkAsRead(ctx, list[0].ID)
	require.Equal(t, 0, nstore.UnreadCount())

	nstore.FetchAll(ctx, user.ID)
	require.Equal(t, 0, nstore.UnreadCount())

	nstore.DeleteAll(ctx, user.ID)
	require.Empty(t, nstore.Notifications())

	count, err := h.notifications.Count(ctx, user.ID)
	require.NoError(t, err)
	require.Zero(t, count)
}
