package mockapi

import (
	"sort"
	"sync"
	"time"

	"github.com/Mohmmed-Zaid/jobluu-client/internal/model"
)

// account is a stored user with its password hash
type account struct {
	model.User
	PasswordHash string
}

// state holds all mock backend data in memory. The real backend is an
// external collaborator; this double only needs to honor the documented
// endpoint contracts.
type state struct {
	mu sync.Mutex

	users    map[int]*account
	byEmail  map[string]int
	profiles map[int]*profileRecord
	jobs     map[int]*model.Job
	notices  map[int]*model.Notification

	refreshTokens map[string]int // refresh token -> user id
	otps          map[string]string

	nextUserID   int
	nextJobID    int
	nextNoticeID int
}

func newState() *state {
	return &state{
		users:         make(map[int]*account),
		byEmail:       make(map[string]int),
		profiles:      make(map[int]*profileRecord),
		jobs:          make(map[int]*model.Job),
		notices:       make(map[int]*model.Notification),
		refreshTokens: make(map[string]int),
		otps:          make(map[string]string),
		nextUserID:    1,
		nextJobID:     1,
		nextNoticeID:  1,
	}
}

func (s *state) createUser(name, email, accountType, passwordHash string) *account {
	s.mu.Lock()
	defer s.mu.Unlock()

	a := &account{
		User: model.User{
			ID:          s.nextUserID,
			Name:        name,
			Email:       email,
			AccountType: accountType,
		},
		PasswordHash: passwordHash,
	}
	s.nextUserID++
	s.users[a.ID] = a
	s.byEmail[email] = a.ID
	return a
}

func (s *state) userByEmail(email string) (*account, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.byEmail[email]
	if !ok {
		return nil, false
	}
	return s.users[id], true
}

func (s *state) userByID(id int) (*account, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.users[id]
	return a, ok
}

func (s *state) addJob(create model.JobCreate) *model.Job {
	s.mu.Lock()
	defer s.mu.Unlock()

	job := &model.Job{
		ID:             s.nextJobID,
		JobTitle:       create.JobTitle,
		Company:        create.Company,
		CompanyLogo:    create.CompanyLogo,
		Location:       create.Location,
		JobType:        create.JobType,
		Experience:     create.Experience,
		PackageOffered: create.PackageOffered,
		Description:    create.Description,
		SkillsRequired: create.SkillsRequired,
		PostTime:       time.Now().UTC(),
		JobStatus:      model.JobActive,
	}
	s.nextJobID++
	s.jobs[job.ID] = job
	return job
}

func (s *state) allJobs() []model.Job {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Job, 0, len(s.jobs))
	for _, job := range s.jobs {
		out = append(out, *job)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *state) addNotification(create model.NotificationCreate) *model.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := &model.Notification{
		ID:        s.nextNoticeID,
		UserID:    create.UserID,
		Message:   create.Message,
		Action:    create.Action,
		Route:     create.Route,
		Title:     create.Title,
		Status:    model.NotificationUnread,
		Timestamp: time.Now().UTC(),
	}
	s.nextNoticeID++
	s.notices[n.ID] = n
	return n
}

// notificationsFor returns a user's notifications newest first, optionally
// restricted to unread or to one action category
func (s *state) notificationsFor(userID int, unreadOnly bool, action string) []model.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Notification, 0)
	for _, n := range s.notices {
		if n.UserID != userID {
			continue
		}
		if unreadOnly && n.Status != model.NotificationUnread {
			continue
		}
		if action != "" && n.Action != action {
			continue
		}
		out = append(out, *n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	return out
}
