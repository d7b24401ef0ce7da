package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"messagely/internal/model"
)

// MemoryStore keeps users and messages in process memory.
// All writes hold the same lock, so username uniqueness holds under concurrency.
type MemoryStore struct {
	mu       sync.RWMutex
	users    map[string]model.User
	messages map[int64]model.Message
	nextID   int64
}

// NewMemoryStore creates an empty MemoryStore
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:    make(map[string]model.User),
		messages: make(map[int64]model.Message),
	}
}

// Users returns the store as a UserRepository
func (s *MemoryStore) Users() UserRepository {
	return &memoryUsers{s}
}

// Messages returns the store as a MessageRepository
func (s *MemoryStore) Messages() MessageRepository {
	return &memoryMessages{s}
}

// Ping is always healthy
func (s *MemoryStore) Ping(ctx context.Context) error {
	return nil
}

func (s *MemoryStore) profile(username string) model.UserProfile {
	u := s.users[username]
	return u.Profile()
}

type memoryUsers struct {
	s *MemoryStore
}

func (r *memoryUsers) Create(ctx context.Context, user *model.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.users[user.Username]; exists {
		return ErrUsernameTaken
	}
	r.s.users[user.Username] = *user
	return nil
}

func (r *memoryUsers) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[username]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *memoryUsers) UpdateLastLogin(ctx context.Context, username string, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[username]
	if !ok {
		return ErrUnknownUser
	}
	u.LastLoginAt = &at
	r.s.users[username] = u
	return nil
}

func (r *memoryUsers) FindAll(ctx context.Context) ([]model.UserSummary, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	users := make([]model.UserSummary, 0, len(r.s.users))
	for _, u := range r.s.users {
		users = append(users, u.Summary())
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Username < users[j].Username })
	return users, nil
}

type memoryMessages struct {
	s *MemoryStore
}

func (r *memoryMessages) Create(ctx context.Context, msg *model.Message) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[msg.FromUsername]; !ok {
		return ErrUnknownUser
	}
	if _, ok := r.s.users[msg.ToUsername]; !ok {
		return ErrUnknownUser
	}
	r.s.nextID++
	msg.ID = r.s.nextID
	r.s.messages[msg.ID] = *msg
	return nil
}

func (r *memoryMessages) FindByID(ctx context.Context, id int64) (*model.MessageDetail, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	m, ok := r.s.messages[id]
	if !ok {
		return nil, nil
	}
	return &model.MessageDetail{
		ID:       m.ID,
		Body:     m.Body,
		SentAt:   m.SentAt,
		ReadAt:   m.ReadAt,
		FromUser: r.s.profile(m.FromUsername),
		ToUser:   r.s.profile(m.ToUsername),
	}, nil
}

func (r *memoryMessages) MarkRead(ctx context.Context, id int64, at time.Time) (*model.ReadReceipt, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	m, ok := r.s.messages[id]
	if !ok {
		return nil, nil
	}
	if !m.IsRead() {
		m.ReadAt = &at
		r.s.messages[id] = m
	}
	return &model.ReadReceipt{ID: m.ID, ReadAt: *m.ReadAt}, nil
}

// sorted returns the messages matching keep ordered by sent_at, then id
func (r *memoryMessages) sorted(keep func(model.Message) bool) []model.Message {
	var out []model.Message
	for _, m := range r.s.messages {
		if keep(m) {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].SentAt.Equal(out[j].SentAt) {
			return out[i].SentAt.Before(out[j].SentAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (r *memoryMessages) FindFrom(ctx context.Context, username string) ([]model.SentMessage, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	messages := []model.SentMessage{}
	for _, m := range r.sorted(func(m model.Message) bool { return m.FromUsername == username }) {
		messages = append(messages, model.SentMessage{
			ID:     m.ID,
			ToUser: r.s.profile(m.ToUsername),
			Body:   m.Body,
			SentAt: m.SentAt,
			ReadAt: m.ReadAt,
		})
	}
	return messages, nil
}

func (r *memoryMessages) FindTo(ctx context.Context, username string) ([]model.ReceivedMessage, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	messages := []model.ReceivedMessage{}
	for _, m := range r.sorted(func(m model.Message) bool { return m.ToUsername == username }) {
		messages = append(messages, model.ReceivedMessage{
			ID:       m.ID,
			FromUser: r.s.profile(m.FromUsername),
			Body:     m.Body,
			SentAt:   m.SentAt,
			ReadAt:   m.ReadAt,
		})
	}
	return messages, nil
}
