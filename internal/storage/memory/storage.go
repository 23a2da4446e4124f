package memory

import (
	"context"
	"sync"

	"github.com/betstack/betstack/internal/model"
	"github.com/betstack/betstack/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	users           map[model.UserID]*model.User
	registeredUsers map[model.UserID]*model.RegisteredUser
	usernameIndex   map[string]model.UserID
	sessions        map[string]*model.Session
	receipts        map[string]*model.TopupReceipt
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		users:           make(map[model.UserID]*model.User),
		registeredUsers: make(map[model.UserID]*model.RegisteredUser),
		usernameIndex:   make(map[string]model.UserID),
		sessions:        make(map[string]*model.Session),
		receipts:        make(map[string]*model.TopupReceipt),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// User operations

func (s *Storage) SaveUser(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := *user
	s.users[user.ID] = &u
	return nil
}

func (s *Storage) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	u := *user
	return &u, nil
}

func (s *Storage) DeleteUser(ctx context.Context, id model.UserID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, id)
	return nil
}

// Registered user operations

func (s *Storage) SaveRegisteredUser(ctx context.Context, ru *model.RegisteredUser) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := *ru
	s.registeredUsers[ru.UserID] = &r
	s.usernameIndex[ru.Username] = ru.UserID
	return nil
}

func (s *Storage) GetRegisteredUser(ctx context.Context, userID model.UserID) (*model.RegisteredUser, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ru, ok := s.registeredUsers[userID]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	r := *ru
	return &r, nil
}

func (s *Storage) GetRegisteredUserByUsername(ctx context.Context, username string) (*model.RegisteredUser, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	userID, ok := s.usernameIndex[username]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	ru, ok := s.registeredUsers[userID]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	r := *ru
	return &r, nil
}

// Session operations

func (s *Storage) SaveSession(ctx context.Context, session *model.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := *session
	s.sessions[session.Token] = &sess
	return nil
}

func (s *Storage) GetSession(ctx context.Context, token string) (*model.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[token]
	if !ok {
		return nil, model.ErrSessionNotFound
	}
	sess := *session
	return &sess, nil
}

func (s *Storage) DeleteSession(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}

// Top-up receipt operations

func (s *Storage) SaveTopupReceipt(ctx context.Context, receipt *model.TopupReceipt) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := *receipt
	s.receipts[receipt.Reference] = &r
	return nil
}

func (s *Storage) GetTopupReceipt(ctx context.Context, reference string) (*model.TopupReceipt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	receipt, ok := s.receipts[reference]
	if !ok {
		return nil, model.ErrReceiptNotFound
	}
	r := *receipt
	return &r, nil
}
