package repository

import (
	"context"

	"thaichat/internal/models"
	"thaichat/internal/store"
)

// The memory repositories adapt the process-local store to the repository
// contracts. They are the default backend; reads hand out copies so no
// caller holds live store state past a request.

type memoryUserRepository struct {
	store *store.Store
}

// NewMemoryUserRepository creates a user repository over the in-memory store
func NewMemoryUserRepository(s *store.Store) UserRepository {
	return &memoryUserRepository{store: s}
}

func (r *memoryUserRepository) GetByID(_ context.Context, id int64) (*models.User, error) {
	user, ok := r.store.UserByID(id)
	if !ok {
		return nil, models.NewNotFoundError("User", id)
	}
	return &user, nil
}

func (r *memoryUserRepository) FindByUsernameOrEmail(_ context.Context, username, email string) (*models.User, error) {
	if username == "" && email == "" {
		return nil, nil
	}
	user, ok := r.store.FindUser(func(u *models.User) bool {
		return (username != "" && u.Username == username) || (email != "" && u.Email == email)
	})
	if !ok {
		return nil, nil
	}
	return &user, nil
}

func (r *memoryUserRepository) Create(_ context.Context, user *models.User) error {
	if !r.store.AddUser(user) {
		return models.NewConflictError("Username or email already exists")
	}
	return nil
}

func (r *memoryUserRepository) Update(_ context.Context, user *models.User) error {
	if !r.store.ReplaceUser(*user) {
		return models.NewNotFoundError("User", user.ID)
	}
	return nil
}

func (r *memoryUserRepository) Count(_ context.Context) (int64, error) {
	return int64(r.store.CountUsers()), nil
}

type memoryMessageRepository struct {
	store *store.Store
}

// NewMemoryMessageRepository creates a message repository over the in-memory store
func NewMemoryMessageRepository(s *store.Store) MessageRepository {
	return &memoryMessageRepository{store: s}
}

func (r *memoryMessageRepository) List(_ context.Context, limit int) ([]models.Message, error) {
	return r.store.MessagesTail(limit), nil
}

func (r *memoryMessageRepository) GetByID(_ context.Context, id int64) (*models.Message, error) {
	message, ok := r.store.MessageByID(id)
	if !ok {
		return nil, models.NewNotFoundError("Message", id)
	}
	return &message, nil
}

func (r *memoryMessageRepository) Create(_ context.Context, message *models.Message) error {
	r.store.AddMessage(message)
	return nil
}

func (r *memoryMessageRepository) Update(_ context.Context, message *models.Message) error {
	if !r.store.ReplaceMessage(*message) {
		return models.NewNotFoundError("Message", message.ID)
	}
	return nil
}

func (r *memoryMessageRepository) Delete(_ context.Context, id int64) error {
	if !r.store.RemoveMessage(id) {
		return models.NewNotFoundError("Message", id)
	}
	return nil
}

type memoryThemeRepository struct {
	store *store.Store
}

// NewMemoryThemeRepository creates a theme repository over the in-memory store
func NewMemoryThemeRepository(s *store.Store) ThemeRepository {
	return &memoryThemeRepository{store: s}
}

func (r *memoryThemeRepository) List(_ context.Context) ([]models.Theme, error) {
	return r.store.Themes(), nil
}

func (r *memoryThemeRepository) Active(_ context.Context) (*models.Theme, error) {
	theme := r.store.ActiveTheme()
	return &theme, nil
}

func (r *memoryThemeRepository) Find(_ context.Context, id int64, name string) (*models.Theme, error) {
	theme, ok := r.store.FindTheme(id, name)
	if !ok {
		return nil, models.NewNotFoundError("Theme", themeRef(id, name))
	}
	return &theme, nil
}

func (r *memoryThemeRepository) SetActive(_ context.Context, id int64) error {
	if !r.store.SetActiveTheme(id) {
		return models.NewNotFoundError("Theme", id)
	}
	return nil
}
