package session

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/musicaulas/backend/core"
	"github.com/musicaulas/backend/core/user"
)

var (
	// errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEntryNotFound      = errors.New("storage entry not found")
)

// Storage is a durable local key-value store. Get returns ErrEntryNotFound
// when the key is absent; Delete of an absent key is a no-op.
type Storage interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Store holds the single process-wide Session and keeps it in sync with
// durable storage under one fixed key.
type Store struct {
	mutex   sync.RWMutex
	current Session

	usrSvc  *user.Service
	storage Storage
	key     string
	logger  core.Logger
}

func NewStore(usrSvc *user.Service, storage Storage, conf *core.Config, logger core.Logger) *Store {
	return &Store{
		current: Session{State: StateLoading},
		usrSvc:  usrSvc,
		storage: storage,
		key:     conf.SessionStorageKey,
		logger:  logger,
	}
}

// Current returns a copy of the session; callers cannot mutate store state through it.
func (st *Store) Current() Session {
	st.mutex.RLock()
	defer st.mutex.RUnlock()

	sess := st.current
	if sess.User != nil {
		usr := *sess.User
		sess.User = &usr
	}
	return sess
}

// Restore re-hydrates the session from durable storage. An absent entry
// resolves to anonymous; a corrupt entry is cleared and also resolves to
// anonymous — the parse failure is never propagated.
func (st *Store) Restore(ctx context.Context) {
	data, err := st.storage.Get(ctx, st.key)
	if err != nil {
		if errors.Cause(err) != ErrEntryNotFound {
			st.logger.Warn("reading persisted session", err)
		}
		st.setAnonymous()
		return
	}

	var pu persistedUser
	if err := json.Unmarshal(data, &pu); err != nil || pu.ID == "" || pu.Role == "" {
		st.logger.Warn("clearing corrupt persisted session")
		if err := st.storage.Delete(ctx, st.key); err != nil {
			st.logger.Error("clearing corrupt persisted session", err)
		}
		st.setAnonymous()
		return
	}

	st.setAuthenticated(pu.toUser())
}

// Login authenticates against the user directory by exact email match.
// On failure the session is left untouched and ErrInvalidCredentials is
// returned; callers must treat it as "credentials rejected".
func (st *Store) Login(ctx context.Context, email, password string) (user.User, error) {
	usr, err := st.usrSvc.GetByEmail(ctx, email)
	if err != nil {
		if errors.Cause(err) == user.ErrNotFound {
			return user.User{}, ErrInvalidCredentials
		}
		return user.User{}, errors.Wrap(err, "finding user by email")
	}
	if err := usr.CheckPassword(password); err != nil {
		return user.User{}, ErrInvalidCredentials
	}

	if err := st.persist(ctx, usr); err != nil {
		return user.User{}, err
	}
	st.setAuthenticated(usr)
	return usr, nil
}

// Register appends a new user to the directory and authenticates as them.
// A duplicate email fails validation and leaves the directory unchanged.
func (st *Store) Register(ctx context.Context, nu user.NewUser) (user.User, error) {
	usr, err := st.usrSvc.Create(ctx, nu)
	if err != nil {
		return user.User{}, err
	}

	if err := st.persist(ctx, usr); err != nil {
		return user.User{}, err
	}
	st.setAuthenticated(usr)
	return usr, nil
}

// Logout clears the persisted session and resets to anonymous.
func (st *Store) Logout(ctx context.Context) error {
	if err := st.storage.Delete(ctx, st.key); err != nil {
		return errors.Wrap(err, "clearing persisted session")
	}
	st.setAnonymous()
	return nil
}

func (st *Store) persist(ctx context.Context, usr user.User) error {
	data, err := json.Marshal(newPersistedUser(usr))
	if err != nil {
		return errors.Wrap(err, "serializing session user")
	}
	return errors.Wrap(st.storage.Set(ctx, st.key, data), "persisting session")
}

func (st *Store) setAuthenticated(usr user.User) {
	st.mutex.Lock()
	defer st.mutex.Unlock()
	st.current = Session{User: &usr, State: StateAuthenticated}
}

func (st *Store) setAnonymous() {
	st.mutex.Lock()
	defer st.mutex.Unlock()
	st.current = Session{State: StateAnonymous}
}

// persistedUser is the JSON shape written to durable storage.
// The password hash is never persisted.
type persistedUser struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func newPersistedUser(usr user.User) persistedUser {
	return persistedUser{
		ID:        usr.ID,
		Name:      usr.Name,
		Email:     usr.Email,
		Role:      usr.Role,
		CreatedAt: usr.CreatedAt,
	}
}

func (pu persistedUser) toUser() user.User {
	return user.User{
		ID:        pu.ID,
		Name:      pu.Name,
		Email:     pu.Email,
		Role:      pu.Role,
		CreatedAt: pu.CreatedAt,
	}
}
