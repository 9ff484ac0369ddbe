package memory

import (
	"github.com/yukikurage/workmatch-api/internal/models"
	"github.com/yukikurage/workmatch-api/internal/repository"
)

type userRepo struct{ db *DB }

func (r *userRepo) Create(user *models.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for _, u := range r.db.users {
		if u.Username == user.Username || u.Email == user.Email {
			return repository.ErrDuplicate
		}
	}

	now := r.db.now()
	user.ID = r.db.next("users")
	user.CreatedAt = now
	user.UpdatedAt = now
	r.db.users[user.ID] = *user
	return nil
}

func (r *userRepo) FindByID(id uint64) (*models.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	u, ok := r.db.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (r *userRepo) FindByUsername(username string) (*models.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	for _, u := range r.db.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *userRepo) FindByEmail(email string) (*models.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	for _, u := range r.db.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *userRepo) FindByIDs(ids []uint64) (map[uint64]models.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	found := make(map[uint64]models.User, len(ids))
	for _, id := range ids {
		if u, ok := r.db.users[id]; ok {
			found[id] = u
		}
	}
	return found, nil
}

func (r *userRepo) Update(user *models.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	stored, ok := r.db.users[user.ID]
	if !ok {
		return repository.ErrNotFound
	}
	for id, u := range r.db.users {
		if id != user.ID && u.Email == user.Email {
			return repository.ErrDuplicate
		}
	}

	stored.Email = user.Email
	stored.FullName = user.FullName
	stored.Phone = user.Phone
	stored.Location = user.Location
	stored.Bio = user.Bio
	stored.UpdatedAt = r.db.now()
	r.db.users[user.ID] = stored
	*user = stored
	return nil
}
