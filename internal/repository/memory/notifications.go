package memory

import (
	"sort"

	"github.com/yukikurage/workmatch-api/internal/models"
	"github.com/yukikurage/workmatch-api/internal/repository"
)

type notificationRepo struct{ db *DB }

func (r *notificationRepo) Create(n *models.Notification) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	n.ID = r.db.next("notifications")
	n.CreatedAt = r.db.now()
	r.db.notifications[n.ID] = cloneNotification(*n)
	return nil
}

func (r *notificationRepo) FindByID(id uint64) (*models.Notification, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	n, ok := r.db.notifications[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	n = cloneNotification(n)
	return &n, nil
}

func (r *notificationRepo) ListByUser(userID uint64) ([]models.Notification, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	list := []models.Notification{}
	for _, n := range r.db.notifications {
		if n.UserID == userID {
			list = append(list, cloneNotification(n))
		}
	}
	sort.Slice(list, func(i, j int) bool {
		return newestFirst(list[i].CreatedAt, list[j].CreatedAt, list[i].ID, list[j].ID)
	})
	return list, nil
}

func (r *notificationRepo) CountUnread(userID uint64) (int64, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	var count int64
	for _, n := range r.db.notifications {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (r *notificationRepo) MarkRead(id uint64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	n, ok := r.db.notifications[id]
	if !ok {
		return repository.ErrNotFound
	}
	n.IsRead = true
	r.db.notifications[id] = n
	return nil
}
