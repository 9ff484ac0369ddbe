package memory

import (
	"sort"

	"github.com/yukikurage/workmatch-api/internal/models"
	"github.com/yukikurage/workmatch-api/internal/repository"
)

type messageRepo struct{ db *DB }

func (r *messageRepo) Create(msg *models.Message) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	msg.ID = r.db.next("messages")
	msg.CreatedAt = r.db.now()
	r.db.messages[msg.ID] = *msg
	return nil
}

func (r *messageRepo) FindByID(id uint64) (*models.Message, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	m, ok := r.db.messages[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &m, nil
}

func (r *messageRepo) ListByUser(userID uint64) ([]models.Message, error) {
	msgs := r.filter(func(m models.Message) bool {
		return m.FromUserID == userID || m.ToUserID == userID
	})
	sort.Slice(msgs, func(i, j int) bool {
		return newestFirst(msgs[i].CreatedAt, msgs[j].CreatedAt, msgs[i].ID, msgs[j].ID)
	})
	return msgs, nil
}

func (r *messageRepo) ListConversation(userA, userB uint64) ([]models.Message, error) {
	msgs := r.filter(func(m models.Message) bool {
		return (m.FromUserID == userA && m.ToUserID == userB) ||
			(m.FromUserID == userB && m.ToUserID == userA)
	})
	sort.Slice(msgs, func(i, j int) bool {
		return newestFirst(msgs[j].CreatedAt, msgs[i].CreatedAt, msgs[j].ID, msgs[i].ID)
	})
	return msgs, nil
}

func (r *messageRepo) MarkRead(id uint64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	m, ok := r.db.messages[id]
	if !ok {
		return repository.ErrNotFound
	}
	m.IsRead = true
	r.db.messages[id] = m
	return nil
}

func (r *messageRepo) filter(keep func(models.Message) bool) []models.Message {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	msgs := []models.Message{}
	for _, m := range r.db.messages {
		if keep(m) {
			msgs = append(msgs, m)
		}
	}
	return msgs
}
