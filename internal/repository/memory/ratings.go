package memory

import (
	"sort"

	"github.com/yukikurage/workmatch-api/internal/models"
	"github.com/yukikurage/workmatch-api/internal/repository"
)

type ratingRepo struct{ db *DB }

// CreateAndRecompute stores the rating and refreshes the recipient average under one write lock
func (r *ratingRepo) CreateAndRecompute(rating *models.Rating) (float64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	user, ok := r.db.users[rating.ToUserID]
	if !ok {
		return 0, repository.ErrNotFound
	}
	if rating.JobID != nil {
		for _, stored := range r.db.ratings {
			if stored.FromUserID == rating.FromUserID && stored.ToUserID == rating.ToUserID &&
				stored.JobID != nil && *stored.JobID == *rating.JobID {
				return 0, repository.ErrDuplicate
			}
		}
	}

	rating.ID = r.db.next("ratings")
	rating.CreatedAt = r.db.now()
	r.db.ratings[rating.ID] = cloneRating(*rating)

	var sum, count int
	for _, stored := range r.db.ratings {
		if stored.ToUserID == rating.ToUserID {
			sum += stored.Value
			count++
		}
	}

	user.Rating = repository.RoundRating(float64(sum) / float64(count))
	r.db.users[user.ID] = user
	return user.Rating, nil
}

func (r *ratingRepo) Exists(fromUserID, toUserID, jobID uint64) (bool, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	for _, stored := range r.db.ratings {
		if stored.FromUserID == fromUserID && stored.ToUserID == toUserID &&
			stored.JobID != nil && *stored.JobID == jobID {
			return true, nil
		}
	}
	return false, nil
}

func (r *ratingRepo) ListByRecipient(toUserID uint64) ([]models.Rating, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	ratings := []models.Rating{}
	for _, stored := range r.db.ratings {
		if stored.ToUserID == toUserID {
			ratings = append(ratings, cloneRating(stored))
		}
	}
	sort.Slice(ratings, func(i, j int) bool {
		return newestFirst(ratings[i].CreatedAt, ratings[j].CreatedAt, ratings[i].ID, ratings[j].ID)
	})
	return ratings, nil
}
