// Package memory keeps every repository in process memory.
// Records are copied on the way in and on the way out, so callers never share state with the store.
package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/yukikurage/workmatch-api/internal/models"
	"github.com/yukikurage/workmatch-api/internal/repository"
)

// DB holds all tables behind one lock
type DB struct {
	mu sync.RWMutex

	seq map[string]uint64
	now func() time.Time

	users            map[uint64]models.User
	workerProfiles   map[uint64]models.WorkerProfile
	employerProfiles map[uint64]models.EmployerProfile
	jobs             map[uint64]models.Job
	applications     map[uint64]models.Application
	ratings          map[uint64]models.Rating
	messages         map[uint64]models.Message
	notifications    map[uint64]models.Notification
}

// NewDB creates an empty in-memory database
func NewDB() *DB {
	return &DB{
		seq:              make(map[string]uint64),
		now:              time.Now,
		users:            make(map[uint64]models.User),
		workerProfiles:   make(map[uint64]models.WorkerProfile),
		employerProfiles: make(map[uint64]models.EmployerProfile),
		jobs:             make(map[uint64]models.Job),
		applications:     make(map[uint64]models.Application),
		ratings:          make(map[uint64]models.Rating),
		messages:         make(map[uint64]models.Message),
		notifications:    make(map[uint64]models.Notification),
	}
}

// SetClock replaces the time source used for timestamps
func (db *DB) SetClock(now func() time.Time) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.now = now
}

// NewStore returns a repository.Store backed by a fresh in-memory database
func NewStore() *repository.Store {
	return NewDB().Store()
}

// Store exposes db through the repository interfaces
func (db *DB) Store() *repository.Store {
	return &repository.Store{
		Users:         &userRepo{db},
		Profiles:      &profileRepo{db},
		Jobs:          &jobRepo{db},
		Applications:  &applicationRepo{db},
		Ratings:       &ratingRepo{db},
		Messages:      &messageRepo{db},
		Notifications: &notificationRepo{db},
	}
}

// next must be called with the write lock held
func (db *DB) next(table string) uint64 {
	db.seq[table]++
	return db.seq[table]
}

func cloneSkills(s []string) []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s...)
}

func cloneID(id *uint64) *uint64 {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}

func cloneJob(j models.Job) models.Job {
	j.RequiredSkills = cloneSkills(j.RequiredSkills)
	return j
}

func cloneWorkerProfile(p models.WorkerProfile) models.WorkerProfile {
	p.Skills = cloneSkills(p.Skills)
	return p
}

func cloneRating(r models.Rating) models.Rating {
	r.JobID = cloneID(r.JobID)
	return r
}

func cloneNotification(n models.Notification) models.Notification {
	n.RelatedID = cloneID(n.RelatedID)
	return n
}

// newestFirst orders by timestamp descending, then id descending
func newestFirst(ti, tj time.Time, idi, idj uint64) bool {
	if !ti.Equal(tj) {
		return ti.After(tj)
	}
	return idi > idj
}

func sortedIDs[T any](m map[uint64]T) []uint64 {
	ids := make([]uint64, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
