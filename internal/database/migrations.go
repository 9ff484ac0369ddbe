package database

import (
	"fmt"
	"strings"

	applog "github.com/yukikurage/workmatch-api/internal/logger"
	"gorm.io/gorm"
)

// compositeIndexes backs the list queries that filter on one column and order by another.
// idx_ratings_from_to_job is unique; rows with a NULL job_id never collide.
var compositeIndexes = []struct {
	table   string
	name    string
	columns []string
	unique  bool
}{
	{"messages", "idx_messages_pair_created", []string{"from_user_id", "to_user_id", "created_at"}, false},
	{"notifications", "idx_notifications_user_read", []string{"user_id", "is_read"}, false},
	{"ratings", "idx_ratings_from_to_job", []string{"from_user_id", "to_user_id", "job_id"}, true},
	{"applications", "idx_applications_worker_applied", []string{"worker_id", "applied_at"}, false},
	{"jobs", "idx_jobs_employer_created", []string{"employer_id", "created_at"}, false},
}

// AddIndexes creates the composite indexes AutoMigrate does not derive from struct tags
func AddIndexes(db *gorm.DB) error {
	migrator := db.Migrator()

	for _, idx := range compositeIndexes {
		if migrator.HasIndex(idx.table, idx.name) {
			continue
		}

		kind := "INDEX"
		if idx.unique {
			kind = "UNIQUE INDEX"
		}
		sql := fmt.Sprintf("CREATE %s %s ON %s (%s)", kind, idx.name, idx.table, strings.Join(idx.columns, ", "))
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		applog.Debug("created index", "name", idx.name, "table", idx.table)
	}

	return nil
}
