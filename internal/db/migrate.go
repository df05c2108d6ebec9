package db

import (
	"fmt"

	"gorm.io/gorm"

	types "github.com/cynq/cynq-backend/internal/domain"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(types.AllModels()...)
}

// EnsureConstraints adds the FK cascades and lookup indexes AutoMigrate
// skips because foreign key generation is disabled at the gorm level.
func EnsureConstraints(db *gorm.DB) error {
	stmts := []struct {
		name string
		sql  string
	}{
		{"fk_user_token_user", `
			ALTER TABLE user_token
			DROP CONSTRAINT IF EXISTS fk_user_token_user;
			ALTER TABLE user_token
			ADD CONSTRAINT fk_user_token_user
			FOREIGN KEY (user_id) REFERENCES "user"(id) ON DELETE CASCADE;`},
		{"fk_chat_session_user", `
			ALTER TABLE chat_session
			DROP CONSTRAINT IF EXISTS fk_chat_session_user;
			ALTER TABLE chat_session
			ADD CONSTRAINT fk_chat_session_user
			FOREIGN KEY (user_id) REFERENCES "user"(id) ON DELETE CASCADE;`},
		{"fk_chat_message_session", `
			ALTER TABLE chat_message
			DROP CONSTRAINT IF EXISTS fk_chat_message_session;
			ALTER TABLE chat_message
			ADD CONSTRAINT fk_chat_message_session
			FOREIGN KEY (session_id) REFERENCES chat_session(id) ON DELETE CASCADE;`},
		{"fk_critical_path_phase_path", `
			ALTER TABLE critical_path_phases
			DROP CONSTRAINT IF EXISTS fk_critical_path_phase_path;
			ALTER TABLE critical_path_phases
			ADD CONSTRAINT fk_critical_path_phase_path
			FOREIGN KEY (critical_path_id) REFERENCES critical_paths(id) ON DELETE CASCADE;`},
		{"fk_critical_path_task_phase", `
			ALTER TABLE critical_path_tasks
			DROP CONSTRAINT IF EXISTS fk_critical_path_task_phase;
			ALTER TABLE critical_path_tasks
			ADD CONSTRAINT fk_critical_path_task_phase
			FOREIGN KEY (phase_id) REFERENCES critical_path_phases(id) ON DELETE CASCADE;`},
		{"idx_chat_session_user_last_active", `
			CREATE INDEX IF NOT EXISTS idx_chat_session_user_last_active
			ON chat_session (user_id, last_active DESC);`},
		{"idx_chat_message_session_ts", `
			CREATE INDEX IF NOT EXISTS idx_chat_message_session_ts
			ON chat_message (session_id, timestamp);`},
		{"idx_relationships_user_source", `
			CREATE INDEX IF NOT EXISTS idx_relationships_user_source
			ON relationships (user_id, source_id);`},
		{"idx_relationships_user_target", `
			CREATE INDEX IF NOT EXISTS idx_relationships_user_target
			ON relationships (user_id, target_id);`},
		{"idx_critical_path_phases_path_order", `
			CREATE INDEX IF NOT EXISTS idx_critical_path_phases_path_order
			ON critical_path_phases (critical_path_id, phase_order);`},
		{"idx_critical_path_tasks_phase_order", `
			CREATE INDEX IF NOT EXISTS idx_critical_path_tasks_phase_order
			ON critical_path_tasks (phase_id, task_order);`},
	}
	for _, s := range stmts {
		if err := db.Exec(s.sql).Error; err != nil {
			return fmt.Errorf("apply %s: %w", s.name, err)
		}
	}
	return nil
}
