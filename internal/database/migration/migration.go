package migration

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"
)

type migrationStep struct {
	Name string
	SQL  string
}

var steps = []migrationStep{
	{
		Name: "create_extension_uuid_ossp",
		SQL:  `CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	},
	{
		Name: "create_table_accounts",
		SQL: `CREATE TABLE IF NOT EXISTS accounts (
  id            UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  email         TEXT        NOT NULL UNIQUE,
  password_hash TEXT        NOT NULL,
  first_name    TEXT        NOT NULL DEFAULT '',
  last_name     TEXT        NOT NULL DEFAULT '',
  created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_workspaces",
		SQL: `CREATE TABLE IF NOT EXISTS workspaces (
  id          UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  name        TEXT        NOT NULL UNIQUE,
  description TEXT        NOT NULL DEFAULT '',
  owner_id    UUID        NOT NULL REFERENCES accounts (id),
  created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_workspace_members",
		SQL: `CREATE TABLE IF NOT EXISTS workspace_members (
  workspace_id UUID        NOT NULL REFERENCES workspaces (id) ON DELETE CASCADE,
  account_id   UUID        NOT NULL REFERENCES accounts (id) ON DELETE CASCADE,
  added_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
  PRIMARY KEY (workspace_id, account_id)
);`,
	},
	{
		Name: "create_table_groups",
		SQL: `CREATE TABLE IF NOT EXISTS groups (
  id           UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  workspace_id UUID        NOT NULL REFERENCES workspaces (id) ON DELETE CASCADE,
  name         TEXT        NOT NULL,
  description  TEXT        NOT NULL DEFAULT '',
  created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
  UNIQUE (workspace_id, name)
);`,
	},
	{
		Name: "create_table_group_members",
		SQL: `CREATE TABLE IF NOT EXISTS group_members (
  group_id   UUID        NOT NULL REFERENCES groups (id) ON DELETE CASCADE,
  account_id UUID        NOT NULL REFERENCES accounts (id) ON DELETE CASCADE,
  added_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
  PRIMARY KEY (group_id, account_id)
);`,
	},
	{
		Name: "create_table_policies",
		SQL: `CREATE TABLE IF NOT EXISTS policies (
  id           UUID   PRIMARY KEY DEFAULT uuid_generate_v4(),
  workspace_id UUID   NOT NULL REFERENCES workspaces (id) ON DELETE CASCADE,
  holder_type  TEXT   NOT NULL CHECK (holder_type IN ('account', 'group')),
  holder_id    UUID   NOT NULL,
  permissions  BIGINT NOT NULL DEFAULT 0,
  UNIQUE (workspace_id, holder_type, holder_id)
);`,
	},
	{
		Name: "create_table_polls",
		SQL: `CREATE TABLE IF NOT EXISTS polls (
  id           UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  workspace_id UUID        NOT NULL REFERENCES workspaces (id) ON DELETE CASCADE,
  name         TEXT        NOT NULL,
  description  TEXT        NOT NULL DEFAULT '',
  published    BOOLEAN     NOT NULL DEFAULT false,
  created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_questions",
		SQL: `CREATE TABLE IF NOT EXISTS questions (
  id       UUID    PRIMARY KEY DEFAULT uuid_generate_v4(),
  poll_id  UUID    NOT NULL REFERENCES polls (id) ON DELETE CASCADE,
  prompt   TEXT    NOT NULL,
  position INTEGER NOT NULL DEFAULT 0
);`,
	},
	{
		Name: "create_table_options",
		SQL: `CREATE TABLE IF NOT EXISTS options (
  id          UUID    PRIMARY KEY DEFAULT uuid_generate_v4(),
  question_id UUID    NOT NULL REFERENCES questions (id) ON DELETE CASCADE,
  label       TEXT    NOT NULL,
  position    INTEGER NOT NULL DEFAULT 0
);`,
	},
	{
		Name: "create_table_votes",
		SQL: `CREATE TABLE IF NOT EXISTS votes (
  id          UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  poll_id     UUID        NOT NULL REFERENCES polls (id) ON DELETE CASCADE,
  question_id UUID        NOT NULL REFERENCES questions (id) ON DELETE CASCADE,
  option_id   UUID        NOT NULL REFERENCES options (id) ON DELETE CASCADE,
  account_id  UUID        NOT NULL REFERENCES accounts (id) ON DELETE CASCADE,
  created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
  UNIQUE (question_id, account_id)
);`,
	},
	{
		Name: "create_index_workspace_members_account",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_workspace_members_account ON workspace_members (account_id);`,
	},
	{
		Name: "create_index_group_members_account",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_group_members_account ON group_members (account_id);`,
	},
	{
		Name: "create_index_polls_workspace",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_polls_workspace ON polls (workspace_id);`,
	},
	{
		Name: "create_index_votes_poll",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_votes_poll ON votes (poll_id);`,
	},
	{
		Name: "create_index_votes_option",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_votes_option ON votes (option_id);`,
	},
}

// EnsureMigrated checks if the 'accounts' table exists and runs migrations if it doesn't.
func EnsureMigrated(ctx context.Context, db *sql.DB, loc *time.Location, dbHost string) error {
	start := time.Now()

	logJSON(loc, map[string]any{
		"component": "database",
		"event":     "db_migration_check",
		"status":    "starting",
		"db_host":   dbHost,
	})

	var exists bool
	query := "SELECT to_regclass('public.accounts') IS NOT NULL"
	err := db.QueryRowContext(ctx, query).Scan(&exists)
	if err != nil {
		logJSON(loc, map[string]any{
			"component":     "database",
			"event":         "db_migration_failed",
			"status":        "error",
			"error_message": fmt.Sprintf("failed to check sentinel table: %v", err),
			"db_host":       dbHost,
			"duration_ms":   time.Since(start).Milliseconds(),
		})
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		logJSON(loc, map[string]any{
			"component":   "database",
			"event":       "db_migration_skip",
			"status":      "success",
			"msg":         "schema already exists, skipping migration",
			"db_host":     dbHost,
			"duration_ms": time.Since(start).Milliseconds(),
		})
		return nil
	}

	logJSON(loc, map[string]any{
		"component": "database",
		"event":     "db_migration_start",
		"status":    "in_progress",
		"db_host":   dbHost,
	})

	for _, step := range steps {
		stepStart := time.Now()
		_, err := db.ExecContext(ctx, step.SQL)
		if err != nil {
			logJSON(loc, map[string]any{
				"component":        "database",
				"event":            "db_migration_failed",
				"status":           "error",
				"migration_step":   step.Name,
				"error_message":    err.Error(),
				"db_host":          dbHost,
				"duration_ms":      time.Since(start).Milliseconds(),
				"step_duration_ms": time.Since(stepStart).Milliseconds(),
			})
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		logJSON(loc, map[string]any{
			"component":        "database",
			"event":            "db_migration_step",
			"status":           "success",
			"migration_step":   step.Name,
			"db_host":          dbHost,
			"step_duration_ms": time.Since(stepStart).Milliseconds(),
		})
	}

	logJSON(loc, map[string]any{
		"component":   "database",
		"event":       "db_migration_success",
		"status":      "success",
		"db_host":     dbHost,
		"duration_ms": time.Since(start).Milliseconds(),
	})

	return nil
}

func logJSON(loc *time.Location, data map[string]any) {
	data["ts"] = time.Now().In(loc).Format(time.RFC3339Nano)
	if _, ok := data["level"]; !ok {
		if data["status"] == "error" {
			data["level"] = "error"
		} else {
			data["level"] = "info"
		}
	}

	b, err := json.Marshal(data)
	if err != nil {
		log.Printf("failed to marshal migration log: %v", err)
		return
	}
	log.SetFlags(0)
	log.Println(string(b))
}
