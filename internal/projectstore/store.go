package projectstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"tgrid/internal/config"
)

// Project is a saved table definition: a corpus directory plus the tier
// selection used to build its table.
type Project struct {
	ID             string
	Name           string
	RootDir        string
	PrimaryTier    string
	SecondaryTiers []string
	CreatedAt      time.Time
	UpdatedAt      time.Time
	LastOpenedAt   *time.Time
}

// Store manages project persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the projects database and applies the
// schema.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := cfg.ProjectsDBPath()
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.applySchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

func (s *Store) applySchema(ctx context.Context) error {
	const schema = `CREATE TABLE IF NOT EXISTS projects (
        id TEXT PRIMARY KEY,
        name TEXT NOT NULL UNIQUE,
        root_dir TEXT NOT NULL,
        primary_tier TEXT NOT NULL,
        secondary_tiers TEXT NOT NULL,
        created_at TEXT NOT NULL,
        updated_at TEXT NOT NULL,
        last_opened_at TEXT
    )`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the location of the database file.
func (s *Store) Path() string {
	return s.path
}

// Save inserts a project, or updates the existing project with the same
// name. The returned project carries the persisted identifier and
// timestamps.
func (s *Store) Save(ctx context.Context, project Project) (*Project, error) {
	name := strings.TrimSpace(project.Name)
	if name == "" {
		return nil, errors.New("project name is empty")
	}
	if strings.TrimSpace(project.RootDir) == "" {
		return nil, errors.New("project root directory is empty")
	}
	if strings.TrimSpace(project.PrimaryTier) == "" {
		return nil, errors.New("project primary tier is empty")
	}

	tiersJSON, err := json.Marshal(project.SecondaryTiers)
	if err != nil {
		return nil, fmt.Errorf("marshal secondary tiers: %w", err)
	}

	now := time.Now().UTC()
	timestamp := now.Format(time.RFC3339Nano)

	existing, err := s.ByName(ctx, name)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		_, err = s.db.ExecContext(
			ctx,
			`UPDATE projects
             SET root_dir = ?, primary_tier = ?, secondary_tiers = ?, updated_at = ?
             WHERE id = ?`,
			project.RootDir,
			project.PrimaryTier,
			string(tiersJSON),
			timestamp,
			existing.ID,
		)
		if err != nil {
			return nil, fmt.Errorf("update project: %w", err)
		}
		return s.Get(ctx, existing.ID)
	}

	id := uuid.NewString()
	_, err = s.db.ExecContext(
		ctx,
		`INSERT INTO projects (
            id, name, root_dir, primary_tier, secondary_tiers,
            created_at, updated_at, last_opened_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id,
		name,
		project.RootDir,
		project.PrimaryTier,
		string(tiersJSON),
		timestamp,
		timestamp,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("insert project: %w", err)
	}
	return s.Get(ctx, id)
}

// Get fetches a project by identifier. It returns nil when no project
// matches.
func (s *Store) Get(ctx context.Context, id string) (*Project, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = ?`, id)
	project, err := scanProject(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get project: %w", err)
	}
	return project, nil
}

// ByName fetches a project by name. It returns nil when no project
// matches.
func (s *Store) ByName(ctx context.Context, name string) (*Project, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+projectColumns+` FROM projects WHERE name = ?`, strings.TrimSpace(name))
	project, err := scanProject(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find project by name: %w", err)
	}
	return project, nil
}

// List returns all saved projects ordered by name.
func (s *Store) List(ctx context.Context) ([]*Project, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+projectColumns+` FROM projects ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var projects []*Project
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, project)
	}
	return projects, rows.Err()
}

// Touch records that a project was opened.
func (s *Store) Touch(ctx context.Context, id string) error {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := s.db.ExecContext(
		ctx,
		`UPDATE projects SET last_opened_at = ?, updated_at = ? WHERE id = ?`,
		now,
		now,
		id,
	)
	if err != nil {
		return fmt.Errorf("touch project: %w", err)
	}
	return nil
}

// Delete removes a project by name and reports whether one was removed.
func (s *Store) Delete(ctx context.Context, name string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM projects WHERE name = ?`, strings.TrimSpace(name))
	if err != nil {
		return false, fmt.Errorf("delete project: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}

const projectColumns = "id, name, root_dir, primary_tier, secondary_tiers, created_at, updated_at, last_opened_at"

func scanProject(scanner interface{ Scan(dest ...any) error }) (*Project, error) {
	var (
		id            string
		name          string
		rootDir       string
		primaryTier   string
		tiersJSON     string
		createdRaw    string
		updatedRaw    string
		lastOpenedRaw sql.NullString
	)

	if err := scanner.Scan(
		&id,
		&name,
		&rootDir,
		&primaryTier,
		&tiersJSON,
		&createdRaw,
		&updatedRaw,
		&lastOpenedRaw,
	); err != nil {
		return nil, err
	}

	project := &Project{
		ID:          id,
		Name:        name,
		RootDir:     rootDir,
		PrimaryTier: primaryTier,
	}
	if err := json.Unmarshal([]byte(tiersJSON), &project.SecondaryTiers); err != nil {
		return nil, fmt.Errorf("unmarshal secondary tiers: %w", err)
	}

	if created, err := parseTimeString(createdRaw); err == nil {
		project.CreatedAt = created
	}
	if updated, err := parseTimeString(updatedRaw); err == nil {
		project.UpdatedAt = updated
	}
	if lastOpenedRaw.Valid {
		if opened, err := parseTimeString(lastOpenedRaw.String); err == nil {
			project.LastOpenedAt = &opened
		}
	}
	return project, nil
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	return time.Parse(time.RFC3339Nano, value)
}
