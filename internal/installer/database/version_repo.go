package database

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/kunena/forumadmin/internal/installer/model"
)

// TableExists reports whether table exists in the current schema.
func (d *Database) TableExists(ctx context.Context, table string) (bool, error) {
	var query string
	switch d.driver {
	case "sqlite":
		query = `SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ` + d.placeholder(1)
	default:
		query = `SELECT COUNT(*) FROM information_schema.tables
		         WHERE table_schema = current_schema() AND table_name = ` + d.placeholder(1)
	}

	var count int
	if err := d.GetDB().QueryRowContext(ctx, query, table).Scan(&count); err != nil {
		return false, fmt.Errorf("check table %s: %w", table, err)
	}
	return count > 0, nil
}

// LatestVersion loads the row with the highest id from table. It returns
// (nil, nil) when the table is empty. Every column is read by name so rows
// from older schemas without some columns still load.
func (d *Database) LatestVersion(ctx context.Context, table string) (*model.VersionRecord, error) {
	quoted, err := quoteName(table)
	if err != nil {
		return nil, err
	}
	query := `SELECT * FROM ` + quoted + ` ORDER BY id DESC LIMIT 1`

	rows, err := d.GetDB().QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get latest version: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("version columns: %w", err)
	}
	values := make([]sql.NullString, len(columns))
	dest := make([]any, len(columns))
	for i := range values {
		dest[i] = &values[i]
	}
	if err := rows.Scan(dest...); err != nil {
		return nil, fmt.Errorf("scan version: %w", err)
	}

	record := &model.VersionRecord{}
	for i, col := range columns {
		v := values[i]
		if !v.Valid {
			continue
		}
		s := v.String
		switch strings.ToLower(col) {
		case "id":
			record.ID, _ = strconv.ParseInt(s, 10, 64)
		case "version":
			record.Version = &s
		case "versiondate":
			record.VersionDate = &s
		case "installdate":
			record.InstallDate = &s
		case "build":
			record.Build = &s
		case "versionname":
			record.VersionName = &s
		case "sampledata":
			record.SampleData = &s
		case "state":
			record.State = &s
		}
	}
	return record, rows.Err()
}

// InsertVersion appends a version row, as the installer does after each step.
func (d *Database) InsertVersion(ctx context.Context, table string, r *model.VersionRecord) error {
	quoted, err := quoteName(table)
	if err != nil {
		return err
	}
	query := `INSERT INTO ` + quoted + ` (version, versiondate, installdate, build, versionname, sampledata, state)
	          VALUES (` + strings.Join([]string{
		d.placeholder(1), d.placeholder(2), d.placeholder(3), d.placeholder(4),
		d.placeholder(5), d.placeholder(6), d.placeholder(7),
	}, ", ") + `)`

	_, err = d.GetDB().ExecContext(ctx, query,
		r.Version, r.VersionDate, r.InstallDate, r.Build, r.VersionName, r.SampleData, r.State)
	if err != nil {
		return fmt.Errorf("insert version: %w", err)
	}
	return nil
}
