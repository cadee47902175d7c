package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hungrypeople/feast/internal/common"
	"github.com/hungrypeople/feast/internal/model"
)

const eventColumns = `id, organization, event_name, host_organization,
	region, location, tech_category, hashtags, start_date, end_date`

// GetEvent returns an event by id.
func (s *SQLiteStorage) GetEvent(ctx context.Context, id int64) (*model.Event, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateID(id, "id"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT `+eventColumns+` FROM events WHERE id = ?`, id)

	event, err := scanEvent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.NewNotFoundError("event", id)
	}
	if err != nil {
		return nil, err
	}
	return event, nil
}

// GetEventsByRegion returns events in a region. An empty region lists all
// events, matching the original catalog behavior.
func (s *SQLiteStorage) GetEventsByRegion(ctx context.Context, region string, limit int) ([]model.Event, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	if region == "" {
		return s.queryEvents(ctx, `
			SELECT `+eventColumns+` FROM events
			ORDER BY id LIMIT ?`, capLimit(limit))
	}
	return s.queryEvents(ctx, `
		SELECT `+eventColumns+` FROM events
		WHERE region = ?
		ORDER BY id LIMIT ?`, region, capLimit(limit))
}

// GetEventsByLocation returns events whose location contains the keyword.
func (s *SQLiteStorage) GetEventsByLocation(ctx context.Context, location string, limit int) ([]model.Event, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(location, "location"); err != nil {
		return nil, err
	}

	return s.queryEvents(ctx, `
		SELECT `+eventColumns+` FROM events
		WHERE location LIKE ?
		ORDER BY id LIMIT ?`, "%"+location+"%", capLimit(limit))
}

// SearchEvents returns events whose location or name contains the query.
func (s *SQLiteStorage) SearchEvents(ctx context.Context, query string, limit int) ([]model.Event, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(query, "query"); err != nil {
		return nil, err
	}

	pattern := "%" + query + "%"
	return s.queryEvents(ctx, `
		SELECT `+eventColumns+` FROM events
		WHERE location LIKE ? OR event_name LIKE ?
		ORDER BY id LIMIT ?`, pattern, pattern, capLimit(limit))
}

// SaveEvents upserts catalog events by id.
func (s *SQLiteStorage) SaveEvents(ctx context.Context, events []model.Event) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if len(events) == 0 {
		return fmt.Errorf("%w: events", ErrEmptySlice)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO events (id, organization, event_name, host_organization,
			region, location, tech_category, hashtags, start_date, end_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i := range events {
		e := &events[i]
		if _, err := stmt.ExecContext(ctx,
			e.ID, e.Organization, e.Name, e.HostOrganization,
			e.Region, e.Location, e.TechCategory, e.Hashtags,
			e.StartDate, e.EndDate); err != nil {
			return fmt.Errorf("failed to insert event %d: %w", e.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit events: %w", err)
	}

	slog.Info("saved events", "count", len(events))
	return nil
}

func (s *SQLiteStorage) queryEvents(ctx context.Context, query string, args ...any) ([]model.Event, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var events []model.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, *event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating events: %w", err)
	}

	return events, nil
}

func scanEvent(row rowScanner) (*model.Event, error) {
	var e model.Event
	var org, host, region, location, tech, hashtags, start, end sql.NullString
	if err := row.Scan(&e.ID, &org, &e.Name, &host, &region, &location,
		&tech, &hashtags, &start, &end); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan event: %w", err)
	}
	e.Organization = org.String
	e.HostOrganization = host.String
	e.Region = region.String
	e.Location = location.String
	e.TechCategory = tech.String
	e.Hashtags = hashtags.String
	e.StartDate = start.String
	e.EndDate = end.String
	return &e, nil
}
