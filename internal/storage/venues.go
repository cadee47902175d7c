package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/hungrypeople/feast/internal/model"
	"github.com/hungrypeople/feast/internal/service"
)

const venueColumns = `id, name, address, phone, region, venue_type,
	has_private_room, noise_level, max_party_size,
	tax_invoice_supported, card_payment_supported`

// GetVenuesByRegion returns venues in a region, ordered by name.
func (s *SQLiteStorage) GetVenuesByRegion(ctx context.Context, region string, limit int) ([]model.Venue, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(region, "region"); err != nil {
		return nil, err
	}

	return s.queryVenues(ctx, `
		SELECT `+venueColumns+`
		FROM venues WHERE region = ?
		ORDER BY name
		LIMIT ?`, region, capLimit(limit))
}

// GetVenuesByKeyword returns venues whose name or address contains the
// keyword. An empty keyword lists the whole catalog.
func (s *SQLiteStorage) GetVenuesByKeyword(ctx context.Context, keyword string, limit int) ([]model.Venue, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	if strings.TrimSpace(keyword) == "" {
		return s.queryVenues(ctx, `
			SELECT `+venueColumns+`
			FROM venues
			ORDER BY name
			LIMIT ?`, capLimit(limit))
	}

	pattern := "%" + keyword + "%"
	return s.queryVenues(ctx, `
		SELECT `+venueColumns+`
		FROM venues
		WHERE name LIKE ? OR address LIKE ?
		ORDER BY name
		LIMIT ?`, pattern, pattern, capLimit(limit))
}

// GetVenuesByAddressKeyword returns venues whose address contains the
// keyword, ordered by name. This is the ranker's per-keyword scan.
func (s *SQLiteStorage) GetVenuesByAddressKeyword(ctx context.Context, keyword string, limit int) ([]model.Venue, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(keyword, "keyword"); err != nil {
		return nil, err
	}

	return s.queryVenues(ctx, `
		SELECT `+venueColumns+`
		FROM venues
		WHERE address LIKE ?
		ORDER BY name
		LIMIT ?`, "%"+keyword+"%", capLimit(limit))
}

// FilterVenues applies the policy filter predicates and returns up to Limit
// matches in random order. Selection order is deliberately not meaningful:
// random sampling surfaces variety rather than a fixed top-N.
func (s *SQLiteStorage) FilterVenues(ctx context.Context, filter service.VenueFilter) ([]model.Venue, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `SELECT ` + venueColumns + ` FROM venues WHERE 1=1`
	var args []any

	if len(filter.AllowedVenueTypes) > 0 {
		placeholders := strings.Repeat("?,", len(filter.AllowedVenueTypes))
		query += ` AND venue_type IN (` + placeholders[:len(placeholders)-1] + `)`
		for _, t := range filter.AllowedVenueTypes {
			args = append(args, t)
		}
	}
	if filter.LocationContains != "" {
		pattern := "%" + filter.LocationContains + "%"
		query += ` AND (address LIKE ? OR region LIKE ?)`
		args = append(args, pattern, pattern)
	}
	if filter.MinPartySize > 0 {
		query += ` AND max_party_size >= ?`
		args = append(args, filter.MinPartySize)
	}
	if filter.RequireQuietOrPrivate {
		query += ` AND (noise_level = 'low' OR has_private_room = 1)`
	}
	if filter.RequireTaxInvoice {
		query += ` AND tax_invoice_supported = 1`
	}
	if filter.RequireCardPayment {
		query += ` AND card_payment_supported = 1`
	}

	query += ` ORDER BY RANDOM() LIMIT ?`
	args = append(args, capLimit(filter.Limit))

	return s.queryVenues(ctx, query, args...)
}

// SaveVenues upserts catalog venues by id.
func (s *SQLiteStorage) SaveVenues(ctx context.Context, venues []model.Venue) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if len(venues) == 0 {
		return fmt.Errorf("%w: venues", ErrEmptySlice)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO venues (id, name, address, phone, region, venue_type,
			has_private_room, noise_level, max_party_size,
			tax_invoice_supported, card_payment_supported)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i := range venues {
		v := &venues[i]
		if _, err := stmt.ExecContext(ctx,
			v.ID, v.Name, v.Address, v.Phone, v.Region, v.VenueType,
			v.HasPrivateRoom, string(v.NoiseLevel), v.MaxPartySize,
			v.TaxInvoiceSupported, v.CardPaymentSupported); err != nil {
			return fmt.Errorf("failed to insert venue %d: %w", v.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit venues: %w", err)
	}

	slog.Info("saved venues", "count", len(venues))
	return nil
}

// GetAllRegions returns the distinct non-empty venue regions, sorted.
func (s *SQLiteStorage) GetAllRegions(ctx context.Context) ([]string, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT region FROM venues
		WHERE region IS NOT NULL AND region != ''
		ORDER BY region`)
	if err != nil {
		return nil, fmt.Errorf("failed to query regions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var regions []string
	for rows.Next() {
		var region string
		if err := rows.Scan(&region); err != nil {
			return nil, fmt.Errorf("failed to scan region: %w", err)
		}
		regions = append(regions, region)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating regions: %w", err)
	}

	return regions, nil
}

// Stats summarizes the catalog for the stats endpoint.
func (s *SQLiteStorage) Stats(ctx context.Context) (*service.CatalogStats, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	stats := &service.CatalogStats{}
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM venues`).Scan(&stats.TotalVenues); err != nil {
		return nil, fmt.Errorf("failed to count venues: %w", err)
	}
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM events`).Scan(&stats.TotalEvents); err != nil {
		return nil, fmt.Errorf("failed to count events: %w", err)
	}

	regions, err := s.GetAllRegions(ctx)
	if err != nil {
		return nil, err
	}
	stats.Regions = regions
	stats.TotalRegions = len(regions)

	return stats, nil
}

func (s *SQLiteStorage) queryVenues(ctx context.Context, query string, args ...any) ([]model.Venue, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query venues: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var venues []model.Venue
	for rows.Next() {
		var v model.Venue
		var phone, region sql.NullString
		var noise string
		if err := rows.Scan(&v.ID, &v.Name, &v.Address, &phone, &region, &v.VenueType,
			&v.HasPrivateRoom, &noise, &v.MaxPartySize,
			&v.TaxInvoiceSupported, &v.CardPaymentSupported); err != nil {
			return nil, fmt.Errorf("failed to scan venue: %w", err)
		}
		v.Phone = phone.String
		v.Region = region.String
		v.NoiseLevel = model.NoiseLevel(noise)
		venues = append(venues, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating venues: %w", err)
	}

	return venues, nil
}

// capLimit bounds query limits to a sane default when the caller passes
// zero or a negative value.
func capLimit(limit int) int {
	if limit <= 0 {
		return 50
	}
	return limit
}
