package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jonathan/resume-forge/internal/types"
)

// UpsertProfile replaces a user's profile wholesale and stamps last_synced_at.
func (db *DB) UpsertProfile(ctx context.Context, userID uuid.UUID, profile *types.Profile) (*Profile, error) {
	data, err := json.Marshal(profile)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal profile: %w", err)
	}

	var record Profile
	err = db.pool.QueryRow(ctx,
		`INSERT INTO profiles (user_id, data, last_synced_at)
		 VALUES ($1, $2, NOW())
		 ON CONFLICT (user_id) DO UPDATE
		   SET data = $2, last_synced_at = NOW(), updated_at = NOW()
		 RETURNING id, user_id, data, last_synced_at, created_at, updated_at`,
		userID, data,
	).Scan(&record.ID, &record.UserID, &record.Data, &record.LastSyncedAt,
		&record.CreatedAt, &record.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert profile: %w", err)
	}
	return &record, nil
}

// GetProfileByUserID retrieves a profile record. Returns (nil, nil) when not found.
func (db *DB) GetProfileByUserID(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	var record Profile
	err := db.pool.QueryRow(ctx,
		`SELECT id, user_id, data, last_synced_at, created_at, updated_at
		 FROM profiles WHERE user_id = $1`,
		userID,
	).Scan(&record.ID, &record.UserID, &record.Data, &record.LastSyncedAt,
		&record.CreatedAt, &record.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return &record, nil
}

// DecodeProfile unmarshals the stored profile JSON.
func (p *Profile) DecodeProfile() (*types.Profile, error) {
	var profile types.Profile
	if err := json.Unmarshal(p.Data, &profile); err != nil {
		return nil, fmt.Errorf("failed to decode profile data: %w", err)
	}
	return &profile, nil
}
