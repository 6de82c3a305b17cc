package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/siherrmann/companygraph/helper"
	"github.com/siherrmann/companygraph/model"
	loadSql "github.com/siherrmann/companygraph/sql"
)

// ProfilesDBHandlerFunctions defines the interface for Profiles database operations.
type ProfilesDBHandlerFunctions interface {
	UpsertProfile(profile *model.CompanyProfile) (*model.StoredProfile, error)
	SelectProfile(name string) (*model.StoredProfile, error)
	SelectAllProfiles(lastCreatedAt *time.Time, limit int) ([]*model.StoredProfile, error)
	SelectProfilesBySearch(searchTerm string, limit int) ([]*model.StoredProfile, error)
	DeleteProfile(name string) error
	Lookup(name string) (*model.CompanyProfile, error)
}

// ProfilesDBHandler handles company profile database operations
type ProfilesDBHandler struct {
	db *helper.Database
}

// NewProfilesDBHandler creates a new profiles database handler.
// It initializes the database connection and loads profile-related SQL functions.
// If force is true, it will reload the SQL functions even if they already exist.
func NewProfilesDBHandler(db *helper.Database, force bool) (*ProfilesDBHandler, error) {
	if db == nil {
		return nil, helper.NewError("database connection validation", fmt.Errorf("database connection is nil"))
	}

	profilesDbHandler := &ProfilesDBHandler{
		db: db,
	}

	err := loadSql.LoadProfilesSql(profilesDbHandler.db.Instance, force)
	if err != nil {
		return nil, helper.NewError("load profiles sql", err)
	}

	err = profilesDbHandler.CreateTable()
	if err != nil {
		return nil, helper.NewError("create table", err)
	}

	db.Logger.Info("Initialized ProfilesDBHandler")

	return profilesDbHandler, nil
}

// CreateTable creates the 'profiles' table and its indexes if they do not exist.
func (h *ProfilesDBHandler) CreateTable() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := h.db.Instance.ExecContext(ctx, `SELECT init_profiles();`)
	if err != nil {
		log.Panicf("error initializing profiles table: %#v", err)
	}

	h.db.Logger.Info("Checked/created table profiles")

	return nil
}

// UpsertProfile inserts a profile or replaces the stored data of an existing one
func (h *ProfilesDBHandler) UpsertProfile(profile *model.CompanyProfile) (*model.StoredProfile, error) {
	row := h.db.Instance.QueryRow(
		`SELECT * FROM upsert_profile($1, $2)`,
		profile.Name,
		profile,
	)

	stored, err := scanProfile(row)
	if err != nil {
		return nil, helper.NewError("scan", err)
	}

	return stored, nil
}

// SelectProfile retrieves a profile by company name
func (h *ProfilesDBHandler) SelectProfile(name string) (*model.StoredProfile, error) {
	row := h.db.Instance.QueryRow(
		`SELECT * FROM select_profile($1)`,
		name,
	)

	stored, err := scanProfile(row)
	if err != nil {
		return nil, helper.NewError("scan", err)
	}

	return stored, nil
}

// SelectAllProfiles retrieves profiles newest first, paginated by creation time
func (h *ProfilesDBHandler) SelectAllProfiles(lastCreatedAt *time.Time, limit int) ([]*model.StoredProfile, error) {
	rows, err := h.db.Instance.Query(
		`SELECT * FROM select_all_profiles($1, $2)`,
		lastCreatedAt,
		limit,
	)
	if err != nil {
		return nil, helper.NewError("query", err)
	}

	return scanProfiles(rows)
}

// SelectProfilesBySearch searches profiles by company name or industry
func (h *ProfilesDBHandler) SelectProfilesBySearch(searchTerm string, limit int) ([]*model.StoredProfile, error) {
	rows, err := h.db.Instance.Query(
		`SELECT * FROM search_profiles($1, $2)`,
		searchTerm,
		limit,
	)
	if err != nil {
		return nil, helper.NewError("query", err)
	}

	return scanProfiles(rows)
}

// DeleteProfile deletes a profile by company name
func (h *ProfilesDBHandler) DeleteProfile(name string) error {
	_, err := h.db.Instance.Exec(
		`SELECT delete_profile($1)`,
		name,
	)
	if err != nil {
		return helper.NewError("exec", err)
	}
	return nil
}

// Lookup returns the stored profile for name or model.ErrProfileNotFound
func (h *ProfilesDBHandler) Lookup(name string) (*model.CompanyProfile, error) {
	stored, err := h.SelectProfile(name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}
	return &stored.Profile, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(row rowScanner) (*model.StoredProfile, error) {
	stored := &model.StoredProfile{}
	err := row.Scan(
		&stored.Name,
		&stored.Profile,
		&stored.CreatedAt,
		&stored.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return stored, nil
}

func scanProfiles(rows *sql.Rows) ([]*model.StoredProfile, error) {
	defer rows.Close()

	var profiles []*model.StoredProfile
	for rows.Next() {
		stored, err := scanProfile(rows)
		if err != nil {
			return nil, helper.NewError("scan", err)
		}

		profiles = append(profiles, stored)
	}

	err := rows.Err()
	if err != nil {
		return nil, helper.NewError("rows error", err)
	}

	return profiles, nil
}
