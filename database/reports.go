package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/siherrmann/companygraph/helper"
	"github.com/siherrmann/companygraph/model"
	loadSql "github.com/siherrmann/companygraph/sql"
)

// ReportsDBHandlerFunctions defines the interface for Reports database operations.
type ReportsDBHandlerFunctions interface {
	InsertReport(companyName string, report *model.CreditReport) (*model.StoredReport, error)
	SelectReport(id uuid.UUID) (*model.StoredReport, error)
	SelectReportsByCompany(companyName string, limit int) ([]*model.StoredReport, error)
	DeleteReport(id uuid.UUID) error
}

// ReportsDBHandler handles credit report database operations
type ReportsDBHandler struct {
	db *helper.Database
}

// NewReportsDBHandler creates a new reports database handler.
// It initializes the database connection and loads report-related SQL functions.
// If force is true, it will reload the SQL functions even if they already exist.
func NewReportsDBHandler(db *helper.Database, force bool) (*ReportsDBHandler, error) {
	if db == nil {
		return nil, helper.NewError("database connection validation", fmt.Errorf("database connection is nil"))
	}

	reportsDbHandler := &ReportsDBHandler{
		db: db,
	}

	err := loadSql.LoadReportsSql(reportsDbHandler.db.Instance, force)
	if err != nil {
		return nil, helper.NewError("load reports sql", err)
	}

	err = reportsDbHandler.CreateTable()
	if err != nil {
		return nil, helper.NewError("create table", err)
	}

	db.Logger.Info("Initialized ReportsDBHandler")

	return reportsDbHandler, nil
}

// CreateTable creates the 'reports' table and its indexes if they do not exist.
func (h *ReportsDBHandler) CreateTable() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := h.db.Instance.ExecContext(ctx, `SELECT init_reports();`)
	if err != nil {
		log.Panicf("error initializing reports table: %#v", err)
	}

	h.db.Logger.Info("Checked/created table reports")

	return nil
}

// InsertReport stores a credit report for a company under a new id
func (h *ReportsDBHandler) InsertReport(companyName string, report *model.CreditReport) (*model.StoredReport, error) {
	if report == nil {
		return nil, helper.NewError("report validation", fmt.Errorf("report is nil"))
	}

	row := h.db.Instance.QueryRow(
		`SELECT * FROM insert_report($1, $2, $3)`,
		uuid.New(),
		companyName,
		report,
	)

	stored := &model.StoredReport{}
	err := row.Scan(
		&stored.ID,
		&stored.CompanyName,
		&stored.Report,
		&stored.CreatedAt,
	)
	if err != nil {
		return nil, helper.NewError("scan", err)
	}

	return stored, nil
}

// SelectReport retrieves a report by id
func (h *ReportsDBHandler) SelectReport(id uuid.UUID) (*model.StoredReport, error) {
	stored := &model.StoredReport{}
	row := h.db.Instance.QueryRow(
		`SELECT * FROM select_report($1)`,
		id,
	)

	err := row.Scan(
		&stored.ID,
		&stored.CompanyName,
		&stored.Report,
		&stored.CreatedAt,
	)
	if err != nil {
		return nil, helper.NewError("scan", err)
	}

	return stored, nil
}

// SelectReportsByCompany retrieves the reports of a company newest first
func (h *ReportsDBHandler) SelectReportsByCompany(companyName string, limit int) ([]*model.StoredReport, error) {
	rows, err := h.db.Instance.Query(
		`SELECT * FROM select_reports_by_company($1, $2)`,
		companyName,
		limit,
	)
	if err != nil {
		return nil, helper.NewError("query", err)
	}
	defer rows.Close()

	var reports []*model.StoredReport
	for rows.Next() {
		stored := &model.StoredReport{}
		err := rows.Scan(
			&stored.ID,
			&stored.CompanyName,
			&stored.Report,
			&stored.CreatedAt,
		)
		if err != nil {
			return nil, helper.NewError("scan", err)
		}

		reports = append(reports, stored)
	}

	err = rows.Err()
	if err != nil {
		return nil, helper.NewError("rows error", err)
	}

	return reports, nil
}

// DeleteReport deletes a report by id
func (h *ReportsDBHandler) DeleteReport(id uuid.UUID) error {
	_, err := h.db.Instance.Exec(
		`SELECT delete_report($1)`,
		id,
	)
	if err != nil {
		return helper.NewError("exec", err)
	}
	return nil
}
