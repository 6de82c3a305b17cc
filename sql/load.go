package sql

import (
	"database/sql"
	_ "embed"
	"fmt"
	"log"
)

//go:embed init.sql
var initSQL string

//go:embed profiles.sql
var profilesSQL string

//go:embed graphs.sql
var graphsSQL string

//go:embed reports.sql
var reportsSQL string

// Function lists for verification
var ProfilesFunctions = []string{
	"init_profiles",
	"upsert_profile",
	"select_profile",
	"select_all_profiles",
	"search_profiles",
	"delete_profile",
}

var GraphsFunctions = []string{
	"init_graphs",
	"insert_graph",
	"select_graph",
	"select_latest_graph",
	"select_graphs_by_company",
	"delete_graph",
}

var ReportsFunctions = []string{
	"init_reports",
	"insert_report",
	"select_report",
	"select_reports_by_company",
	"delete_report",
}

// Init intializes db extensions
func Init(db *sql.DB) error {
	_, err := db.Exec(initSQL)
	if err != nil {
		return fmt.Errorf("error executing schema SQL: %w", err)
	}

	log.Println("Database extensions initialized successfully")
	return nil
}

// LoadProfilesSql loads profile-related SQL functions
func LoadProfilesSql(db *sql.DB, force bool) error {
	return loadSql(db, "profiles", profilesSQL, ProfilesFunctions, force)
}

// LoadGraphsSql loads graph-related SQL functions
func LoadGraphsSql(db *sql.DB, force bool) error {
	return loadSql(db, "graphs", graphsSQL, GraphsFunctions, force)
}

// LoadReportsSql loads report-related SQL functions
func LoadReportsSql(db *sql.DB, force bool) error {
	return loadSql(db, "reports", reportsSQL, ReportsFunctions, force)
}

// LoadAllSql loads all SQL functions
func LoadAllSql(db *sql.DB, force bool) error {
	if err := LoadProfilesSql(db, force); err != nil {
		return err
	}

	if err := LoadGraphsSql(db, force); err != nil {
		return err
	}

	if err := LoadReportsSql(db, force); err != nil {
		return err
	}

	return nil
}

// loadSql executes a function file unless all of its functions already exist.
// With force the file is always executed.
func loadSql(db *sql.DB, name string, script string, functions []string, force bool) error {
	if !force {
		exist, err := checkFunctions(db, functions)
		if err != nil {
			return fmt.Errorf("error checking existing %s functions: %w", name, err)
		}
		if exist {
			return nil
		}
	}

	_, err := db.Exec(script)
	if err != nil {
		return fmt.Errorf("error executing %s SQL: %w", name, err)
	}

	exist, err := checkFunctions(db, functions)
	if err != nil {
		return fmt.Errorf("error checking existing functions: %w", err)
	}
	if !exist {
		return fmt.Errorf("not all required SQL functions were created")
	}

	log.Printf("SQL %s functions loaded successfully", name)
	return nil
}

// checkFunctions verifies that all required functions exist in the database
func checkFunctions(db *sql.DB, sqlFunctions []string) (bool, error) {
	var allExist bool
	for _, f := range sqlFunctions {
		err := db.QueryRow(
			`SELECT EXISTS(SELECT 1 FROM pg_proc WHERE proname = $1);`,
			f,
		).Scan(&allExist)
		if err != nil {
			return false, fmt.Errorf("error checking existence of function %s: %w", f, err)
		}
		if !allExist {
			log.Printf("Function %s does not exist", f)
			break
		}
	}
	return allExist, nil
}
