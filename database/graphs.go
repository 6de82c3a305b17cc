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

// GraphsDBHandlerFunctions defines the interface for Graphs database operations.
type GraphsDBHandlerFunctions interface {
	InsertGraph(companyName string, payload *model.GraphPayload) (*model.StoredGraph, error)
	SelectGraph(id uuid.UUID) (*model.StoredGraph, error)
	SelectLatestGraph(companyName string) (*model.StoredGraph, error)
	SelectGraphsByCompany(companyName string, limit int) ([]*model.StoredGraph, error)
	DeleteGraph(id uuid.UUID) error
}

// GraphsDBHandler handles graph payload database operations
type GraphsDBHandler struct {
	db *helper.Database
}

// NewGraphsDBHandler creates a new graphs database handler.
// It initializes the database connection and loads graph-related SQL functions.
// If force is true, it will reload the SQL functions even if they already exist.
func NewGraphsDBHandler(db *helper.Database, force bool) (*GraphsDBHandler, error) {
	if db == nil {
		return nil, helper.NewError("database connection validation", fmt.Errorf("database connection is nil"))
	}

	graphsDbHandler := &GraphsDBHandler{
		db: db,
	}

	err := loadSql.LoadGraphsSql(graphsDbHandler.db.Instance, force)
	if err != nil {
		return nil, helper.NewError("load graphs sql", err)
	}

	err = graphsDbHandler.CreateTable()
	if err != nil {
		return nil, helper.NewError("create table", err)
	}

	db.Logger.Info("Initialized GraphsDBHandler")

	return graphsDbHandler, nil
}

// CreateTable creates the 'graphs' table and its indexes if they do not exist.
func (h *GraphsDBHandler) CreateTable() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := h.db.Instance.ExecContext(ctx, `SELECT init_graphs();`)
	if err != nil {
		log.Panicf("error initializing graphs table: %#v", err)
	}

	h.db.Logger.Info("Checked/created table graphs")

	return nil
}

// InsertGraph stores a payload for a company under a new id.
// Node and edge counts are stored alongside for listing without decoding the payload.
func (h *GraphsDBHandler) InsertGraph(companyName string, payload *model.GraphPayload) (*model.StoredGraph, error) {
	if payload == nil {
		payload = &model.GraphPayload{}
	}

	row := h.db.Instance.QueryRow(
		`SELECT * FROM insert_graph($1, $2, $3, $4, $5)`,
		uuid.New(),
		companyName,
		payload,
		len(payload.Nodes),
		len(payload.Edges),
	)

	graph, err := scanGraph(row)
	if err != nil {
		return nil, helper.NewError("scan", err)
	}

	return graph, nil
}

// SelectGraph retrieves a graph by id
func (h *GraphsDBHandler) SelectGraph(id uuid.UUID) (*model.StoredGraph, error) {
	row := h.db.Instance.QueryRow(
		`SELECT * FROM select_graph($1)`,
		id,
	)

	graph, err := scanGraph(row)
	if err != nil {
		return nil, helper.NewError("scan", err)
	}

	return graph, nil
}

// SelectLatestGraph retrieves the most recently stored graph of a company
func (h *GraphsDBHandler) SelectLatestGraph(companyName string) (*model.StoredGraph, error) {
	row := h.db.Instance.QueryRow(
		`SELECT * FROM select_latest_graph($1)`,
		companyName,
	)

	graph, err := scanGraph(row)
	if err != nil {
		return nil, helper.NewError("scan", err)
	}

	return graph, nil
}

// SelectGraphsByCompany retrieves the graphs of a company newest first
func (h *GraphsDBHandler) SelectGraphsByCompany(companyName string, limit int) ([]*model.StoredGraph, error) {
	rows, err := h.db.Instance.Query(
		`SELECT * FROM select_graphs_by_company($1, $2)`,
		companyName,
		limit,
	)
	if err != nil {
		return nil, helper.NewError("query", err)
	}
	defer rows.Close()

	var graphs []*model.StoredGraph
	for rows.Next() {
		graph, err := scanGraph(rows)
		if err != nil {
			return nil, helper.NewError("scan", err)
		}

		graphs = append(graphs, graph)
	}

	err = rows.Err()
	if err != nil {
		return nil, helper.NewError("rows error", err)
	}

	return graphs, nil
}

// DeleteGraph deletes a graph by id
func (h *GraphsDBHandler) DeleteGraph(id uuid.UUID) error {
	_, err := h.db.Instance.Exec(
		`SELECT delete_graph($1)`,
		id,
	)
	if err != nil {
		return helper.NewError("exec", err)
	}
	return nil
}

func scanGraph(row rowScanner) (*model.StoredGraph, error) {
	graph := &model.StoredGraph{}
	err := row.Scan(
		&graph.ID,
		&graph.CompanyName,
		&graph.Payload,
		&graph.NodeCount,
		&graph.EdgeCount,
		&graph.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return graph, nil
}
