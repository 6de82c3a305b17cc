package companygraph

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/siherrmann/companygraph/core/analysis"
	"github.com/siherrmann/companygraph/core/graph"
	"github.com/siherrmann/companygraph/core/provider"
	"github.com/siherrmann/companygraph/core/render"
	"github.com/siherrmann/companygraph/database"
	"github.com/siherrmann/companygraph/helper"
	"github.com/siherrmann/companygraph/model"
	loadSql "github.com/siherrmann/companygraph/sql"
)

// CompanyGraph resolves company profiles, builds their relationship graphs and
// produces credit reports. With a database attached, profiles are looked up in
// Postgres first and every analysis is persisted.
type CompanyGraph struct {
	DB       *helper.Database
	Profiles *database.ProfilesDBHandler
	Graphs   *database.GraphsDBHandler
	Reports  *database.ReportsDBHandler
	Resolver *provider.Resolver
	Analyzer *analysis.Analyzer

	buildConfig model.BuildConfig
	outputDir   string
	now         func() time.Time
	// Logging
	log *slog.Logger
}

type options struct {
	buildConfig model.BuildConfig
	analyzer    *analysis.Analyzer
	providers   []provider.Provider
	samples     bool
	cacheSize   int
	outputDir   string
	logger      *slog.Logger
	now         func() time.Time
}

// Option configures a CompanyGraph
type Option func(*options)

// WithBuildConfig sets the node and edge policies of the graph builder
func WithBuildConfig(config model.BuildConfig) Option {
	return func(o *options) {
		o.buildConfig = config
	}
}

// WithAnalyzer sets the analyzer used for credit reports
func WithAnalyzer(analyzer *analysis.Analyzer) Option {
	return func(o *options) {
		o.analyzer = analyzer
	}
}

// WithProvider adds a profile provider. Providers are asked in the order they were added,
// before the bundled sample companies.
func WithProvider(p provider.Provider) Option {
	return func(o *options) {
		o.providers = append(o.providers, p)
	}
}

// WithoutSampleData removes the bundled sample companies from the provider chain
func WithoutSampleData() Option {
	return func(o *options) {
		o.samples = false
	}
}

// WithCacheSize sets the number of resolved profiles kept in memory
func WithCacheSize(size int) Option {
	return func(o *options) {
		if size > 0 {
			o.cacheSize = size
		}
	}
}

// WithOutputDir sets the default directory for saved analyses
func WithOutputDir(dir string) Option {
	return func(o *options) {
		o.outputDir = dir
	}
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithConfiguration applies output dir, log level, seed and cache size from an environment configuration
func WithConfiguration(config *helper.Configuration) Option {
	return func(o *options) {
		if config == nil {
			return
		}
		o.outputDir = config.OutputDir
		o.logger = helper.NewLogger(os.Stdout, config.LogLevel)
		if config.CacheSize > 0 {
			o.cacheSize = config.CacheSize
		}
		if config.Seed != 0 {
			o.analyzer = analysis.NewAnalyzer(analysis.WithSeed(config.Seed))
		}
	}
}

// withClock sets the clock used for analysis timestamps
func withClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

func newOptions(opts []Option) *options {
	o := &options{
		buildConfig: model.DefaultBuildConfig(),
		samples:     true,
		cacheSize:   128,
		outputDir:   ".",
		logger:      helper.NewLogger(os.Stdout, slog.LevelInfo),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.analyzer == nil {
		o.analyzer = analysis.NewAnalyzer()
	}
	return o
}

// New creates an in-memory CompanyGraph backed by the configured providers and the sample companies
func New(opts ...Option) (*CompanyGraph, error) {
	return newCompanyGraph(newOptions(opts), nil)
}

// NewWithDatabase creates a CompanyGraph that reads profiles from and persists analyses to Postgres
func NewWithDatabase(config *helper.DatabaseConfiguration, opts ...Option) (*CompanyGraph, error) {
	o := newOptions(opts)

	db, err := helper.OpenDatabase("companygraph", config, o.logger)
	if err != nil {
		return nil, helper.NewError("open database", err)
	}

	err = loadSql.Init(db.Instance)
	if err != nil {
		db.Close()
		return nil, helper.NewError("initialize database extensions", err)
	}

	// force=false to not reload if functions already exist
	profiles, err := database.NewProfilesDBHandler(db, false)
	if err != nil {
		db.Close()
		return nil, helper.NewError("create profiles handler", err)
	}

	graphs, err := database.NewGraphsDBHandler(db, false)
	if err != nil {
		db.Close()
		return nil, helper.NewError("create graphs handler", err)
	}

	reports, err := database.NewReportsDBHandler(db, false)
	if err != nil {
		db.Close()
		return nil, helper.NewError("create reports handler", err)
	}

	cg, err := newCompanyGraph(o, profiles)
	if err != nil {
		db.Close()
		return nil, err
	}

	cg.DB = db
	cg.Profiles = profiles
	cg.Graphs = graphs
	cg.Reports = reports

	return cg, nil
}

func newCompanyGraph(o *options, first provider.Provider) (*CompanyGraph, error) {
	var providers []provider.Provider
	if first != nil {
		providers = append(providers, first)
	}
	providers = append(providers, o.providers...)
	if o.samples {
		providers = append(providers, provider.NewMockProvider())
	}

	resolver, err := provider.NewResolver(o.cacheSize, providers...)
	if err != nil {
		return nil, helper.NewError("create resolver", err)
	}

	return &CompanyGraph{
		Resolver:    resolver,
		Analyzer:    o.analyzer,
		buildConfig: o.buildConfig,
		outputDir:   o.outputDir,
		now:         o.now,
		log:         o.logger,
	}, nil
}

// Close closes the database connection
func (c *CompanyGraph) Close() error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}

// Profile resolves a company profile. found is false when the generic template was used.
func (c *CompanyGraph) Profile(name string) (*model.CompanyProfile, bool, error) {
	profile, found, err := c.Resolver.Resolve(name)
	if err != nil {
		return nil, false, helper.NewError("resolve profile", err)
	}

	if !found {
		c.log.Warn("No profile found, using generic template", slog.String("company", profile.Name))
	}

	return profile, found, nil
}

// BuildGraph resolves a company and builds its relationship graph
func (c *CompanyGraph) BuildGraph(name string) (*model.GraphPayload, error) {
	profile, _, err := c.Profile(name)
	if err != nil {
		return nil, err
	}

	return c.BuildGraphFromProfile(profile)
}

// BuildGraphFromProfile validates profile and builds its relationship graph.
// Every call uses its own builder, so it is safe for concurrent use.
func (c *CompanyGraph) BuildGraphFromProfile(profile *model.CompanyProfile) (*model.GraphPayload, error) {
	if profile == nil {
		return nil, helper.NewError("validate profile", fmt.Errorf("profile is nil"))
	}

	err := helper.ValidateStruct(profile)
	if err != nil {
		return nil, helper.NewError("validate profile", err)
	}

	payload := graph.NewBuilder(c.buildConfig).Build(profile)

	c.log.Debug("Built graph", slog.String("company", profile.Name), slog.Int("nodes", len(payload.Nodes)), slog.Int("edges", len(payload.Edges)))

	return payload, nil
}

// Analyze resolves a company, builds its graph and generates a credit report.
// With a database attached, the graph and report are stored and their ids set on the result.
// ctx is checked before the analysis starts and between the persistence steps.
func (c *CompanyGraph) Analyze(ctx context.Context, name string) (*model.Analysis, error) {
	if err := ctx.Err(); err != nil {
		return nil, helper.NewError("analyze", err)
	}

	profile, found, err := c.Profile(name)
	if err != nil {
		return nil, err
	}

	payload, err := c.BuildGraphFromProfile(profile)
	if err != nil {
		return nil, err
	}

	result := &model.Analysis{
		Company:    profile.Name,
		Found:      found,
		Profile:    profile,
		Graph:      payload,
		Stats:      graph.Stats(payload),
		Report:     c.Analyzer.GenerateCreditReport(profile, payload),
		AnalyzedAt: c.now(),
	}

	if c.DB != nil {
		err = persistAnalysis(ctx, c.Graphs, c.Reports, result, c.log)
		if err != nil {
			return nil, err
		}
	} else if err := ctx.Err(); err != nil {
		return nil, helper.NewError("analyze", err)
	}

	c.log.Info("Analyzed company", slog.String("company", result.Company), slog.Bool("found", found), slog.Int("nodes", result.Stats.Nodes), slog.Int("edges", result.Stats.Edges))

	return result, nil
}

// persistAnalysis stores the graph and then the report of result. When the report
// cannot be stored, the graph row is deleted again so no orphan is left behind.
func persistAnalysis(ctx context.Context, graphs database.GraphsDBHandlerFunctions, reports database.ReportsDBHandlerFunctions, result *model.Analysis, log *slog.Logger) error {
	if err := ctx.Err(); err != nil {
		return helper.NewError("persist analysis", err)
	}

	storedGraph, err := graphs.InsertGraph(result.Company, result.Graph)
	if err != nil {
		return helper.NewError("insert graph", err)
	}

	err = ctx.Err()
	if err == nil {
		var storedReport *model.StoredReport
		storedReport, err = reports.InsertReport(result.Company, result.Report)
		if err == nil {
			result.GraphID = &storedGraph.ID
			result.ReportID = &storedReport.ID
			return nil
		}
		err = helper.NewError("insert report", err)
	} else {
		err = helper.NewError("persist analysis", err)
	}

	deleteErr := graphs.DeleteGraph(storedGraph.ID)
	if deleteErr != nil {
		log.Error("Error deleting orphaned graph", slog.String("id", storedGraph.ID.String()), slog.String("error", deleteErr.Error()))
	}

	return err
}

// ImportProfile validates and stores a profile in the database and drops any cached copy
func (c *CompanyGraph) ImportProfile(profile *model.CompanyProfile) (*model.StoredProfile, error) {
	if c.Profiles == nil {
		return nil, helper.NewError("import profile", fmt.Errorf("no database attached"))
	}
	if profile == nil {
		return nil, helper.NewError("validate profile", fmt.Errorf("profile is nil"))
	}

	err := helper.ValidateStruct(profile)
	if err != nil {
		return nil, helper.NewError("validate profile", err)
	}

	stored, err := c.Profiles.UpsertProfile(profile)
	if err != nil {
		return nil, helper.NewError("upsert profile", err)
	}
	c.Resolver.Invalidate(profile.Name)

	c.log.Info("Imported profile", slog.String("company", profile.Name))

	return stored, nil
}

// Neighborhood returns the sub-graph of a company's graph within hops of entityID, in both directions
func (c *CompanyGraph) Neighborhood(name string, entityID string, hops int) (*model.GraphPayload, error) {
	payload, err := c.BuildGraph(name)
	if err != nil {
		return nil, err
	}

	neighborhood, err := graph.Neighborhood(payload, entityID, hops)
	if err != nil {
		return nil, helper.NewError("neighborhood", err)
	}

	return neighborhood, nil
}

// RenderGraph renders payload as an interactive HTML page
func (c *CompanyGraph) RenderGraph(payload *model.GraphPayload, title string) (string, error) {
	html, err := render.RenderHTML(payload, render.Options{Title: title})
	if err != nil {
		return "", helper.NewError("render graph", err)
	}
	return html, nil
}

// SaveAnalysis writes result as analysis_<company>_<timestamp>.json into dir.
// An empty dir uses the configured output directory.
func (c *CompanyGraph) SaveAnalysis(dir string, result *model.Analysis) (string, error) {
	if result == nil {
		return "", helper.NewError("save analysis", fmt.Errorf("analysis is nil"))
	}
	if dir == "" {
		dir = c.outputDir
	}

	path, err := analysis.SaveAnalysisResult(dir, result.Company, result, result.AnalyzedAt)
	if err != nil {
		return "", helper.NewError("save analysis", err)
	}

	c.log.Info("Saved analysis", slog.String("company", result.Company), slog.String("path", path))

	return path, nil
}
