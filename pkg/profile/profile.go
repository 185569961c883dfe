// Package profile orchestrates a full data-quality run: type
// inference, the five checks, scoring, and assembly of the summary and
// issue tables.
package profile

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/probelens-labs/probelens/pkg/checks"
	"github.com/probelens-labs/probelens/pkg/dataset"
	"github.com/probelens-labs/probelens/pkg/rules"
	"github.com/probelens-labs/probelens/pkg/score"
)

// GlobalRow is the column label of the dataset-wide summary row.
const GlobalRow = "__global__"

// Options configure a profiling run.
type Options struct {
	IDColumns []string
	RulesPath string
	Weights   score.Weights
	Logger    *slog.Logger
}

// SummaryRow is one row of the summary table. Per-column rows carry the
// column's completeness, validity, and outlier numbers; the __global__
// row carries dataset-wide totals plus the composite score.
type SummaryRow struct {
	Column       string             `json:"column"`
	InferredType dataset.ColumnType `json:"inferred_type,omitempty"`

	MissingCount int     `json:"missing_count"`
	MissingPct   float64 `json:"missing_pct"`
	InvalidCount int     `json:"invalid_count"`
	InvalidPct   float64 `json:"invalid_pct"`
	OutlierCount int     `json:"outlier_count"`
	OutlierPct   float64 `json:"outlier_pct"`

	// set on the __global__ row only
	DuplicateRowsCount      int      `json:"duplicate_rows_count,omitempty"`
	DuplicateRowsPct        float64  `json:"duplicate_rows_pct,omitempty"`
	ConsistencyInvalidCount int      `json:"consistency_invalid_count,omitempty"`
	ConsistencyInvalidPct   float64  `json:"consistency_invalid_pct,omitempty"`
	ScoreTotal              *float64 `json:"score_total,omitempty"`
}

// Metrics bundles the raw output of every check.
type Metrics struct {
	Completeness checks.CompletenessMetrics `json:"completeness"`
	Uniqueness   checks.UniquenessMetrics   `json:"uniqueness"`
	Validity     checks.ValidityMetrics     `json:"validity"`
	Outliers     checks.OutlierMetrics      `json:"outliers"`
	Consistency  checks.ConsistencyMetrics  `json:"consistency"`
}

// Metadata describes the run itself.
type Metadata struct {
	RunID       string    `json:"run_id"`
	RowCount    int       `json:"row_count"`
	ColumnCount int       `json:"column_count"`
	GeneratedAt time.Time `json:"generated_at"`
	RulesPath   string    `json:"rules_path,omitempty"`
	IDColumns   []string  `json:"id_cols,omitempty"`
}

// Result is the complete output of one profiling run.
type Result struct {
	Summary       []SummaryRow                  `json:"summary"`
	Issues        []checks.Issue                `json:"issues"`
	Scores        score.Scores                  `json:"scores"`
	Metrics       Metrics                       `json:"metrics"`
	InferredTypes map[string]dataset.ColumnType `json:"inferred_types"`
	Metadata      Metadata                      `json:"metadata"`
}

// Run profiles the dataset. The five checks run concurrently over the
// immutable dataset; their issues are concatenated in a fixed order
// before sorting, so equal counts keep a deterministic relative order.
// Malformed row rules and rules referencing absent columns surface as
// issues, never as errors, so Run only fails on context cancellation.
func Run(ctx context.Context, ds *dataset.Dataset, rs *rules.Set, opts Options) (*Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	weights := opts.Weights
	if weights == (score.Weights{}) {
		weights = score.DefaultWeights()
	}

	logger.Info("profiling dataset", "rows", ds.NumRows(), "columns", ds.NumCols())
	inferred := dataset.InferTypes(ds)

	var missingRuleCols []string
	var uniqueKeys [][]string
	if rs != nil {
		missingRuleCols = rs.MissingColumns(ds)
		uniqueKeys = rs.UniqueKeys
		if len(missingRuleCols) > 0 {
			logger.Warn("rules reference missing columns", "columns", missingRuleCols)
		}
	}

	var (
		metrics Metrics
		// one slot per check, concatenated in canonical order below
		completenessIssues []checks.Issue
		uniquenessIssues   []checks.Issue
		validityIssues     []checks.Issue
		outlierIssues      []checks.Issue
		consistencyIssues  []checks.Issue
	)

	var g errgroup.Group
	g.Go(func() error {
		metrics.Completeness, completenessIssues = checks.Completeness(ds)
		return nil
	})
	g.Go(func() error {
		metrics.Uniqueness, uniquenessIssues = checks.Uniqueness(ds, opts.IDColumns, uniqueKeys)
		return nil
	})
	g.Go(func() error {
		metrics.Validity, validityIssues = checks.Validity(ds, rs, inferred)
		return nil
	})
	g.Go(func() error {
		metrics.Outliers, outlierIssues = checks.Outliers(ds, inferred)
		return nil
	})
	g.Go(func() error {
		metrics.Consistency, consistencyIssues = checks.Consistency(ds, rs)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	issues := make([]checks.Issue, 0,
		len(completenessIssues)+len(uniquenessIssues)+len(validityIssues)+
			len(outlierIssues)+len(consistencyIssues)+len(missingRuleCols))
	issues = append(issues, completenessIssues...)
	issues = append(issues, uniquenessIssues...)
	issues = append(issues, validityIssues...)
	issues = append(issues, outlierIssues...)
	issues = append(issues, consistencyIssues...)
	for _, col := range missingRuleCols {
		issues = append(issues, checks.Issue{
			Kind:    checks.IssueMissingRuleColumn,
			Columns: []string{col},
			Count:   1,
		})
	}
	sort.SliceStable(issues, func(i, j int) bool {
		return issues[i].Count > issues[j].Count
	})

	duplicateKeyPct := 0.0
	for _, key := range metrics.Uniqueness.DuplicatesOnKey {
		if key.Pct > duplicateKeyPct {
			duplicateKeyPct = key.Pct
		}
	}

	scores := score.Compute(score.Inputs{
		MissingPct:       metrics.Completeness.Global.Pct,
		InvalidPct:       metrics.Validity.Global.Pct,
		DuplicateRowsPct: metrics.Uniqueness.DuplicateRows.Pct,
		DuplicateKeyPct:  duplicateKeyPct,
		ConsistencyPct:   metrics.Consistency.Global.Pct,
		OutlierPct:       metrics.Outliers.Global.Pct,
	}, weights)

	result := &Result{
		Summary:       buildSummary(ds, inferred, metrics, scores),
		Issues:        issues,
		Scores:        scores,
		Metrics:       metrics,
		InferredTypes: inferred,
		Metadata: Metadata{
			RunID:       uuid.NewString(),
			RowCount:    ds.NumRows(),
			ColumnCount: ds.NumCols(),
			GeneratedAt: time.Now().UTC().Truncate(time.Second),
			RulesPath:   opts.RulesPath,
			IDColumns:   opts.IDColumns,
		},
	}
	logger.Info("profile complete", "issues", len(issues), "score", scores.Total)
	return result, nil
}

func buildSummary(ds *dataset.Dataset, inferred map[string]dataset.ColumnType, m Metrics, s score.Scores) []SummaryRow {
	summary := make([]SummaryRow, 0, ds.NumCols()+1)
	for _, name := range ds.ColumnNames() {
		row := SummaryRow{Column: name, InferredType: inferred[name]}
		if c, ok := m.Completeness.Columns[name]; ok {
			row.MissingCount, row.MissingPct = c.Count, c.Pct
		}
		if v, ok := m.Validity.Columns[name]; ok {
			row.InvalidCount, row.InvalidPct = v.Invalid.Count, v.Invalid.Pct
		}
		if o, ok := m.Outliers.Columns[name]; ok {
			row.OutlierCount, row.OutlierPct = o.Count, o.Pct
		}
		summary = append(summary, row)
	}

	total := s.Total
	summary = append(summary, SummaryRow{
		Column:                  GlobalRow,
		MissingCount:            m.Completeness.Global.Count,
		MissingPct:              m.Completeness.Global.Pct,
		InvalidCount:            m.Validity.Global.Count,
		InvalidPct:              m.Validity.Global.Pct,
		OutlierCount:            m.Outliers.Global.Count,
		OutlierPct:              m.Outliers.Global.Pct,
		DuplicateRowsCount:      m.Uniqueness.DuplicateRows.Count,
		DuplicateRowsPct:        m.Uniqueness.DuplicateRows.Pct,
		ConsistencyInvalidCount: m.Consistency.Global.Count,
		ConsistencyInvalidPct:   m.Consistency.Global.Pct,
		ScoreTotal:              &total,
	})
	return summary
}
