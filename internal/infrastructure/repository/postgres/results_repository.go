package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/league-standings/internal/domain/standings"
)

const (
	selectLastUpdatedSQL = `
		SELECT last_updated
		FROM results_metadata
		WHERE id = 1`

	selectRosterSQL = `
		SELECT team_name
		FROM league_roster
		WHERE deleted_at IS NULL
		ORDER BY sort_order, id`

	selectMatchdaysSQL = `
		SELECT id, name
		FROM matchdays
		WHERE deleted_at IS NULL
		ORDER BY sort_order, id`

	selectMatchesSQL = `
		SELECT m.matchday_id, m.home_team, m.away_team, m.score
		FROM matches m
		JOIN matchdays d ON d.id = m.matchday_id AND d.deleted_at IS NULL
		WHERE m.deleted_at IS NULL
		ORDER BY m.matchday_id, m.sort_order, m.id`
)

// ResultsRepository reads the results document from Postgres. All queries run
// in one read-only repeatable-read transaction so the document is consistent.
type ResultsRepository struct {
	db *sqlx.DB
}

func NewResultsRepository(db *sqlx.DB) *ResultsRepository {
	return &ResultsRepository{db: db}
}

func (r *ResultsRepository) Name() string {
	return "postgres"
}

func (r *ResultsRepository) Load(ctx context.Context) (standings.Document, error) {
	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	if err != nil {
		return standings.Document{}, fmt.Errorf("begin tx load results: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var lastUpdated string
	if err := tx.GetContext(ctx, &lastUpdated, selectLastUpdatedSQL); err != nil && !isNotFound(err) {
		return standings.Document{}, fmt.Errorf("get results metadata: %w", err)
	}

	var roster []rosterTableModel
	if err := tx.SelectContext(ctx, &roster, selectRosterSQL); err != nil {
		return standings.Document{}, fmt.Errorf("list league roster: %w", err)
	}

	var matchdays []matchdayTableModel
	if err := tx.SelectContext(ctx, &matchdays, selectMatchdaysSQL); err != nil {
		return standings.Document{}, fmt.Errorf("list matchdays: %w", err)
	}

	var matches []matchTableModel
	if err := tx.SelectContext(ctx, &matches, selectMatchesSQL); err != nil {
		return standings.Document{}, fmt.Errorf("list matches: %w", err)
	}

	return buildDocument(lastUpdated, roster, matchdays, matches), nil
}

// buildDocument assembles rows into a normalised document. Matchdays keep the
// given order; matches pointing to an unknown matchday are dropped.
func buildDocument(lastUpdated string, roster []rosterTableModel, matchdays []matchdayTableModel, matches []matchTableModel) standings.Document {
	doc := standings.Document{
		LastUpdated: lastUpdated,
		Roster:      make([]string, 0, len(roster)),
		Matchdays:   make([]standings.Matchday, 0, len(matchdays)),
	}
	for _, row := range roster {
		doc.Roster = append(doc.Roster, row.TeamName)
	}

	indexByID := make(map[int64]int, len(matchdays))
	for _, row := range matchdays {
		// matchdays.name is NOT NULL DEFAULT '', so '' is the stored form of
		// a missing name.
		name := strings.TrimSpace(row.Name)
		if name == "" {
			name = standings.DefaultMatchdayName
		}
		indexByID[row.ID] = len(doc.Matchdays)
		doc.Matchdays = append(doc.Matchdays, standings.Matchday{Name: name})
	}

	for _, row := range matches {
		idx, ok := indexByID[row.MatchdayID]
		if !ok {
			continue
		}
		score := standings.UnsetScore
		if row.Score.Valid {
			score = row.Score.String
		}
		doc.Matchdays[idx].Matches = append(doc.Matchdays[idx].Matches, standings.Match{
			Home:  row.HomeTeam,
			Away:  row.AwayTeam,
			Score: score,
		})
	}

	return standings.NormalizeDocument(doc)
}
