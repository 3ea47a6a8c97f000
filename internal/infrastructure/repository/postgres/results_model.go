package postgres

import "database/sql"

type rosterTableModel struct {
	TeamName string `db:"team_name"`
}

type matchdayTableModel struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`
}

type matchTableModel struct {
	MatchdayID int64          `db:"matchday_id"`
	HomeTeam   string         `db:"home_team"`
	AwayTeam   string         `db:"away_team"`
	Score      sql.NullString `db:"score"`
}
