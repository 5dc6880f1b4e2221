package chartstorage

import (
	"context"
	"database/sql"
	"encoding/json"

	chartentity "github.com/veedubyou/vocal-split/src/shared/chart/entity"
	"github.com/veedubyou/vocal-split/src/shared/lib/cerr"
	"github.com/veedubyou/vocal-split/src/shared/lib/errors/mark"

	_ "modernc.org/sqlite"
)

const createChartsTableSQL = `
CREATE TABLE IF NOT EXISTS charts (
	song_key     TEXT PRIMARY KEY,
	starting_bpm REAL NOT NULL,
	player       TEXT NOT NULL,
	opponent     TEXT NOT NULL,
	sections     TEXT NOT NULL
)`

var _ chartentity.Loader = &SQLiteDB{}

type SQLiteDB struct {
	db *sql.DB
}

func OpenSQLite(path string) (*SQLiteDB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, cerr.Field("path", path).
			Wrap(mark.Wrap(err, ReadMark, "Failed to open sqlite database")).
			Error("Cannot open chart database")
	}

	// an in-memory database only lives as long as its one connection
	db.SetMaxOpenConns(1)

	sqliteDB := &SQLiteDB{db: db}
	if err := sqliteDB.ensureSchema(); err != nil {
		_ = db.Close()
		return nil, cerr.Field("path", path).Wrap(err).Error("Cannot prepare chart database")
	}

	return sqliteDB, nil
}

func (s *SQLiteDB) ensureSchema() error {
	if _, err := s.db.Exec(createChartsTableSQL); err != nil {
		return mark.Wrap(err, DefaultErrorMark, "Failed to create charts table")
	}

	return nil
}

func (s *SQLiteDB) Close() error {
	return s.db.Close()
}

func (s *SQLiteDB) PutChart(ctx context.Context, chart chartentity.Chart) error {
	errctx := cerr.Field("song_key", chart.SongKey)

	sections, err := json.Marshal(chart.Sections)
	if err != nil {
		return errctx.Wrap(mark.Wrap(err, MarshalMark, "Failed to marshal sections")).
			Error("Failed to put chart")
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO charts (song_key, starting_bpm, player, opponent, sections)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(song_key) DO UPDATE SET
			starting_bpm = excluded.starting_bpm,
			player = excluded.player,
			opponent = excluded.opponent,
			sections = excluded.sections`,
		chart.SongKey, chart.StartingBPM, chart.Player, chart.Opponent, string(sections))

	if err != nil {
		return errctx.Wrap(mark.Wrap(err, DefaultErrorMark, "Failed to upsert chart row")).
			Error("Failed to put chart")
	}

	return nil
}

func (s *SQLiteDB) LoadCharts(ctx context.Context) ([]chartentity.Chart, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT song_key, starting_bpm, player, opponent, sections
		FROM charts
		ORDER BY song_key`)
	if err != nil {
		return nil, mark.Wrap(err, ReadMark, "Failed to query charts")
	}

	defer rows.Close()

	charts := []chartentity.Chart{}
	for rows.Next() {
		chart := chartentity.Chart{}
		var sections string

		if err := rows.Scan(&chart.SongKey, &chart.StartingBPM, &chart.Player, &chart.Opponent, &sections); err != nil {
			return nil, mark.Wrap(err, ReadMark, "Failed to scan chart row")
		}

		if err := json.Unmarshal([]byte(sections), &chart.Sections); err != nil {
			return nil, cerr.Field("song_key", chart.SongKey).
				Wrap(mark.Wrap(err, UnmarshalMark, "Sections column is not a section array")).
				Error("Failed to load chart")
		}

		charts = append(charts, chart)
	}

	if err := rows.Err(); err != nil {
		return nil, mark.Wrap(err, ReadMark, "Failed to iterate chart rows")
	}

	return charts, nil
}
