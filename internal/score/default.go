package score

import (
	"database/sql"
	"encoding/json"
	"log"
	"time"

	"git.lost.host/meutraa/beatsmash/internal/game"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
)

type DefaultScorer struct {
	db  *sql.DB
	now func() time.Time
}

func (s *DefaultScorer) Init(path string) error {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return errors.Wrapf(err, "unable to open score database %v", path)
	}

	initStatement := `
	create table if not exists runs
	  (
		  id text not null primary key,
		  sum text not null,
		  grade text,
		  score integer,
		  max_combo integer,
		  completed integer,
		  position real,
		  counts bytearray,
		  played_at integer
	  );
	create index if not exists runs_sum on runs(sum);
	`
	_, err = db.Exec(initStatement)
	if nil != err {
		db.Close()
		return errors.Wrap(err, "unable to create score tables")
	}

	s.db = db
	if nil == s.now {
		s.now = time.Now
	}
	return nil
}

func (s *DefaultScorer) Deinit() {
	if nil != s.db {
		if err := s.db.Close(); nil != err {
			log.Println("unable to close score database", err)
		}
		s.db = nil
	}
}

func (s *DefaultScorer) Save(summary game.Summary) error {
	data, err := json.Marshal(summary.Counts)
	if nil != err {
		return errors.Wrap(err, "unable to marshal counts")
	}
	_, err = s.db.Exec(
		"insert into runs(id, sum, grade, score, max_combo, completed, position, counts, played_at) values(?, ?, ?, ?, ?, ?, ?, ?, ?)",
		uuid.New().String(),
		summary.ChartSum,
		string(summary.Grade),
		summary.Score,
		summary.MaxCombo,
		summary.Completed,
		summary.Position,
		data,
		s.now().UnixNano(),
	)
	return errors.Wrap(err, "unable to save score")
}

func (s *DefaultScorer) Load(sum string) ([]History, error) {
	return s.query("select id, sum, grade, score, max_combo, completed, position, counts, played_at from runs where sum = ? order by played_at desc", sum)
}

func (s *DefaultScorer) Best(sum string) (History, bool, error) {
	histories, err := s.query("select id, sum, grade, score, max_combo, completed, position, counts, played_at from runs where sum = ? order by score desc, played_at asc limit 1", sum)
	if nil != err || len(histories) == 0 {
		return History{}, false, err
	}
	return histories[0], true, nil
}

func (s *DefaultScorer) query(statement string, sum string) ([]History, error) {
	histories := []History{}
	rows, err := s.db.Query(statement, sum)
	if nil != err {
		return histories, errors.Wrap(err, "unable to load scores")
	}
	defer rows.Close()
	for rows.Next() {
		var h History
		var grade string
		var counts []byte
		var playedAt int64
		err := rows.Scan(
			&h.ID,
			&h.Summary.ChartSum,
			&grade,
			&h.Summary.Score,
			&h.Summary.MaxCombo,
			&h.Summary.Completed,
			&h.Summary.Position,
			&counts,
			&playedAt,
		)
		if nil != err {
			return histories, errors.Wrap(err, "unable to scan score")
		}
		if err := json.Unmarshal(counts, &h.Summary.Counts); nil != err {
			log.Println("unable to unmarshal counts of run", h.ID, err)
			continue
		}
		h.Summary.Grade = game.Grade(grade)
		h.PlayedAt = time.Unix(0, playedAt)
		histories = append(histories, h)
	}
	return histories, errors.Wrap(rows.Err(), "unable to read scores")
}
