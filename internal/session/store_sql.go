package session

import (
	"database/sql"
	"encoding/json"
	"errors"
)

// SQLStore persists sets and archived sessions in the schema created by
// internal/db. Placeholder syntax is $n, which both pgx and modernc sqlite
// accept.
type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore { return &SQLStore{db: db} }

func (s *SQLStore) PutSet(set ExerciseSet) error {
	ej, err := json.Marshal(set.Exercises)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`INSERT INTO exercise_sets (id,title,exercises_json,created_at)
		VALUES ($1,$2,$3,$4)
		ON CONFLICT (id) DO UPDATE SET title=EXCLUDED.title, exercises_json=EXCLUDED.exercises_json`,
		set.ID, set.Title, string(ej), set.CreatedAt)
	return err
}

func (s *SQLStore) GetSet(id string) (ExerciseSet, error) {
	row := s.db.QueryRow(`SELECT id,title,exercises_json,created_at FROM exercise_sets WHERE id=$1`, id)
	var set ExerciseSet
	var ejson string
	if err := row.Scan(&set.ID, &set.Title, &ejson, &set.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ExerciseSet{}, ErrSetNotFound
		}
		return ExerciseSet{}, err
	}
	if err := json.Unmarshal([]byte(ejson), &set.Exercises); err != nil {
		return ExerciseSet{}, err
	}
	return set, nil
}

func (s *SQLStore) ListSets() ([]ExerciseSet, error) {
	rows, err := s.db.Query(`SELECT id,title,exercises_json,created_at FROM exercise_sets ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []ExerciseSet
	for rows.Next() {
		var set ExerciseSet
		var ejson string
		if err := rows.Scan(&set.ID, &set.Title, &ejson, &set.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(ejson), &set.Exercises); err != nil {
			return nil, err
		}
		out = append(out, set)
	}
	return out, rows.Err()
}

func (s *SQLStore) ArchiveSession(r Record) error {
	hj, err := json.Marshal(r.History)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`INSERT INTO session_archive
		(id,set_id,user_id,state,score,max_score,accuracy,elapsed_sec,history_json,started_at,finished_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		ON CONFLICT (id) DO UPDATE SET state=EXCLUDED.state, score=EXCLUDED.score,
			accuracy=EXCLUDED.accuracy, elapsed_sec=EXCLUDED.elapsed_sec,
			history_json=EXCLUDED.history_json, finished_at=EXCLUDED.finished_at`,
		r.ID, r.SetID, r.UserID, string(r.State), r.Score, r.MaxScore, r.Accuracy,
		r.ElapsedSeconds, string(hj), r.StartedAt, r.FinishedAt)
	return err
}

func (s *SQLStore) GetSession(id string) (Record, error) {
	row := s.db.QueryRow(`SELECT id,set_id,user_id,state,score,max_score,accuracy,elapsed_sec,history_json,started_at,finished_at
		FROM session_archive WHERE id=$1`, id)
	return scanRecord(row)
}

func (s *SQLStore) ListSessions(userID string) ([]Record, error) {
	q := `SELECT id,set_id,user_id,state,score,max_score,accuracy,elapsed_sec,history_json,started_at,finished_at
		FROM session_archive`
	args := []any{}
	if userID != "" {
		q += ` WHERE user_id=$1`
		args = append(args, userID)
	}
	q += ` ORDER BY finished_at DESC`
	rows, err := s.db.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Record
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

type rowScanner interface{ Scan(dest ...any) error }

func scanRecord(row rowScanner) (Record, error) {
	var r Record
	var state, hjson string
	err := row.Scan(&r.ID, &r.SetID, &r.UserID, &state, &r.Score, &r.MaxScore,
		&r.Accuracy, &r.ElapsedSeconds, &hjson, &r.StartedAt, &r.FinishedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, ErrSessionNotFound
		}
		return Record{}, err
	}
	r.State = State(state)
	if err := json.Unmarshal([]byte(hjson), &r.History); err != nil {
		r.History = nil
	}
	return r, nil
}
