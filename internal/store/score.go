package store

import (
	"database/sql"
	"time"
)

// HighScore represents one finished round's score.
type HighScore struct {
	ID         int64
	UserID     string
	UserName   string
	Game       string
	Score      int
	Difficulty string
	CreatedAt  time.Time
}

// ScoreRepository provides operations for high scores.
type ScoreRepository struct {
	db *sql.DB
}

// Scores returns the high-score repository for this store.
func (s *Store) Scores() *ScoreRepository {
	return &ScoreRepository{db: s.db}
}

// Record inserts a finished round's score.
func (r *ScoreRepository) Record(h *HighScore) error {
	h.CreatedAt = time.Now()

	result, err := r.db.Exec(
		`INSERT INTO high_scores (user_id, game, score, difficulty, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		h.UserID, h.Game, h.Score, h.Difficulty, h.CreatedAt,
	)
	if err != nil {
		return err
	}

	h.ID, err = result.LastInsertId()
	return err
}

// Top returns the highest scores for a game, best first, joined with the
// player's name.
func (r *ScoreRepository) Top(game string, limit int) ([]*HighScore, error) {
	rows, err := r.db.Query(
		`SELECT h.id, h.user_id, u.name, h.game, h.score, h.difficulty, h.created_at
		 FROM high_scores h
		 JOIN users u ON u.id = h.user_id
		 WHERE h.game = ?
		 ORDER BY h.score DESC, h.created_at ASC
		 LIMIT ?`,
		game, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanScores(rows)
}

// ForUser returns a player's scores across all games, newest first.
func (r *ScoreRepository) ForUser(userID string) ([]*HighScore, error) {
	rows, err := r.db.Query(
		`SELECT h.id, h.user_id, u.name, h.game, h.score, h.difficulty, h.created_at
		 FROM high_scores h
		 JOIN users u ON u.id = h.user_id
		 WHERE h.user_id = ?
		 ORDER BY h.created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanScores(rows)
}

// Best returns a player's best score for a game, or ErrNotFound if they
// have never finished a round of it.
func (r *ScoreRepository) Best(userID, game string) (*HighScore, error) {
	h := &HighScore{}

	err := r.db.QueryRow(
		`SELECT h.id, h.user_id, u.name, h.game, h.score, h.difficulty, h.created_at
		 FROM high_scores h
		 JOIN users u ON u.id = h.user_id
		 WHERE h.user_id = ? AND h.game = ?
		 ORDER BY h.score DESC, h.created_at ASC
		 LIMIT 1`,
		userID, game,
	).Scan(&h.ID, &h.UserID, &h.UserName, &h.Game, &h.Score, &h.Difficulty, &h.CreatedAt)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return h, nil
}

func scanScores(rows *sql.Rows) ([]*HighScore, error) {
	var scores []*HighScore
	for rows.Next() {
		h := &HighScore{}
		err := rows.Scan(&h.ID, &h.UserID, &h.UserName, &h.Game, &h.Score, &h.Difficulty, &h.CreatedAt)
		if err != nil {
			return nil, err
		}
		scores = append(scores, h)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return scores, nil
}
