package storage

import (
	"database/sql"
	"errors"
	"fmt"
)

// LoadHighScore returns the stored high score for a game, 0 if none.
func (s *Store) LoadHighScore(gameID string) (int, error) {
	var value int
	err := s.db.QueryRow(
		"SELECT value FROM high_scores WHERE game_id = ?",
		gameID,
	).Scan(&value)

	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}
	return value, nil
}

// SaveHighScore overwrites the stored high score for a game.
// Resetting is a save of 0.
func (s *Store) SaveHighScore(gameID string, value int) error {
	_, err := s.db.Exec(
		`INSERT INTO high_scores (game_id, value, updated_at)
		 VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(game_id) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		gameID, value,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save high score: %w", err)
	}
	return nil
}

// HighScores binds the high-score scalar of one game to a Store.
type HighScores struct {
	store  *Store
	gameID string
}

// HighScoresFor returns the high-score accessor for gameID.
func (s *Store) HighScoresFor(gameID string) HighScores {
	return HighScores{store: s, gameID: gameID}
}

// LoadHighScore returns the stored value.
func (h HighScores) LoadHighScore() (int, error) {
	return h.store.LoadHighScore(h.gameID)
}

// SaveHighScore stores value.
func (h HighScores) SaveHighScore(value int) error {
	return h.store.SaveHighScore(h.gameID, value)
}
