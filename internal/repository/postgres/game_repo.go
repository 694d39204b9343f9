package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/iamasit07/connect4-tcp/internal/domain"
)

type GameRepo struct {
	DB *sql.DB
}

func NewGameRepo(db *sql.DB) *GameRepo {
	return &GameRepo{DB: db}
}

// GameSummary is one row of the history listing.
type GameSummary struct {
	ID         string            `json:"id"`
	Transport  string            `json:"transport"`
	RemoteAddr string            `json:"remote_addr"`
	Status     domain.GameStatus `json:"status"`
	Winner     domain.Side       `json:"winner"`
	Reason     string            `json:"reason,omitempty"`
	TotalMoves int               `json:"total_moves"`
	CreatedAt  time.Time         `json:"created_at"`
	FinishedAt time.Time         `json:"finished_at"`
}

// SaveGame stores a finished game. Saving the same id again overwrites the
// result columns.
func (r *GameRepo) SaveGame(ctx context.Context, record domain.GameRecord) error {
	movesJSON, err := json.Marshal(record.Moves)
	if err != nil {
		return fmt.Errorf("failed to marshal moves: %w", err)
	}
	boardJSON, err := json.Marshal(record.Board)
	if err != nil {
		return fmt.Errorf("failed to marshal board state: %w", err)
	}

	query := `
	INSERT INTO game (game_id, transport, remote_addr, status, winner, reason, total_moves, moves, board_state, created_at, finished_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	ON CONFLICT (game_id) DO UPDATE SET
		status = EXCLUDED.status,
		winner = EXCLUDED.winner,
		reason = EXCLUDED.reason,
		total_moves = EXCLUDED.total_moves,
		moves = EXCLUDED.moves,
		board_state = EXCLUDED.board_state,
		finished_at = EXCLUDED.finished_at;
	`

	_, err = r.DB.ExecContext(ctx, query,
		record.ID,
		record.Transport,
		record.RemoteAddr,
		string(record.Status),
		int(record.Winner),
		record.Reason,
		len(record.Moves),
		string(movesJSON),
		string(boardJSON),
		record.CreatedAt,
		record.FinishedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert game record: %w", err)
	}
	return nil
}

// GetGameByID returns nil, nil when no game has that id.
func (r *GameRepo) GetGameByID(ctx context.Context, gameID string) (*domain.GameRecord, error) {
	query := `
	SELECT game_id, transport, remote_addr, status, winner, reason, moves, board_state, created_at, finished_at
	FROM game
	WHERE game_id = $1;
	`

	var (
		record    domain.GameRecord
		status    string
		winner    int
		movesJSON []byte
		boardJSON []byte
	)
	err := r.DB.QueryRowContext(ctx, query, gameID).Scan(
		&record.ID,
		&record.Transport,
		&record.RemoteAddr,
		&status,
		&winner,
		&record.Reason,
		&movesJSON,
		&boardJSON,
		&record.CreatedAt,
		&record.FinishedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get game by ID: %w", err)
	}

	record.Status = domain.GameStatus(status)
	record.Winner = domain.Side(winner)
	if len(movesJSON) > 0 {
		if err := json.Unmarshal(movesJSON, &record.Moves); err != nil {
			return nil, fmt.Errorf("failed to unmarshal moves: %w", err)
		}
	}
	if len(boardJSON) > 0 {
		if err := json.Unmarshal(boardJSON, &record.Board); err != nil {
			return nil, fmt.Errorf("failed to unmarshal board state: %w", err)
		}
	}

	return &record, nil
}

// ListGames returns the most recently finished games first.
func (r *GameRepo) ListGames(ctx context.Context, limit int) ([]GameSummary, error) {
	query := `
	SELECT game_id, transport, remote_addr, status, winner, reason, total_moves, created_at, finished_at
	FROM game
	ORDER BY finished_at DESC
	LIMIT $1;
	`

	rows, err := r.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query game history: %w", err)
	}
	defer rows.Close()

	games := make([]GameSummary, 0)
	for rows.Next() {
		var (
			g      GameSummary
			status string
			winner int
		)
		if err := rows.Scan(
			&g.ID,
			&g.Transport,
			&g.RemoteAddr,
			&status,
			&winner,
			&g.Reason,
			&g.TotalMoves,
			&g.CreatedAt,
			&g.FinishedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan game row: %w", err)
		}
		g.Status = domain.GameStatus(status)
		g.Winner = domain.Side(winner)
		games = append(games, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate game rows: %w", err)
	}

	return games, nil
}

// DeleteGamesOlderThan removes games that finished before cutoff.
func (r *GameRepo) DeleteGamesOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM game WHERE finished_at < $1;`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to cleanup old games: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rowsAffected, nil
}
