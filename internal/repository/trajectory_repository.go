package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jengzang/trajectory-classifier/internal/database"
	"github.com/jengzang/trajectory-classifier/internal/models"
)

// TrajectoryRepository handles database operations for trajectory samples
type TrajectoryRepository struct {
	db *sql.DB
}

// NewTrajectoryRepository creates a new trajectory repository
func NewTrajectoryRepository(db *sql.DB) *TrajectoryRepository {
	return &TrajectoryRepository{db: db}
}

// ImportSet replaces the stored trajectories with set in a single transaction
func (r *TrajectoryRepository) ImportSet(ctx context.Context, set models.ParsedSet) error {
	return database.Transaction(r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM trajectory_samples"); err != nil {
			return fmt.Errorf("failed to clear samples: %w", err)
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM trajectories"); err != nil {
			return fmt.Errorf("failed to clear trajectories: %w", err)
		}

		trajStmt, err := tx.PrepareContext(ctx, "INSERT INTO trajectories (id, declared_samples) VALUES (?, ?)")
		if err != nil {
			return fmt.Errorf("failed to prepare statement: %w", err)
		}
		defer trajStmt.Close()

		sampleStmt, err := tx.PrepareContext(ctx, "INSERT INTO trajectory_samples (trajectory_id, seq, x, y, t) VALUES (?, ?, ?, ?, ?)")
		if err != nil {
			return fmt.Errorf("failed to prepare statement: %w", err)
		}
		defer sampleStmt.Close()

		for _, pt := range set.Trajectories {
			if _, err := trajStmt.ExecContext(ctx, pt.ID, pt.DeclaredSamples); err != nil {
				return fmt.Errorf("failed to insert trajectory %d: %w", pt.ID, err)
			}
			for seq, s := range pt.Samples {
				if _, err := sampleStmt.ExecContext(ctx, pt.ID, seq, s.X, s.Y, s.T); err != nil {
					return fmt.Errorf("failed to insert sample %d of trajectory %d: %w", seq, pt.ID, err)
				}
			}
		}
		return nil
	})
}

// LoadSet reads every stored trajectory ordered by id, samples ordered by time
func (r *TrajectoryRepository) LoadSet(ctx context.Context) (models.ParsedSet, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, declared_samples FROM trajectories ORDER BY id")
	if err != nil {
		return models.ParsedSet{}, fmt.Errorf("failed to query trajectories: %w", err)
	}

	var set models.ParsedSet
	index := make(map[int]int)
	for rows.Next() {
		var pt models.ParsedTrajectory
		if err := rows.Scan(&pt.ID, &pt.DeclaredSamples); err != nil {
			rows.Close()
			return models.ParsedSet{}, fmt.Errorf("failed to scan trajectory: %w", err)
		}
		pt.Samples = []models.Sample{}
		index[pt.ID] = len(set.Trajectories)
		set.Trajectories = append(set.Trajectories, pt)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return models.ParsedSet{}, fmt.Errorf("failed to iterate trajectories: %w", err)
	}

	rows, err = r.db.QueryContext(ctx, `SELECT trajectory_id, x, y, t
		FROM trajectory_samples
		ORDER BY trajectory_id, t, seq`)
	if err != nil {
		return models.ParsedSet{}, fmt.Errorf("failed to query samples: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id int
		var s models.Sample
		if err := rows.Scan(&id, &s.X, &s.Y, &s.T); err != nil {
			return models.ParsedSet{}, fmt.Errorf("failed to scan sample: %w", err)
		}
		i, ok := index[id]
		if !ok {
			return models.ParsedSet{}, fmt.Errorf("sample references unknown trajectory %d", id)
		}
		set.Trajectories[i].Samples = append(set.Trajectories[i].Samples, s)
	}
	if err := rows.Err(); err != nil {
		return models.ParsedSet{}, fmt.Errorf("failed to iterate samples: %w", err)
	}

	set.DeclaredCount = len(set.Trajectories)
	return set, nil
}

// CountTrajectories returns the number of stored trajectories
func (r *TrajectoryRepository) CountTrajectories(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM trajectories").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count trajectories: %w", err)
	}
	return n, nil
}
