package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"eco-quest-service/internal/domain"
	"eco-quest-service/internal/questionbank"
	"github.com/uptrace/bun"
)

// SeedBank upserts a validated bank into question_banks.
func SeedBank(ctx context.Context, db *bun.DB, bank domain.Bank) error {
	if err := questionbank.Validate(bank); err != nil {
		return err
	}
	data, err := json.Marshal(bank)
	if err != nil {
		return fmt.Errorf("marshal bank: %w", err)
	}
	_, err = db.ExecContext(ctx,
		`INSERT INTO question_banks (id, data) VALUES (?, ?::jsonb)
		 ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data, updated_at = now()`,
		bank.ID, string(data))
	if err != nil {
		return fmt.Errorf("seed bank %q: %w", bank.ID, err)
	}
	return nil
}
