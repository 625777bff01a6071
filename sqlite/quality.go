package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/fwojciec/clipper"
	"github.com/fwojciec/clipper/quality"
)

// Compile-time interface verification.
var _ clipper.QualityConfigService = (*QualityConfigService)(nil)

// QualityConfigService implements clipper.QualityConfigService using
// SQLite. The configuration is stored as a single JSON row so replaces
// are atomic.
type QualityConfigService struct {
	db *DB
}

// NewQualityConfigService creates a new QualityConfigService.
func NewQualityConfigService(db *DB) *QualityConfigService {
	return &QualityConfigService{db: db}
}

// Config returns the current configuration, seeding the multilingual
// defaults on first access.
func (s *QualityConfigService) Config(ctx context.Context) (*clipper.QualityConfig, error) {
	var data string
	err := s.db.QueryRowContext(ctx, "SELECT config FROM quality_config WHERE id = 1").Scan(&data)
	if err == sql.ErrNoRows {
		cfg := quality.DefaultConfig()
		if err := s.ReplaceConfig(ctx, cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	var cfg clipper.QualityConfig
	if err := unmarshalJSON(data, &cfg, "quality config"); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ReplaceConfig atomically replaces the whole configuration. The config
// is normalized before being persisted.
func (s *QualityConfigService) ReplaceConfig(ctx context.Context, cfg *clipper.QualityConfig) error {
	if cfg == nil {
		return clipper.Errorf(clipper.EINVALID, "quality config required")
	}

	cfg.Normalize()
	data, err := marshalJSON(cfg)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO quality_config (id, config, updated_at) VALUES (1, ?, ?)
		ON CONFLICT (id) DO UPDATE SET config = excluded.config, updated_at = excluded.updated_at
	`, data, time.Now().UTC().Format(time.RFC3339))
	return err
}
