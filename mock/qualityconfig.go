package mock

import (
	"context"

	"github.com/fwojciec/clipper"
)

var _ clipper.QualityConfigService = (*QualityConfigService)(nil)

// QualityConfigService is a mock implementation of
// clipper.QualityConfigService.
type QualityConfigService struct {
	ConfigFn        func(ctx context.Context) (*clipper.QualityConfig, error)
	ReplaceConfigFn func(ctx context.Context, cfg *clipper.QualityConfig) error
}

func (s *QualityConfigService) Config(ctx context.Context) (*clipper.QualityConfig, error) {
	return s.ConfigFn(ctx)
}

func (s *QualityConfigService) ReplaceConfig(ctx context.Context, cfg *clipper.QualityConfig) error {
	return s.ReplaceConfigFn(ctx, cfg)
}
