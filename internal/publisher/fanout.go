package publisher

import (
	"context"
	"errors"

	"github.com/couchcryptid/brandenburg-weather-sim/internal/domain"
)

// Fanout delivers each batch to every configured loader. All loaders are
// attempted even when an earlier one fails; errors are joined.
type Fanout []BatchLoader

func (f Fanout) LoadBatch(ctx context.Context, snaps []domain.WeatherSnapshot) error {
	var errs []error
	for _, l := range f {
		if err := l.LoadBatch(ctx, snaps); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
