package location

import (
	"context"
	"errors"
	"log"

	"github.com/aerosky/aerosky/internal/geo"
)

// ErrUnavailable means no geolocation source exists on this platform.
var ErrUnavailable = errors.New("geolocation unavailable")

// Provider is a device or network geolocation source.
type Provider interface {
	Locate(ctx context.Context) (geo.Coordinate, error)
}

// Unavailable is a Provider for platforms without geolocation.
type Unavailable struct{}

func (Unavailable) Locate(context.Context) (geo.Coordinate, error) {
	return geo.Coordinate{}, ErrUnavailable
}

// Static always reports a fixed position.
type Static struct {
	Coordinate geo.Coordinate
}

func (s Static) Locate(context.Context) (geo.Coordinate, error) {
	return s.Coordinate, nil
}

// Resolver obtains the initial position, falling back to a fixed place when
// the provider denies or fails.
type Resolver struct {
	provider Provider
	fallback geo.Coordinate
	name     string
	logger   *log.Logger
}

// NewResolver wires a resolver around provider. fallback and name are used
// whenever the provider cannot deliver.
func NewResolver(provider Provider, fallback geo.Coordinate, name string, logger *log.Logger) *Resolver {
	if provider == nil {
		provider = Unavailable{}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Resolver{provider: provider, fallback: fallback, name: name, logger: logger}
}

// Resolve returns a position and a display name. Provider success yields its
// coordinate with an empty name (reverse lookup happens downstream); denial
// or failure yields the fallback place. Resolve never fails.
func (r *Resolver) Resolve(ctx context.Context) (geo.Coordinate, string) {
	coord, err := r.provider.Locate(ctx)
	if err != nil || !coord.Valid() {
		if err != nil {
			r.logger.Printf("geolocation failed, using fallback %q: %v", r.name, err)
		}
		return r.fallback, r.name
	}
	return coord, ""
}
