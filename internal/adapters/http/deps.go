package http

import (
	"github.com/nats-io/nats.go"
	"github.com/samirrijal/isstracker/internal/adapters/valkey"
	"github.com/samirrijal/isstracker/internal/core/usecases"
)

// Dependencies holds all services needed by HTTP handlers.
type Dependencies struct {
	Data      *usecases.DataService
	Epochs    *usecases.EpochService
	Locations *usecases.LocationService
	NATS      *nats.Conn
	Cache     *valkey.Cache
}
