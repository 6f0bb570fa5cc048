package storage

import (
	"time"

	"github.com/freegames-hub/freegames/pkg/offers"
)

// Snapshot is the latest aggregation batch as written to disk. Offers are
// stored without their classification; readers classify again against their
// own clock.
type Snapshot struct {
	BatchID     string
	GeneratedAt time.Time
	Offers      []offers.Offer
}
