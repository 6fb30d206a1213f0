package nshmdb

import (
	"fmt"

	"github.com/seistech/nshmdb/fault"
)

// Rupture is a rupture scenario from the database.
type Rupture struct {
	// ID is the rupture id.
	ID int64
	// Magnitude of the rupture (not the moment magnitude).
	Magnitude float64
	// Area of the rupture in km^2.
	Area float64
	// Length of the rupture in km.
	Length float64
	// Rate is the optional yearly rate of rupture.
	Rate *float64
	// Faults involved in the rupture, keyed by parent fault name.
	Faults map[string]fault.Fault
}

func (r Rupture) String() string {
	names := make([]string, 0, len(r.Faults))
	for name := range r.Faults {
		names = append(names, name)
	}
	return fmt.Sprintf("Rupture(id=%d, magnitude=%g, area=%g, faults=%v)", r.ID, r.Magnitude, r.Area, names)
}

// FaultInfo is the fault metadata stored in the database.
type FaultInfo struct {
	FaultID  int64
	Name     string
	ParentID int64
	Rake     float64
	// TectType is the optional tectonic type of the fault.
	TectType *int64
}
