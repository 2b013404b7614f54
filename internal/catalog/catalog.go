// Package catalog holds the immutable reference data: zones, locations, and
// inspection forms. It is seeded once at startup and never mutated, so lookups
// need no locking. Unknown ids report (zero, false) rather than erroring;
// callers decide whether a miss is fatal.
package catalog

import "evsops/pkg/domain"

// Zone is a risk-classified area of the campus.
type Zone struct {
	ID           domain.ZoneID        `json:"id"`
	Name         domain.BilingualName `json:"name"`
	RiskCategory domain.RiskCategory  `json:"riskCategory"`
}

// Location is an inspectable site, bound to its zone and checklist form.
type Location struct {
	ID     domain.LocationID    `json:"id"`
	Name   domain.BilingualName `json:"name"`
	ZoneID domain.ZoneID        `json:"zoneId"`
	FormID domain.FormID        `json:"formId"`
}

// EvaluationItem is one weighted checklist line.
type EvaluationItem struct {
	ID                domain.ItemID `json:"id"`
	Name              string        `json:"name"`
	MaxScore          int           `json:"maxScore"`
	PredefinedDefects []string      `json:"predefinedDefects"`
}

// InspectionForm is an ordered, weighted checklist assigned to locations.
type InspectionForm struct {
	ID    domain.FormID        `json:"id"`
	Name  domain.BilingualName `json:"name"`
	Items []EvaluationItem     `json:"items"`
}

// MaxTotal is the denominator of the compliance percentage for this form.
func (f InspectionForm) MaxTotal() int {
	total := 0
	for _, item := range f.Items {
		total += item.MaxScore
	}
	return total
}

// ItemByID resolves a checklist item within the form.
func (f InspectionForm) ItemByID(id domain.ItemID) (EvaluationItem, bool) {
	for _, item := range f.Items {
		if item.ID == id {
			return item, true
		}
	}
	return EvaluationItem{}, false
}

// Catalog is the read-only lookup surface over the reference tables.
type Catalog struct {
	zones     []Zone
	locations []Location
	forms     []InspectionForm

	zonesByID     map[domain.ZoneID]Zone
	locationsByID map[domain.LocationID]Location
	formsByID     map[domain.FormID]InspectionForm
}

// New indexes the given tables. The slices are retained; callers must not
// mutate them afterwards.
func New(zones []Zone, locations []Location, forms []InspectionForm) *Catalog {
	c := &Catalog{
		zones:         zones,
		locations:     locations,
		forms:         forms,
		zonesByID:     make(map[domain.ZoneID]Zone, len(zones)),
		locationsByID: make(map[domain.LocationID]Location, len(locations)),
		formsByID:     make(map[domain.FormID]InspectionForm, len(forms)),
	}
	for _, z := range zones {
		c.zonesByID[z.ID] = z
	}
	for _, l := range locations {
		c.locationsByID[l.ID] = l
	}
	for _, f := range forms {
		c.formsByID[f.ID] = f
	}
	return c
}

func (c *Catalog) ZoneByID(id domain.ZoneID) (Zone, bool) {
	z, ok := c.zonesByID[id]
	return z, ok
}

func (c *Catalog) LocationByID(id domain.LocationID) (Location, bool) {
	l, ok := c.locationsByID[id]
	return l, ok
}

func (c *Catalog) FormByID(id domain.FormID) (InspectionForm, bool) {
	f, ok := c.formsByID[id]
	return f, ok
}

// FormForLocation resolves the checklist assigned to a location.
func (c *Catalog) FormForLocation(id domain.LocationID) (InspectionForm, bool) {
	loc, ok := c.locationsByID[id]
	if !ok {
		return InspectionForm{}, false
	}
	return c.FormByID(loc.FormID)
}

// Zones returns the zone table in catalog order.
func (c *Catalog) Zones() []Zone { return c.zones }

// Locations returns the location table in catalog order. Ranking ties break on
// this order, so it must stay stable.
func (c *Catalog) Locations() []Location { return c.locations }

// Forms returns the form table in catalog order.
func (c *Catalog) Forms() []InspectionForm { return c.forms }
