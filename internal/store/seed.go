package store

import (
	"time"

	"github.com/campverse/camp-booking/internal/model"
)

// Seed loads the demo catalog into a MemoryStore: two camps with units
// across every availability band, used for local development and tests.
func Seed(m *MemoryStore) {
	m.AddCamp(model.Camp{
		ID:             "camp-1",
		Name:           "Robotics & Coding Summer Camp",
		Provider:       "TechKids Academy",
		Type:           model.CampTypeDay,
		City:           "bangalore",
		Locality:       "Indiranagar",
		AgeDescription: "Ages 8-14, grouped by batch",
		TaxRate:        0.18,
	})
	m.AddCamp(model.Camp{
		ID:             "camp-2",
		Name:           "Adventure Wilderness Camp",
		Provider:       "TrailBlazers Outdoors",
		Type:           model.CampTypeResidential,
		City:           "bangalore",
		Locality:       "Sakleshpur",
		AgeDescription: "Ages 10-13",
		TaxRate:        0.18,
	})

	mayDay := func(d int) time.Time { return time.Date(2025, time.May, d, 0, 0, 0, 0, time.UTC) }
	junDay := func(d int) time.Time { return time.Date(2025, time.June, d, 0, 0, 0, 0, time.UTC) }

	m.AddUnit(model.Unit{
		ID: "unit-1", CampID: "camp-1",
		StartDate: mayDay(15), EndDate: mayDay(26),
		AgeMin: 8, AgeMax: 11,
		Price: 12999, OriginalPrice: 15999,
		SeatsTotal: 30, SeatsBooked: 12,
	})
	m.AddUnit(model.Unit{
		ID: "unit-2", CampID: "camp-1",
		StartDate: mayDay(27), EndDate: junDay(7),
		AgeMin: 8, AgeMax: 11,
		Price: 12999, OriginalPrice: 15999,
		SeatsTotal: 30, SeatsBooked: 22,
	})
	m.AddUnit(model.Unit{
		ID: "unit-3", CampID: "camp-1",
		StartDate: junDay(8), EndDate: junDay(19),
		AgeMin: 12, AgeMax: 14,
		Price: 14999,
		SeatsTotal: 25, SeatsBooked: 23,
	})
	m.AddUnit(model.Unit{
		ID: "unit-4", CampID: "camp-1",
		StartDate: junDay(20), EndDate: time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC),
		AgeMin: 12, AgeMax: 14,
		Price: 14999,
		SeatsTotal: 25, SeatsBooked: 25,
	})

	m.AddUnit(model.Unit{
		ID: "res-unit-1", CampID: "camp-2",
		StartDate: mayDay(10), EndDate: mayDay(17),
		AgeMin: 10, AgeMax: 13,
		Price: 28999, OriginalPrice: 32999,
		SeatsTotal: 40, SeatsBooked: 15,
	})
	m.AddUnit(model.Unit{
		ID: "res-unit-2", CampID: "camp-2",
		StartDate: mayDay(20), EndDate: mayDay(27),
		AgeMin: 10, AgeMax: 13,
		Price: 28999, OriginalPrice: 32999,
		SeatsTotal: 40, SeatsBooked: 31,
	})
}
