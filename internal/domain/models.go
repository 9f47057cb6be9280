package domain

import (
	"fmt"
	"strings"
	"time"
)

const (
	DefaultCapacityUnit = "kW"
	DefaultEnergyUnit   = "kWh"
	DefaultSourceStatus = "Operacional"
)

type Microgrid struct {
	ID               int64  `db:"id" json:"id"`
	Name             string `db:"name" json:"name"`
	Address          string `db:"address" json:"address"`
	TotalResidences  int    `db:"total_residences" json:"total_residences"`
	TotalInhabitants int    `db:"total_inhabitants" json:"total_inhabitants"`
}

// Density returns inhabitants per residence.
func (m Microgrid) Density() (float64, error) {
	if m.TotalResidences <= 0 {
		return 0, IllegalArgument("total residences must be greater than zero")
	}
	return float64(m.TotalInhabitants) / float64(m.TotalResidences), nil
}

func (m Microgrid) DensityWithin(limit float64) (bool, error) {
	d, err := m.Density()
	if err != nil {
		return false, err
	}
	return d <= limit, nil
}

func (m Microgrid) Describe() string {
	density := 0.0
	if m.TotalResidences > 0 {
		density, _ = m.Density()
	}
	return fmt.Sprintf("Microgrid [ID: %d, Name: %s, Address: %s, Residences: %d, Inhabitants: %d, Density: %.2f inhabitants/residence]",
		m.ID, m.Name, m.Address, m.TotalResidences, m.TotalInhabitants, density)
}

type EnergySource struct {
	ID                int64      `db:"id" json:"id"`
	MicrogridID       int64      `db:"microgrid_id" json:"microgrid_id"`
	Type              string     `db:"type" json:"type"`
	InstalledCapacity float64    `db:"installed_capacity" json:"installed_capacity"`
	CapacityUnit      string     `db:"capacity_unit" json:"capacity_unit"`
	InstalledAt       *time.Time `db:"installed_at" json:"installed_at,omitempty"`
	Status            string     `db:"status" json:"status"`
}

func (s *EnergySource) ApplyDefaults() {
	if strings.TrimSpace(s.CapacityUnit) == "" {
		s.CapacityUnit = DefaultCapacityUnit
	}
	if s.Status == "" {
		s.Status = DefaultSourceStatus
	}
}

func (s EnergySource) WithinCapacity(limit float64) bool {
	return s.InstalledCapacity <= limit
}

// OperatingYears counts calendar years since installation; 0 when unknown.
func (s EnergySource) OperatingYears(now time.Time) int {
	if s.InstalledAt == nil {
		return 0
	}
	return now.Year() - s.InstalledAt.Year()
}

func (s EnergySource) Describe() string {
	installed := "N/A"
	if s.InstalledAt != nil {
		installed = s.InstalledAt.Format("2006-01-02")
	}
	return fmt.Sprintf("Energy source [Type: %s, Capacity: %.2f %s, Status: %s, Installed: %s]",
		s.Type, s.InstalledCapacity, s.CapacityUnit, s.Status, installed)
}

// MonthlyRecord is the observed generation and consumption of a microgrid
// for one calendar month.
type MonthlyRecord struct {
	ID              int64   `db:"id" json:"id"`
	MicrogridID     int64   `db:"microgrid_id" json:"microgrid_id"`
	Year            int     `db:"year" json:"year"`
	Month           int     `db:"month" json:"month"`
	WattsGenerated  float64 `db:"watts_generated" json:"watts_generated"`
	GenerationUnit  string  `db:"generation_unit" json:"generation_unit"`
	WattsConsumed   float64 `db:"watts_consumed" json:"watts_consumed"`
	ConsumptionUnit string  `db:"consumption_unit" json:"consumption_unit"`
}

func (r *MonthlyRecord) ApplyDefaults() {
	if strings.TrimSpace(r.GenerationUnit) == "" {
		r.GenerationUnit = DefaultEnergyUnit
	}
	if strings.TrimSpace(r.ConsumptionUnit) == "" {
		r.ConsumptionUnit = DefaultEnergyUnit
	}
}

// Delta is generated minus consumed; negative means a deficit.
func (r MonthlyRecord) Delta() float64 {
	return r.WattsGenerated - r.WattsConsumed
}

func (r MonthlyRecord) Period() Period {
	return Period{Year: r.Year, Month: r.Month}
}

func (r MonthlyRecord) String() string {
	return fmt.Sprintf("MonthlyRecord [ID: %d, Microgrid: %d, Year: %d, Month: %d, Generated: %.2f %s, Consumed: %.2f %s, Delta: %.2f]",
		r.ID, r.MicrogridID, r.Year, r.Month, r.WattsGenerated, r.GenerationUnit,
		r.WattsConsumed, r.ConsumptionUnit, r.Delta())
}

type Estimate struct {
	ID             int64   `db:"id" json:"id"`
	MicrogridID    int64   `db:"microgrid_id" json:"microgrid_id"`
	Year           int     `db:"year" json:"year"`
	Month          int     `db:"month" json:"month"`
	EstimatedWatts float64 `db:"estimated_watts" json:"estimated_watts"`
}

func (e Estimate) Period() Period {
	return Period{Year: e.Year, Month: e.Month}
}
