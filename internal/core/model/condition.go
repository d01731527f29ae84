package model

import "time"

// Dignity is the essential dignity of a planet in its current sign.
type Dignity string

const (
	DignityDomicile   Dignity = "domicile"
	DignityExaltation Dignity = "exaltation"
	DignityPeregrine  Dignity = "peregrine"
	DignityDetriment  Dignity = "detriment"
	DignityFall       Dignity = "fall"
)

// Combustion classifies a planet's angular closeness to the Sun.
type Combustion string

const (
	CombustionNone       Combustion = "none"
	CombustionUnderBeams Combustion = "under_beams"
	CombustionCombust    Combustion = "combust"
	CombustionCazimi     Combustion = "cazimi"
)

// Motion classifies the sign of a planet's daily longitude delta.
type Motion string

const (
	MotionDirect     Motion = "direct"
	MotionRetrograde Motion = "retrograde"
	MotionStationary Motion = "stationary"
)

// Role is the rulership role a planet holds for the evaluation instant.
type Role string

const (
	RoleHour Role = "hour"
	RoleDay  Role = "day"
	RoleBoth Role = "both"
	RoleNone Role = "none"
)

// PositionSnapshot is the raw ephemeris record for one planet, as supplied
// by the external provider. Optional fields are pointers so a missing value
// is distinguishable from zero; resolution substitutes neutral defaults.
type PositionSnapshot struct {
	Longitude     *float64 `json:"longitude"`
	Altitude      *float64 `json:"altitude"`
	Azimuth       *float64 `json:"azimuth"`
	DistanceAU    *float64 `json:"distance_au"`
	SunSeparation *float64 `json:"angular_separation_from_sun"`
	DailyMotion   *float64 `json:"daily_longitude_delta"`
	ZodiacSign    Sign     `json:"zodiac_sign"`
	PhaseAngle    *float64 `json:"phase_angle,omitempty"` // Moon only
}

// PlanetaryCondition is the resolved astronomical state of one planet for
// one evaluation instant.
type PlanetaryCondition struct {
	Planet            Planet     `json:"planet"`
	Sign              Sign       `json:"sign,omitempty"`
	Dignity           Dignity    `json:"dignity"`
	Combustion        Combustion `json:"combustion"`
	Motion            Motion     `json:"motion"`
	Altitude          float64    `json:"altitude"`
	IsHourRuler       bool       `json:"is_hour_ruler"`
	IsDayRuler        bool       `json:"is_day_ruler"`
	MoonPhaseModifier *float64   `json:"moon_phase_modifier,omitempty"`
	// Degraded marks a condition built from incomplete ephemeris data.
	Degraded bool `json:"degraded,omitempty"`
}

// Role reports which rulership layer the planet carries.
func (c PlanetaryCondition) Role() Role {
	switch {
	case c.IsHourRuler && c.IsDayRuler:
		return RoleBoth
	case c.IsHourRuler:
		return RoleHour
	case c.IsDayRuler:
		return RoleDay
	}
	return RoleNone
}

// PlanetStrength is the derived scalar strength of one planet. Value never
// drops below the configured floor (0.1 by default).
type PlanetStrength struct {
	Planet Planet  `json:"planet"`
	Value  float64 `json:"value"`
	Role   Role    `json:"role"`
}

// EvaluationRequest is one location+instant snapshot: the global rulership
// context plus per-planet ephemeris records.
type EvaluationRequest struct {
	HourRuler         Planet                      `json:"hour_ruler_planet" binding:"required"`
	DayRuler          Planet                      `json:"day_ruler_planet" binding:"required"`
	ObserverLatitude  float64                     `json:"observer_latitude"`
	ObserverLongitude float64                     `json:"observer_longitude"`
	Timestamp         time.Time                   `json:"timestamp"`
	Planets           map[Planet]PositionSnapshot `json:"planets"`
}
