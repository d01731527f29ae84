package model

// Planet identifies one of the seven classical bodies.
type Planet string

const (
	Sun     Planet = "Sun"
	Moon    Planet = "Moon"
	Mercury Planet = "Mercury"
	Venus   Planet = "Venus"
	Mars    Planet = "Mars"
	Jupiter Planet = "Jupiter"
	Saturn  Planet = "Saturn"
)

// ClassicalPlanets is the canonical evaluation order: the hour-succession
// sequence (each planet rules the hour seven steps after the previous),
// not the Chaldean descending order.
var ClassicalPlanets = []Planet{Sun, Venus, Mercury, Moon, Saturn, Jupiter, Mars}

func (p Planet) Valid() bool {
	switch p {
	case Sun, Moon, Mercury, Venus, Mars, Jupiter, Saturn:
		return true
	}
	return false
}

// Sign is a zodiac sign.
type Sign string

const (
	Aries       Sign = "Aries"
	Taurus      Sign = "Taurus"
	Gemini      Sign = "Gemini"
	Cancer      Sign = "Cancer"
	Leo         Sign = "Leo"
	Virgo       Sign = "Virgo"
	Libra       Sign = "Libra"
	Scorpio     Sign = "Scorpio"
	Sagittarius Sign = "Sagittarius"
	Capricorn   Sign = "Capricorn"
	Aquarius    Sign = "Aquarius"
	Pisces      Sign = "Pisces"
)

func (s Sign) Valid() bool {
	_, ok := signElements[s]
	return ok
}

// Element is one of the four classical elements.
type Element string

const (
	Fire  Element = "fire"
	Earth Element = "earth"
	Air   Element = "air"
	Water Element = "water"
)

// DignityTable lists the signs in which a planet holds each essential dignity.
type DignityTable struct {
	Domicile   Sign
	Exaltation Sign
	Detriment  Sign
	Fall       Sign
}

// essentialDignities is populated once and read-only thereafter, so it is
// safe for unsynchronized concurrent reads.
var essentialDignities = map[Planet]DignityTable{
	Sun:     {Domicile: Leo, Exaltation: Aries, Detriment: Aquarius, Fall: Libra},
	Moon:    {Domicile: Cancer, Exaltation: Taurus, Detriment: Capricorn, Fall: Scorpio},
	Mercury: {Domicile: Gemini, Exaltation: Virgo, Detriment: Sagittarius, Fall: Pisces},
	Venus:   {Domicile: Taurus, Exaltation: Pisces, Detriment: Scorpio, Fall: Virgo},
	Mars:    {Domicile: Aries, Exaltation: Capricorn, Detriment: Libra, Fall: Cancer},
	Jupiter: {Domicile: Sagittarius, Exaltation: Cancer, Detriment: Gemini, Fall: Capricorn},
	Saturn:  {Domicile: Capricorn, Exaltation: Libra, Detriment: Cancer, Fall: Aries},
}

// Dignities returns the essential dignity table for a planet.
func Dignities(p Planet) (DignityTable, bool) {
	t, ok := essentialDignities[p]
	return t, ok
}

var signElements = map[Sign]Element{
	Aries: Fire, Leo: Fire, Sagittarius: Fire,
	Taurus: Earth, Virgo: Earth, Capricorn: Earth,
	Gemini: Air, Libra: Air, Aquarius: Air,
	Cancer: Water, Scorpio: Water, Pisces: Water,
}

// SignElement returns the classical element of a zodiac sign.
func SignElement(s Sign) (Element, bool) {
	e, ok := signElements[s]
	return e, ok
}

var planetElements = map[Planet]Element{
	Sun:     Fire,
	Moon:    Water,
	Mercury: Air,
	Venus:   Earth,
	Mars:    Fire,
	Jupiter: Air,
	Saturn:  Earth,
}

// PlanetElement returns the element traditionally associated with a planet.
func PlanetElement(p Planet) Element {
	return planetElements[p]
}
