package weather

// Category buckets a WMO weather code for icon selection.
type Category string

const (
	CategoryClear        Category = "clear"
	CategoryPartlyCloudy Category = "partly_cloudy"
	CategoryFog          Category = "fog"
	CategoryDrizzle      Category = "drizzle"
	CategoryRain         Category = "rain"
	CategorySnow         Category = "snow"
	CategoryThunderstorm Category = "thunderstorm"
)

// Theme names the background gradient band for a code.
type Theme string

const (
	ThemeClear  Theme = "clear"
	ThemeClouds Theme = "clouds"
	ThemeFog    Theme = "fog"
	ThemeRain   Theme = "rain"
	ThemeSnow   Theme = "snow"
	ThemeStorm  Theme = "storm"
)

// Classification is the full presentation mapping for one weather code.
type Classification struct {
	Category      Category `json:"category"`
	Description   string   `json:"description"`
	Theme         Theme    `json:"theme"`
	Particles     bool     `json:"particles"`
	SnowParticles bool     `json:"snow_particles"`
}

// Classify maps a WMO weather code to its presentation attributes. Codes
// outside every band get the clear defaults; never an error.
func Classify(code int) Classification {
	return Classification{
		Category:      categoryFor(code),
		Description:   Description(code),
		Theme:         themeFor(code),
		Particles:     showParticles(code),
		SnowParticles: code >= 71 && code <= 77,
	}
}

func categoryFor(code int) Category {
	switch {
	case code == 0:
		return CategoryClear
	case code >= 1 && code <= 3:
		return CategoryPartlyCloudy
	case code >= 45 && code <= 48:
		return CategoryFog
	case code >= 51 && code <= 57:
		return CategoryDrizzle
	case (code >= 61 && code <= 67) || (code >= 80 && code <= 82):
		return CategoryRain
	case (code >= 71 && code <= 77) || (code >= 85 && code <= 86):
		return CategorySnow
	case code >= 95 && code <= 99:
		return CategoryThunderstorm
	default:
		return CategoryClear
	}
}

// themeFor uses the background bands, which fold drizzle into one rain band.
func themeFor(code int) Theme {
	switch {
	case code == 0:
		return ThemeClear
	case code >= 1 && code <= 3:
		return ThemeClouds
	case code >= 45 && code <= 48:
		return ThemeFog
	case (code >= 51 && code <= 67) || (code >= 80 && code <= 82):
		return ThemeRain
	case (code >= 71 && code <= 77) || (code >= 85 && code <= 86):
		return ThemeSnow
	case code >= 95 && code <= 99:
		return ThemeStorm
	default:
		return ThemeClear
	}
}

// showParticles reports whether ambient rain/snow particles should render.
func showParticles(code int) bool {
	return (code >= 51 && code <= 67) || (code >= 71 && code <= 77) || (code >= 80 && code <= 86)
}

var descriptions = map[int]string{
	0:  "Ciel dégagé",
	1:  "Principalement dégagé",
	2:  "Partiellement nuageux",
	3:  "Couvert",
	45: "Brouillard",
	48: "Brouillard givrant",
	51: "Bruine légère",
	53: "Bruine modérée",
	55: "Bruine dense",
	56: "Bruine verglaçante légère",
	57: "Bruine verglaçante dense",
	61: "Pluie légère",
	63: "Pluie modérée",
	65: "Pluie forte",
	66: "Pluie verglaçante légère",
	67: "Pluie verglaçante forte",
	71: "Neige légère",
	73: "Neige modérée",
	75: "Neige forte",
	77: "Grains de neige",
	80: "Averses légères",
	81: "Averses modérées",
	82: "Averses violentes",
	85: "Averses de neige légères",
	86: "Averses de neige fortes",
	95: "Orage",
	96: "Orage avec grêle légère",
	99: "Orage avec grêle forte",
}

// Description returns the localized text for a weather code.
func Description(code int) string {
	if d, ok := descriptions[code]; ok {
		return d
	}
	return "Conditions inconnues"
}
