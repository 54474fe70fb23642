package weather

import "testing"

func TestClassifyBands(t *testing.T) {
	tests := []struct {
		code     int
		category Category
		theme    Theme
	}{
		{0, CategoryClear, ThemeClear},
		{1, CategoryPartlyCloudy, ThemeClouds},
		{3, CategoryPartlyCloudy, ThemeClouds},
		{45, CategoryFog, ThemeFog},
		{48, CategoryFog, ThemeFog},
		{51, CategoryDrizzle, ThemeRain},
		{57, CategoryDrizzle, ThemeRain},
		{61, CategoryRain, ThemeRain},
		{67, CategoryRain, ThemeRain},
		{80, CategoryRain, ThemeRain},
		{82, CategoryRain, ThemeRain},
		{71, CategorySnow, ThemeSnow},
		{77, CategorySnow, ThemeSnow},
		{85, CategorySnow, ThemeSnow},
		{86, CategorySnow, ThemeSnow},
		{95, CategoryThunderstorm, ThemeStorm},
		{99, CategoryThunderstorm, ThemeStorm},
	}
	for _, tt := range tests {
		got := Classify(tt.code)
		if got.Category != tt.category {
			t.Errorf("Classify(%d).Category = %s, want %s", tt.code, got.Category, tt.category)
		}
		if got.Theme != tt.theme {
			t.Errorf("Classify(%d).Theme = %s, want %s", tt.code, got.Theme, tt.theme)
		}
	}
}

func TestClassifyUnmappedCodesDefaultToClear(t *testing.T) {
	for _, code := range []int{-1, 4, 42, 50, 58, 60, 68, 78, 87, 94, 100, 9999} {
		got := Classify(code)
		if got.Category != CategoryClear {
			t.Errorf("Classify(%d).Category = %s, want clear", code, got.Category)
		}
		if got.Theme != ThemeClear {
			t.Errorf("Classify(%d).Theme = %s, want clear", code, got.Theme)
		}
		if got.Particles || got.SnowParticles {
			t.Errorf("Classify(%d) enables particles outside any band", code)
		}
	}
}

func TestParticleBands(t *testing.T) {
	tests := []struct {
		code int
		rain bool
		snow bool
	}{
		{0, false, false},
		{3, false, false},
		{48, false, false},
		{51, true, false},
		{67, true, false},
		{71, true, true},
		{77, true, true},
		{80, true, false},
		{86, true, false},
		{95, false, false},
	}
	for _, tt := range tests {
		got := Classify(tt.code)
		if got.Particles != tt.rain {
			t.Errorf("Classify(%d).Particles = %v, want %v", tt.code, got.Particles, tt.rain)
		}
		if got.SnowParticles != tt.snow {
			t.Errorf("Classify(%d).SnowParticles = %v, want %v", tt.code, got.SnowParticles, tt.snow)
		}
	}
}

func TestDescription(t *testing.T) {
	if got := Description(0); got != "Ciel dégagé" {
		t.Errorf("Description(0) = %q", got)
	}
	if got := Description(95); got != "Orage" {
		t.Errorf("Description(95) = %q", got)
	}
	if got := Description(47); got != "Conditions inconnues" {
		t.Errorf("Description(47) = %q, want the unknown fallback", got)
	}
}

func TestCompassPoint(t *testing.T) {
	tests := []struct {
		deg  float64
		want string
	}{
		{0, "N"},
		{22, "N"},
		{23, "NE"},
		{90, "E"},
		{180, "S"},
		{225, "SO"},
		{270, "O"},
		{315, "NO"},
		{359, "N"},
	}
	for _, tt := range tests {
		if got := CompassPoint(tt.deg); got != tt.want {
			t.Errorf("CompassPoint(%v) = %q, want %q", tt.deg, got, tt.want)
		}
	}
}

func TestUVLevel(t *testing.T) {
	tests := []struct {
		index float64
		want  string
	}{
		{0, "Faible"},
		{2, "Faible"},
		{3, "Modéré"},
		{5, "Modéré"},
		{6, "Élevé"},
		{8, "Très élevé"},
		{10, "Très élevé"},
		{11, "Extrême"},
	}
	for _, tt := range tests {
		if got := UVLevel(tt.index); got != tt.want {
			t.Errorf("UVLevel(%v) = %q, want %q", tt.index, got, tt.want)
		}
	}
}
