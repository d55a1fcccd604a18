package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"fleet-safety/eventsync/internal/domain"
)

func TestTranslateLabel_AllKnownPhrases(t *testing.T) {
	expected := map[string]string{
		"Camera Obstruction":  "obstrucción de la cámara",
		"Crash":               "choque",
		"Defensive Driving":   "conducción defensiva",
		"Drowsy":              "somnolencia",
		"Harsh Brake":         "frenada brusca",
		"Harsh Turn":          "giro brusco",
		"Inattentive Driving": "conducción inatenta",
		"Mobile Usage":        "uso del móvil",
	}
	for in, want := range expected {
		assert.Equal(t, want, TranslateLabel(in))
	}
}

func TestTranslateLabel_CasingAndWhitespace(t *testing.T) {
	assert.Equal(t, "frenada brusca", TranslateLabel("  HARSH BRAKE  "))
	assert.Equal(t, "choque", TranslateLabel("cRaSh"))
}

func TestTranslateLabel_UnknownPassesThrough(t *testing.T) {
	assert.Equal(t, "Seatbelt", TranslateLabel("Seatbelt"))
	assert.Equal(t, "", TranslateLabel(""))
}

func TestTranslateLabel_Idempotent(t *testing.T) {
	for _, in := range []string{"Harsh Brake", "somnolencia", "Seatbelt"} {
		once := TranslateLabel(in)
		assert.Equal(t, once, TranslateLabel(once))
	}
}

func TestClassifyLabel(t *testing.T) {
	tests := []struct {
		label string
		want  string
	}{
		{"Límite de Velocidad Máxima superada", domain.ClassSpeedLimitExceeded},
		{"somnolencia", domain.ClassDrowsiness},
		{"frenada brusca", domain.ClassHarshDriving},
		{"choque", domain.ClassHarshDriving},
		{"giro brusco", domain.ClassHarshDriving},
		{"obstrucción de la cámara", domain.ClassCameraObstruction},
		{"conducción defensiva", ""},
		{"anything else", ""},
		{"", ""},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, ClassifyLabel(tc.label), "label %q", tc.label)
	}
}

func TestTranslateAndClassify(t *testing.T) {
	rows := []domain.EventRow{
		{Label: "Harsh Brake"},
		{Label: "Límite de Velocidad Máxima superada"},
		{Label: "Seatbelt"},
	}

	TranslateAndClassify(rows)

	assert.Equal(t, "frenada brusca", rows[0].Label)
	assert.Equal(t, domain.ClassHarshDriving, rows[0].ClassificationID)
	assert.Equal(t, domain.ClassSpeedLimitExceeded, rows[1].ClassificationID)
	assert.Equal(t, "Seatbelt", rows[2].Label)
	assert.Equal(t, "", rows[2].ClassificationID)
}
