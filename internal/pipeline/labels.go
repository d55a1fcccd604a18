package pipeline

import (
	"strings"

	"fleet-safety/eventsync/internal/domain"
)

// translations is the controlled vocabulary: the only English labels that
// get a Spanish counterpart. Anything else passes through unchanged.
var translations = map[string]string{
	"camera obstruction":  "obstrucción de la cámara",
	"crash":               "choque",
	"defensive driving":   "conducción defensiva",
	"drowsy":              "somnolencia",
	"harsh brake":         "frenada brusca",
	"harsh turn":          "giro brusco",
	"inattentive driving": "conducción inatenta",
	"mobile usage":        "uso del móvil",
}

// TranslateLabel maps a known English label to its Spanish form. Matching
// is exact after lower-casing and trimming, so translation is idempotent:
// translated labels have no entry and come back unchanged.
func TranslateLabel(label string) string {
	if es, ok := translations[strings.ToLower(strings.TrimSpace(label))]; ok {
		return es
	}
	return label
}

// ClassifyLabel assigns the classification id for a final (post-translation)
// label. Exact-match rules only; unknown labels classify as empty, never as
// an error.
func ClassifyLabel(label string) string {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "límite de velocidad máxima superada":
		return domain.ClassSpeedLimitExceeded
	case "somnolencia":
		return domain.ClassDrowsiness
	case "frenada brusca", "choque", "giro brusco":
		return domain.ClassHarshDriving
	case "obstrucción de la cámara":
		return domain.ClassCameraObstruction
	default:
		return ""
	}
}

// TranslateAndClassify runs both label passes over the batch in place.
func TranslateAndClassify(rows []domain.EventRow) {
	for i := range rows {
		rows[i].Label = TranslateLabel(rows[i].Label)
		rows[i].ClassificationID = ClassifyLabel(rows[i].Label)
	}
}
