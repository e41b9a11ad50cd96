package planner

import (
	"go.uber.org/zap"

	"github.com/platewise/v1/internal/domain/recipe"
)

// admissionWindow bounds candidates admitted to a profile's planning pool.
type admissionWindow struct {
	minCal, maxCal float64
	minProt        float64
}

// Per-profile admission windows, from general dietary guidance: fitness
// wants substantial protein-bearing meals, budget tolerates smaller ones,
// gourmet is unconstrained beyond the dataset ceiling.
var admissionWindows = map[recipe.Profile]admissionWindow{
	recipe.ProfileFitness:  {minCal: 300, maxCal: 900, minProt: 20},
	recipe.ProfileBudget:   {minCal: 200, maxCal: 700, minProt: 10},
	recipe.ProfileGourmet:  {minCal: 0, maxCal: 1500, minProt: 0},
	recipe.ProfileBalanced: {minCal: 300, maxCal: 800, minProt: 10},
}

// minAdmitted is the pool size under which the window is widened.
const minAdmitted = 50

// admitCandidates filters the full pool through the profile's nutritional
// window and de-duplicates by name. When the strict window admits too few
// records the calorie ceiling is stretched by half and the protein floor
// relaxed by a fifth, then the filter reruns.
func admitCandidates(pool []*recipe.Record, profile recipe.Profile, logger *zap.Logger) []*recipe.Record {
	w := admissionWindows[profile]

	admitted := applyWindow(pool, w)
	if len(admitted) < minAdmitted {
		logger.Warn("few candidates in strict window, widening",
			zap.String("profile", profile.String()),
			zap.Int("admitted", len(admitted)),
		)
		w.maxCal *= 1.5
		w.minProt *= 0.8
		admitted = applyWindow(pool, w)
	}

	logger.Info("candidate pool admitted",
		zap.String("profile", profile.String()),
		zap.Int("candidates", len(admitted)),
	)
	return admitted
}

func applyWindow(pool []*recipe.Record, w admissionWindow) []*recipe.Record {
	seen := make(map[string]struct{}, len(pool))
	var admitted []*recipe.Record
	for _, r := range pool {
		if r.Calories < w.minCal || r.Calories > w.maxCal || r.ProteinPDV < w.minProt {
			continue
		}
		if _, dup := seen[r.Name]; dup {
			continue
		}
		seen[r.Name] = struct{}{}
		admitted = append(admitted, r)
	}
	return admitted
}
