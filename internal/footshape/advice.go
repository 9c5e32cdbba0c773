package footshape

// AdviceBundle is the advisory text derived from a ClassificationResult.
// Every list is non-empty and ordered deterministically.
type AdviceBundle struct {
	// Summary has one line per category: width, toe, vertical, horizontal.
	Summary   []string `json:"summary"`
	Fit       []string `json:"fit"`
	PlayStyle []string `json:"play_style"`
	Examples  []string `json:"examples"`
}

type widthAdvice struct {
	fit      string
	examples []string
}

var widthAdviceTable = map[WidthCategory]widthAdvice{
	WidthNarrow: {
		fit: "Your foot is on the slim side. Slim-last boots with a lower instep tend to fit without the foot sliding.",
		examples: []string{
			"Nike Mercurial (slim last)",
			"adidas X Speedportal",
		},
	},
	WidthNormal: {
		fit: "Your width is well balanced, so most brands' regular-fit models should suit you.",
		examples: []string{
			"adidas Predator",
			"Puma Future",
		},
	},
	WidthWide: {
		fit: "Your foot is on the wide side. Wide models or boots with extra room across the forefoot will be more comfortable.",
		examples: []string{
			"Mizuno Morelia (wide)",
			"Asics DS Light (wide)",
			"New Balance 442 (wide)",
		},
	},
}

var toeFitTable = map[ToeCategory]string{
	ToeEgyptian: "The big-toe side is longest. Pick a model with some room at the tip or the big toe alone will press against the toe box.",
	ToeGreek:    "The second toe is longest. A toe box with even room across the whole tip tends to fit well.",
	ToeSquare:   "Your toes are about even, giving a squarish front. Models with a wide toe box pair well with this shape.",
	ToeOuter:    "The little-toe side reaches furthest. Check that the outer edge of the toe box does not pinch.",
	ToeUnknown:  "The toe shape could not be judged from this photo. Try a fitting in store to check the toe box.",
}

var verticalPlayTable = map[Position]string{
	PositionLow:     "Your weight appears to sit toward the heel. Stable, grounded movements may come naturally; work on staying on the balls of your feet for quick starts.",
	PositionHigh:    "Your weight appears to sit toward the toes. This suits quick starts and sharp changes of direction.",
	PositionMid:     "Your weight sits around the middle of the foot, a balanced base for both stability and agility.",
	PositionUnknown: "Front-to-back balance was not measured for this analysis.",
}

var horizontalPlayTable = map[Position]string{
	PositionLow:     "Weight leans to the inner (big-toe) side, which supports push-offs and inside-foot touches.",
	PositionHigh:    "Weight leans to the outer (little-toe) side; watch for ankle roll when cutting.",
	PositionMid:     "Inner and outer balance is close to center.",
	PositionUnknown: "Inner/outer balance was not measured for this analysis.",
}

// Compose maps a classification to advice. Width fit text always precedes toe
// fit text and vertical play-style text always precedes horizontal text.
// Neutral categories contribute a neutral fragment instead of being omitted.
func Compose(c ClassificationResult) AdviceBundle {
	width, ok := widthAdviceTable[c.Width.Category]
	if !ok {
		width = widthAdviceTable[WidthNormal]
	}

	return AdviceBundle{
		Summary: []string{
			"Width: " + c.Width.Label,
			"Toe shape: " + c.Toe.Category.Label(),
			"Front/back balance: " + c.Vertical.Label,
			"Inner/outer balance: " + c.Horizontal.Label,
		},
		Fit:       []string{width.fit, lookup(toeFitTable, c.Toe.Category, ToeUnknown)},
		PlayStyle: []string{lookup(verticalPlayTable, c.Vertical.Position, PositionUnknown), lookup(horizontalPlayTable, c.Horizontal.Position, PositionUnknown)},
		Examples:  append([]string(nil), width.examples...),
	}
}

func lookup[K comparable](table map[K]string, key, fallback K) string {
	if s, ok := table[key]; ok {
		return s
	}
	return table[fallback]
}
