package registry

import "github.com/vovakirdan/faststack/internal/engine"

// DefaultMode is played when no mode is named.
const DefaultMode = "sprint"

func goal(lines int) func(*engine.Options) {
	return func(o *engine.Options) { o.Goal = lines }
}

func init() {
	Register(Mode{
		ID:          "sprint",
		Title:       "40 Line Sprint",
		Description: "Clear 40 lines as fast as possible",
		Apply:       goal(40),
	})
	Register(Mode{
		ID:          "sprint20",
		Title:       "20 Line Sprint",
		Description: "Clear 20 lines as fast as possible",
		Apply:       goal(20),
	})
	Register(Mode{
		ID:          "sprint100",
		Title:       "100 Line Sprint",
		Description: "Clear 100 lines as fast as possible",
		Apply:       goal(100),
	})
	Register(Mode{
		ID:          "practice",
		Title:       "Practice",
		Description: "No goal, restart or quit when done",
		Apply:       goal(0),
	})
	Register(Mode{
		ID:          "classic",
		Title:       "Classic",
		Description: "40 lines with an unbagged randomizer and a single preview",
		Apply: func(o *engine.Options) {
			o.Goal = 40
			o.Randomizer = engine.RandomizerSimple
			o.PreviewPieceCount = 1
		},
	})
}
