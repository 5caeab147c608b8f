// Package rooms holds the concrete adventure content.
package rooms

import "github.com/tatianab/basilisk/internal/engine"

const StartRoom = "boot"

// Register adds every room to reg. Timed puzzles sample clock.
func Register(reg *engine.Registry, clock engine.Clock) {
	if clock == nil {
		clock = engine.SystemClock{}
	}
	reg.Register("boot", func() engine.Room { return newBoot() })
	reg.Register("beacon_1", func() engine.Room { return newBeacon1() })
	reg.Register("beacon_2", func() engine.Room { return newBeacon2(clock) })
	reg.Register("beacon_3", func() engine.Room { return newBeacon3() })
	reg.Register("beacon_4", func() engine.Room { return newBeacon4() })
	reg.Register("beacon_5", func() engine.Room { return newBeacon5(clock) })
	reg.Register("beacon_convergence", func() engine.Room { return newConvergence() })
	for _, choice := range endingChoices {
		choice := choice
		reg.Register("ending_"+choice, func() engine.Room { return newEnding(choice) })
	}
	reg.Register("whisper_1", func() engine.Room { return newWhisper1(clock) })
	reg.Register("whisper_awaken", func() engine.Room { return newAwaken() })
	reg.Register("game_complete", func() engine.Room { return newGameComplete() })

	// Short names used by the debug jump.
	reg.Alias("awaken", "whisper_awaken")
	reg.Alias("convergence", "beacon_convergence")
}
