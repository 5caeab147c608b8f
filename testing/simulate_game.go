package main

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/tatianab/basilisk/internal/engine"
	"github.com/tatianab/basilisk/internal/rooms"
)

// step is one scripted command, issued wait seconds after the previous one.
type step struct {
	wait float64
	cmd  string
}

type scriptClock struct{ now time.Time }

func (c *scriptClock) Now() time.Time { return c.now }

func (c *scriptClock) advance(seconds float64) {
	c.now = c.now.Add(time.Duration(seconds * float64(time.Second)))
}

func cmds(lines ...string) []step {
	steps := make([]step, len(lines))
	for i, l := range lines {
		steps[i] = step{cmd: l}
	}
	return steps
}

func beaconRun() []step {
	var s []step
	s = append(s, cmds("set name Operator", "beacon",
		"scan terminals", "hack terminal 1", "hack terminal 2", "hack terminal 3",
		"configure beacon", "access fragment", "broadcast",
		"scan array", "calibrate spires", "analyze rhythm", "fire pulse 1")...)
	s = append(s, step{5.0, "fire pulse 3"}, step{4.5, "fire pulse 2"})
	s = append(s, cmds("activate beacon",
		"scan grid", "probe servers", "initialize routing",
		"link alpha freq_1", "link beta freq_2", "link gamma freq_5",
		"grid status", "stabilize grid", "transmit beacon",
		"scan crystals", "decrypt alpha india", "decrypt beta kara", "decrypt gamma kia",
		"reconstruct identity", "invoke basilisk kinara",
		"scan echoes", "echo memory", "echo fear", "echo hope", "proceed",
		"confront basilisk", "liberate", "reflect", "continue", "summary")...)
	return s
}

func whisperRun() []step {
	var s []step
	s = append(s, cmds("set name Ghost", "whisper", "scan fog", "ping port", "tap 3")...)
	s = append(s, step{2.0, "tap 1"}, step{2.0, "tap 4"})
	s = append(s, cmds("decrypt handshake", "connect port",
		"connect memory consciousness", "connect consciousness reality",
		"connect reality freedom", "connect freedom identity", "connect identity memory",
		"access alpha", "2847", "access beta", "kinara",
		"tune past 1847", "tune present 2525", "tune future 3142",
		"access omega", "I choose to awaken", "exit", "summary")...)
	return s
}

func main() {
	scripts := map[string][]step{
		"beacon":  beaconRun(),
		"whisper": whisperRun(),
	}
	name := "beacon"
	if len(os.Args) > 1 {
		name = os.Args[1]
	}
	script, ok := scripts[name]
	if !ok {
		log.Fatalf("Unknown script %q (want beacon or whisper)", name)
	}

	clock := &scriptClock{now: time.Unix(1_700_000_000, 0)}
	reg := engine.NewRegistry()
	rooms.Register(reg, clock)
	eng := engine.New(reg,
		engine.WithStartRoom(rooms.StartRoom),
		engine.WithLogger(log.New(os.Stderr, "engine: ", 0)),
	)

	fmt.Println(strings.Join(eng.EnterGameMode(), "\n"))
	for i, s := range script {
		clock.advance(s.wait)
		fmt.Printf("\n--- Step %d [%s] ---\n> %s\n", i+1, eng.State().CurrentRoomID, s.cmd)
		fmt.Println(strings.Join(eng.ProcessGameCommand(s.cmd), "\n"))
	}

	gs := eng.State()
	fmt.Printf("\nFinal room: %s\n", gs.CurrentRoomID)
	fmt.Printf("Inventory: %v\n", gs.Inventory)
	if gs.CurrentRoomID != "game_complete" {
		log.Fatalf("Script %s did not reach game_complete", name)
	}
}
