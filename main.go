package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/soniakeys/meeus/v3/julian"

	"github.com/echoflaresat/orrery/catalog"
	"github.com/echoflaresat/orrery/orrery"
	"github.com/echoflaresat/orrery/simtime"
	"github.com/echoflaresat/orrery/system"
)

type config struct {
	start         *string
	scale, dt     *float64
	frames, every *int
	reverseAt     *int
	bodies        *string
	distanceScale *float64
	moonScale     *float64
	verbose       *bool
	showHelp      *bool
}

func defineFlags() config {
	return config{
		start: flag.String("start", "", "Start instant, RFC3339 (2025-08-02T15:04:05Z) or calendar (2025-08-02T15:04:05); defaults to now"),
		scale: flag.Float64("scale", 86400, "Simulated seconds per real second; negative runs backward"),
		dt:    flag.Float64("dt", 1.0/60, "Real seconds per frame"),

		frames:    flag.Int("frames", 600, "Number of frames to simulate"),
		every:     flag.Int("every", 60, "Print positions every N frames"),
		reverseAt: flag.Int("reverse-at", 0, "Reverse time at this frame (0 = never)"),

		bodies: flag.String("bodies", "Sun,Mercury,Venus,Earth,Moon,Mars,Jupiter", "Comma-separated bodies to print"),

		distanceScale: flag.Float64("distance-scale", 1, "Multiplier for heliocentric distances"),
		moonScale:     flag.Float64("moon-scale", 1, "Multiplier for moon distances from their planet"),

		verbose:  flag.Bool("v", false, "Debug logging"),
		showHelp: flag.Bool("h", false, "Show this help message"),
	}
}

func printHelp() {
	fmt.Fprintf(os.Stderr, `Orrery - Keplerian solar system stepper

Usage:
  %[1]s [options]

`, os.Args[0])

	printGroup("Time Options", []string{"start", "scale", "dt", "reverse-at"})
	printGroup("Output Options", []string{"frames", "every", "bodies"})
	printGroup("Scale Options", []string{"distance-scale", "moon-scale"})
	printGroup("Misc", []string{"v", "h"})
}

func printGroup(title string, keys []string) {
	fmt.Fprintf(os.Stderr, "%s:\n", title)
	for _, name := range keys {
		if f := flag.Lookup(name); f != nil {
			fmt.Fprintf(os.Stderr, "  -%-15s %s (default %q)\n", f.Name, f.Usage, f.DefValue)
		}
	}
	fmt.Fprintln(os.Stderr)
}

func main() {
	cfg := defineFlags()
	flag.Usage = printHelp
	flag.Parse()

	if *cfg.showHelp {
		printHelp()
		return
	}
	if *cfg.verbose {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}
	if *cfg.every <= 0 {
		log.Fatalf("Invalid -every %d: must be positive", *cfg.every)
	}

	startJD := parseStartOrExit(*cfg.start)

	orr, err := orrery.New(catalog.SolarSystem(), orrery.Config{
		StartJD:   startJD,
		TimeScale: *cfg.scale,
		Scale: system.Scale{
			Distance:      *cfg.distanceScale,
			ChildDistance: *cfg.moonScale,
		},
	})
	if err != nil {
		log.Fatal(err)
	}

	ids := lookupBodiesOrExit(orr, *cfg.bodies)
	slog.Info("simulating", "start", orr.CalendarDate(), "jd", orr.JulianDate(), "scale", orr.TimeScale(), "frames", *cfg.frames)

	printFrame(orr, ids)
	for frame := 1; frame <= *cfg.frames; frame++ {
		if frame == *cfg.reverseAt {
			orr.Reverse()
			slog.Info("reversing time", "frame", frame, "scale", orr.TimeScale())
		}
		if err := orr.Advance(*cfg.dt); err != nil {
			log.Fatalf("Frame %d: %v", frame, err)
		}
		if frame%*cfg.every == 0 {
			printFrame(orr, ids)
		}
	}
}

func parseStartOrExit(s string) float64 {
	if s == "" {
		return julian.TimeToJD(time.Now().UTC())
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return julian.TimeToJD(t.UTC())
	}
	d, err := simtime.ParseCalendarDate(s)
	if err != nil {
		log.Fatalf("Invalid start: %v", err)
	}
	jd, err := d.JulianDate()
	if err != nil {
		log.Fatalf("Invalid start: %v", err)
	}
	return jd
}

func lookupBodiesOrExit(orr *orrery.Orrery, list string) []system.BodyID {
	var ids []system.BodyID
	for _, name := range strings.Split(list, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		id, ok := orr.Lookup(name)
		if !ok {
			log.Fatalf("Unknown body %q", name)
		}
		ids = append(ids, id)
	}
	return ids
}

func printFrame(orr *orrery.Orrery, ids []system.BodyID) {
	fmt.Printf("%s  JD %.6f\n", orr.CalendarDate(), orr.JulianDate())
	sys := orr.System()
	for _, id := range ids {
		p := orr.WorldPosition(id)
		fmt.Printf("  %-10s x=%+12.8f y=%+12.8f z=%+12.8f r=%11.8f AU\n", sys.Body(id).Name, p.X, p.Y, p.Z, p.Norm())
	}
}
