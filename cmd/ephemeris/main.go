package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"strings"

	"github.com/echoflaresat/orrery/catalog"
	"github.com/echoflaresat/orrery/ephemeris"
	"github.com/echoflaresat/orrery/simtime"
	"github.com/echoflaresat/orrery/system"
)

func main() {
	start := flag.String("start", "2000-01-01T12:00:00", "First instant (calendar, UT)")
	step := flag.Float64("step", 1, "Days between rows")
	n := flag.Int("n", 30, "Number of rows")
	workers := flag.Int("workers", runtime.GOMAXPROCS(0), "Parallel evaluations")
	body := flag.String("body", "Earth", "Comma-separated bodies to tabulate")
	flag.Parse()

	d, err := simtime.ParseCalendarDate(*start)
	if err != nil {
		log.Fatalf("Invalid start: %v", err)
	}
	startJD, err := d.JulianDate()
	if err != nil {
		log.Fatalf("Invalid start: %v", err)
	}

	sys, err := system.New(catalog.SolarSystem(), system.Scale{})
	if err != nil {
		log.Fatal(err)
	}

	var ids []system.BodyID
	for _, name := range strings.Split(*body, ",") {
		id, ok := sys.Lookup(strings.TrimSpace(name))
		if !ok {
			log.Fatalf("Unknown body %q", name)
		}
		ids = append(ids, id)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	frames, err := ephemeris.Sample(ctx, sys, startJD, *step, *n, *workers)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("%-19s  %-10s  %-10s %13s %13s %13s %12s\n", "date", "jd", "body", "x", "y", "z", "r")
	for _, f := range frames {
		date := simtime.FromJulianDate(f.JD)
		for _, id := range ids {
			p := f.Positions[id]
			fmt.Printf("%s  %.2f  %-10s %+13.8f %+13.8f %+13.8f %12.8f\n",
				date, f.JD, sys.Body(id).Name, p.X, p.Y, p.Z, p.Norm())
		}
	}
}
