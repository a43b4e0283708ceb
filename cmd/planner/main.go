package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	orbital "github.com/captainkw/orbital-sim"
)

// This tool computes impulsive transfer plans between circular orbits and can
// export the predicted departure orbit for plotting.

var (
	r1Alt   float64
	r2Alt   float64
	rbAlt   float64
	export  string
	samples int
)

func init() {
	flag.Float64Var(&r1Alt, "from", 200e3, "departure circular orbit altitude (m)")
	flag.Float64Var(&r2Alt, "to", 35786e3, "arrival circular orbit altitude (m)")
	flag.Float64Var(&rbAlt, "via", 0, "intermediate apoapsis altitude for a bi-elliptic transfer (m, 0 for Hohmann)")
	flag.StringVar(&export, "export", "", "write the predicted departure orbit to this CSV file")
	flag.IntVar(&samples, "points", orbital.DefaultPredictionPoints, "number of prediction samples")
}

func main() {
	flag.Parse()
	cfg, err := orbital.LoadConfig()
	if err != nil {
		log.Fatalf("configuration: %s", err)
	}
	body := cfg.Body
	r1 := body.Radius + r1Alt
	r2 := body.Radius + r2Alt

	if rbAlt > 0 {
		plan := orbital.BiellipticTransfer(r1, body.Radius+rbAlt, r2, body)
		fmt.Printf("=== BI-ELLIPTIC TRANSFER ===\n")
		fmt.Printf("Δv1=%.1f m/s\tΔv2=%.1f m/s\tΔv3=%.1f m/s (total %.1f m/s)\n",
			plan.ΔvDeparture, plan.ΔvIntermediate, plan.ΔvArrival, plan.TotalΔv())
		fmt.Printf("T.O.F.: %s + %s\n", plan.FirstLeg, plan.SecondLeg)
	} else {
		plan := orbital.HohmannTransfer(r1, r2, body)
		fmt.Printf("=== HOHMANN TRANSFER ===\n")
		fmt.Printf("Δv1=%.1f m/s\tΔv2=%.1f m/s (total %.1f m/s)\n",
			plan.ΔvDeparture, plan.ΔvArrival, plan.TotalΔv())
		fmt.Printf("T.O.F.: %s (~%.1fh)\n", plan.TransferTime, plan.TransferTime.Hours())
	}

	if export != "" {
		sv := orbital.NewOrbitFromOE(r1, 0, 0, 0, 0, 0, body).State()
		points := orbital.PredictOrbit(sv, body, samples)
		f, err := os.Create(export)
		if err != nil {
			log.Fatalf("%s: %s", export, err)
		}
		defer f.Close()
		if err := orbital.WriteTrajectoryCSV(f, time.Now(), points); err != nil {
			log.Fatalf("export: %s", err)
		}
		fmt.Printf("Saved departure orbit to %s.\n", f.Name())
	}
}
