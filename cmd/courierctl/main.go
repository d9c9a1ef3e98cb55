package main

import (
	"context"
	"courier-route-service/internal/adapters/csvio"
	"courier-route-service/internal/config"
	"courier-route-service/internal/domain"
	"courier-route-service/internal/services"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

type options struct {
	input      string
	depotLat   float64
	depotLon   float64
	mode       string
	objective  string
	outDir     string
	returnTrip bool
	configPath string
}

// courierctl runs the optimization pipeline end to end on a local CSV file
// and writes the route, metrics, and rejected-row reports.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	var o options
	flag.StringVar(&o.input, "input", "deliveries.csv", "CSV file with delivery rows")
	flag.Float64Var(&o.depotLat, "depot-lat", 59.9139, "depot latitude")
	flag.Float64Var(&o.depotLon, "depot-lon", 10.7522, "depot longitude")
	flag.StringVar(&o.mode, "mode", "", "transport mode (default from config)")
	flag.StringVar(&o.objective, "objective", "", "objective: time, cost, or co2 (default from config)")
	flag.StringVar(&o.outDir, "out", "reports", "directory for the CSV reports")
	flag.BoolVar(&o.returnTrip, "return", false, "append a return leg to the depot")
	flag.StringVar(&o.configPath, "config", "", "path to config.yml (default $CONFIG_PATH)")
	flag.Parse()

	if err := run(o); err != nil {
		log.Fatal(err)
	}
}

func run(o options) error {
	// The -config flag wins; otherwise CONFIG_PATH selects the file, the
	// same as for the server and dbtool.
	if o.configPath == "" {
		o.configPath = os.Getenv("CONFIG_PATH")
	}

	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}

	// Flags that were not given on the command line fall back to the config.
	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if o.mode == "" {
		o.mode = cfg.Planner.DefaultMode
	}
	if o.objective == "" {
		o.objective = cfg.Planner.DefaultObjective
	}
	if !set["return"] {
		o.returnTrip = cfg.Planner.ReturnToDepot
	}

	if !(o.depotLat >= -90 && o.depotLat <= 90) {
		return fmt.Errorf("depot-lat %v is out of range", o.depotLat)
	}
	if !(o.depotLon >= -180 && o.depotLon <= 180) {
		return fmt.Errorf("depot-lon %v is out of range", o.depotLon)
	}

	mode, ok := domain.ModeByName(cfg.TransportModes(), o.mode)
	if !ok {
		return fmt.Errorf("unknown transport mode %q", o.mode)
	}
	objective, ok := domain.ParseObjective(o.objective)
	if !ok {
		return fmt.Errorf("unknown objective %q", o.objective)
	}

	ctx := context.Background()
	rows, err := csvio.NewFileRowSource(o.input).ReadRows(ctx)
	if err != nil {
		return err
	}

	req := services.PlanRequest{
		Rows:          rows,
		Depot:         domain.Coordinates{Lat: o.depotLat, Lon: o.depotLon},
		Mode:          mode,
		Objective:     objective,
		ReturnToDepot: o.returnTrip,
	}
	settings := services.PlannerSettings{
		NearTieEpsilon:   cfg.Planner.NearTieEpsilon,
		MaxStops:         cfg.Planner.MaxStops,
		EnforceCapacity:  cfg.Planner.EnforceCapacity,
		ExhaustiveLimit:  cfg.Planner.ExhaustiveLimit,
		RefineIterations: cfg.Planner.RefineIterations,
	}

	result, err := services.PlanCourierRoute(ctx, req, settings)
	if err != nil {
		return err
	}

	reports := csvio.NewReportDir(o.outDir)

	// An empty route is an error for the CLI; the rejects report still gets
	// written so the user can see why every row was dropped.
	if len(result.Route) == 0 {
		if len(result.Rejected) > 0 {
			if err := reports.WriteRejects(result.Rejected); err != nil {
				return err
			}
			return fmt.Errorf("no valid delivery rows in %s (%d rejected, see %s)",
				o.input, len(result.Rejected), filepath.Join(o.outDir, csvio.RejectedFileName))
		}
		return fmt.Errorf("no delivery rows in %s", o.input)
	}

	for _, warning := range result.Warnings {
		log.Printf("Warning: %s", warning)
	}

	if err := services.WriteReports(reports, result); err != nil {
		return err
	}

	printSummary(os.Stdout, result, o.outDir)
	return nil
}

func printSummary(w io.Writer, res *services.PlanResult, outDir string) {
	m := res.Metrics

	fmt.Fprintf(w, "\nPlan %s (%s, optimizing %s)\n", res.PlanID, res.Mode.Name, res.Objective.Label())
	fmt.Fprintf(w, "  Stops served:   %d", m.StopCount)
	if n := len(res.Rejected); n > 0 {
		fmt.Fprintf(w, "  (%d rows rejected)", n)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Total distance: %.2f km\n", m.TotalDistanceKm)
	fmt.Fprintf(w, "  Total time:     %.2f hours (%.0f minutes)\n", m.TotalTimeH, m.TotalTimeH*60)
	fmt.Fprintf(w, "  Total cost:     %.2f NOK\n", m.TotalCost)
	fmt.Fprintf(w, "  Total CO2:      %.2f g (%.3f kg)\n", m.TotalCO2G, m.TotalCO2G/1000)

	fmt.Fprintf(w, "\nReports written to %s\n", outDir)
	fmt.Fprintf(w, "  %s\n", csvio.RouteFileName)
	fmt.Fprintf(w, "  %s\n", csvio.MetricsFileName)
	if len(res.Rejected) > 0 {
		fmt.Fprintf(w, "  %s\n", csvio.RejectedFileName)
	}
}
