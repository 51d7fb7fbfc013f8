// Command lightdock-gso runs the GSO optimization phase
// against a setup.json manifest a prior lightdock-setup invocation wrote:
// one independent swarm per entry in the manifest, executed across a
// bounded worker pool, each writing its own sequence of glowworm reports.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"github.com/lightdock/lightdock-go/anm"
	"github.com/lightdock/lightdock-go/gso"
	"github.com/lightdock/lightdock-go/iox"
	"github.com/lightdock/lightdock-go/nursery"
	"github.com/lightdock/lightdock-go/prng"
	"github.com/lightdock/lightdock-go/restraints"
	"github.com/lightdock/lightdock-go/scoring"
	_ "github.com/lightdock/lightdock-go/scoring/contact"
	"github.com/lightdock/lightdock-go/setup"
	"github.com/lightdock/lightdock-go/structure"
)

func main() {
	if err := application().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func application() *cli.App {
	return &cli.App{
		Name:  "lightdock-gso",
		Usage: "run the GSO optimization phase against a lightdock-setup manifest",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "setup-dir", Value: ".", Usage: "directory containing setup.json and its artifacts"},
			&cli.StringFlag{Name: "config", Usage: "path to a setup.json scenario file, re-running a GSO job without re-invoking setup (defaults to <setup-dir>/setup.json)"},
			&cli.StringFlag{Name: "out", Usage: "directory to write swarm reports into (defaults to setup-dir)"},
			&cli.IntFlag{Name: "steps", Value: 100, Usage: "number of GSO steps per swarm"},
			&cli.IntFlag{Name: "report-interval", Value: 10, Usage: "steps between glowworm reports"},
			&cli.IntFlag{Name: "concurrency", Value: 4, Usage: "maximum number of swarms run concurrently"},
			&cli.Int64Flag{Name: "seed", Usage: "GSO roulette-selection PRNG seed (defaults to the manifest's pose seed)"},
		},
		Action: runGSO,
	}
}

func runGSO(c *cli.Context) error {
	setupDir := c.String("setup-dir")
	outDir := c.String("out")
	if outDir == "" {
		outDir = setupDir
	}

	manifestPath := c.String("config")
	if manifestPath == "" {
		manifestPath = filepath.Join(setupDir, "setup.json")
	}
	manifest, err := readManifest(manifestPath)
	if err != nil {
		return fmt.Errorf("read manifest: %w", err)
	}

	receptor, err := structure.ParsePDBFile(filepath.Join(setupDir, manifest.ReceptorLightdockPDB), structure.ParseOptions{})
	if err != nil {
		return fmt.Errorf("parse receptor: %w", err)
	}
	ligand, err := structure.ParsePDBFile(filepath.Join(setupDir, manifest.LigandLightdockPDB), structure.ParseOptions{})
	if err != nil {
		return fmt.Errorf("parse ligand: %w", err)
	}

	var rst *restraints.Restraints
	if manifest.Config.RestraintsFile != "" {
		f, err := os.Open(manifest.Config.RestraintsFile)
		if err != nil {
			return fmt.Errorf("open restraints: %w", err)
		}
		rst, err = restraints.Parse(f)
		f.Close()
		if err != nil {
			return fmt.Errorf("parse restraints: %w", err)
		}
	}

	scoringName := manifest.Config.Scoring
	if scoringName == "" {
		scoringName = "contact"
	}
	adapter, scorer, err := scoring.Lookup(scoringName)
	if err != nil {
		return err
	}

	recNM, ligNM := 0, 0
	var recModes, ligModes []anm.Mode
	if manifest.Config.UseANM {
		recNM, ligNM = manifest.Config.ANMRec, manifest.Config.ANMLig
		recModes, err = anm.ComputeModes(setup.CaTrace(receptor), anm.DefaultCutoff, anm.DefaultSpringConstant, recNM)
		if err != nil {
			return fmt.Errorf("recompute receptor anm modes: %w", err)
		}
		ligModes, err = anm.ComputeModes(setup.CaTrace(ligand), anm.DefaultCutoff, anm.DefaultSpringConstant, ligNM)
		if err != nil {
			return fmt.Errorf("recompute ligand anm modes: %w", err)
		}
	}

	docking, err := gso.NewDocking(receptor, ligand, adapter, scorer, rst, recModes, ligModes, recNM, ligNM)
	if err != nil {
		return fmt.Errorf("build docking objective: %w", err)
	}

	gsoSeed := c.Int64("seed")
	if !c.IsSet("seed") {
		gsoSeed = manifest.Config.Seed
	}

	fs := iox.RootedOSFS{Dir: outDir}
	if err := fs.MkdirAll("."); err != nil {
		return err
	}

	params := gso.DefaultDockingParameters()
	params.MaxSteps = c.Int("steps")
	params.ReportInterval = c.Int("report-interval")
	layout := gso.PoseLayout{RecNM: recNM, LigNM: ligNM}

	ctx := context.Background()
	return nursery.RunPool(ctx, c.Int("concurrency"), len(manifest.InitialPositionsFiles), func(ctx context.Context, swarmID int) error {
		return runSwarm(fs, setupDir, manifest, swarmID, docking, layout, params, gsoSeed)
	})
}

func runSwarm(fs iox.RootedOSFS, setupDir string, manifest *setup.Manifest, swarmID int, docking *gso.Docking, layout gso.PoseLayout, params gso.Parameters, seed int64) error {
	positions, err := gso.InitFromFile(filepath.Join(setupDir, manifest.InitialPositionsFiles[swarmID]))
	if err != nil {
		return fmt.Errorf("swarm %d: read initial positions: %w", swarmID, err)
	}

	rng := prng.ForSwarm(seed, swarmID)
	swarm := gso.NewSwarm(positions, docking.Objective(), layout.Distance(params), layout.Move, params, rng)

	swarmDir := fmt.Sprintf("swarm_%d", swarmID)
	if err := fs.MkdirAll(swarmDir); err != nil {
		return fmt.Errorf("swarm %d: create output dir: %w", swarmID, err)
	}

	return swarm.Run(func(step int, s *gso.Swarm) {
		name := fmt.Sprintf("%s/gso_%d.out", swarmDir, step)
		f, err := fs.Create(name)
		if err != nil {
			log.Printf("swarm %d: open report %d: %v", swarmID, step, err)
			return
		}
		defer f.Close()
		if err := s.WriteReport(f); err != nil {
			log.Printf("swarm %d: write report %d: %v", swarmID, step, err)
		}
	})
}

func readManifest(path string) (*setup.Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var manifest setup.Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, err
	}
	return &manifest, nil
}
