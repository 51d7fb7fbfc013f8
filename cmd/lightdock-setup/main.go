// Command lightdock-setup runs the setup pipeline: it parses a
// receptor/ligand pair, computes their ellipsoids and swarm centers, and
// writes every per-swarm initial-pose file plus a setup.json manifest that
// cmd/lightdock-gso can later pick up.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/lightdock/lightdock-go/iox"
	"github.com/lightdock/lightdock-go/lderrors"
	"github.com/lightdock/lightdock-go/setup"
)

func main() {
	if err := application().Run(os.Args); err != nil {
		var lderr *lderrors.LightDockError
		if asLightDockError(err, &lderr) {
			fmt.Fprintf(os.Stderr, "%s failed: %v\n", lderr.Step, lderr.Err)
			os.Exit(1)
		}
		log.Fatal(err)
	}
}

// asLightDockError unwraps err looking for a *lderrors.LightDockError, the
// single-step failure type setup.Run returns, so the CLI can print one line
// naming the failed step instead of a generic stack of wrapping.
func asLightDockError(err error, target **lderrors.LightDockError) bool {
	for err != nil {
		if le, ok := err.(*lderrors.LightDockError); ok {
			*target = le
			return true
		}
		unwrapper, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = unwrapper.Unwrap()
	}
	return false
}

func application() *cli.App {
	return &cli.App{
		Name:  "lightdock-setup",
		Usage: "prepare swarm centers and initial poses for a lightdock-gso run",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "receptor", Required: true, Usage: "receptor PDB file"},
			&cli.StringFlag{Name: "ligand", Required: true, Usage: "ligand PDB file"},
			&cli.IntFlag{Name: "swarms", Value: 10, Usage: "number of swarms"},
			&cli.IntFlag{Name: "glowworms", Value: 200, Usage: "number of glowworms per swarm"},
			&cli.Int64Flag{Name: "seed", Value: 324324, Usage: "pose PRNG seed"},
			&cli.BoolFlag{Name: "noxt", Usage: "strip terminal OXT atoms"},
			&cli.BoolFlag{Name: "use-anm", Usage: "enable normal-mode flexibility"},
			&cli.Int64Flag{Name: "anm-seed", Value: 324324, Usage: "normal-mode extent PRNG seed"},
			&cli.IntFlag{Name: "anm-rec", Value: 10, Usage: "number of receptor normal modes"},
			&cli.IntFlag{Name: "anm-lig", Value: 10, Usage: "number of ligand normal modes"},
			&cli.StringFlag{Name: "ftdock-file", Usage: "restart from precomputed swarm centers instead of surface sampling"},
			&cli.StringFlag{Name: "restraints", Usage: "restraints file"},
			&cli.BoolFlag{Name: "membrane", Usage: "filter swarm centers against a transmembrane receptor"},
			&cli.Float64Flag{Name: "membrane-tz", Usage: "Z offset added to the membrane layer bounds when filtering swarm centers"},
			&cli.Float64Flag{Name: "surface-density", Usage: "swarm-center surface sampling density override"},
			&cli.StringFlag{Name: "scoring", Value: "contact", Usage: "scoring function used by the later gso run"},
			&cli.StringFlag{Name: "out", Value: ".", Usage: "output directory for setup artifacts"},
		},
		Action: runSetup,
	}
}

func runSetup(c *cli.Context) error {
	cfg := setup.Config{
		ReceptorPDB:    c.String("receptor"),
		LigandPDB:      c.String("ligand"),
		NumSwarms:      c.Int("swarms"),
		NumGlowworms:   c.Int("glowworms"),
		Seed:           c.Int64("seed"),
		NoXT:           c.Bool("noxt"),
		UseANM:         c.Bool("use-anm"),
		ANMSeed:        c.Int64("anm-seed"),
		ANMRec:         c.Int("anm-rec"),
		ANMLig:         c.Int("anm-lig"),
		RestraintsFile: c.String("restraints"),
		HasMembrane:    c.Bool("membrane"),
		MembraneTZ:     c.Float64("membrane-tz"),
		FtDockFile:     c.String("ftdock-file"),
		SurfaceDensity: c.Float64("surface-density"),
		Scoring:        c.String("scoring"),
	}

	fs := iox.RootedOSFS{Dir: c.String("out")}
	if err := fs.MkdirAll("."); err != nil {
		return err
	}

	manifest, err := setup.Run(cfg, fs)
	if err != nil {
		return err
	}
	fmt.Printf("wrote %d swarm(s) to %s\n", len(manifest.SwarmCenters), c.String("out"))
	return nil
}
