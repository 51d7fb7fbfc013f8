// Package setup orchestrates the lightdock-go setup pipeline: parse the two
// input structures, move them to the origin, compute their minimum-volume
// ellipsoids, optionally compute ANM modes, partition the receptor surface
// into swarm centers (restraint- and membrane-filtered), populate each
// swarm with initial poses, and write every output artifact plus a
// manifest describing the run. Grounded step-for-step on
// bin/simulation/lightdock_setup.py's sequence, restructured into a single
// Config/Run pair following shiblon-entrogo/psosimulation's main-loop
// shape, generalized into a library function instead of a standalone main.
package setup

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/lightdock/lightdock-go/anm"
	"github.com/lightdock/lightdock-go/coordinates"
	"github.com/lightdock/lightdock-go/ellipsoid"
	"github.com/lightdock/lightdock-go/iox"
	"github.com/lightdock/lightdock-go/lderrors"
	"github.com/lightdock/lightdock-go/membrane"
	"github.com/lightdock/lightdock-go/placement"
	"github.com/lightdock/lightdock-go/population"
	"github.com/lightdock/lightdock-go/prng"
	"github.com/lightdock/lightdock-go/restraints"
	"github.com/lightdock/lightdock-go/structure"
)

// Config is the full set of setup parameters, built either from CLI flags
// or (for a re-run) decoded from the JSON scenario file this package also
// writes.
type Config struct {
	ReceptorPDB  string `json:"receptor_pdb"`
	LigandPDB    string `json:"ligand_pdb"`
	NumSwarms    int    `json:"num_swarms"`
	NumGlowworms int    `json:"num_glowworms"`
	Seed         int64  `json:"seed"`
	NoXT         bool   `json:"noxt"`

	UseANM  bool  `json:"use_anm"`
	ANMSeed int64 `json:"anm_seed"`
	ANMRec  int   `json:"anm_rec"`
	ANMLig  int   `json:"anm_lig"`

	RestraintsFile string  `json:"restraints_file,omitempty"`
	HasMembrane    bool    `json:"has_membrane"`
	MembraneTZ     float64 `json:"membrane_tz"`

	// FtDockFile, when non-empty, supplies precomputed swarm centers (one
	// "x y z" line each) instead of computing them via surface sampling — a
	// restart path interpreted here by analogy to gso.InitFromFile's
	// plain-text coordinate format.
	FtDockFile string `json:"ftdock_file,omitempty"`

	SurfaceDensity float64 `json:"surface_density,omitempty"`

	// Scoring is the name of the registered scoring.ScoringFunction this
	// run's GSO phase should use.
	Scoring string `json:"scoring,omitempty"`
}

// Manifest is the setup.json record written at the end of a successful
// run: the resolved Config plus the artifacts Run produced, so
// cmd/lightdock-gso can pick the run back up.
type Manifest struct {
	Config                Config      `json:"config"`
	ReceptorDiameter      float64     `json:"receptor_diameter"`
	LigandDiameter        float64     `json:"ligand_diameter"`
	ReceptorLightdockPDB  string      `json:"receptor_lightdock_pdb"`
	LigandLightdockPDB    string      `json:"ligand_lightdock_pdb"`
	ReceptorEllipsoidNPY  string      `json:"receptor_ellipsoid_npy"`
	LigandEllipsoidNPY    string      `json:"ligand_ellipsoid_npy"`
	SwarmCenters          [][]float64 `json:"swarm_centers"`
	InitialPositionsFiles []string    `json:"initial_positions_files"`
}

// Run executes the full setup pipeline against fs, writing every output
// artifact, and returns the manifest it also persists as setup.json.
func Run(cfg Config, fs iox.FS) (*Manifest, error) {
	receptor, err := structure.ParsePDBFile(cfg.ReceptorPDB, structure.ParseOptions{StripOXT: cfg.NoXT})
	if err != nil {
		return nil, &lderrors.LightDockError{Step: "parse receptor", Err: err}
	}
	ligand, err := structure.ParsePDBFile(cfg.LigandPDB, structure.ParseOptions{StripOXT: cfg.NoXT})
	if err != nil {
		return nil, &lderrors.LightDockError{Step: "parse ligand", Err: err}
	}

	recTranslation := receptor.MoveToOrigin()
	ligTranslation := ligand.MoveToOrigin()

	recEllipsoid, err := ellipsoid.Compute(receptor.Representative())
	if err != nil {
		return nil, &lderrors.LightDockError{Step: "receptor ellipsoid", Err: err}
	}
	ligEllipsoid, err := ellipsoid.Compute(ligand.Representative())
	if err != nil {
		return nil, &lderrors.LightDockError{Step: "ligand ellipsoid", Err: err}
	}

	recBase := lightdockPrefix(receptor.StructureFileNames[0])
	ligBase := lightdockPrefix(ligand.StructureFileNames[0])

	recPDBName := "lightdock_" + recBase + ".pdb"
	ligPDBName := "lightdock_" + ligBase + ".pdb"
	if err := writePDB(fs, recPDBName, receptor); err != nil {
		return nil, &lderrors.LightDockError{Step: "write receptor lightdock pdb", Err: err}
	}
	if err := writePDB(fs, ligPDBName, ligand); err != nil {
		return nil, &lderrors.LightDockError{Step: "write ligand lightdock pdb", Err: err}
	}

	recEllipsoidName := recBase + ".ellipsoid.npy"
	ligEllipsoidName := ligBase + ".ellipsoid.npy"
	if err := writeEllipsoidCenter(fs, recEllipsoidName, recEllipsoid.Center); err != nil {
		return nil, &lderrors.LightDockError{Step: "write receptor ellipsoid", Err: err}
	}
	if err := writeEllipsoidCenter(fs, ligEllipsoidName, ligEllipsoid.Center); err != nil {
		return nil, &lderrors.LightDockError{Step: "write ligand ellipsoid", Err: err}
	}

	var rst *restraints.Restraints
	if cfg.RestraintsFile != "" {
		f, err := iox.OSFS{}.Open(cfg.RestraintsFile)
		if err != nil {
			return nil, &lderrors.LightDockError{Step: "open restraints", Err: err}
		}
		rst, err = restraints.Parse(f)
		f.Close()
		if err != nil {
			return nil, &lderrors.LightDockError{Step: "parse restraints", Err: err}
		}
	}

	surfaceDensity := cfg.SurfaceDensity
	if surfaceDensity == 0 {
		surfaceDensity = placement.DefaultSurfaceDensity
	}

	var centers []coordinates.Coordinates
	var receptorDiameter, ligandDiameter float64
	if cfg.FtDockFile != "" {
		centers, err = readFtDockCenters(cfg.FtDockFile)
		if err != nil {
			return nil, &lderrors.LightDockError{Step: "read ftdock centers", Err: err}
		}
		receptorDiameter = receptor.Diameter(0)
		ligandDiameter = ligand.Diameter(0)
	} else {
		centers, receptorDiameter, ligandDiameter, err = placement.CalculateSurfacePoints(
			receptor, ligand, cfg.NumSwarms, recTranslation, cfg.Seed, cfg.HasMembrane, surfaceDensity)
		if err != nil {
			return nil, &lderrors.LightDockError{Step: "calculate surface points", Err: err}
		}
	}

	if cfg.HasMembrane {
		zs := membrane.BeadZCoordinates(receptor)
		centers, err = membrane.ApplyMembrane(centers, zs, true, cfg.MembraneTZ)
		if err != nil {
			return nil, &lderrors.LightDockError{Step: "apply membrane", Err: err}
		}
	}

	var receptorResidues, ligandResidues []*structure.Residue
	if rst != nil {
		receptorResidues = resolveResidues(receptor, append(append([]restraints.ResidueRef{}, rst.Receptor.Active...), rst.Receptor.Passive...))
		ligandResidues = resolveResidues(ligand, append(append([]restraints.ResidueRef{}, rst.Ligand.Active...), rst.Ligand.Passive...))
		centers = restraints.ApplyRestraints(centers, receptor, rst.Receptor, ligandDiameter)
	}

	var recModes, ligModes []anm.Mode
	if cfg.UseANM {
		recTrace := CaTrace(receptor)
		ligTrace := CaTrace(ligand)
		recModes, err = anm.ComputeModes(recTrace, anm.DefaultCutoff, anm.DefaultSpringConstant, cfg.ANMRec)
		if err != nil {
			return nil, &lderrors.LightDockError{Step: "compute receptor anm modes", Err: err}
		}
		ligModes, err = anm.ComputeModes(ligTrace, anm.DefaultCutoff, anm.DefaultSpringConstant, cfg.ANMLig)
		if err != nil {
			return nil, &lderrors.LightDockError{Step: "compute ligand anm modes", Err: err}
		}
	}

	var initialPositionsFiles []string
	for swarmID, center := range centers {
		poses, err := populateSwarm(cfg, swarmID, center, recTranslation, ligTranslation, receptorResidues, ligandResidues, ligandDiameter, len(recModes), len(ligModes))
		if err != nil {
			if warning, ok := err.(*lderrors.LightDockWarning); ok {
				poses, err = populateSwarm(cfg, swarmID, center, recTranslation, ligTranslation, nil, nil, ligandDiameter, len(recModes), len(ligModes))
				if err != nil {
					return nil, &lderrors.LightDockError{Step: fmt.Sprintf("populate swarm %d (retry after %v)", swarmID, warning), Err: err}
				}
			} else {
				return nil, &lderrors.LightDockError{Step: fmt.Sprintf("populate swarm %d", swarmID), Err: err}
			}
		}
		name := fmt.Sprintf("swarm_%d/initial_positions_%d.dat", swarmID, swarmID)
		if err := writePoses(fs, name, poses); err != nil {
			return nil, &lderrors.LightDockError{Step: fmt.Sprintf("write swarm %d positions", swarmID), Err: err}
		}
		initialPositionsFiles = append(initialPositionsFiles, name)
	}

	manifest := &Manifest{
		Config:                cfg,
		ReceptorDiameter:      receptorDiameter,
		LigandDiameter:        ligandDiameter,
		ReceptorLightdockPDB:  recPDBName,
		LigandLightdockPDB:    ligPDBName,
		ReceptorEllipsoidNPY:  recEllipsoidName,
		LigandEllipsoidNPY:    ligEllipsoidName,
		SwarmCenters:          coordinatesToRows(centers),
		InitialPositionsFiles: initialPositionsFiles,
	}
	if err := writeManifest(fs, "setup.json", manifest); err != nil {
		return nil, &lderrors.LightDockError{Step: "write manifest", Err: err}
	}
	return manifest, nil
}

func populateSwarm(cfg Config, swarmID int, center coordinates.Coordinates, recTranslation, ligTranslation coordinates.Coordinates, receptorResidues, ligandResidues []*structure.Residue, ligandDiameter float64, numRecModes, numLigModes int) ([][]float64, error) {
	rng := prng.ForSwarm(cfg.Seed, swarmID)
	var rngNM *prng.NormalGenerator
	if cfg.UseANM {
		rngNM = prng.NewNormalGenerator(prng.ForSwarm(cfg.ANMSeed, swarmID), population.DefaultExtentMu, population.DefaultExtentSigma)
	}
	return population.PopulatePoses(cfg.NumGlowworms, center, placement.DefaultSwarmRadius, rng, recTranslation, ligTranslation, rngNM, numRecModes, numLigModes, receptorResidues, ligandResidues, ligandDiameter)
}

// lightdockPrefix strips a file extension and any directory components, for
// naming lightdock_<name>.pdb / <name>.ellipsoid.npy.
func lightdockPrefix(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func writePDB(fs iox.FS, name string, c *structure.Complex) error {
	f, err := fs.Create(name)
	if err != nil {
		return err
	}
	defer f.Close()
	return structure.WriteLightdockPDB(f, c)
}

func writeEllipsoidCenter(fs iox.FS, name string, center coordinates.Coordinates) error {
	data, err := iox.WriteNPYFloat64([][]float64{{center[0], center[1], center[2]}})
	if err != nil {
		return err
	}
	return iox.WriteFile(fs, name, data)
}

func writePoses(fs iox.FS, name string, poses [][]float64) error {
	var sb strings.Builder
	for _, pose := range poses {
		for i, v := range pose {
			if i > 0 {
				sb.WriteByte(' ')
			}
			fmt.Fprintf(&sb, "%.9f", v)
		}
		sb.WriteByte('\n')
	}
	return iox.WriteFile(fs, name, []byte(sb.String()))
}

func writeManifest(fs iox.FS, name string, manifest *Manifest) error {
	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return err
	}
	return iox.WriteFile(fs, name, data)
}

func resolveResidues(c *structure.Complex, refs []restraints.ResidueRef) []*structure.Residue {
	var out []*structure.Residue
	for _, ref := range refs {
		if res := restraints.ResidueLookup(c, ref); res != nil {
			out = append(out, res)
		}
	}
	return out
}

// CaTrace returns one coordinate per residue's Cα (or P, for nucleotides)
// atom, in chain order, for ANM Hessian construction. cmd/lightdock-gso
// calls this directly to rebuild the same trace ComputeModes needs, since a
// run's normal modes are deterministic from the trace and are not
// themselves persisted in setup.json.
func CaTrace(c *structure.Complex) []coordinates.Coordinates {
	var trace []coordinates.Coordinates
	coords := c.Representative()
	for _, chain := range c.Chains {
		for _, residue := range chain.Residues {
			ca := residue.GetCalpha()
			if ca == nil {
				continue
			}
			trace = append(trace, coords[ca.Index])
		}
	}
	return trace
}

func coordinatesToRows(cs []coordinates.Coordinates) [][]float64 {
	rows := make([][]float64, len(cs))
	for i, c := range cs {
		rows[i] = []float64(c)
	}
	return rows
}

func readFtDockCenters(path string) ([]coordinates.Coordinates, error) {
	f, err := iox.OSFS{}.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var out []coordinates.Coordinates
	var x, y, z float64
	for {
		n, err := fmt.Fscan(f, &x, &y, &z)
		if n == 0 || err != nil {
			break
		}
		out = append(out, coordinates.NewFrom(x, y, z))
	}
	return out, nil
}
