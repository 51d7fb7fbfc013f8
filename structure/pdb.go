package structure

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/lightdock/lightdock-go/coordinates"
	"github.com/lightdock/lightdock-go/lderrors"
)

// ParseOptions controls PDB reading behavior.
type ParseOptions struct {
	// StripOXT removes the terminal carboxyl oxygen (OXT) atoms, matching
	// the --noxt setup flag.
	StripOXT bool
}

// ParsePDBFile reads a single-conformer PDB file into a Complex.
func ParsePDBFile(path string, opts ParseOptions) (*Complex, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &lderrors.PDBParsingError{File: path, Err: err}
	}
	defer f.Close()
	return ParsePDB(f, path, opts)
}

// ParsePDB parses PDB-format ATOM/HETATM records from r into a Complex with
// a single conformer. Unknown elements are fatal.
func ParsePDB(r io.Reader, name string, opts ParseOptions) (*Complex, error) {
	chains := map[string]*Chain{}
	var chainOrder []string
	residues := map[string]*Residue{}
	var residueOrder []string

	var atoms []*Atom
	var coords AtomCoordinateSet

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if len(line) < 6 {
			continue
		}
		record := strings.TrimRight(line[:6], " ")
		if record != "ATOM" && record != "HETATM" {
			continue
		}
		atom, residueKey, err := parseAtomLine(line)
		if err != nil {
			return nil, &lderrors.PDBParsingError{File: name, Line: lineNo, Err: err}
		}
		if opts.StripOXT && atom.Name == "OXT" {
			continue
		}

		atom.Index = len(atoms)
		atoms = append(atoms, atom)
		coords = append(coords, coordinates.NewFrom(atom.X, atom.Y, atom.Z))

		chain, ok := chains[atom.ChainID]
		if !ok {
			chain = &Chain{ID: atom.ChainID}
			chains[atom.ChainID] = chain
			chainOrder = append(chainOrder, atom.ChainID)
		}
		residue, ok := residues[residueKey]
		if !ok {
			residue = &Residue{Name: atom.ResidueName, Number: atom.ResidueNum, Insertion: atom.Insertion, ChainID: atom.ChainID}
			residues[residueKey] = residue
			residueOrder = append(residueOrder, residueKey)
			chain.Residues = append(chain.Residues, residue)
		}
		residue.Atoms = append(residue.Atoms, atom)
	}
	if err := scanner.Err(); err != nil {
		return nil, &lderrors.PDBParsingError{File: name, Line: lineNo, Err: err}
	}

	ordered := make([]*Chain, 0, len(chainOrder))
	for _, id := range chainOrder {
		ordered = append(ordered, chains[id])
	}

	return &Complex{
		Chains:             ordered,
		Atoms:              atoms,
		AtomCoordinates:    []AtomCoordinateSet{coords},
		StructureFileNames: []string{name},
	}, nil
}

// parseAtomLine parses one fixed-column ATOM/HETATM record.
func parseAtomLine(line string) (*Atom, string, error) {
	pad := line
	for len(pad) < 80 {
		pad += " "
	}
	field := func(lo, hi int) string { return strings.TrimSpace(pad[lo:hi]) }

	serial, err := atoiOrZero(field(6, 11))
	if err != nil {
		return nil, "", err
	}
	name := field(12, 16)
	altLoc := field(16, 17)
	resName := field(17, 20)
	chainID := field(21, 22)
	resNum, err := atoiOrZero(field(22, 26))
	if err != nil {
		return nil, "", err
	}
	iCode := field(26, 27)
	x, err := atofOrZero(field(30, 38))
	if err != nil {
		return nil, "", err
	}
	y, err := atofOrZero(field(38, 46))
	if err != nil {
		return nil, "", err
	}
	z, err := atofOrZero(field(46, 54))
	if err != nil {
		return nil, "", err
	}
	occ, _ := atofOrZero(field(54, 60))
	bfac, _ := atofOrZero(field(60, 66))
	element := field(76, 78)

	atom, err := NewAtom(serial, name, altLoc, chainID, resName, resNum, iCode, x, y, z, occ, bfac, element)
	if err != nil {
		return nil, "", err
	}
	if chainID == "" {
		chainID = " "
	}
	residueKey := chainID + ":" + strconv.Itoa(resNum) + iCode
	return atom, residueKey, nil
}

func atoiOrZero(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}

func atofOrZero(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}

// WriteLightdockPDB writes a normalized "lightdock" structure file: ATOM
// records reflecting the complex's representative conformer coordinates.
func WriteLightdockPDB(w io.Writer, c *Complex) error {
	bw := bufio.NewWriter(w)
	coords := c.Representative()
	for _, a := range c.Atoms {
		p := coords[a.Index]
		line := formatAtomLine(a, p[0], p[1], p[2])
		if _, err := bw.WriteString(line + "\n"); err != nil {
			return err
		}
	}
	if _, err := bw.WriteString("END\n"); err != nil {
		return err
	}
	return bw.Flush()
}

func formatAtomLine(a *Atom, x, y, z float64) string {
	name := a.Name
	if len(name) < 4 {
		name = " " + name
		for len(name) < 4 {
			name += " "
		}
	}
	chain := a.ChainID
	if chain == "" {
		chain = " "
	}
	return padRecord(
		"ATOM  ", a.Serial, name, a.ResidueName, chain, a.ResidueNum, a.Insertion,
		x, y, z, a.Occupancy, a.BFactor, a.Element,
	)
}

func padRecord(record string, serial int, name, resName, chainID string, resNum int, iCode string, x, y, z, occ, bfac float64, element string) string {
	if iCode == "" {
		iCode = " "
	}
	return record +
		padLeft(strconv.Itoa(serial), 5) + " " +
		name + " " +
		padRight(resName, 3) + " " +
		chainID +
		padLeft(strconv.Itoa(resNum), 4) + iCode + "   " +
		padLeft(formatF(x, 3), 8) +
		padLeft(formatF(y, 3), 8) +
		padLeft(formatF(z, 3), 8) +
		padLeft(formatF(occ, 2), 6) +
		padLeft(formatF(bfac, 2), 6) +
		"          " +
		padLeft(element, 2)
}

func formatF(v float64, decimals int) string {
	return strconv.FormatFloat(v, 'f', decimals, 64)
}

func padLeft(s string, n int) string {
	for len(s) < n {
		s = " " + s
	}
	return s
}

func padRight(s string, n int) string {
	for len(s) < n {
		s = s + " "
	}
	return s
}
