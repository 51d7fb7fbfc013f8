package structure

// Chain is an ordered sequence of residues sharing a chain identifier.
type Chain struct {
	ID       string
	Residues []*Residue
}
