package ising

// Model holds the coupling J and the external field H used to evaluate a
// lattice.
type Model struct {
	J float64
	H float64
}

// LocalEnergy is the contribution of spin (i, j):
// -J * s * (sum of the four neighbours) - H * s.
// Summing it over every site counts each bond twice.
func (m Model) LocalEnergy(l *Lattice, i, j int) float64 {
	s := float64(l.At(i, j))
	return -m.J*s*float64(l.NeighborSum(i, j)) - m.H*s
}

// DeltaE is the energy change if spin (i, j) were flipped. Flipping negates the
// local contribution, so the change is twice its negation.
func (m Model) DeltaE(l *Lattice, i, j int) float64 {
	return -2 * m.LocalEnergy(l, i, j)
}

// TotalEnergy sums LocalEnergy over every site and halves the result to undo
// the double counting of neighbour pairs. The field term is halved with it.
func (m Model) TotalEnergy(l *Lattice) float64 {
	var e float64
	for i := 0; i < l.n; i++ {
		for j := 0; j < l.n; j++ {
			e += m.LocalEnergy(l, i, j)
		}
	}
	return e / 2
}

// Magnetization is the mean spin value, in [-1, 1].
func Magnetization(l *Lattice) float64 {
	var sum int
	for _, s := range l.spins {
		sum += int(s)
	}
	return float64(sum) / float64(len(l.spins))
}
