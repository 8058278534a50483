package nucid

// symbols maps atomic number to element symbol; index 0 is unused.
var symbols = [MaxZ + 1]string{
	"",
	"H", "He", "Li", "Be", "B", "C", "N", "O", "F", "Ne",
	"Na", "Mg", "Al", "Si", "P", "S", "Cl", "Ar", "K", "Ca",
	"Sc", "Ti", "V", "Cr", "Mn", "Fe", "Co", "Ni", "Cu", "Zn",
	"Ga", "Ge", "As", "Se", "Br", "Kr", "Rb", "Sr", "Y", "Zr",
	"Nb", "Mo", "Tc", "Ru", "Rh", "Pd", "Ag", "Cd", "In", "Sn",
	"Sb", "Te", "I", "Xe", "Cs", "Ba", "La", "Ce", "Pr", "Nd",
	"Pm", "Sm", "Eu", "Gd", "Tb", "Dy", "Ho", "Er", "Tm", "Yb",
	"Lu", "Hf", "Ta", "W", "Re", "Os", "Ir", "Pt", "Au", "Hg",
	"Tl", "Pb", "Bi", "Po", "At", "Rn", "Fr", "Ra", "Ac", "Th",
	"Pa", "U", "Np", "Pu", "Am", "Cm", "Bk", "Cf", "Es", "Fm",
	"Md", "No", "Lr", "Rf", "Db", "Sg", "Bh", "Hs", "Mt", "Ds",
	"Rg", "Cn", "Nh", "Fl", "Mc", "Lv", "Ts", "Og",
}

var bySymbol = func() map[string]int {
	m := make(map[string]int, MaxZ)
	for z := 1; z <= MaxZ; z++ {
		m[symbols[z]] = z
	}

	return m
}()

// Common nuclides.
const (
	H1    ID = 10010000
	H2    ID = 10020000
	C12   ID = 60120000
	N14   ID = 70140000
	O16   ID = 80160000
	Fe56  ID = 260560000
	U235  ID = 922350000
	U238  ID = 922380000
	Pu239 ID = 942390000
)
