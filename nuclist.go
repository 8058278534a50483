package matlib

import "github.com/arloliu/matlib/material"

// appendToNuclist adds the nuclides of mat to the nuclide index.
func (l *Library) appendToNuclist(mat *material.Material) {
	for n := range mat.Comp {
		l.nucSet[n] = struct{}{}
	}
}

// rebuildNuclist derives the nuclide index from the stored materials again,
// dropping nuclides no composition uses anymore.
func (l *Library) rebuildNuclist() {
	clear(l.nucSet)
	for _, mat := range l.materials {
		l.appendToNuclist(mat)
	}
}
