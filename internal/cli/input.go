package cli

import (
	"os"

	"github.com/matzehuels/chordviz/pkg/io"
	"github.com/matzehuels/chordviz/pkg/matrix"
)

// stdinPath reads CSV from standard input.
const stdinPath = "-"

// loadMatrix reads a correlation matrix, or raw observations to correlate,
// from path.
func loadMatrix(path string, observations bool) (*matrix.Matrix, error) {
	if path == stdinPath {
		if observations {
			return io.ReadObservations(os.Stdin, ',')
		}
		return io.ReadCSV(os.Stdin, ',')
	}
	if observations {
		return io.ImportObservations(path)
	}
	return io.Import(path)
}
