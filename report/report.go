// Package report renders search results for people and for other tools: the
// path line consumed by existing tooling, the run summary printed by the CLI,
// and an encoded polyline for map display.
package report

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/twpayne/go-polyline"

	"github.com/katalvlaran/roadpath/astar"
	"github.com/katalvlaran/roadpath/roadgraph"
)

// Infinity is printed in a path line for a step with no direct arc.
const Infinity = "INF"

// NoSolution is written in place of a path line when no path exists.
const NoSolution = "NO SOLUTION"

// EdgeCoster looks up the weight of a direct arc. *roadgraph.Graph satisfies it.
type EdgeCoster interface {
	EdgeCost(u, v roadgraph.NodeID) (int64, bool)
}

// CoordSource resolves node coordinates. *roadgraph.Graph satisfies it.
type CoordSource interface {
	Coordinates(id roadgraph.NodeID) roadgraph.Coord
}

// PathLine formats path as "n0 - (c0) - n1 - (c1) - ... - nN", where ci is
// the weight of the arc ni→ni+1, or Infinity when g has no such arc.
// An empty path yields "".
func PathLine(g EdgeCoster, path []roadgraph.NodeID) string {
	if len(path) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(strconv.Itoa(int(path[0])))
	for i := 1; i < len(path); i++ {
		sb.WriteString(" - (")
		if w, ok := g.EdgeCost(path[i-1], path[i]); ok {
			sb.WriteString(strconv.FormatInt(w, 10))
		} else {
			sb.WriteString(Infinity)
		}
		sb.WriteString(") - ")
		sb.WriteString(strconv.Itoa(int(path[i])))
	}

	return sb.String()
}

// WritePath writes the path line followed by a newline, or NoSolution when
// path is empty.
func WritePath(w io.Writer, g EdgeCoster, path []roadgraph.NodeID) error {
	line := PathLine(g, path)
	if line == "" {
		line = NoSolution
	}
	_, err := io.WriteString(w, line+"\n")

	return err
}

// WritePathFile writes the path line to name, replacing any existing file.
func WritePathFile(name string, g EdgeCoster, path []roadgraph.NodeID) (err error) {
	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("report: create %s: %w", name, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("report: close %s: %w", name, cerr)
		}
	}()

	bw := bufio.NewWriter(f)
	if err = WritePath(bw, g, path); err != nil {
		return fmt.Errorf("report: write %s: %w", name, err)
	}
	return bw.Flush()
}

// Summary is the console report of one query.
type Summary struct {
	Nodes   int
	Arcs    int
	Result  astar.Result
	Elapsed time.Duration
}

// Rate returns expansions per second, or 0 when no time elapsed.
func (s Summary) Rate() float64 {
	secs := s.Elapsed.Seconds()
	if secs <= 0 {
		return 0
	}
	return float64(s.Result.Expansions) / secs
}

// Write prints the summary. A query without a path prints a single line.
func (s Summary) Write(w io.Writer) error {
	if !s.Result.Found {
		_, err := fmt.Fprintln(w, "No solution found or the nodes are not connected.")
		return err
	}
	_, err := fmt.Fprintf(w,
		"# vertices: %d\n# arcs : %d\nOptimal solution found with cost %d\nExecution time: %.4f seconds\n# expansions : %d (%.2f nodes/sec)\n",
		s.Nodes, s.Arcs, s.Result.Cost, s.Elapsed.Seconds(), s.Result.Expansions, s.Rate())

	return err
}

// Polyline encodes the path geometry in Google's polyline format.
func Polyline(src CoordSource, path []roadgraph.NodeID) string {
	if len(path) == 0 {
		return ""
	}
	coords := make([][]float64, 0, len(path))
	for _, id := range path {
		lat, lon := src.Coordinates(id).Degrees()
		coords = append(coords, []float64{lat, lon})
	}

	return string(polyline.EncodeCoords(coords))
}
