package roadgraph

import (
	"bufio"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	extArcs   = ".gr"
	extCoords = ".co"
	extGzip   = ".gz"

	// scanner buffer: DIMACS lines are short, but comments can be long.
	maxLineBytes = 1 << 20

	// upper bound on slots reserved from a problem line before any record is read.
	maxPrealloc = 1 << 20
)

// Exists reports whether base names a loadable map, i.e. both the arc and the
// coordinate file are present (plain or gzip-compressed).
func Exists(base string) bool {
	_, grErr := resolve(base + extArcs)
	_, coErr := resolve(base + extCoords)
	return grErr == nil && coErr == nil
}

// Load reads <base>.co and <base>.gr (or <base>.co.gz / <base>.gr.gz) and
// builds the Graph.
//
// Node count is the larger of the count declared on the coordinate file's
// problem line and the largest "v" record ID. Arcs that reference a node
// outside that range fail the load with ErrInvalidNode, and a node left
// without a "v" record fails it with ErrMissingCoords.
func Load(base string, opts ...Option) (*Graph, error) {
	grPath, err := resolve(base + extArcs)
	if err != nil {
		return nil, err
	}
	coPath, err := resolve(base + extCoords)
	if err != nil {
		return nil, err
	}

	co, err := openMaybeGzip(coPath)
	if err != nil {
		return nil, err
	}
	defer co.Close()

	gr, err := openMaybeGzip(grPath)
	if err != nil {
		return nil, err
	}
	defer gr.Close()

	return Read(gr, co, opts...)
}

// Read builds a Graph from DIMACS arc (gr) and coordinate (co) streams.
// The coordinate stream is consumed first because it fixes the node count.
func Read(gr, co io.Reader, opts ...Option) (*Graph, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	log := o.logger

	// 1) Coordinates: collect into a growable table, then size the builder.
	start := time.Now()
	coords, declared, err := readCoords(co)
	if err != nil {
		return nil, err
	}
	n := max(len(coords)-1, declared)
	set := countSet(coords)
	log.Info("coordinates loaded", "nodes", n, "records", set, "elapsed", time.Since(start))
	if set < n {
		return nil, fmt.Errorf("%w: %d of %d nodes", ErrMissingCoords, n-set, n)
	}

	b, err := NewBuilder(n, opts...)
	if err != nil {
		return nil, err
	}
	for id := 1; id < len(coords); id++ {
		if coords[id].set {
			if err = b.SetCoord(NodeID(id), coords[id].c); err != nil {
				return nil, err
			}
		}
	}

	// 2) Arcs: stream straight into the builder.
	start = time.Now()
	declaredArcs, err := readArcs(gr, b)
	if err != nil {
		return nil, err
	}
	if declaredArcs >= 0 && declaredArcs != len(b.pending) {
		log.Warn("arc count differs from problem line", "declared", declaredArcs, "read", len(b.pending))
	}

	g, err := b.Build()
	if err != nil {
		return nil, err
	}
	st := g.Stats()
	log.Info("arcs loaded",
		"arcs", st.Arcs,
		"duplicates", st.DuplicateArcs,
		"policy", st.Policy.String(),
		"elapsed", time.Since(start),
	)

	return g, nil
}

type coordSlot struct {
	c   Coord
	set bool
}

func countSet(slots []coordSlot) int {
	var n int
	for _, s := range slots {
		if s.set {
			n++
		}
	}
	return n
}

// readCoords parses "v id lon lat" records. It returns the table indexed by ID
// (index 0 unused) and the node count declared by "p aux sp co n", or 0.
func readCoords(r io.Reader) ([]coordSlot, int, error) {
	slots := make([]coordSlot, 1)
	declared := 0

	sc := newScanner(r)
	for line := 1; sc.Scan(); line++ {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "c":
			continue
		case "p":
			// p aux sp co <n>
			if len(fields) >= 5 {
				v, err := strconv.ParseInt(fields[4], 10, 32)
				if err != nil || v < 0 {
					return nil, 0, malformed(extCoords, line, fmt.Errorf("bad node count %q", fields[4]))
				}
				declared = int(v)
				if want := min(declared, maxPrealloc) + 1; cap(slots) < want {
					grown := make([]coordSlot, len(slots), want)
					copy(grown, slots)
					slots = grown
				}
			}
		case "v":
			if len(fields) < 4 {
				return nil, 0, malformed(extCoords, line, errors.New("want: v <id> <lon> <lat>"))
			}
			id, err := strconv.ParseInt(fields[1], 10, 32)
			if err != nil || id < 1 {
				return nil, 0, malformed(extCoords, line, fmt.Errorf("bad node id %q", fields[1]))
			}
			if int(id) >= len(slots)+maxPrealloc {
				return nil, 0, malformed(extCoords, line, fmt.Errorf("node id %d leaves a gap after %d", id, len(slots)-1))
			}
			lon, err := strconv.ParseInt(fields[2], 10, 32)
			if err != nil {
				return nil, 0, malformed(extCoords, line, err)
			}
			lat, err := strconv.ParseInt(fields[3], 10, 32)
			if err != nil {
				return nil, 0, malformed(extCoords, line, err)
			}
			for len(slots) <= int(id) {
				slots = append(slots, coordSlot{})
			}
			slots[id] = coordSlot{c: Coord{Lon: int32(lon), Lat: int32(lat)}, set: true}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, 0, fmt.Errorf("roadgraph: reading %s: %w", extCoords, err)
	}

	return slots, declared, nil
}

// readArcs parses "a from to weight" records into b. It returns the arc count
// declared by "p sp n m", or -1 when the stream has no problem line.
func readArcs(r io.Reader, b *Builder) (int, error) {
	declared := -1

	sc := newScanner(r)
	for line := 1; sc.Scan(); line++ {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "c":
			continue
		case "p":
			// p sp <n> <m>
			if len(fields) >= 4 {
				m, err := strconv.ParseInt(fields[3], 10, 32)
				if err != nil || m < 0 {
					return 0, malformed(extArcs, line, fmt.Errorf("bad arc count %q", fields[3]))
				}
				declared = int(m)
				if want := min(declared, maxPrealloc); cap(b.pending) < want {
					b.pending = make([]pendingArc, 0, want)
				}
			}
		case "a":
			if len(fields) < 4 {
				return 0, malformed(extArcs, line, errors.New("want: a <from> <to> <weight>"))
			}
			from, err := strconv.ParseInt(fields[1], 10, 32)
			if err != nil {
				return 0, malformed(extArcs, line, err)
			}
			to, err := strconv.ParseInt(fields[2], 10, 32)
			if err != nil {
				return 0, malformed(extArcs, line, err)
			}
			w, err := strconv.ParseInt(fields[3], 10, 64)
			if err != nil {
				return 0, malformed(extArcs, line, err)
			}
			if err = b.AddArc(NodeID(from), NodeID(to), w); err != nil {
				return 0, fmt.Errorf("%s line %d: %w", extArcs, line, err)
			}
		}
	}
	if err := sc.Err(); err != nil {
		return 0, fmt.Errorf("roadgraph: reading %s: %w", extArcs, err)
	}

	return declared, nil
}

func malformed(kind string, line int, cause error) error {
	return fmt.Errorf("%w: %s line %d: %v", ErrMalformedLine, kind, line, cause)
}

func newScanner(r io.Reader) *bufio.Scanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLineBytes)
	return sc
}

// resolve returns path if it exists, else path+".gz" if that exists.
func resolve(path string) (string, error) {
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}
	gz := path + extGzip
	if _, err := os.Stat(gz); err == nil {
		return gz, nil
	}

	return "", fmt.Errorf("%w: %s", ErrMapNotFound, path)
}

// gzipFile closes both the gzip reader and the file underneath it.
type gzipFile struct {
	*gzip.Reader
	f *os.File
}

func (z gzipFile) Close() error {
	zerr := z.Reader.Close()
	ferr := z.f.Close()
	return errors.Join(zerr, ferr)
}

func openMaybeGzip(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrMapNotFound, path)
		}
		return nil, fmt.Errorf("roadgraph: open %s: %w", path, err)
	}
	if !strings.HasSuffix(path, extGzip) {
		return f, nil
	}
	zr, err := gzip.NewReader(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("roadgraph: gzip %s: %w", path, err)
	}

	return gzipFile{Reader: zr, f: f}, nil
}
