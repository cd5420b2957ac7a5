package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/katalvlaran/roadpath/analysis"
	"github.com/katalvlaran/roadpath/astar"
	"github.com/katalvlaran/roadpath/geo"
	"github.com/katalvlaran/roadpath/reach"
	"github.com/katalvlaran/roadpath/report"
	"github.com/katalvlaran/roadpath/roadgraph"
)

var errBadParam = errors.New("server: bad parameter")

func (s *Server) handleGraph(c *gin.Context) {
	st := s.graph.Stats()
	_, largest := s.comps.Largest()
	_, largestStrong := s.strong.Largest()
	c.JSON(http.StatusOK, GraphResponse{
		Map:           s.mapName,
		Nodes:         st.Nodes,
		Arcs:          st.Arcs,
		DuplicateArcs: st.DuplicateArcs,
		Policy:        st.Policy.String(),
		MissingCoords: st.MissingCoords,
		MaxOutDegree:  st.MaxOutDegree,
		MinWeight:     st.MinWeight,
		MaxWeight:     st.MaxWeight,
		Components:    s.comps.Count(),
		LargestSize:   largest,
		Strong:        s.strong.Count(),
		LargestStrong: largestStrong,
	})
}

func (s *Server) handleRoute(c *gin.Context) {
	from, to, err := endpoints(c)
	if err != nil {
		badRequest(c, err)
		return
	}

	algorithm := c.DefaultQuery("algorithm", astar.NameAStar)
	var solve func() (astar.Result, error)
	switch algorithm {
	case astar.NameAStar:
		solve = func() (astar.Result, error) { return astar.AStar(s.graph, from, to) }
	case astar.NameDijkstra:
		solve = func() (astar.Result, error) { return astar.Dijkstra(s.graph, from, to) }
	default:
		badRequest(c, fmt.Errorf("%w: algorithm %q (want %s or %s)", errBadParam, algorithm, astar.NameAStar, astar.NameDijkstra))
		return
	}

	t0 := time.Now()
	res, err := solve()
	elapsed := time.Since(t0)
	s.metrics.Observe(algorithm, res, err, elapsed)
	if err != nil {
		s.solveFailed(c, err)
		return
	}

	path := res.Path
	if path == nil {
		path = []roadgraph.NodeID{}
	}
	c.JSON(http.StatusOK, RouteResponse{
		From:       from,
		To:         to,
		Algorithm:  algorithm,
		Reachable:  res.Found,
		Cost:       res.Cost,
		Path:       path,
		Expansions: res.Expansions,
		Pushes:     res.Pushes,
		StalePops:  res.StalePops,
		ElapsedMS:  milliseconds(elapsed),
		Report:     reportLine(s.graph, res.Path),
		Polyline:   report.Polyline(s.graph, res.Path),
	})
}

func (s *Server) handleCompare(c *gin.Context) {
	from, to, err := endpoints(c)
	if err != nil {
		badRequest(c, err)
		return
	}

	cmp, err := analysis.Compare(s.graph, from, to,
		analysis.WithComponents(s.comps),
		analysis.WithStrongComponents(s.strong),
		analysis.WithMetrics(s.metrics),
	)
	if err != nil {
		s.solveFailed(c, err)
		return
	}

	c.JSON(http.StatusOK, CompareResponse{
		From:              from,
		To:                to,
		AStar:             engineRun(cmp.AStar),
		Dijkstra:          engineRun(cmp.Dijkstra),
		Improvement:       cmp.Improvement,
		ExpectUnreachable: cmp.ExpectUnreachable,
		ExpectReachable:   cmp.ExpectReachable,
		Status:            string(cmp.Status),
	})
}

func (s *Server) handleNearest(c *gin.Context) {
	lat, err := floatParam(c, "lat")
	if err != nil {
		badRequest(c, err)
		return
	}
	lon, err := floatParam(c, "lon")
	if err != nil {
		badRequest(c, err)
		return
	}
	p := analysis.LatLon{Lat: lat, Lon: lon}
	if !p.Valid() {
		badRequest(c, fmt.Errorf("%w: %.6f, %.6f", analysis.ErrBadCoordinate, lat, lon))
		return
	}

	id, ok := s.graph.NearestNode(lat, lon)
	if !ok {
		c.JSON(http.StatusNotFound, errorResponse{Error: analysis.ErrNoNodes.Error()})
		return
	}
	at := s.graph.Coordinates(id)
	nodeLat, nodeLon := at.Degrees()
	c.JSON(http.StatusOK, NearestResponse{
		Node:      id,
		Lat:       nodeLat,
		Lon:       nodeLon,
		DistanceM: geo.Haversine(geo.FromDegrees(lat, lon), at),
	})
}

func (s *Server) handleReach(c *gin.Context) {
	from, err := nodeParam(c, "from")
	if err != nil {
		badRequest(c, err)
		return
	}
	depth := 0
	if raw, ok := c.GetQuery("max_depth"); ok {
		if depth, err = strconv.Atoi(raw); err != nil {
			badRequest(c, fmt.Errorf("%w: max_depth=%q is not a number", errBadParam, raw))
			return
		}
	}

	res, err := reach.From(s.graph, from, reach.WithMaxDepth(depth), reach.WithContext(c.Request.Context()))
	if err != nil {
		if errors.Is(err, reach.ErrStartInvalid) || errors.Is(err, reach.ErrOptionViolation) {
			badRequest(c, err)
			return
		}
		s.logger.Error("reach failed", "from", from, "error", err)
		c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	out := ReachResponse{From: from, MaxDepth: depth, Reached: res.Count(), Path: []roadgraph.NodeID{}}
	if last := len(res.Order); last > 0 {
		out.Deepest = int(res.Depth[res.Order[last-1]])
	}
	if _, ok := c.GetQuery("to"); ok {
		if out.To, err = nodeParam(c, "to"); err != nil {
			badRequest(c, err)
			return
		}
		if out.To < 1 || int(out.To) > s.graph.NodeCount() {
			badRequest(c, fmt.Errorf("%w: to=%d not in [1, %d]", errBadParam, out.To, s.graph.NodeCount()))
			return
		}
		if path, err := res.PathTo(out.To); err == nil {
			out.Reachable = true
			out.Hops = len(path) - 1
			out.Path = path
		}
	}
	c.JSON(http.StatusOK, out)
}

// solveFailed maps engine errors: a bad node ID is the caller's fault,
// anything else is ours.
func (s *Server) solveFailed(c *gin.Context, err error) {
	if errors.Is(err, astar.ErrInvalidNode) {
		badRequest(c, err)
		return
	}
	s.logger.Error("search failed", "path", c.Request.URL.Path, "query", c.Request.URL.RawQuery, "error", err)
	c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
}

func endpoints(c *gin.Context) (from, to roadgraph.NodeID, err error) {
	if from, err = nodeParam(c, "from"); err != nil {
		return 0, 0, err
	}
	if to, err = nodeParam(c, "to"); err != nil {
		return 0, 0, err
	}
	return from, to, nil
}

func nodeParam(c *gin.Context, key string) (roadgraph.NodeID, error) {
	raw, ok := c.GetQuery(key)
	if !ok || raw == "" {
		return 0, fmt.Errorf("%w: missing %s", errBadParam, key)
	}
	v, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q is not a node ID", errBadParam, key, raw)
	}
	return roadgraph.NodeID(v), nil
}

func floatParam(c *gin.Context, key string) (float64, error) {
	raw, ok := c.GetQuery(key)
	if !ok || raw == "" {
		return 0, fmt.Errorf("%w: missing %s", errBadParam, key)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q is not a number", errBadParam, key, raw)
	}
	return v, nil
}

func engineRun(r analysis.Run) EngineRun {
	return EngineRun{
		Cost:       r.Cost,
		Reachable:  r.Found,
		Expansions: r.Expansions,
		Pushes:     r.Pushes,
		ElapsedMS:  milliseconds(r.Elapsed),
	}
}

func reportLine(g *roadgraph.Graph, path []roadgraph.NodeID) string {
	if len(path) == 0 {
		return report.NoSolution
	}
	return report.PathLine(g, path)
}

func milliseconds(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
