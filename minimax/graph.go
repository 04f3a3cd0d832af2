package minimax

import (
	"fmt"
	"strconv"

	"github.com/awalterschulze/gographviz"
	"github.com/gymchess/game"
)

const graphName = "search"

// Graph searches p and returns the root decision as a Graphviz graph: the
// position, one edge per root move labelled with its score, and the chosen
// move highlighted.
func (s *Searcher) Graph(p *game.Position) (*gographviz.Graph, error) {
	res, err := s.Search(p)
	if err != nil {
		return nil, err
	}

	g := gographviz.NewGraph()
	if err := g.SetName(graphName); err != nil {
		return nil, err
	}
	if err := g.SetDir(true); err != nil {
		return nil, err
	}
	root := "root"
	rootAttrs := map[string]string{
		"shape": "box",
		"label": strconv.Quote(fmt.Sprintf("%s\ndepth %d, %d nodes", p.FEN(), s.conf.Depth, res.Nodes)),
	}
	if err := g.AddNode(graphName, root, rootAttrs); err != nil {
		return nil, err
	}

	for i, m := range res.Moves {
		name := fmt.Sprintf("m%d", i)
		attrs := map[string]string{"label": strconv.Quote(m.String())}
		edgeAttrs := map[string]string{"label": strconv.Quote(fmt.Sprint(res.Scores[i]))}
		if m == res.Move {
			attrs["color"] = "red"
			edgeAttrs["color"] = "red"
		}
		if err := g.AddNode(graphName, name, attrs); err != nil {
			return nil, err
		}
		if err := g.AddEdge(root, name, true, edgeAttrs); err != nil {
			return nil, err
		}
	}
	return g, nil
}
