package view

import "github.com/anthropics/witness/internal/store"

// DependsOnAll returns the transitive import closure of every source file
// in the session, depth-bounded at 10 hops, reporting the minimum depth at
// which each module was reached.
func DependsOnAll(s *store.Store, sessionID string) ([]DependsOn, error) {
	edges, err := importEdges(s, sessionID)
	if err != nil {
		return nil, err
	}

	forward := map[string][]string{}
	sources := map[string]bool{}
	for _, e := range edges {
		forward[e.source] = append(forward[e.source], e.target)
		sources[e.source] = true
	}

	var out []DependsOn
	for src := range sources {
		depths := bfsDepths(forward, src)
		for target, depth := range depths {
			out = append(out, DependsOn{SourceFile: src, ImportedModule: target, Depth: depth})
		}
	}
	return out, nil
}

// BlastRadiusAll returns, for every file edited in the session, the set of
// files that transitively import it — the set an edit could ripple into —
// depth-bounded at 10 hops.
func BlastRadiusAll(s *store.Store, sessionID string) ([]BlastRadius, error) {
	edges, err := importEdges(s, sessionID)
	if err != nil {
		return nil, err
	}
	reverse := map[string][]string{}
	for _, e := range edges {
		reverse[e.target] = append(reverse[e.target], e.source)
	}

	edited, err := editedFiles(s, sessionID)
	if err != nil {
		return nil, err
	}

	var out []BlastRadius
	for _, file := range edited {
		depths := bfsDepths(reverse, file)
		for affected, depth := range depths {
			out = append(out, BlastRadius{EditedFile: file, AffectedFile: affected, Depth: depth})
		}
	}
	return out, nil
}

type importEdge struct {
	source string
	target string
}

func importEdges(s *store.Store, sessionID string) ([]importEdge, error) {
	rows, err := s.Query(`
		SELECT DISTINCT source_file, imported_module FROM imports
		WHERE session_id = ?
	`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []importEdge
	for rows.Next() {
		var e importEdge
		if err := rows.Scan(&e.source, &e.target); err != nil {
			continue
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// bfsDepths walks graph from start, depth-bounded at maxDepth, returning
// the minimum depth at which each reachable node (excluding start itself)
// was found.
func bfsDepths(graph map[string][]string, start string) map[string]int {
	depths := map[string]int{}
	type frontierNode struct {
		node  string
		depth int
	}
	queue := []frontierNode{{node: start, depth: 0}}
	visited := map[string]bool{start: true}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur.depth >= maxDepth {
			continue
		}
		for _, next := range graph[cur.node] {
			if visited[next] {
				continue
			}
			visited[next] = true
			depths[next] = cur.depth + 1
			queue = append(queue, frontierNode{node: next, depth: cur.depth + 1})
		}
	}
	return depths
}
