package graph

import "sort"

// Snapshot is a read-only, densely-indexed compressed-sparse-row view of
// a Graph at a point in time. It exists for inspection and export: the
// query engine never touches it, since the live Graph stays mutable and
// a Snapshot would go stale the moment an update runs.
type Snapshot struct {
	NumNodes uint32
	IDs      []uint64 // original NodeID for each CSR index, ascending
	PosX     []int32
	PosY     []int32
	ChunkCX  []int32
	ChunkCY  []int32

	FirstOut []uint32 // len NumNodes+1
	Head     []uint32 // len FirstOut[NumNodes]; CSR index of edge target
	Weight   []int64  // len FirstOut[NumNodes]
	Bridge   []uint8  // len FirstOut[NumNodes]; 1 for a bridge edge, 0 for intra-chunk
}

// CompileSnapshot flattens g into a Snapshot with a counting-sort CSR
// construction: assign every node a dense index by sorting its ids,
// count out-degrees, prefix-sum into FirstOut, then fill Head/Weight/Bridge
// in a second pass.
func CompileSnapshot(g *Graph) *Snapshot {
	ids := make([]uint64, 0, len(g.nodes))
	for id := range g.nodes {
		ids = append(ids, uint64(id))
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	numNodes := uint32(len(ids))
	index := make(map[NodeID]uint32, numNodes)
	posX := make([]int32, numNodes)
	posY := make([]int32, numNodes)
	chunkCX := make([]int32, numNodes)
	chunkCY := make([]int32, numNodes)
	for i, id := range ids {
		nid := NodeID(id)
		index[nid] = uint32(i)
		n := g.nodes[nid]
		posX[i] = int32(n.Pos.X)
		posY[i] = int32(n.Pos.Y)
		chunkCX[i] = int32(n.Chunk.CX)
		chunkCY[i] = int32(n.Chunk.CY)
	}

	firstOut := make([]uint32, numNodes+1)
	for _, id := range ids {
		firstOut[index[NodeID(id)]+1] = uint32(len(g.out[NodeID(id)]))
	}
	for i := uint32(1); i <= numNodes; i++ {
		firstOut[i] += firstOut[i-1]
	}

	numEdges := firstOut[numNodes]
	head := make([]uint32, numEdges)
	weight := make([]int64, numEdges)
	bridge := make([]uint8, numEdges)
	cursor := make([]uint32, numNodes)
	copy(cursor, firstOut[:numNodes])

	for _, id := range ids {
		from := index[NodeID(id)]
		for _, e := range g.out[NodeID(id)] {
			pos := cursor[from]
			cursor[from]++
			head[pos] = index[e.To]
			weight[pos] = e.Weight
			if e.Bridge {
				bridge[pos] = 1
			}
		}
	}

	return &Snapshot{
		NumNodes: numNodes,
		IDs:      ids,
		PosX:     posX,
		PosY:     posY,
		ChunkCX:  chunkCX,
		ChunkCY:  chunkCY,
		FirstOut: firstOut,
		Head:     head,
		Weight:   weight,
		Bridge:   bridge,
	}
}

// EdgesFrom returns the CSR index range of node csrIdx's outgoing edges.
func (s *Snapshot) EdgesFrom(csrIdx uint32) (start, end uint32) {
	return s.FirstOut[csrIdx], s.FirstOut[csrIdx+1]
}
