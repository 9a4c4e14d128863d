package graph

import (
	"sort"
	"strings"
)

// Absent is returned by lookups on words or edges that are not in the graph.
const Absent = -1

// Node holds the counts kept for each word in the graph.
type Node struct {
	Frequency         int // occurrences as a phrase-internal or phrase-final token
	InDegree          int // distinct predecessors
	OutDegree         int // distinct successors
	WeightedInDegree  int // sum of incoming edge multiplicities
	WeightedOutDegree int // sum of outgoing edge multiplicities

	edges map[string]int
}

func newNode() *Node {
	return &Node{edges: make(map[string]int)}
}

// Edge returns the multiplicity of the edge to the given word, or Absent.
func (n Node) Edge(to string) int {
	if w, ok := n.edges[to]; ok {
		return w
	}
	return Absent
}

func (n *Node) clone() *Node {
	c := *n
	c.edges = make(map[string]int, len(n.edges))
	for to, w := range n.edges {
		c.edges[to] = w
	}
	return &c
}

// Entry pairs a word with its node data.
type Entry struct {
	Word string
	Node Node
}

// WordCount is a word and its frequency, the row form of a node.
type WordCount struct {
	Word      string
	Frequency int
}

// EdgeCount is a directed edge and its multiplicity.
type EdgeCount struct {
	From  string
	To    string
	Count int
}

// nodeSet carries the read operations shared by Graph and Snapshot.
type nodeSet map[string]*Node

// Contains reports whether the word is a node of the graph.
func (s nodeSet) Contains(word string) bool {
	_, ok := s[word]
	return ok
}

// Node returns a copy of the node data for word.
func (s nodeSet) Node(word string) (Node, bool) {
	n, ok := s[word]
	if !ok {
		return Node{}, false
	}
	return *n, true
}

// Frequency returns the word frequency, or Absent for unknown words.
func (s nodeSet) Frequency(word string) int {
	if n, ok := s[word]; ok {
		return n.Frequency
	}
	return Absent
}

// InDegree returns the number of distinct predecessors, or Absent.
func (s nodeSet) InDegree(word string) int {
	if n, ok := s[word]; ok {
		return n.InDegree
	}
	return Absent
}

// OutDegree returns the number of distinct successors, or Absent.
func (s nodeSet) OutDegree(word string) int {
	if n, ok := s[word]; ok {
		return n.OutDegree
	}
	return Absent
}

// EdgeWeight returns how many times to immediately followed from.
// It returns Absent when either word or the edge itself is missing.
func (s nodeSet) EdgeWeight(from, to string) int {
	src, ok := s[from]
	if !ok {
		return Absent
	}
	if _, ok := s[to]; !ok {
		return Absent
	}
	return src.Edge(to)
}

// NumWords returns the number of distinct words.
func (s nodeSet) NumWords() int {
	return len(s)
}

// Entries returns every word with its node data, sorted by word.
func (s nodeSet) Entries() []Entry {
	out := make([]Entry, 0, len(s))
	for w, n := range s {
		out = append(out, Entry{Word: w, Node: *n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Word < out[j].Word })
	return out
}

// Words returns all words with their frequencies, sorted by word.
func (s nodeSet) Words() []WordCount {
	out := make([]WordCount, 0, len(s))
	for w, n := range s {
		out = append(out, WordCount{Word: w, Frequency: n.Frequency})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Word < out[j].Word })
	return out
}

// Edges returns all edges with their multiplicities, sorted by (from, to).
func (s nodeSet) Edges() []EdgeCount {
	var out []EdgeCount
	for from, n := range s {
		for to, c := range n.edges {
			out = append(out, EdgeCount{From: from, To: to, Count: c})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].From != out[j].From {
			return out[i].From < out[j].From
		}
		return out[i].To < out[j].To
	})
	return out
}

func (s nodeSet) totalFrequency() int {
	total := 0
	for _, n := range s {
		total += n.Frequency
	}
	return total
}

// Graph is a directed, weighted word co-occurrence graph. An edge a->b means
// b immediately followed a inside some phrase. The graph only grows.
//
// Graph is the mutable builder; scoring reads a Snapshot taken with Freeze.
type Graph struct {
	nodeSet
	numEdges int
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{nodeSet: make(nodeSet)}
}

func (g *Graph) node(word string) *Node {
	n, ok := g.nodeSet[word]
	if !ok {
		n = newNode()
		g.nodeSet[word] = n
	}
	return n
}

// AddWord counts one occurrence of word. Empty words are ignored.
func (g *Graph) AddWord(word string) {
	if word == "" {
		return
	}
	g.node(word).Frequency++
}

// AddEdge records that to immediately followed from and counts one
// occurrence of from. The frequency of to is not touched; it is counted when
// to itself becomes a source or the final word of a phrase.
func (g *Graph) AddEdge(from, to string) {
	if from == "" {
		return
	}
	src := g.node(from)
	if to != "" {
		g.link(src, to, 1)
	}
	src.Frequency++
}

// link adds weight to the edge from->to without touching frequencies.
func (g *Graph) link(src *Node, to string, weight int) {
	dst := g.node(to)
	if _, ok := src.edges[to]; !ok {
		src.OutDegree++
		dst.InDegree++
		g.numEdges++
	}
	src.edges[to] += weight
	src.WeightedOutDegree += weight
	dst.WeightedInDegree += weight
}

// AddPhrase splits a phrase on whitespace and adds its words as a chain.
func (g *Graph) AddPhrase(phrase string) {
	words := strings.Fields(phrase)
	if len(words) == 0 {
		return
	}
	for i := 0; i < len(words)-1; i++ {
		g.AddEdge(words[i], words[i+1])
	}
	g.AddWord(words[len(words)-1])
}

// AddAll adds every phrase in order.
func (g *Graph) AddAll(phrases []string) {
	for _, p := range phrases {
		g.AddPhrase(p)
	}
}

// Merge adds all counts of other into g. Merging is commutative, so the
// result does not depend on the order in which graphs are merged.
func (g *Graph) Merge(other *Graph) {
	if other == nil {
		return
	}
	for _, wc := range other.Words() {
		g.node(wc.Word).Frequency += wc.Frequency
	}
	for _, ec := range other.Edges() {
		g.link(g.node(ec.From), ec.To, ec.Count)
	}
}

// Restore rebuilds a graph from word and edge rows as produced by Words and
// Edges. Degrees are recomputed from the edges.
func Restore(words []WordCount, edges []EdgeCount) *Graph {
	g := New()
	for _, wc := range words {
		if wc.Word == "" {
			continue
		}
		g.node(wc.Word).Frequency += wc.Frequency
	}
	for _, ec := range edges {
		if ec.From == "" || ec.To == "" || ec.Count <= 0 {
			continue
		}
		g.link(g.node(ec.From), ec.To, ec.Count)
	}
	return g
}

// NumEdges returns the number of distinct edges.
func (g *Graph) NumEdges() int {
	return g.numEdges
}

// TotalFrequency returns the sum of all word frequencies, which equals the
// number of tokens added.
func (g *Graph) TotalFrequency() int {
	return g.totalFrequency()
}

// RelativeFrequency returns frequency(word) / total frequency, computed from
// the current counts. It returns Absent for unknown words.
func (g *Graph) RelativeFrequency(word string) float64 {
	n, ok := g.nodeSet[word]
	if !ok {
		return Absent
	}
	total := g.totalFrequency()
	if total == 0 {
		return 0
	}
	return float64(n.Frequency) / float64(total)
}

// Freeze returns an immutable copy of the current graph state.
func (g *Graph) Freeze() *Snapshot {
	nodes := make(nodeSet, len(g.nodeSet))
	for w, n := range g.nodeSet {
		nodes[w] = n.clone()
	}
	return &Snapshot{
		nodeSet:  nodes,
		numEdges: g.numEdges,
		total:    nodes.totalFrequency(),
	}
}

// Snapshot is a read-only view of a Graph at the time Freeze was called.
// It is safe for concurrent readers.
type Snapshot struct {
	nodeSet
	numEdges int
	total    int
}

// NumEdges returns the number of distinct edges.
func (s *Snapshot) NumEdges() int {
	return s.numEdges
}

// TotalFrequency returns the sum of all word frequencies.
func (s *Snapshot) TotalFrequency() int {
	return s.total
}

// RelativeFrequency returns frequency(word) / total frequency, or Absent.
func (s *Snapshot) RelativeFrequency(word string) float64 {
	n, ok := s.nodeSet[word]
	if !ok {
		return Absent
	}
	if s.total == 0 {
		return 0
	}
	return float64(n.Frequency) / float64(s.total)
}
