package topology

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/dominikbraun/graph"

	"github.com/kubecarto/kubecarto/pkg/resource"
)

// Relation labels attached to graph edges.
const (
	RelationBackend   = "routes"
	RelationRoute     = "forwards"
	RelationOwnership = "controls"
)

// Graph is the fully resolved relationship graph. It is built once per
// Resolve call, immutable afterwards, and owned by the resolution engine;
// renderers only read through the query surface.
type Graph struct {
	set *resource.Set

	// dg is the underlying directed graph keyed by Key strings, with a
	// "relation" attribute per edge
	dg graph.Graph[string, string]

	backends   []ServiceBackend
	routes     []IngressRoute
	ownerships []PodOwnership

	backendsByService map[resource.Key][]resource.Key
	routesByIngress   map[resource.Key][]IngressRoute
	ownerByPod        map[resource.Key]resource.Key
}

// newGraph assembles the resolved graph from the three pass outputs. Each
// slice arrives already sorted, so iteration and lookups are deterministic
// regardless of how the passes were scheduled.
func newGraph(set *resource.Set, backends []ServiceBackend, routes []IngressRoute, ownerships []PodOwnership) *Graph {
	g := &Graph{
		set:               set,
		dg:                graph.New(graph.StringHash, graph.Directed()),
		backends:          backends,
		routes:            routes,
		ownerships:        ownerships,
		backendsByService: make(map[resource.Key][]resource.Key),
		routesByIngress:   make(map[resource.Key][]IngressRoute),
		ownerByPod:        make(map[resource.Key]resource.Key),
	}

	for _, r := range set.All {
		g.addVertex(r.Key)
	}

	for _, e := range backends {
		g.backendsByService[e.Service] = append(g.backendsByService[e.Service], e.Workload)
		g.addEdge(e.Service, e.Workload, RelationBackend)
	}

	for _, e := range routes {
		g.routesByIngress[e.Ingress] = append(g.routesByIngress[e.Ingress], e)
		// Dangling routes still get a vertex so the edge has somewhere to land.
		g.addVertex(e.ServiceKey())
		g.addEdge(e.Ingress, e.ServiceKey(), RelationRoute)
	}

	for _, e := range ownerships {
		if _, claimed := g.ownerByPod[e.Pod]; !claimed {
			// Edges arrive sorted, so the first claimant is the lowest-ordered
			// workload; a Pod reports at most one controlling workload.
			g.ownerByPod[e.Pod] = e.Workload
		}
		g.addEdge(e.Workload, e.Pod, RelationOwnership)
	}

	return g
}

func (g *Graph) addVertex(k resource.Key) {
	if err := g.dg.AddVertex(k.String()); err != nil && !errors.Is(err, graph.ErrVertexAlreadyExists) {
		// StringHash over distinct IDs cannot fail any other way.
		panic(fmt.Sprintf("topology: add vertex %s: %v", k, err))
	}
}

func (g *Graph) addEdge(from, to resource.Key, relation string) {
	err := g.dg.AddEdge(from.String(), to.String(), graph.EdgeAttribute("relation", relation))
	if err != nil && !errors.Is(err, graph.ErrEdgeAlreadyExists) {
		panic(fmt.Sprintf("topology: add edge %s -> %s: %v", from, to, err))
	}
}

// Namespaces returns the sorted distinct namespaces across the full
// resource set, used to group rendering output deterministically.
func (g *Graph) Namespaces() []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range g.set.All {
		if !seen[r.Namespace()] {
			seen[r.Namespace()] = true
			out = append(out, r.Namespace())
		}
	}
	sort.Strings(out)
	return out
}

// BackendsOf returns the workload keys resolved for a Service, ordered by
// namespace, kind, name. Empty when the Service matched nothing or had no
// selector.
func (g *Graph) BackendsOf(service resource.Key) []resource.Key {
	return g.backendsByService[service]
}

// RoutesOf returns the routes an Ingress forwards to, ordered by service
// name. Routes may dangle; callers decide whether to drop them.
func (g *Graph) RoutesOf(ingress resource.Key) []IngressRoute {
	return g.routesByIngress[ingress]
}

// OwnerWorkloadOf returns the workload controlling a Pod, if any. When
// several owner references resolve, the lowest-ordered workload wins.
func (g *Graph) OwnerWorkloadOf(pod resource.Key) (resource.Key, bool) {
	w, ok := g.ownerByPod[pod]
	return w, ok
}

// ServiceBackends returns every resolved service backend edge in order.
func (g *Graph) ServiceBackends() []ServiceBackend { return g.backends }

// IngressRoutes returns every resolved ingress route edge in order.
func (g *Graph) IngressRoutes() []IngressRoute { return g.routes }

// PodOwnerships returns every resolved pod ownership edge in order.
func (g *Graph) PodOwnerships() []PodOwnership { return g.ownerships }

// ServicesIn returns the Services in a namespace ordered by key.
func (g *Graph) ServicesIn(namespace string) []*resource.Resource {
	return filterNamespace(g.set.Services, namespace)
}

// WorkloadsIn returns the workloads in a namespace ordered by key.
func (g *Graph) WorkloadsIn(namespace string) []*resource.Resource {
	return filterNamespace(g.set.Workloads, namespace)
}

// IngressesIn returns the Ingresses in a namespace ordered by key.
func (g *Graph) IngressesIn(namespace string) []*resource.Resource {
	return filterNamespace(g.set.Ingresses, namespace)
}

// PodsIn returns the Pods in a namespace ordered by key.
func (g *Graph) PodsIn(namespace string) []*resource.Resource {
	return filterNamespace(g.set.Pods, namespace)
}

func filterNamespace(resources []*resource.Resource, namespace string) []*resource.Resource {
	var out []*resource.Resource
	for _, r := range resources {
		if r.Namespace() == namespace {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key.Compare(out[j].Key) < 0 })
	return out
}

// Lookup returns the loaded resource under a key, if any. Renderers use it
// to decide whether a route reference dangles.
func (g *Graph) Lookup(k resource.Key) (*resource.Resource, bool) {
	return g.set.Get(k)
}

// Hash returns a content hash over the canonical edge list, letting callers
// detect whether regenerated diagrams would differ from a previous run.
func (g *Graph) Hash() string {
	var b strings.Builder
	for _, e := range g.backends {
		fmt.Fprintf(&b, "b|%s|%s\n", e.Service, e.Workload)
	}
	for _, e := range g.routes {
		fmt.Fprintf(&b, "r|%s|%s\n", e.Ingress, e.ServiceKey())
	}
	for _, e := range g.ownerships {
		fmt.Fprintf(&b, "o|%s|%s\n", e.Workload, e.Pod)
	}
	return fmt.Sprintf("%x", xxhash.Sum64String(b.String()))
}

// Size returns the number of vertices in the underlying graph.
func (g *Graph) Size() int {
	order, err := g.dg.Order()
	if err != nil {
		return 0
	}
	return order
}

// EdgeCount returns the number of resolved edges of all three kinds.
func (g *Graph) EdgeCount() int {
	return len(g.backends) + len(g.routes) + len(g.ownerships)
}

// AdjacencyOf returns the relation-labelled outgoing edges of a resource in
// the underlying graph, ordered by target key. It exposes the raw graph for
// callers that want generic traversal rather than the typed accessors.
func (g *Graph) AdjacencyOf(k resource.Key) (map[string]string, error) {
	adj, err := g.dg.AdjacencyMap()
	if err != nil {
		return nil, fmt.Errorf("failed to build adjacency map: %w", err)
	}

	out := make(map[string]string)
	for target, edge := range adj[k.String()] {
		relation := edge.Properties.Attributes["relation"]
		out[target] = relation
	}
	return out, nil
}
