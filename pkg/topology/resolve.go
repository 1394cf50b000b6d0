package topology

import (
	"sort"

	"github.com/sourcegraph/conc"

	"github.com/kubecarto/kubecarto/pkg/resource"
)

// Resolve runs the three resolution passes over an immutable resource set
// and returns the resulting graph. Resolution is total: malformed or
// partially specified input produces fewer edges, never an error. The passes
// share no state and fan out on a waitgroup; each writes only its own edge
// slice, so the merge needs no synchronization beyond the join.
func Resolve(set *resource.Set) *Graph {
	var (
		backends   []ServiceBackend
		routes     []IngressRoute
		ownerships []PodOwnership
	)

	var wg conc.WaitGroup
	wg.Go(func() { backends = resolveBackends(set) })
	wg.Go(func() { routes = resolveRoutes(set) })
	wg.Go(func() { ownerships = resolveOwnership(set) })
	wg.Wait()

	return newGraph(set, backends, routes, ownerships)
}

// resolveBackends matches each Service against the workloads in its
// namespace. A workload matches when every key in the Service's selector is
// present in the workload's labels with an equal value; extra workload
// labels are ignored. Services with an empty selector (headless or external)
// intentionally resolve to nothing.
//
// Selectors are matched against the workload's own metadata.labels, not the
// pod template labels it stamps onto Pods. A Service technically selects
// Pods by label; treating the controller's labels as the backend identity is
// an accepted approximation for static manifest analysis.
func resolveBackends(set *resource.Set) []ServiceBackend {
	workloadsByNS := make(map[string][]*resource.Resource)
	for _, w := range set.Workloads {
		workloadsByNS[w.Namespace()] = append(workloadsByNS[w.Namespace()], w)
	}

	var edges []ServiceBackend
	for _, svc := range set.Services {
		if len(svc.Selector) == 0 {
			continue
		}
		for _, w := range workloadsByNS[svc.Namespace()] {
			if matchesSelector(svc.Selector, w.Labels) {
				edges = append(edges, ServiceBackend{Service: svc.Key, Workload: w.Key})
			}
		}
	}

	sort.Slice(edges, func(i, j int) bool {
		if c := edges[i].Service.Compare(edges[j].Service); c != 0 {
			return c < 0
		}
		return edges[i].Workload.Compare(edges[j].Workload) < 0
	})
	return edges
}

// matchesSelector reports whether labels satisfy every selector entry
// (subset match). The relation is not symmetric: a selector key absent from
// labels fails the match regardless of what else the labels carry.
func matchesSelector(selector, labels map[string]string) bool {
	for k, v := range selector {
		if labels[k] != v {
			return false
		}
	}
	return true
}

// resolveRoutes emits one route per backend service reference discovered in
// each Ingress's rule paths. References stay in the Ingress's namespace and
// are not checked for existence.
func resolveRoutes(set *resource.Set) []IngressRoute {
	var edges []IngressRoute
	for _, ing := range set.Ingresses {
		for _, rule := range ing.IngressRules {
			edges = append(edges, IngressRoute{
				Ingress:     ing.Key,
				ServiceName: rule.ServiceName,
				Namespace:   ing.Namespace(),
			})
		}
	}

	sort.Slice(edges, func(i, j int) bool {
		if c := edges[i].Ingress.Compare(edges[j].Ingress); c != 0 {
			return c < 0
		}
		return edges[i].ServiceName < edges[j].ServiceName
	})
	return edges
}

// resolveOwnership links Pods to loaded workloads via exact owner-reference
// matches on kind and name within the Pod's namespace. Ownership chains are
// not traversed: a Pod owned by an unloaded intermediate controller (for
// example a ReplicaSet between a Pod and its Deployment) simply fails to
// link.
func resolveOwnership(set *resource.Set) []PodOwnership {
	workloadsByNS := make(map[string][]*resource.Resource)
	for _, w := range set.Workloads {
		workloadsByNS[w.Namespace()] = append(workloadsByNS[w.Namespace()], w)
	}

	var edges []PodOwnership
	for _, pod := range set.Pods {
		for _, ref := range pod.Owners {
			for _, w := range workloadsByNS[pod.Namespace()] {
				if w.Kind() == ref.Kind && w.Name() == ref.Name {
					edges = append(edges, PodOwnership{Workload: w.Key, Pod: pod.Key})
				}
			}
		}
	}

	sort.Slice(edges, func(i, j int) bool {
		if c := edges[i].Workload.Compare(edges[j].Workload); c != 0 {
			return c < 0
		}
		return edges[i].Pod.Compare(edges[j].Pod) < 0
	})
	return edges
}
