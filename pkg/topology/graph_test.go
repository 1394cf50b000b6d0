package topology

import (
	"reflect"
	"testing"

	"github.com/kubecarto/kubecarto/pkg/resource"
)

func TestGraphNamespaces(t *testing.T) {
	set := buildSet(
		service("zeta", "a", nil),
		service("alpha", "b", nil),
		workload("mid", resource.KindDeployment, "c", nil),
		// Unclassified kinds still contribute their namespace.
		&resource.Resource{
			Key:      resource.Key{Namespace: "config", Kind: "ConfigMap", Name: "settings"},
			Labels:   map[string]string{},
			Selector: map[string]string{},
		},
	)
	g := Resolve(set)

	want := []string{"alpha", "config", "mid", "zeta"}
	if got := g.Namespaces(); !reflect.DeepEqual(got, want) {
		t.Errorf("Namespaces() = %v, want %v", got, want)
	}
}

func TestGraphPerNamespaceAccessors(t *testing.T) {
	set := buildSet(
		service("web", "frontend", map[string]string{"app": "frontend"}),
		service("web", "api", nil),
		workload("web", resource.KindDeployment, "frontend-deploy",
			map[string]string{"app": "frontend"}),
		workload("staging", resource.KindDeployment, "frontend-deploy", nil),
		ingress("web", "main", "frontend"),
		pod("web", "frontend-deploy-abc"),
	)
	g := Resolve(set)

	services := g.ServicesIn("web")
	if len(services) != 2 || services[0].Name() != "api" || services[1].Name() != "frontend" {
		t.Errorf("ServicesIn(web) = %v, want [api frontend]", services)
	}
	if got := g.WorkloadsIn("staging"); len(got) != 1 {
		t.Errorf("WorkloadsIn(staging) = %v, want one", got)
	}
	if got := g.IngressesIn("web"); len(got) != 1 {
		t.Errorf("IngressesIn(web) = %v, want one", got)
	}
	if got := g.PodsIn("web"); len(got) != 1 {
		t.Errorf("PodsIn(web) = %v, want one", got)
	}
	if got := g.PodsIn("staging"); len(got) != 0 {
		t.Errorf("PodsIn(staging) = %v, want none", got)
	}
}

func TestGraphHashTracksEdges(t *testing.T) {
	base := buildSet(
		service("web", "frontend", map[string]string{"app": "frontend"}),
		workload("web", resource.KindDeployment, "frontend-deploy",
			map[string]string{"app": "frontend"}),
	)
	changed := buildSet(
		service("web", "frontend", map[string]string{"app": "frontend"}),
		workload("web", resource.KindDeployment, "frontend-deploy",
			map[string]string{"app": "frontend"}),
		ingress("web", "main", "frontend"),
	)

	a := Resolve(base).Hash()
	b := Resolve(changed).Hash()
	if a == b {
		t.Errorf("hash did not change when edges changed: %s", a)
	}
	if a != Resolve(base).Hash() {
		t.Errorf("hash not stable across identical runs")
	}
}

func TestGraphAdjacency(t *testing.T) {
	set := buildSet(
		service("web", "frontend", map[string]string{"app": "frontend"}),
		workload("web", resource.KindDeployment, "frontend-deploy",
			map[string]string{"app": "frontend"}),
		ingress("web", "main", "frontend"),
	)
	g := Resolve(set)

	adj, err := g.AdjacencyOf(key("web", "Service", "frontend"))
	if err != nil {
		t.Fatalf("AdjacencyOf() error: %v", err)
	}
	wlID := key("web", "Deployment", "frontend-deploy").String()
	if adj[wlID] != RelationBackend {
		t.Errorf("adjacency[%s] = %q, want %q", wlID, adj[wlID], RelationBackend)
	}

	adj, err = g.AdjacencyOf(key("web", "Ingress", "main"))
	if err != nil {
		t.Fatalf("AdjacencyOf() error: %v", err)
	}
	svcID := key("web", "Service", "frontend").String()
	if adj[svcID] != RelationRoute {
		t.Errorf("adjacency[%s] = %q, want %q", svcID, adj[svcID], RelationRoute)
	}
}

func TestOwnerWorkloadOfPicksLowestOrdered(t *testing.T) {
	set := buildSet(
		workload("web", resource.KindDeployment, "frontend-deploy", nil),
		workload("web", resource.KindJob, "frontend-fixup", nil),
		pod("web", "shared",
			resource.OwnerRef{Kind: "Job", Name: "frontend-fixup"},
			resource.OwnerRef{Kind: "Deployment", Name: "frontend-deploy"},
		),
	)
	g := Resolve(set)

	if got := len(g.PodOwnerships()); got != 2 {
		t.Fatalf("PodOwnerships() = %d edges, want 2", got)
	}
	owner, found := g.OwnerWorkloadOf(key("web", "Pod", "shared"))
	if !found {
		t.Fatal("OwnerWorkloadOf() found nothing")
	}
	// Deployment sorts before Job within the namespace.
	if owner != key("web", "Deployment", "frontend-deploy") {
		t.Errorf("OwnerWorkloadOf() = %v, want the deployment", owner)
	}
}

func TestGraphSizeAndLookup(t *testing.T) {
	set := buildSet(
		service("web", "frontend", map[string]string{"app": "frontend"}),
		ingress("web", "ghost", "missing"),
	)
	g := Resolve(set)

	// Two loaded resources plus the synthetic vertex for the dangling route.
	if got := g.Size(); got != 3 {
		t.Errorf("Size() = %d, want 3", got)
	}
	if _, ok := g.Lookup(key("web", "Service", "frontend")); !ok {
		t.Error("Lookup() missed a loaded resource")
	}
	if _, ok := g.Lookup(key("web", "Service", "missing")); ok {
		t.Error("Lookup() found a resource that was never loaded")
	}
	if got := g.EdgeCount(); got != 1 {
		t.Errorf("EdgeCount() = %d, want 1", got)
	}
}
