package render

import (
	"fmt"
	"text/template"

	"github.com/kubecarto/kubecarto/pkg/topology"
)

var topologyTemplate = template.Must(template.New("topology").Parse(`@startuml
title Kubernetes Topology - Services and Workloads
skinparam linetype ortho
{{- range .Nodes }}
{{ .Shape }} "{{ .Label }}" as {{ .ID }}
{{- end }}
{{- range .Edges }}
{{ .From }} --> {{ .To }} : {{ .Label }}
{{- end }}
@enduml
`))

type topologyView struct {
	Nodes []topologyNode
	Edges []relation
}

type topologyNode struct {
	Shape string
	Label string
	ID    string
}

// renderTopology emits the low-level view: every Service, workload and
// Ingress as a node, Pods when IncludePods is set, and the full resolved
// edge set labelled routes/controls/forwards.
func (r *Renderer) renderTopology(g *topology.Graph) ([]byte, error) {
	view := topologyView{}

	for _, ns := range g.Namespaces() {
		for _, svc := range g.ServicesIn(ns) {
			view.Nodes = append(view.Nodes, topologyNode{
				Shape: "node",
				Label: fmt.Sprintf("%s/svc/%s", ns, svc.Name()),
				ID:    nodeID("svc", svc.Key),
			})
		}
		for _, w := range g.WorkloadsIn(ns) {
			view.Nodes = append(view.Nodes, topologyNode{
				Shape: "component",
				Label: fmt.Sprintf("%s/%s/%s", ns, w.Kind(), w.Name()),
				ID:    nodeID("wl", w.Key),
			})
		}
		if r.IncludePods {
			for _, pod := range g.PodsIn(ns) {
				view.Nodes = append(view.Nodes, topologyNode{
					Shape: "()",
					Label: fmt.Sprintf("%s/pod/%s", ns, pod.Name()),
					ID:    nodeID("pod", pod.Key),
				})
			}
		}
		for _, ing := range g.IngressesIn(ns) {
			view.Nodes = append(view.Nodes, topologyNode{
				Shape: "cloud",
				Label: fmt.Sprintf("%s/ing/%s", ns, ing.Name()),
				ID:    nodeID("ing", ing.Key),
			})
		}
	}

	for _, e := range g.ServiceBackends() {
		view.Edges = append(view.Edges, relation{
			From:  nodeID("svc", e.Service),
			To:    nodeID("wl", e.Workload),
			Label: topology.RelationBackend,
		})
	}
	if r.IncludePods {
		for _, e := range g.PodOwnerships() {
			view.Edges = append(view.Edges, relation{
				From:  nodeID("wl", e.Workload),
				To:    nodeID("pod", e.Pod),
				Label: topology.RelationOwnership,
			})
		}
	}
	for _, e := range g.IngressRoutes() {
		if _, ok := g.Lookup(e.ServiceKey()); !ok {
			continue
		}
		view.Edges = append(view.Edges, relation{
			From:  nodeID("ing", e.Ingress),
			To:    nodeID("svc", e.ServiceKey()),
			Label: topology.RelationRoute,
		})
	}

	return execute(topologyTemplate, view)
}
