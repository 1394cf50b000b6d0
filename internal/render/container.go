package render

import (
	"fmt"
	"text/template"

	"github.com/kubecarto/kubecarto/pkg/topology"
)

var containerTemplate = template.Must(template.New("container").Parse(`@startuml
!include https://raw.githubusercontent.com/plantuml-stdlib/C4-PlantUML/master/C4_Container.puml
title Container View - Namespaces, Services, Workloads
System_Boundary(k8s, "Kubernetes Cluster") {
{{- range .Namespaces }}
  Container_Boundary({{ .ID }}, "Namespace: {{ .Name }}") {
{{- range .Nodes }}
    Container({{ .ID }}, "{{ .Label }}", "{{ .Technology }}")
{{- end }}
  }
{{- end }}
{{- range .Relations }}
Rel({{ .From }}, {{ .To }}, "{{ .Label }}")
{{- end }}
}
@enduml
`))

type containerView struct {
	Namespaces []containerNamespace
	Relations  []relation
}

type containerNamespace struct {
	ID    string
	Name  string
	Nodes []containerNode
}

type containerNode struct {
	ID         string
	Label      string
	Technology string
}

type relation struct {
	From  string
	To    string
	Label string
}

// renderContainer emits the mid-level view: one boundary per namespace,
// Services, workloads and Ingresses as containers, and the resolved
// backend/route edges between them. Routes to services that were never
// loaded are dropped so every Rel line has both endpoints declared.
func (r *Renderer) renderContainer(g *topology.Graph) ([]byte, error) {
	view := containerView{}

	for _, ns := range g.Namespaces() {
		group := containerNamespace{
			ID:   sanitizeID("ns_" + ns),
			Name: ns,
		}
		for _, svc := range g.ServicesIn(ns) {
			group.Nodes = append(group.Nodes, containerNode{
				ID:         nodeID("svc", svc.Key),
				Label:      fmt.Sprintf("Service: %s", svc.Name()),
				Technology: "K8s Service",
			})
		}
		for _, w := range g.WorkloadsIn(ns) {
			group.Nodes = append(group.Nodes, containerNode{
				ID:         nodeID("wl", w.Key),
				Label:      fmt.Sprintf("%s: %s", w.Kind(), w.Name()),
				Technology: "K8s Workload",
			})
		}
		for _, ing := range g.IngressesIn(ns) {
			group.Nodes = append(group.Nodes, containerNode{
				ID:         nodeID("ing", ing.Key),
				Label:      fmt.Sprintf("Ingress: %s", ing.Name()),
				Technology: "K8s Ingress",
			})
		}
		if len(group.Nodes) == 0 {
			continue
		}
		view.Namespaces = append(view.Namespaces, group)
	}

	for _, e := range g.ServiceBackends() {
		view.Relations = append(view.Relations, relation{
			From:  nodeID("svc", e.Service),
			To:    nodeID("wl", e.Workload),
			Label: "routes to",
		})
	}
	for _, e := range g.IngressRoutes() {
		if _, ok := g.Lookup(e.ServiceKey()); !ok {
			continue
		}
		view.Relations = append(view.Relations, relation{
			From:  nodeID("ing", e.Ingress),
			To:    nodeID("svc", e.ServiceKey()),
			Label: "forwards",
		})
	}

	return execute(containerTemplate, view)
}
