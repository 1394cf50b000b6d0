package render

import (
	"text/template"

	"github.com/kubecarto/kubecarto/pkg/topology"
)

// contextTemplate is the static C4 context scaffold. The context level has
// no per-resource detail; it frames the cluster for the two deeper views.
var contextTemplate = template.Must(template.New("context").Parse(`@startuml
!include https://raw.githubusercontent.com/plantuml-stdlib/C4-PlantUML/master/C4_Context.puml
title System Context - Kubernetes Platform

Person(user, "User", "Human using the platform")
System_Boundary(sys, "Platform") {
  System(system, "Kubernetes Cluster", "{{ .NamespaceCount }} namespaces, {{ .EdgeCount }} resolved relationships")
}
Rel(user, system, "Uses", "HTTPS")
@enduml
`))

type contextView struct {
	NamespaceCount int
	EdgeCount      int
}

func (r *Renderer) renderContext(g *topology.Graph) ([]byte, error) {
	return execute(contextTemplate, contextView{
		NamespaceCount: len(g.Namespaces()),
		EdgeCount:      g.EdgeCount(),
	})
}
