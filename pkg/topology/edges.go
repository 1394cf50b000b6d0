package topology

import (
	"github.com/kubecarto/kubecarto/pkg/resource"
)

// ServiceBackend links a Service to a workload whose labels satisfy the
// Service's selector.
type ServiceBackend struct {
	// Service is the selecting Service
	Service resource.Key `json:"service"`

	// Workload is the matched workload controller
	Workload resource.Key `json:"workload"`
}

// IngressRoute links an Ingress to a backend service named in one of its
// rule paths. The referenced Service is keyed into the Ingress's own
// namespace and is not validated against the loaded set; renderers may drop
// dangling references.
type IngressRoute struct {
	// Ingress is the routing Ingress
	Ingress resource.Key `json:"ingress"`

	// ServiceName is the backend service name from the rule path
	ServiceName string `json:"serviceName"`

	// Namespace is the namespace the route resolves into (the Ingress's own)
	Namespace string `json:"namespace"`
}

// ServiceKey returns the Key the route points at.
func (r IngressRoute) ServiceKey() resource.Key {
	return resource.Key{
		Namespace: r.Namespace,
		Kind:      resource.KindService,
		Name:      r.ServiceName,
	}
}

// PodOwnership links a workload controller to a Pod it owns, derived from
// the Pod's owner references.
type PodOwnership struct {
	// Workload is the owning controller
	Workload resource.Key `json:"workload"`

	// Pod is the owned Pod
	Pod resource.Key `json:"pod"`
}
