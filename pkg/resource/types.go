package resource

import "fmt"

// Key uniquely identifies a resource node by namespace, kind and name.
// Two resources with the same Key are treated as the same object.
type Key struct {
	// Namespace of the resource ("default" when the manifest omits it)
	Namespace string `json:"namespace"`

	// Kind is the Kubernetes kind (Deployment, Service, ...)
	Kind string `json:"kind"`

	// Name of the resource
	Name string `json:"name"`
}

// String returns a stable identifier suitable for graph vertex IDs.
func (k Key) String() string {
	return fmt.Sprintf("%s:%s:%s", k.Namespace, k.Kind, k.Name)
}

// Compare orders keys by namespace, then kind, then name. It returns a
// negative value if k sorts before o, zero if equal, positive otherwise.
func (k Key) Compare(o Key) int {
	if k.Namespace != o.Namespace {
		return compareStrings(k.Namespace, o.Namespace)
	}
	if k.Kind != o.Kind {
		return compareStrings(k.Kind, o.Kind)
	}
	return compareStrings(k.Name, o.Name)
}

func compareStrings(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// OwnerRef is the back-link a Pod carries to the controller that created it.
type OwnerRef struct {
	// Kind of the owning controller
	Kind string `json:"kind"`

	// Name of the owning controller
	Name string `json:"name"`
}

// IngressRule is one backend service reference extracted from an Ingress
// rule path. An Ingress may yield zero, one or many rules across all of its
// HTTP paths.
type IngressRule struct {
	// ServiceName is the backend service the path forwards to
	ServiceName string `json:"serviceName"`
}

// Resource is the normalized, immutable representation of a manifest object.
// Defaulting (namespace, empty maps) happens once at construction; callers
// never need to guard against nil maps or missing fields.
type Resource struct {
	// Key is the unique identity of this resource
	Key Key `json:"key"`

	// Labels are the resource's metadata labels (never nil)
	Labels map[string]string `json:"labels"`

	// Selector is the flat label selector for Services (spec.selector) and
	// workloads (spec.selector.matchLabels). Empty when the manifest has none.
	Selector map[string]string `json:"selector,omitempty"`

	// Owners lists the resource's owner references in manifest order
	Owners []OwnerRef `json:"owners,omitempty"`

	// IngressRules holds the flattened backend references for Ingress
	// resources; empty for every other kind
	IngressRules []IngressRule `json:"ingressRules,omitempty"`
}

// Namespace returns the resource's namespace.
func (r *Resource) Namespace() string { return r.Key.Namespace }

// Kind returns the resource's kind.
func (r *Resource) Kind() string { return r.Key.Kind }

// Name returns the resource's name.
func (r *Resource) Name() string { return r.Key.Name }
