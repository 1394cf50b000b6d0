package resource

import (
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
)

// Well-known kinds the model classifies.
const (
	KindDeployment    = "Deployment"
	KindStatefulSet   = "StatefulSet"
	KindDaemonSet     = "DaemonSet"
	KindJob           = "Job"
	KindCronJob       = "CronJob"
	KindService       = "Service"
	KindIngress       = "Ingress"
	KindPod           = "Pod"
	KindEndpoints     = "Endpoints"
	KindEndpointSlice = "EndpointSlice"
)

// workloadKinds are the controller kinds treated as workload backends.
var workloadKinds = map[string]bool{
	KindDeployment:  true,
	KindStatefulSet: true,
	KindDaemonSet:   true,
	KindJob:         true,
	KindCronJob:     true,
}

// IsWorkloadKind reports whether kind is a workload controller kind.
func IsWorkloadKind(kind string) bool {
	return workloadKinds[kind]
}

// Set is a role-partitioned collection of resources. Every resource appears
// in All; recognized kinds additionally appear in exactly one role bucket.
// Unrecognized kinds stay out of all buckets but are kept for namespace
// grouping. Endpoints/EndpointSlice objects are recognized but never resolved
// against; the bucket exists so a future pass can diff declared vs. actual
// backends.
type Set struct {
	// All contains every accepted resource in load order
	All []*Resource

	// Workloads contains Deployments, StatefulSets, DaemonSets, Jobs, CronJobs
	Workloads []*Resource

	// Services contains Service resources
	Services []*Resource

	// Ingresses contains Ingress resources
	Ingresses []*Resource

	// Pods contains Pod resources
	Pods []*Resource

	// Endpoints contains Endpoints and EndpointSlice resources
	Endpoints []*Resource

	byKey map[Key]*Resource
}

// NewSet creates an empty resource set.
func NewSet() *Set {
	return &Set{byKey: make(map[Key]*Resource)}
}

// Add inserts a resource into the set, classifying it by kind. A resource
// with a Key already present replaces the earlier one in place (last-loaded
// wins, no merge).
func (s *Set) Add(r *Resource) {
	if r == nil {
		return
	}

	if existing, ok := s.byKey[r.Key]; ok {
		// Same key implies same kind, so the bucket stays valid.
		*existing = *r
		return
	}

	s.byKey[r.Key] = r
	s.All = append(s.All, r)

	switch {
	case IsWorkloadKind(r.Key.Kind):
		s.Workloads = append(s.Workloads, r)
	case r.Key.Kind == KindService:
		s.Services = append(s.Services, r)
	case r.Key.Kind == KindIngress:
		s.Ingresses = append(s.Ingresses, r)
	case r.Key.Kind == KindPod:
		s.Pods = append(s.Pods, r)
	case r.Key.Kind == KindEndpoints || r.Key.Kind == KindEndpointSlice:
		s.Endpoints = append(s.Endpoints, r)
	}
}

// Get returns the resource stored under the given key.
func (s *Set) Get(k Key) (*Resource, bool) {
	r, ok := s.byKey[k]
	return r, ok
}

// Len returns the number of distinct resources in the set.
func (s *Set) Len() int {
	return len(s.All)
}

// BuildSet normalizes a sequence of decoded objects into a Set. Records that
// fail normalization (missing kind or name) are silently excluded; the
// loader is responsible for surfacing anything user-visible.
func BuildSet(objs []*unstructured.Unstructured) *Set {
	set := NewSet()
	for _, obj := range objs {
		r, err := FromObject(obj)
		if err != nil {
			continue
		}
		set.Add(r)
	}
	return set
}
