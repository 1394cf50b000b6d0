// Package resource provides the canonical in-memory model for Kubernetes
// manifest objects. It normalizes raw decoded objects into immutable Resource
// values and partitions them by role (workload, service, ingress, pod) so the
// topology engine can resolve relationships without touching raw fields.
package resource
