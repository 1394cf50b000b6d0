// Package topology derives the relationship graph among Services, workload
// controllers, Ingresses and Pods from a static resource set. It runs three
// independent resolution passes (service backends, ingress routes, pod
// ownership) and exposes the result through a read-only, deterministically
// ordered query surface that diagram renderers consume.
package topology
