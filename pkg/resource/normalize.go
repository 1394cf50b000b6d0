package resource

import (
	"fmt"

	networkingv1 "k8s.io/api/networking/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime"
)

// DefaultNamespace is assumed when a manifest omits metadata.namespace.
const DefaultNamespace = "default"

// FromObject normalizes a decoded manifest object into a Resource.
// It returns an error only for structurally unusable records (missing kind
// or name); every optional field degrades to an empty value instead.
func FromObject(obj *unstructured.Unstructured) (*Resource, error) {
	if obj == nil || obj.Object == nil {
		return nil, fmt.Errorf("object is empty")
	}

	kind := obj.GetKind()
	if kind == "" {
		return nil, fmt.Errorf("object has no kind")
	}

	name := obj.GetName()
	if name == "" {
		return nil, fmt.Errorf("%s object has no metadata.name", kind)
	}

	namespace := obj.GetNamespace()
	if namespace == "" {
		namespace = DefaultNamespace
	}

	r := &Resource{
		Key: Key{
			Namespace: namespace,
			Kind:      kind,
			Name:      name,
		},
		Labels:   map[string]string{},
		Selector: map[string]string{},
	}

	for k, v := range obj.GetLabels() {
		r.Labels[k] = v
	}

	for _, ref := range obj.GetOwnerReferences() {
		r.Owners = append(r.Owners, OwnerRef{Kind: ref.Kind, Name: ref.Name})
	}

	r.Selector = extractSelector(obj, kind)

	if kind == KindIngress {
		r.IngressRules = extractIngressRules(obj)
	}

	return r, nil
}

// extractSelector reads the label selector for the given kind.
// Services carry a flat spec.selector map; workload controllers nest theirs
// under spec.selector.matchLabels. Anything malformed yields an empty map.
func extractSelector(obj *unstructured.Unstructured, kind string) map[string]string {
	if kind == KindService {
		sel, found, err := unstructured.NestedStringMap(obj.Object, "spec", "selector")
		if err != nil || !found {
			return map[string]string{}
		}
		return sel
	}

	sel, found, err := unstructured.NestedStringMap(obj.Object, "spec", "selector", "matchLabels")
	if err != nil || !found {
		return map[string]string{}
	}
	return sel
}

// extractIngressRules flattens an Ingress's rule list into per-path backend
// service references. Paths without a named service backend (resource
// backends, defaultBackend-only rules) are skipped. A rule list that does not
// convert cleanly to networking/v1 degrades to no rules rather than an error.
func extractIngressRules(obj *unstructured.Unstructured) []IngressRule {
	var ing networkingv1.Ingress
	if err := runtime.DefaultUnstructuredConverter.FromUnstructured(obj.Object, &ing); err != nil {
		return nil
	}

	var rules []IngressRule
	for _, rule := range ing.Spec.Rules {
		if rule.HTTP == nil {
			continue
		}
		for _, path := range rule.HTTP.Paths {
			svc := path.Backend.Service
			if svc == nil || svc.Name == "" {
				continue
			}
			rules = append(rules, IngressRule{ServiceName: svc.Name})
		}
	}
	return rules
}
