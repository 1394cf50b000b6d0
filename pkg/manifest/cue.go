package manifest

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
)

// objectsField is the conventional top-level list holding manifests in a
// CUE package. A package without it is treated as a single object.
const objectsField = "objects"

// FromCUE evaluates a CUE file or package directory and extracts manifest
// objects from it.
func FromCUE(path string) ([]*unstructured.Unstructured, error) {
	value, err := buildCUE(path)
	if err != nil {
		return nil, err
	}

	objsVal := value.LookupPath(cue.ParsePath(objectsField))
	if !objsVal.Exists() {
		obj, err := decodeCUEObject(value)
		if err != nil {
			return nil, fmt.Errorf("failed to decode CUE value at %s: %w", path, err)
		}
		return []*unstructured.Unstructured{obj}, nil
	}

	iter, err := objsVal.List()
	if err != nil {
		return nil, fmt.Errorf("%s field at %s is not a list: %w", objectsField, path, err)
	}

	var objs []*unstructured.Unstructured
	for iter.Next() {
		obj, err := decodeCUEObject(iter.Value())
		if err != nil {
			return nil, fmt.Errorf("failed to decode %s entry at %s: %w", objectsField, path, err)
		}
		objs = append(objs, obj)
	}
	return objs, nil
}

// buildCUE loads and builds the first CUE instance at the given path.
func buildCUE(path string) (cue.Value, error) {
	buildInstances := load.Instances([]string{path}, nil)
	if len(buildInstances) == 0 {
		return cue.Value{}, fmt.Errorf("no CUE instances found at %s", path)
	}

	inst := buildInstances[0]
	if inst.Err != nil {
		return cue.Value{}, fmt.Errorf("failed to load CUE instance: %w", inst.Err)
	}

	ctx := cuecontext.New()
	value := ctx.BuildInstance(inst)
	if value.Err() != nil {
		return cue.Value{}, fmt.Errorf("failed to build CUE value: %w", value.Err())
	}
	return value, nil
}

func decodeCUEObject(v cue.Value) (*unstructured.Unstructured, error) {
	var raw map[string]interface{}
	if err := v.Decode(&raw); err != nil {
		return nil, err
	}
	return &unstructured.Unstructured{Object: raw}, nil
}
