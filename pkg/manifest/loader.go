package manifest

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	utilyaml "k8s.io/apimachinery/pkg/util/yaml"
)

// Options selects the manifest source. Exactly one field must be set; the
// CLI enforces mutual exclusion before calling Load.
type Options struct {
	// JSONPath is a kubectl JSON dump (a v1 List or a single object)
	JSONPath string

	// YAMLPath is a multi-document YAML manifest (helm template output)
	YAMLPath string

	// DirPath is a directory of *.yaml / *.yml manifests
	DirPath string

	// CUEPath is a CUE file or package directory
	CUEPath string
}

// Load reads manifests from the configured source and returns the decoded
// objects in a stable order.
func Load(opts Options) ([]*unstructured.Unstructured, error) {
	switch {
	case opts.JSONPath != "":
		return FromJSON(opts.JSONPath)
	case opts.YAMLPath != "":
		return FromYAML(opts.YAMLPath)
	case opts.DirPath != "":
		return FromDir(opts.DirPath)
	case opts.CUEPath != "":
		return FromCUE(opts.CUEPath)
	default:
		return nil, fmt.Errorf("no manifest source configured")
	}
}

// FromJSON loads objects from a kubectl JSON dump. A v1 List is expanded
// into its items; anything else is treated as a single object.
func FromJSON(path string) ([]*unstructured.Unstructured, error) {
	return fromFile(path)
}

// FromYAML loads objects from a multi-document YAML stream.
func FromYAML(path string) ([]*unstructured.Unstructured, error) {
	return fromFile(path)
}

// FromDir loads every *.yaml and *.yml file under the directory, each as a
// multi-document stream. Files are read in lexical order so repeated runs
// see the same sequence.
func FromDir(path string) ([]*unstructured.Unstructured, error) {
	var paths []string
	for _, pattern := range []string{"*.yaml", "*.yml"} {
		matches, err := filepath.Glob(filepath.Join(path, pattern))
		if err != nil {
			return nil, fmt.Errorf("failed to glob %s in %s: %w", pattern, path, err)
		}
		paths = append(paths, matches...)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no manifest files found in %s", path)
	}
	sort.Strings(paths)

	var objs []*unstructured.Unstructured
	for _, p := range paths {
		fileObjs, err := fromFile(p)
		if err != nil {
			return nil, err
		}
		objs = append(objs, fileObjs...)
	}
	return objs, nil
}

func fromFile(path string) ([]*unstructured.Unstructured, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open manifest %s: %w", path, err)
	}
	defer f.Close()

	objs, err := decodeStream(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return objs, nil
}

// decodeStream decodes a YAML or JSON document stream into objects,
// expanding v1 Lists and skipping empty documents.
func decodeStream(r io.Reader) ([]*unstructured.Unstructured, error) {
	dec := utilyaml.NewYAMLOrJSONDecoder(bufio.NewReader(r), 4096)

	var objs []*unstructured.Unstructured
	for {
		var raw map[string]interface{}
		err := dec.Decode(&raw)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to decode document: %w", err)
		}
		if len(raw) == 0 {
			continue
		}
		objs = append(objs, expandList(&unstructured.Unstructured{Object: raw})...)
	}
	return objs, nil
}

// expandList flattens a v1 List into its items. Non-list objects pass
// through unchanged; malformed items are dropped.
func expandList(obj *unstructured.Unstructured) []*unstructured.Unstructured {
	items, found, err := unstructured.NestedSlice(obj.Object, "items")
	if err != nil || !found {
		return []*unstructured.Unstructured{obj}
	}

	var out []*unstructured.Unstructured
	for _, item := range items {
		m, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		out = append(out, &unstructured.Unstructured{Object: m})
	}
	return out
}
