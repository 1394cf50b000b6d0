package render

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/kubecarto/kubecarto/pkg/resource"
	"github.com/kubecarto/kubecarto/pkg/topology"
)

// Output file names.
const (
	ContextFile   = "c4-context.puml"
	ContainerFile = "c4-container.puml"
	TopologyFile  = "k8s-topology.puml"
)

// Renderer writes the three diagram views to an output directory.
type Renderer struct {
	// OutDir is the directory the .puml files are written into
	OutDir string

	// IncludePods expands Pods and their controllers in the topology view
	IncludePods bool
}

// Render writes all three views and returns the written paths in emission
// order.
func (r *Renderer) Render(g *topology.Graph) ([]string, error) {
	if err := os.MkdirAll(r.OutDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", r.OutDir, err)
	}

	views := []struct {
		file   string
		render func(*topology.Graph) ([]byte, error)
	}{
		{ContextFile, r.renderContext},
		{ContainerFile, r.renderContainer},
		{TopologyFile, r.renderTopology},
	}

	var written []string
	for _, v := range views {
		data, err := v.render(g)
		if err != nil {
			return written, fmt.Errorf("failed to render %s: %w", v.file, err)
		}
		path := filepath.Join(r.OutDir, v.file)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return written, fmt.Errorf("failed to write %s: %w", path, err)
		}
		written = append(written, path)
	}
	return written, nil
}

// execute runs a parsed template over its view model.
func execute(tmpl *template.Template, data interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("template execution failed: %w", err)
	}
	return buf.Bytes(), nil
}

// nodeID builds a PlantUML-safe identifier from a prefix and a resource key.
func nodeID(prefix string, k resource.Key) string {
	return sanitizeID(fmt.Sprintf("%s_%s_%s", prefix, k.Name, k.Namespace))
}

// sanitizeID replaces characters PlantUML identifiers cannot carry.
func sanitizeID(s string) string {
	var b strings.Builder
	for _, c := range s {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '_':
			b.WriteRune(c)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
