// Package render emits the three PlantUML diagram views over a resolved
// topology graph: a C4 context scaffold, a C4 container view grouped by
// namespace, and a low-level topology view that can expand Pods. Renderers
// read relationships exclusively through the graph query surface, so output
// is byte-identical across runs over the same input.
package render
