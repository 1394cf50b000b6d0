// Package manifest loads Kubernetes resource descriptions from the sources
// the tool accepts: a JSON API dump (kubectl get -o json), a multi-document
// YAML manifest, a directory of manifests, or a CUE package. It hands the
// resource model a sequence of decoded objects and drops anything that is
// not a usable manifest document.
package manifest
