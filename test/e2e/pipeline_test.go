package e2e

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kubecarto/kubecarto/internal/render"
	"github.com/kubecarto/kubecarto/pkg/manifest"
	"github.com/kubecarto/kubecarto/pkg/resource"
	"github.com/kubecarto/kubecarto/pkg/topology"
)

const fixtureManifests = `apiVersion: v1
kind: Service
metadata:
  name: frontend
  namespace: web
spec:
  selector:
    app: frontend
---
apiVersion: v1
kind: Service
metadata:
  name: frontend
  namespace: staging
spec:
  selector:
    app: frontend
---
apiVersion: apps/v1
kind: Deployment
metadata:
  name: frontend-deploy
  namespace: web
  labels:
    app: frontend
    tier: ui
spec:
  selector:
    matchLabels:
      app: frontend
---
apiVersion: apps/v1
kind: Deployment
metadata:
  name: frontend-deploy
  namespace: staging
  labels:
    app: frontend
---
apiVersion: networking.k8s.io/v1
kind: Ingress
metadata:
  name: main
  namespace: web
spec:
  rules:
    - host: example.com
      http:
        paths:
          - path: /
            pathType: Prefix
            backend:
              service:
                name: frontend
                port:
                  number: 80
---
apiVersion: v1
kind: Pod
metadata:
  name: frontend-deploy-abc123
  namespace: web
  ownerReferences:
    - apiVersion: apps/v1
      kind: ReplicaSet
      name: frontend-deploy-rs
      uid: "0000"
---
apiVersion: v1
kind: Pod
metadata:
  name: standalone
  namespace: web
`

var _ = Describe("Pipeline", func() {
	var (
		workDir string
		outDir  string
		graph   *topology.Graph
	)

	BeforeEach(func() {
		workDir = GinkgoT().TempDir()
		outDir = filepath.Join(workDir, "diagrams")

		manifestPath := filepath.Join(workDir, "manifests.yaml")
		Expect(os.WriteFile(manifestPath, []byte(fixtureManifests), 0o644)).To(Succeed())

		objs, err := manifest.Load(manifest.Options{YAMLPath: manifestPath})
		Expect(err).NotTo(HaveOccurred())
		Expect(objs).To(HaveLen(7))

		graph = topology.Resolve(resource.BuildSet(objs))
	})

	It("resolves service backends within each namespace only", func() {
		webSvc := resource.Key{Namespace: "web", Kind: "Service", Name: "frontend"}
		Expect(graph.BackendsOf(webSvc)).To(Equal([]resource.Key{
			{Namespace: "web", Kind: "Deployment", Name: "frontend-deploy"},
		}))

		stagingSvc := resource.Key{Namespace: "staging", Kind: "Service", Name: "frontend"}
		Expect(graph.BackendsOf(stagingSvc)).To(Equal([]resource.Key{
			{Namespace: "staging", Kind: "Deployment", Name: "frontend-deploy"},
		}))
	})

	It("resolves ingress routes into the ingress namespace", func() {
		ing := resource.Key{Namespace: "web", Kind: "Ingress", Name: "main"}
		routes := graph.RoutesOf(ing)
		Expect(routes).To(HaveLen(1))
		Expect(routes[0].ServiceName).To(Equal("frontend"))
		Expect(routes[0].Namespace).To(Equal("web"))
	})

	It("does not traverse ownership through an unloaded replicaset", func() {
		pod := resource.Key{Namespace: "web", Kind: "Pod", Name: "frontend-deploy-abc123"}
		_, found := graph.OwnerWorkloadOf(pod)
		Expect(found).To(BeFalse())
	})

	It("writes three diagrams and is byte-stable across runs", func() {
		renderer := &render.Renderer{OutDir: outDir, IncludePods: true}
		paths, err := renderer.Render(graph)
		Expect(err).NotTo(HaveOccurred())
		Expect(paths).To(HaveLen(3))

		first := make(map[string][]byte)
		for _, p := range paths {
			data, err := os.ReadFile(p)
			Expect(err).NotTo(HaveOccurred())
			first[p] = data
		}

		_, err = renderer.Render(graph)
		Expect(err).NotTo(HaveOccurred())
		for p, want := range first {
			data, err := os.ReadFile(p)
			Expect(err).NotTo(HaveOccurred())
			Expect(data).To(Equal(want), "output %s changed between runs", p)
		}

		container, err := os.ReadFile(filepath.Join(outDir, render.ContainerFile))
		Expect(err).NotTo(HaveOccurred())
		Expect(string(container)).To(ContainSubstring(`Rel(svc_frontend_web, wl_frontend_deploy_web, "routes to")`))
		Expect(string(container)).To(ContainSubstring(`Rel(ing_main_web, svc_frontend_web, "forwards")`))
	})

	It("reports the same graph hash for identical input", func() {
		manifestPath := filepath.Join(workDir, "manifests.yaml")
		objs, err := manifest.Load(manifest.Options{YAMLPath: manifestPath})
		Expect(err).NotTo(HaveOccurred())
		again := topology.Resolve(resource.BuildSet(objs))
		Expect(again.Hash()).To(Equal(graph.Hash()))
	})
})
