// Package catalog holds the teaching cases consumed by the echo simulator.
//
// A case carries a heart rate and a set of flow descriptors, each scoped to
// one view. Cases are pure data: the renderer reads them every frame and
// never modifies them.
//
// The built-in catalog is embedded as YAML:
//
//	cat := catalog.Builtin()
//	vsd, _ := cat.Lookup("vsd")
//	jets := vsd.FlowsFor(catalog.ViewPLAX)
package catalog
