// Copyright 2016 The Gocol Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the input data read from a (.cfg) JSON file:
// octree configuration, debug-render controls, worker count and geometry
// definitions
package inp

import (
	"encoding/json"

	"github.com/cpmech/gocol/oct"
	"github.com/cpmech/gocol/prl"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// OctreeData holds the configuration of the spatial index
type OctreeData struct {
	Center              []float64 `json:"center"`              // centre of the root node
	Width               float64   `json:"width"`               // width of the root node
	MinWidth            float64   `json:"minwidth"`            // minimum allowed node width
	MinWidthRatio       float64   `json:"minwidthratio"`       // scales the smallest primitive extent into a min width
	AlwaysRebuild       bool      `json:"alwaysrebuild"`       // rebuild from scratch on every update
	MaxLevelDebugRender int       `json:"maxleveldebugrender"` // debug export depth limit
	DrawNonEmptyParent  bool      `json:"drawnonemptyparent"`  // debug export of empty internal nodes
}

// Settings holds the global configuration of the collision core
type Settings struct {

	// global information
	Desc     string `json:"desc"`     // description of the configuration
	Nworkers int    `json:"nworkers"` // number of worker goroutines; 0 means one per CPU
	Verbose  bool   `json:"verbose"`  // print build summaries

	// subsystems
	Octree OctreeData  `json:"octree"` // spatial index configuration
	Geoms  []*GeomData `json:"geoms"`  // geometry definitions
}

// ReadSettings reads the configuration from a JSON file
func ReadSettings(fn string) (o *Settings, err error) {
	b, err := io.ReadFile(fn)
	if err != nil {
		return nil, chk.Err("cannot read settings file %q:\n%v", fn, err)
	}
	o = new(Settings)
	if err := json.Unmarshal(b, o); err != nil {
		return nil, chk.Err("cannot parse settings file %q:\n%v", fn, err)
	}
	o.Validate()
	return
}

// Validate fills missing values with defaults
func (o *Settings) Validate() {
	if len(o.Octree.Center) != 3 {
		o.Octree.Center = []float64{0, 0, 0}
	}
	if o.Octree.Width <= 0 {
		o.Octree.Width = 100.0
	}
	if o.Octree.MinWidth <= 0 {
		o.Octree.MinWidth = 0.1
	}
	if o.Octree.MinWidthRatio <= 0 {
		o.Octree.MinWidthRatio = 1.0
	}
	if o.Octree.MaxLevelDebugRender <= 0 {
		o.Octree.MaxLevelDebugRender = 1<<31 - 1
	}
}

// NewOctree constructs the spatial index from the configuration and applies
// the worker count
func (o *Settings) NewOctree(name string) *oct.Octree {
	prl.NumWorkers = o.Nworkers
	t := oct.New(o.Octree.Center, o.Octree.Width, o.Octree.MinWidth, o.Octree.MinWidthRatio, name)
	t.AlwaysRebuild = o.Octree.AlwaysRebuild
	t.MaxLevelDebugRender = o.Octree.MaxLevelDebugRender
	t.DrawNonEmptyParent = o.Octree.DrawNonEmptyParent
	t.Verbose = o.Verbose
	return t
}
