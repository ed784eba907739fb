// Copyright 2016 The Gocol Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"github.com/cpmech/gocol/geo"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
)

// GeomData defines one analytical geometry by name, kind and parameters,
// the way materials are defined in a simulation input file. Supported kinds
// and parameters:
//
//	"plane"    x y z  nx ny nz  hw
//	"sphere"   x y z  r
//	"capsule"  x y z  ax ay az  l r
//	"cylinder" x y z  ax ay az  l r
type GeomData struct {
	Name string   `json:"name"` // name of the geometry
	Kind string   `json:"kind"` // kind keyword
	Prms fun.Prms `json:"prms"` // parameters
}

// prm returns the value of a named parameter or a default
func (o *GeomData) prm(name string, dflt float64) float64 {
	for _, p := range o.Prms {
		if p.N == name {
			return p.V
		}
	}
	return dflt
}

// Geometry constructs the analytical geometry from the parameter set
func (o *GeomData) Geometry() (geo.Geometry, error) {
	c := []float64{o.prm("x", 0), o.prm("y", 0), o.prm("z", 0)}
	a := []float64{o.prm("ax", 0), o.prm("ay", 1), o.prm("az", 0)}
	switch o.Kind {
	case "plane":
		n := []float64{o.prm("nx", 0), o.prm("ny", 1), o.prm("nz", 0)}
		return geo.NewPlane(c, n, o.prm("hw", 50.0)), nil
	case "sphere":
		return geo.NewSphere(c, o.prm("r", 1.0)), nil
	case "capsule":
		return geo.NewCapsule(c, a, o.prm("l", 1.0), o.prm("r", 0.5)), nil
	case "cylinder":
		return geo.NewCylinder(c, a, o.prm("l", 1.0), o.prm("r", 0.5)), nil
	}
	return nil, chk.Err("geometry kind %q is not available", o.Kind)
}
