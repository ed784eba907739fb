// Copyright 2016 The Gocol Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"testing"

	"github.com/cpmech/gocol/geo"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
	"github.com/cpmech/gosl/io"
)

func Test_inp01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("inp01. read settings file")

	settings, err := ReadSettings("data/basic.cfg")
	if err != nil {
		tst.Errorf("ReadSettings failed: %v\n", err)
		return
	}
	io.Pforan("settings = %+v\n", settings)

	chk.Scalar(tst, "width", 1e-15, settings.Octree.Width, 100.0)
	chk.Scalar(tst, "minwidth", 1e-15, settings.Octree.MinWidth, 0.1)
	chk.Scalar(tst, "minwidthratio", 1e-15, settings.Octree.MinWidthRatio, 1.0)
	chk.IntAssert(settings.Octree.MaxLevelDebugRender, 8)
	if settings.Octree.AlwaysRebuild {
		tst.Errorf("alwaysrebuild must be false\n")
		return
	}
	if !settings.Octree.DrawNonEmptyParent {
		tst.Errorf("drawnonemptyparent must be true\n")
		return
	}
	chk.IntAssert(len(settings.Geoms), 2)

	// the defined geometries can be constructed
	g0, err := settings.Geoms[0].Geometry()
	if err != nil {
		tst.Errorf("Geometry failed: %v\n", err)
		return
	}
	plane, ok := g0.(*geo.Plane)
	if !ok {
		tst.Errorf("first geometry must be a plane\n")
		return
	}
	chk.Vector(tst, "plane c", 1e-15, plane.C, []float64{0, -1, 0})
	chk.Vector(tst, "plane n", 1e-15, plane.N, []float64{0, 1, 0})
	chk.Scalar(tst, "plane hw", 1e-15, plane.HalfWidth, 10.0)

	g1, err := settings.Geoms[1].Geometry()
	if err != nil {
		tst.Errorf("Geometry failed: %v\n", err)
		return
	}
	sphere, ok := g1.(*geo.Sphere)
	if !ok {
		tst.Errorf("second geometry must be a sphere\n")
		return
	}
	chk.Vector(tst, "sphere c", 1e-15, sphere.C, []float64{0, 0.5, 0})
	chk.Scalar(tst, "sphere r", 1e-15, sphere.R, 0.25)

	// the octree can be constructed from the configuration
	tree := settings.NewOctree("configuredOctree")
	chk.Scalar(tst, "tree width", 1e-15, tree.Width(), 100.0)
	chk.IntAssert(tree.MaxLevelDebugRender, 8)

	// missing file
	if _, err := ReadSettings("data/doesnotexist.cfg"); err == nil {
		tst.Errorf("missing file must be reported\n")
		return
	}
}

func Test_inp02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("inp02. defaults and geometry kinds")

	var settings Settings
	settings.Validate()
	chk.Vector(tst, "center", 1e-15, settings.Octree.Center, []float64{0, 0, 0})
	chk.Scalar(tst, "width", 1e-15, settings.Octree.Width, 100.0)
	chk.Scalar(tst, "minwidth", 1e-15, settings.Octree.MinWidth, 0.1)
	chk.Scalar(tst, "minwidthratio", 1e-15, settings.Octree.MinWidthRatio, 1.0)

	capsule := &GeomData{Name: "c", Kind: "capsule", Prms: fun.Prms{
		&fun.Prm{N: "l", V: 2.0},
		&fun.Prm{N: "r", V: 0.5},
	}}
	g, err := capsule.Geometry()
	if err != nil {
		tst.Errorf("Geometry failed: %v\n", err)
		return
	}
	if g.Kind() != geo.KindCapsule {
		tst.Errorf("wrong geometry kind\n")
		return
	}

	cylinder := &GeomData{Name: "c", Kind: "cylinder", Prms: fun.Prms{
		&fun.Prm{N: "ax", V: 1.0},
		&fun.Prm{N: "ay", V: 0.0},
	}}
	g, err = cylinder.Geometry()
	if err != nil {
		tst.Errorf("Geometry failed: %v\n", err)
		return
	}
	if g.Kind() != geo.KindCylinder {
		tst.Errorf("wrong geometry kind\n")
		return
	}

	unknown := &GeomData{Name: "u", Kind: "torus"}
	if _, err := unknown.Geometry(); err == nil {
		tst.Errorf("unknown kind must be reported\n")
		return
	}
}
