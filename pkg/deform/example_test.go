package deform_test

import (
	"fmt"

	"github.com/matzehuels/bleed/pkg/deform"
	"github.com/matzehuels/bleed/pkg/geom"
	"github.com/matzehuels/bleed/pkg/random"
)

func Example() {
	src := random.New(42)
	base := geom.CreatePolygon(geom.Point2D{X: 100, Y: 100}, 50, 5, src)

	d := deform.New(src)
	rough := d.Deform(base, 50)
	layer, err := d.Iterate(rough, 5, 3)
	if err != nil {
		panic(err)
	}

	fmt.Println(base.Len(), rough.Len(), layer.Len())
	// Output: 5 10 80
}

func ExampleDeformer_Iterate_ceiling() {
	d := deform.New(random.New(1), deform.WithMaxPoints(1000))
	base := geom.CreatePolygon(geom.Point2D{X: 100, Y: 100}, 50, 5, random.New(1))

	_, err := d.Iterate(base, 50, 20)
	fmt.Println(err)
	// Output: LIMIT_EXCEEDED: 20 passes over 5 points exceeds the 1000 point ceiling
}
