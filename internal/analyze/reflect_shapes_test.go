package analyze

import (
	"form-mapper/examples/zoo"
	"form-mapper/internal/shape"
)

var reflectShapes = map[string]*shape.Shape{
	"Animal":      shape.Of[zoo.Animal](),
	"Zone":        shape.Of[zoo.Zone](),
	"Environment": shape.Of[zoo.Environment](),
	"Keeper":      shape.Of[zoo.Keeper](),
}
