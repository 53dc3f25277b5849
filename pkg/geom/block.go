package geom

// Material is an opaque visual tag carried by a block. The engine never
// interprets it; front-ends map it to colours or textures.
type Material int

// Block is a unit cube at Pos with a material tag.
type Block struct {
	Pos      Coord
	Material Material
}

// Translated returns b moved by d. The material is kept.
func (b Block) Translated(d Coord) Block {
	return Block{Pos: b.Pos.Add(d), Material: b.Material}
}

// Rotated returns b turned a quarter turn about a. The material is kept.
func (b Block) Rotated(a Axis, sign int) Block {
	return Block{Pos: Rotate(b.Pos, a, sign), Material: b.Material}
}
