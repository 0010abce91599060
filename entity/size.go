package entity

// Size is the serving size a product can be sold in. Not every product
// offers every size; absent sizes have a nil price on the Product row.
type Size string

const (
	SizeBig     Size = "big"
	SizeMedium  Size = "medium"
	SizePlatter Size = "platter"
	SizeTub     Size = "tub"
)

func (s Size) Valid() bool {
	switch s {
	case SizeBig, SizeMedium, SizePlatter, SizeTub:
		return true
	}
	return false
}
