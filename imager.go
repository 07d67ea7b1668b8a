package geworld

import (
	"math"

	"github.com/unixpickle/anydiff"
	"github.com/unixpickle/anynet/anyconv"
	"github.com/unixpickle/anyvec"
	"github.com/unixpickle/essentials"
)

// An Imager converts raw greyscale frames into observation
// vectors scaled to [0, 1].
//
// Frames are scaled down to the output dimensions with the
// aspect ratio preserved; any leftover area is zero-padded.
type Imager struct {
	creator anyvec.Creator
	resize  *anyconv.Resize
	padding *anyconv.Padding
}

// NewImager creates an Imager mapping srcWidth x srcHeight
// frames to outWidth x outHeight observations.
func NewImager(c anyvec.Creator, srcWidth, srcHeight, outWidth,
	outHeight int) *Imager {
	widthFactor := float64(srcWidth) / float64(outWidth)
	heightFactor := float64(srcHeight) / float64(outHeight)
	factor := math.Max(widthFactor, heightFactor)

	newWidth := int(essentials.Round(float64(srcWidth) / factor))
	newHeight := int(essentials.Round(float64(srcHeight) / factor))

	xPadding := outWidth - newWidth
	yPadding := outHeight - newHeight

	return &Imager{
		creator: c,
		resize: &anyconv.Resize{
			Depth:        1,
			InputWidth:   srcWidth,
			InputHeight:  srcHeight,
			OutputWidth:  newWidth,
			OutputHeight: newHeight,
		},
		padding: &anyconv.Padding{
			InputWidth:    newWidth,
			InputHeight:   newHeight,
			InputDepth:    1,
			PaddingTop:    yPadding / 2,
			PaddingBottom: (yPadding / 2) + (yPadding % 2),
			PaddingLeft:   xPadding / 2,
			PaddingRight:  (xPadding / 2) + (xPadding % 2),
		},
	}
}

// Image converts a raw greyscale frame into an observation
// vector with every pixel scaled to [0, 1].
func (i *Imager) Image(frame []uint8) anyvec.Vector {
	data := make([]float64, len(frame))
	for j, px := range frame {
		data[j] = float64(px) / 255
	}
	vec := Vector(i.creator, data)
	return i.padding.Apply(i.resize.Apply(anydiff.NewConst(vec), 1), 1).Output()
}
