package termimg

import (
	"fmt"
	"image"
	"image/color"
	"io"

	"golang.org/x/image/draw"
)

// upperHalfBlock draws the top pixel in the foreground color and the bottom
// pixel in the background color, giving two pixel rows per text row.
const upperHalfBlock = "▀"

// writeBlocks resamples img to columns pixels wide and prints it as
// truecolor half blocks.
func writeBlocks(w io.Writer, img image.Image, columns int) error {
	scaled := scaleToWidth(img, columns)
	b := scaled.Bounds()

	var lastFG, lastBG color.RGBA
	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		fresh := true
		for x := b.Min.X; x < b.Max.X; x++ {
			fg := rgba(scaled.At(x, y))
			bg := fg
			if y+1 < b.Max.Y {
				bg = rgba(scaled.At(x, y+1))
			}

			if fresh || fg != lastFG {
				if _, err := fmt.Fprintf(w, "\x1b[38;2;%d;%d;%dm", fg.R, fg.G, fg.B); err != nil {
					return err
				}
			}
			if fresh || bg != lastBG {
				if _, err := fmt.Fprintf(w, "\x1b[48;2;%d;%d;%dm", bg.R, bg.G, bg.B); err != nil {
					return err
				}
			}
			fresh = false
			lastFG, lastBG = fg, bg

			if _, err := io.WriteString(w, upperHalfBlock); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, "\x1b[0m\n"); err != nil {
			return err
		}
	}
	return nil
}

// scaleToWidth resamples img to width pixels, keeping the aspect ratio.
func scaleToWidth(img image.Image, width int) image.Image {
	bounds := img.Bounds()
	if bounds.Dx() == width {
		return img
	}

	height := bounds.Dy() * width / max(bounds.Dx(), 1)
	if height <= 0 {
		height = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}

func rgba(c color.Color) color.RGBA {
	return color.RGBAModel.Convert(c).(color.RGBA)
}
