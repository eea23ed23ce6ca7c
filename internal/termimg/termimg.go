// Package termimg draws PNG images inline in a terminal.
//
// Three encodings are supported: the kitty graphics protocol, the iTerm2
// inline image protocol (also understood by WezTerm), and a truecolor
// half-block fallback that works in any 24-bit color terminal. Kitty and
// iTerm2 receive the original PNG and scale it to the requested column
// count themselves; the fallback is resampled here.
package termimg

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"strings"
)

// Sentinel errors.
var (
	ErrDecode          = errors.New("image is not a valid PNG")
	ErrWrite           = errors.New("failed to write image to terminal")
	ErrInvalidProtocol = errors.New("invalid terminal graphics protocol")
	ErrInvalidColumns  = errors.New("display columns must be positive")
)

// Protocol selects the terminal image encoding.
type Protocol string

const (
	ProtocolAuto   Protocol = "auto"
	ProtocolKitty  Protocol = "kitty"
	ProtocolITerm  Protocol = "iterm"
	ProtocolBlocks Protocol = "blocks"
)

// ParseProtocol parses a protocol name. Empty means auto.
func ParseProtocol(s string) (Protocol, error) {
	switch p := Protocol(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return ProtocolAuto, nil
	case ProtocolAuto, ProtocolKitty, ProtocolITerm, ProtocolBlocks:
		return p, nil
	default:
		return "", fmt.Errorf("%w: %q (must be auto, kitty, iterm, or blocks)", ErrInvalidProtocol, s)
	}
}

// cursorToColumnOne moves the cursor to the first column of the current
// line, so the image always starts at the left edge.
const cursorToColumnOne = "\x1b[1G"

// Options controls Render.
type Options struct {
	Columns  int      // Image width in terminal cells
	Protocol Protocol // ProtocolAuto resolves through Detect
	Getenv   func(string) string
}

// Render decodes pngData and writes it to w at opts.Columns cells wide.
func Render(w io.Writer, pngData []byte, opts Options) error {
	if opts.Columns <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidColumns, opts.Columns)
	}

	img, err := png.Decode(bytes.NewReader(pngData))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDecode, err)
	}

	protocol := opts.Protocol
	if protocol == "" || protocol == ProtocolAuto {
		protocol = Detect(opts.Getenv)
	}

	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(cursorToColumnOne); err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}

	switch protocol {
	case ProtocolKitty:
		err = writeKitty(bw, pngData, opts.Columns)
	case ProtocolITerm:
		err = writeITerm(bw, pngData, opts.Columns)
	case ProtocolBlocks:
		err = writeBlocks(bw, img, opts.Columns)
	default:
		return fmt.Errorf("%w: %q", ErrInvalidProtocol, protocol)
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	return nil
}

// Size returns the pixel dimensions of pngData without decoding pixels.
func Size(pngData []byte) (image.Point, error) {
	cfg, err := png.DecodeConfig(bytes.NewReader(pngData))
	if err != nil {
		return image.Point{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return image.Pt(cfg.Width, cfg.Height), nil
}
