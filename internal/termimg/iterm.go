package termimg

import (
	"encoding/base64"
	"fmt"
	"io"
)

// writeITerm sends an OSC 1337 inline file. width is in cells; the
// terminal keeps the aspect ratio.
func writeITerm(w io.Writer, pngData []byte, columns int) error {
	_, err := fmt.Fprintf(w, "\x1b]1337;File=inline=1;size=%d;width=%d;preserveAspectRatio=1:%s\a\n",
		len(pngData), columns, base64.StdEncoding.EncodeToString(pngData))
	return err
}
