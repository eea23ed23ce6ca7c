package termimg

import (
	"encoding/base64"
	"fmt"
	"io"
)

// kittyChunkSize is the largest base64 payload per escape sequence the
// protocol accepts.
const kittyChunkSize = 4096

// writeKitty transmits a PNG with the kitty graphics protocol: f=100 (PNG),
// a=T (transmit and display), q=2 (no replies), c=columns. The payload is
// split into chunks flagged m=1 except the last.
func writeKitty(w io.Writer, pngData []byte, columns int) error {
	data := []byte(base64.StdEncoding.EncodeToString(pngData))

	first := true
	for len(data) > 0 {
		chunk := data
		more := 0
		if len(chunk) > kittyChunkSize {
			chunk, more = data[:kittyChunkSize], 1
		}

		var err error
		if first {
			_, err = fmt.Fprintf(w, "\x1b_Gf=100,a=T,q=2,c=%d,m=%d;", columns, more)
			first = false
		} else {
			_, err = fmt.Fprintf(w, "\x1b_Gm=%d;", more)
		}
		if err != nil {
			return err
		}
		if _, err := w.Write(chunk); err != nil {
			return err
		}
		if _, err := io.WriteString(w, "\x1b\\"); err != nil {
			return err
		}

		data = data[len(chunk):]
	}

	_, err := io.WriteString(w, "\n")
	return err
}
