package normalize

import (
	"fmt"

	"github.com/lbmaian/chatdl/internal/chatdl/model"
)

// colorFromARGB decomposes a 32-bit ARGB integer into both the RGBA
// component form and the "#rrggbbaa" hex form.
func colorFromARGB(argb int64) model.Color {
	r := uint8((argb >> 16) & 0xff)
	g := uint8((argb >> 8) & 0xff)
	b := uint8(argb & 0xff)
	a := uint8((argb >> 24) & 0xff)
	return model.Color{
		RGBA: [4]uint8{r, g, b, a},
		Hex:  fmt.Sprintf("#%02x%02x%02x%02x", r, g, b, a),
	}
}
