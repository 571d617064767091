package spectro_test

import (
	"fmt"

	"github.com/neurlang/gostft/spectro"
)

func ExampleDecode() {
	s, _ := spectro.Decode([]float32{1, 0, 0, 2}, 1, 2)
	mag := spectro.Magnitude(s)
	fmt.Println(s[0][0], s[0][1])
	fmt.Printf("%.1f %.1f\n", mag[0][0], mag[0][1])
	// Output:
	// (1+0i) (0+2i)
	// 1.0 2.0
}

func ExampleFraming() {
	f := spectro.NewFraming()
	fmt.Println(f.SignalLength(), f.FrameCount(), f.BinCount())
	// Output:
	// 8000 61 128
}
