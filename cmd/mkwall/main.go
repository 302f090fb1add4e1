//go:build !tinygo

// mkwall converts an image into a Go source file holding RGB565 pixel data
// in panel byte order, suitable for embedding as a wallpaper.
//
//	mkwall -in wall.png -out shell/wallpaper.go -pkg shell -var wallpaper
package main

import (
	"bytes"
	"flag"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"wristos/hal"
)

func main() {
	in := flag.String("in", "", "Input image (png or jpeg).")
	out := flag.String("out", "wallpaper.go", "Output Go source file.")
	pkg := flag.String("pkg", "shell", "Package name for the generated file.")
	name := flag.String("var", "wallpaper", "Variable name for the pixel data.")
	width := flag.Int("w", 240, "Expected width.")
	height := flag.Int("h", 240, "Expected height.")
	flag.Parse()

	if *in == "" {
		fmt.Fprintln(os.Stderr, "mkwall: -in is required")
		os.Exit(2)
	}
	if err := run(*in, *out, *pkg, *name, *width, *height); err != nil {
		fmt.Fprintln(os.Stderr, "mkwall:", err)
		os.Exit(1)
	}
}

func run(in, out, pkg, name string, w, h int) error {
	f, err := os.Open(in)
	if err != nil {
		return err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return fmt.Errorf("decode %q: %w", in, err)
	}
	b := img.Bounds()
	if b.Dx() != w || b.Dy() != h {
		return fmt.Errorf("%q is %dx%d, want %dx%d", in, b.Dx(), b.Dy(), w, h)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "// Code generated by mkwall from %s. DO NOT EDIT.\n\n", in)
	fmt.Fprintf(&buf, "package %s\n\n", pkg)
	fmt.Fprintf(&buf, "const %sW, %sH = %d, %d\n\n", name, name, w, h)
	fmt.Fprintf(&buf, "// %s holds RGB565 little-endian pixels, row major.\n", name)
	fmt.Fprintf(&buf, "var %s = []byte{", name)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if (y*w+x)%12 == 0 {
				buf.WriteString("\n\t")
			}
			r, g, bl, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			px := hal.RGB565(uint8(r>>8), uint8(g>>8), uint8(bl>>8))
			fmt.Fprintf(&buf, "0x%02x, 0x%02x, ", byte(px), byte(px>>8))
		}
	}
	buf.WriteString("\n}\n")

	if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %q: %w", out, err)
	}
	return nil
}
