package main

import (
	"flag"
	"fmt"
	"os"

	"tiny-raytracer/internal/encode"
)

func main() {
	tolerance := flag.Int("tolerance", 0, "Largest per-channel difference still treated as equal")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: imgdiff [-tolerance N] <want> <got>")
		fmt.Fprintln(os.Stderr, "Compares two images (.ppm, .png, .tga) channel by channel.")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(2)
	}

	want, err := encode.DecodeFile(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	got, err := encode.DecodeFile(flag.Arg(1))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	d, err := Compare(want, got, *tolerance)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Pixels: %d, over tolerance: %d, max channel delta: %d\n", d.Pixels, d.Over, d.MaxDelta)
	if d.Over > 0 {
		fmt.Printf("First mismatch at (%d,%d)\n", d.First.X, d.First.Y)
		os.Exit(1)
	}
}
