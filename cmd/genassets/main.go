package main

import (
	"flag"
	"fmt"
	"os"

	"chosenoffset.com/slimecount/internal/placeholders"
)

func main() {
	dir := flag.String("dir", "resource", "directory to write the assets to")
	music := flag.String("music", "bgm.wav", "file name of the generated music loop")
	flag.Parse()

	fmt.Println("Slime Count Placeholder Asset Generator")
	fmt.Println("=======================================")
	fmt.Println()

	if err := placeholders.GenerateAndSave(*dir, *music); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Println("Done! Placeholder assets are ready to use.")
}
