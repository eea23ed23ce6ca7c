package mdview_test

import (
	"context"
	"fmt"
	"log"
	"strings"

	mdview "github.com/alnah/go-mdview"
)

func ExampleRenderer_BuildPage() {
	r, err := mdview.NewRenderer(mdview.WithStyle("plain"))
	if err != nil {
		log.Fatal(err)
	}

	page, err := r.BuildPage(context.Background(), mdview.Input{Markdown: "# Hello\n\nWorld"})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(strings.Count(page.HTML, "<h1"))
	// Output: 1
}

func ExampleResolveViewportWidth() {
	fmt.Println(mdview.ResolveViewportWidth(0, 100))  // 100 columns x 8px
	fmt.Println(mdview.ResolveViewportWidth(0, 300))  // capped
	fmt.Println(mdview.ResolveViewportWidth(1600, 0)) // explicit wins
	// Output:
	// 800
	// 1200
	// 1600
}

func ExampleDisplayColumns() {
	fmt.Println(mdview.DisplayColumns(220, 0))
	fmt.Println(mdview.DisplayColumns(100, 0))
	// Output:
	// 150
	// 100
}
