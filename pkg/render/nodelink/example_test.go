package nodelink_test

import (
	"fmt"
	"strings"

	"github.com/matzehuels/figtex/pkg/figure"
	"github.com/matzehuels/figtex/pkg/render/nodelink"
)

func ExampleToDOT() {
	fig := figure.New()
	fig.AddText(0.5, 0.95, "Caption")
	if err := fig.Layout(); err != nil {
		panic(err)
	}

	dot, err := nodelink.ToDOT(fig, nodelink.Options{})
	if err != nil {
		panic(err)
	}
	fmt.Println(strings.HasPrefix(dot, "digraph G {"))
	fmt.Println(strings.Contains(dot, `label="text \"Caption\"", fillcolor=palegreen`))
	// Output:
	// true
	// true
}
