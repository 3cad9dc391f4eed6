// Package main provides the Lucid attribution framework CLI.
package main

import (
	"fmt"
	"math/rand"
	"os"

	"github.com/lucid-ml/lucid/attr"
	"github.com/lucid-ml/lucid/nn"
	"github.com/lucid-ml/lucid/tensor"
)

const version = "v0.0.1-dev"

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "version":
			fmt.Printf("Lucid Attribution Framework %s\n", version)
			return
		case "demo":
			if err := demo(); err != nil {
				fmt.Fprintln(os.Stderr, "demo failed:", err)
				os.Exit(1)
			}
			return
		}
	}

	fmt.Println("Lucid - Gradient Attribution for Go")
	fmt.Printf("Version: %s\n\n", version)
	fmt.Println("Commands:")
	fmt.Println("  version    Show version")
	fmt.Println("  demo       Attribute a small linear-ReLU-linear model")
}

// demo runs Integrated Gradients over a 3-input toy model and prints the
// attribution of each input feature plus the completeness error.
func demo() error {
	rng := rand.New(rand.NewSource(7))
	net, err := nn.NewNetwork(
		nn.NewLinear("hidden", 3, 4, rng),
		nn.NewReLU("relu"),
		nn.NewLinear("output", 4, 1, rng),
	)
	if err != nil {
		return err
	}

	input, err := tensor.FromSlice([]float64{1.0, -0.5, 2.0}, tensor.Shape{1, 3})
	if err != nil {
		return err
	}

	ig := attr.NewIntegratedGradients(net)
	res, err := ig.Attribute(input, nil, attr.PathConfig{ReturnDelta: true})
	if err != nil {
		return err
	}

	fmt.Println("input:       ", input.Data())
	fmt.Println("attribution: ", res.Attribution.Data())
	fmt.Println("delta:       ", res.Delta)
	return nil
}
