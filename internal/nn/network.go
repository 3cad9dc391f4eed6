package nn

import (
	"fmt"
	"sync"

	"github.com/lucid-ml/lucid/internal/attr"
	"github.com/lucid-ml/lucid/internal/tensor"
)

// Network chains named layers into a feedforward model and implements the
// attribution evaluation port: attr.Model, attr.LayerModel and
// attr.NeuronModel. The network's parameters are read-only during
// attribution; gradient computation never mutates them.
//
// Example:
//
//	net, _ := nn.NewNetwork(
//	    nn.NewLinear("hidden", 3, 4, rng),
//	    nn.NewReLU("relu"),
//	    nn.NewLinear("output", 4, 2, rng),
//	)
//	out, _ := net.Forward(input)
type Network struct {
	layers []Layer

	mu     sync.Mutex
	hooks  map[string]map[int]func(*tensor.Tensor)
	nextID int
}

// NewNetwork creates a Network from the given layers. Layer names must be
// unique; they identify observation points for the layer-level methods.
func NewNetwork(layers ...Layer) (*Network, error) {
	if len(layers) == 0 {
		return nil, fmt.Errorf("network requires at least one layer")
	}
	seen := make(map[string]bool, len(layers))
	for _, l := range layers {
		if seen[l.Name()] {
			return nil, fmt.Errorf("duplicate layer name %q", l.Name())
		}
		seen[l.Name()] = true
	}
	return &Network{
		layers: layers,
		hooks:  make(map[string]map[int]func(*tensor.Tensor)),
	}, nil
}

// RegisterForwardHook attaches fn to the output of the named layer; fn is
// invoked with the layer's activation on every forward pass. The returned
// remove function detaches the hook and must be called when the
// observation is no longer needed (typically with defer).
func (n *Network) RegisterForwardHook(layer string, fn func(*tensor.Tensor)) (remove func(), err error) {
	if _, err := n.layerIndex(layer); err != nil {
		return nil, err
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.hooks[layer] == nil {
		n.hooks[layer] = make(map[int]func(*tensor.Tensor))
	}
	id := n.nextID
	n.nextID++
	n.hooks[layer][id] = fn
	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		delete(n.hooks[layer], id)
	}, nil
}

func (n *Network) layerIndex(name string) (int, error) {
	for i, l := range n.layers {
		if l.Name() == name {
			return i, nil
		}
	}
	return 0, &attr.InvalidParameterError{Name: "layer", Reason: fmt.Sprintf("no layer named %q", name)}
}

// forwardAll runs the full forward pass, returning every intermediate
// activation: acts[0] is the input, acts[i+1] the output of layer i.
// Forward hooks fire as each layer produces its output.
func (n *Network) forwardAll(input *tensor.Tensor) []*tensor.Tensor {
	acts := make([]*tensor.Tensor, len(n.layers)+1)
	acts[0] = input
	for i, l := range n.layers {
		acts[i+1] = l.Forward(acts[i])
		n.fireHooks(l.Name(), acts[i+1])
	}
	return acts
}

func (n *Network) fireHooks(layer string, activation *tensor.Tensor) {
	n.mu.Lock()
	fns := make([]func(*tensor.Tensor), 0, len(n.hooks[layer]))
	for _, fn := range n.hooks[layer] {
		fns = append(fns, fn)
	}
	n.mu.Unlock()
	for _, fn := range fns {
		fn(activation)
	}
}

// Forward maps an input batch [B, in] to the output batch [B, out].
func (n *Network) Forward(batch *tensor.Tensor) (*tensor.Tensor, error) {
	acts := n.forwardAll(batch)
	return acts[len(acts)-1], nil
}

// Gradient returns the gradient of the selected output scalar with respect
// to the input batch, one row per example.
func (n *Network) Gradient(batch *tensor.Tensor, target attr.Target) (*tensor.Tensor, error) {
	acts := n.forwardAll(batch)
	grad, err := n.outputSeed(acts[len(acts)-1], target)
	if err != nil {
		return nil, err
	}
	return n.backwardFrom(len(n.layers)-1, acts, grad)
}

// LayerActivation returns the named layer's activation for a forward pass.
// The observation uses a scoped forward hook, removed before returning.
func (n *Network) LayerActivation(batch *tensor.Tensor, layer string) (*tensor.Tensor, error) {
	var captured *tensor.Tensor
	remove, err := n.RegisterForwardHook(layer, func(act *tensor.Tensor) {
		captured = act
	})
	if err != nil {
		return nil, err
	}
	defer remove()

	if _, err := n.Forward(batch); err != nil {
		return nil, err
	}
	return captured, nil
}

// LayerGradient performs the unmodified forward pass and returns the named
// layer's activation together with the gradient of the selected output
// scalar with respect to that activation.
func (n *Network) LayerGradient(batch *tensor.Tensor, layer string, target attr.Target) (*tensor.Tensor, *tensor.Tensor, error) {
	idx, err := n.layerIndex(layer)
	if err != nil {
		return nil, nil, err
	}
	acts := n.forwardAll(batch)
	grad, err := n.outputSeed(acts[len(acts)-1], target)
	if err != nil {
		return nil, nil, err
	}
	// Backpropagate only through the layers above the observed one.
	for i := len(n.layers) - 1; i > idx; i-- {
		grad, err = n.layers[i].Backward(acts[i], grad)
		if err != nil {
			return nil, nil, err
		}
	}
	return acts[idx+1], grad, nil
}

// NeuronGradient returns the gradient of one neuron's activation at the
// named layer with respect to the input batch.
func (n *Network) NeuronGradient(batch *tensor.Tensor, layer string, neuron int) (*tensor.Tensor, error) {
	idx, err := n.layerIndex(layer)
	if err != nil {
		return nil, err
	}
	acts := n.forwardAll(batch)
	act := acts[idx+1]
	shape := act.Shape()
	if len(shape) != 2 || neuron < 0 || neuron >= shape[1] {
		return nil, &attr.InvalidParameterError{
			Name:   "neuron",
			Reason: fmt.Sprintf("index %d out of range for layer %q with activation shape %v", neuron, layer, shape),
		}
	}
	seed := tensor.New(shape)
	for r := 0; r < shape[0]; r++ {
		seed.Set(1, r, neuron)
	}
	return n.backwardFrom(idx, acts, seed)
}

// outputSeed builds the one-hot gradient of the selected output scalar.
func (n *Network) outputSeed(output *tensor.Tensor, target attr.Target) (*tensor.Tensor, error) {
	shape := output.Shape()
	if len(shape) != 2 {
		return nil, fmt.Errorf("network output must be [batch, outputs], got %v", shape)
	}
	resolved, err := target.Resolve(shape[0], shape[1])
	if err != nil {
		return nil, err
	}
	seed := tensor.New(shape)
	for r, idx := range resolved {
		seed.Set(1, r, idx)
	}
	return seed, nil
}

// backwardFrom propagates grad from the output of layer `from` down to the
// network input.
func (n *Network) backwardFrom(from int, acts []*tensor.Tensor, grad *tensor.Tensor) (*tensor.Tensor, error) {
	var err error
	for i := from; i >= 0; i-- {
		grad, err = n.layers[i].Backward(acts[i], grad)
		if err != nil {
			return nil, err
		}
	}
	return grad, nil
}
