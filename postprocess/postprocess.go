// Package postprocess runs rendered content through an ordered chain of
// transformations before it reaches the destination tree. loom uses it for
// line-separator normalization and optional formatting of generated code.
package postprocess

import "fmt"

// Processor transforms the content of one rendered file. The destination
// path is provided so processors can restrict themselves to relevant file
// types; a processor that does not apply must return the content unchanged.
type Processor interface {
	ProcessContent(filePath string, content []byte) ([]byte, error)
}

// ProcessorFunc adapts a plain function to the Processor interface.
type ProcessorFunc func(filePath string, content []byte) ([]byte, error)

func (f ProcessorFunc) ProcessContent(filePath string, content []byte) ([]byte, error) {
	return f(filePath, content)
}

// Chain applies processors in the order they were added.
type Chain struct {
	processors []Processor
}

// NewChain creates an empty chain.
func NewChain() *Chain {
	return &Chain{}
}

// Add appends a processor to the chain.
func (c *Chain) Add(p Processor) {
	c.processors = append(c.processors, p)
}

// AddFunc appends a function as a processor.
func (c *Chain) AddFunc(fn func(filePath string, content []byte) ([]byte, error)) {
	c.processors = append(c.processors, ProcessorFunc(fn))
}

// Process runs the chain on content. The first failing processor stops the
// chain and its error is returned.
func (c *Chain) Process(filePath string, content []byte) ([]byte, error) {
	out := content
	for i, p := range c.processors {
		next, err := p.ProcessContent(filePath, out)
		if err != nil {
			return nil, fmt.Errorf("processor %d failed for %s: %w", i, filePath, err)
		}
		out = next
	}
	return out, nil
}

// Len reports the number of processors in the chain.
func (c *Chain) Len() int {
	return len(c.processors)
}
