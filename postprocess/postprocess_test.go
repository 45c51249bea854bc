package postprocess

import (
	"errors"
	"strings"
	"testing"
)

type prefixer struct {
	prefix string
}

func (p *prefixer) ProcessContent(filePath string, content []byte) ([]byte, error) {
	return []byte(p.prefix + string(content)), nil
}

func TestChainOrder(t *testing.T) {
	chain := NewChain()
	chain.Add(&prefixer{prefix: "a:"})
	chain.Add(&prefixer{prefix: "b:"})

	out, err := chain.Process("f.txt", []byte("x"))
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != "b:a:x" {
		t.Errorf("processors ran out of order: %q", out)
	}
}

func TestChainAddFunc(t *testing.T) {
	chain := NewChain()
	chain.AddFunc(func(path string, content []byte) ([]byte, error) {
		return []byte(strings.ToUpper(string(content))), nil
	})

	out, err := chain.Process("f.txt", []byte("quiet"))
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != "QUIET" {
		t.Errorf("unexpected output: %q", out)
	}
}

func TestChainStopsOnError(t *testing.T) {
	boom := errors.New("boom")
	chain := NewChain()
	chain.AddFunc(func(path string, content []byte) ([]byte, error) {
		return nil, boom
	})
	chain.Add(&prefixer{prefix: "never:"})

	_, err := chain.Process("f.txt", []byte("x"))
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped boom error, got %v", err)
	}
}

func TestEmptyChainPassesThrough(t *testing.T) {
	chain := NewChain()
	out, err := chain.Process("f.txt", []byte("same"))
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != "same" {
		t.Errorf("empty chain altered content: %q", out)
	}
	if chain.Len() != 0 {
		t.Errorf("Len() = %d, want 0", chain.Len())
	}
}
