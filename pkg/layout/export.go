package layout

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// regionJSON is the serialization form of one resolved region.
type regionJSON struct {
	Name   string     `json:"name"`
	Space  string     `json:"space"`
	Parent string     `json:"parent,omitempty"`
	Local  [4]float64 `json:"local"`
	Device [4]float64 `json:"device"`
}

type treeJSON struct {
	Regions []regionJSON `json:"regions"`
}

// WriteJSON encodes the resolved region tree as JSON and writes it to w.
// Regions appear in pre-order (the dump traversal), each with its local
// box and resolved device-pixel box. The output is a machine-readable
// companion to the text dump for asserting layouts in other tooling.
func (t *Tree) WriteJSON(w io.Writer) error {
	out := treeJSON{Regions: make([]regionJSON, 0, t.Len())}

	var walkErr error
	t.Walk(func(r *Region, depth, index int) {
		if walkErr != nil {
			return
		}
		dev, err := t.resolve(r)
		if err != nil {
			walkErr = err
			return
		}
		rj := regionJSON{
			Name:   r.name,
			Space:  string(r.space),
			Local:  [4]float64{r.box.X0, r.box.Y0, r.box.X1, r.box.Y1},
			Device: [4]float64{dev.X0, dev.Y0, dev.X1, dev.Y1},
		}
		if r.parent != nil {
			rj.Parent = r.parent.name
		}
		out.Regions = append(out.Regions, rj)
	})
	if walkErr != nil {
		return walkErr
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes the resolved region tree to a JSON file at path.
// This is a convenience wrapper around [Tree.WriteJSON] for file output.
func (t *Tree) ExportJSON(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return t.WriteJSON(f)
}
