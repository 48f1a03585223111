package expand

import (
	"fmt"
)

// Catalog dedupes signature descriptors across one processing unit.
// The first registration of a shape names its carrier and records the
// declaration; structurally equal shapes seen later reuse it. Carrier
// names are numbered in first-encounter order, which keeps the emitted
// support module identical between runs.
type Catalog struct {
	inputs      map[string]*InputSig
	inputOrder  []*InputSig
	returns     map[string]*ReturnSig
	returnOrder []*ReturnSig
}

func NewCatalog() *Catalog {
	return &Catalog{
		inputs:  make(map[string]*InputSig),
		returns: make(map[string]*ReturnSig),
	}
}

// InternInput registers a parameter-list descriptor and returns the
// shared instance for its shape.
func (c *Catalog) InternInput(sig *InputSig) *InputSig {
	if existing, ok := c.inputs[sig.Key]; ok {
		return existing
	}
	sig.Item.Name = fmt.Sprintf("_gentests_Args%d", len(c.inputOrder))
	c.inputs[sig.Key] = sig
	c.inputOrder = append(c.inputOrder, sig)
	return sig
}

// InternReturn registers a return-type descriptor and returns the shared
// instance for its shape.
func (c *Catalog) InternReturn(sig *ReturnSig) *ReturnSig {
	if existing, ok := c.returns[sig.Key]; ok {
		return existing
	}
	sig.Item.Name = fmt.Sprintf("_gentests_Ret%d", len(c.returnOrder))
	c.returns[sig.Key] = sig
	c.returnOrder = append(c.returnOrder, sig)
	return sig
}

// Inputs returns the distinct parameter-list descriptors in
// first-encounter order.
func (c *Catalog) Inputs() []*InputSig { return c.inputOrder }

// Returns returns the distinct return-type descriptors in
// first-encounter order.
func (c *Catalog) Returns() []*ReturnSig { return c.returnOrder }

// Empty reports whether no descriptor was ever interned.
func (c *Catalog) Empty() bool {
	return len(c.inputOrder) == 0 && len(c.returnOrder) == 0
}
