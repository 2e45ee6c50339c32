package chain

// ExtractChain returns the chain with the given ID from known.
func ExtractChain(known []Chain, id uint64) (Chain, error) {
	for _, c := range known {
		if c.ID == id {
			return c, nil
		}
	}

	return Chain{}, &ChainNotFoundError{ID: id}
}

// DeriveChain returns the chain a call runs against. A per call override replaces the default in
// full; the two descriptors are never merged. The result is nil when neither is set.
func DeriveChain(def, override *Chain) *Chain {
	if override != nil {
		return override
	}

	return def
}

// ChainParameter describes the chain argument of a call.
type ChainParameter struct {
	// Required is true when no default chain is configured, so every call must name one.
	Required bool
	// Nullable is always true: a call may explicitly pass no chain.
	Nullable bool
}

// GetChainParameter returns the shape of the chain argument for a client whose default chain is
// def.
func GetChainParameter(def *Chain) ChainParameter {
	return ChainParameter{Required: def == nil, Nullable: true}
}

// Resolve picks the chain for one call. explicitNull means the caller deliberately passed no
// chain, which opts out of the default and may yield nil.
func (p ChainParameter) Resolve(def, override *Chain, explicitNull bool) *Chain {
	if explicitNull && p.Nullable {
		return nil
	}

	return DeriveChain(def, override)
}
