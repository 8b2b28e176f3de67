package cpu

// Quirks selects between the COSMAC VIP behaviour and the behaviour of
// later interpreters where the two disagree. The zero value is the modern
// behaviour.
type Quirks struct {
	// ShiftUsesVY makes 8xy6/8xyE copy V[y] into V[x] before shifting.
	ShiftUsesVY bool
	// LoadStoreIncrementsI makes Fx55/Fx65 leave I pointing past the last
	// register transferred (I += x+1).
	LoadStoreIncrementsI bool
	// ClipSprites discards sprite pixels past the right and bottom edges
	// instead of wrapping them to the opposite side.
	ClipSprites bool
}

// LegacyQuirks matches the original COSMAC VIP interpreter.
var LegacyQuirks = Quirks{
	ShiftUsesVY:          true,
	LoadStoreIncrementsI: true,
	ClipSprites:          true,
}
