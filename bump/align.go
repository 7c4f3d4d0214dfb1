package bump

// AlignUp rounds addr up to the next multiple of align.
// align MUST be a power of two; this precondition is not checked.
func AlignUp(addr, align uintptr) uintptr {
	return (addr + align - 1) &^ (align - 1)
}
