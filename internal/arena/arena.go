// Package arena is the interpreter-instance-scoped stand-in for the
// original's process-global allocation registry (spec.md §3's
// "Lifecycle" and §5's "Memory" sections): every value the symbol table
// binds is handed a Handle at creation, bulk-reclaimed by Cleanup at
// program exit, or individually reclaimed early by the `gc` built-in.
package arena

// Handle identifies one allocation. The zero Handle is reserved for
// values that were never registered (e.g. an intermediate expression
// result that's never bound to a name) — Free is a harmless no-op on it.
type Handle int

// Arena tracks every handle it has issued and which ones have been freed
// early via Free. It does not hold the underlying values themselves —
// those are owned by the symbol table's Cells and reclaimed by Go's own
// GC; Arena's job is purely the bookkeeping spec.md's gc/cleanup
// contract requires.
type Arena struct {
	issued int
	freed  map[Handle]bool
}

// New returns an empty Arena.
func New() *Arena {
	return &Arena{freed: make(map[Handle]bool)}
}

// Alloc issues a fresh Handle for a newly created value.
func (a *Arena) Alloc() Handle {
	a.issued++
	return Handle(a.issued)
}

// Free marks h reclaimed. It returns true the first time h is freed and
// false on every subsequent call (including on the zero Handle) — the
// idempotent replacement for the original's free-list double-insert bug
// (SPEC_FULL.md §4 item 3 / open question (a)).
func (a *Arena) Free(h Handle) bool {
	if h == 0 || a.freed[h] {
		return false
	}
	a.freed[h] = true
	return true
}

// IsFreed reports whether h has already been reclaimed.
func (a *Arena) IsFreed(h Handle) bool {
	return h != 0 && a.freed[h]
}

// Cleanup reclaims every handle issued so far, mirroring the bulk free
// pass the original runs once at process exit.
func (a *Arena) Cleanup() {
	for h := 1; h <= a.issued; h++ {
		a.freed[Handle(h)] = true
	}
}

// Len reports how many handles have been issued.
func (a *Arena) Len() int {
	return a.issued
}
