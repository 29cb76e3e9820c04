// Package chunker packs segmented text units into token-bounded chunks.
//
// Packing is greedy and strictly ordered: units are counted one at a time,
// in input order, and accumulated into one open chunk that is flushed when
// the next unit would push its running total past the budget. A unit whose
// own count exceeds the budget is handled by a hard-split fallback that
// carves the unit into character windows, shrinking each window until its
// recount fits the budget or the window reaches a 50-character floor.
//
// A fragment that still exceeds the budget at the floor (a pathologically
// token-dense span) is emitted as-is: it is the unsplittable-minimum
// exception to the budget invariant, matching the treatment of oversized
// atomic rows in the row packer.
package chunker
