package recipe

// Aggregate folds a set of entries into a single synthetic entry holding the
// field-wise sums of their effective grams. Feeding the result through
// Derive yields the recipe totals, so clamping and the ratio sentinels apply
// exactly once, to the sums, never per entry.
func Aggregate(entries []Entry) Entry {
	total := Entry{Servings: 1}
	for _, e := range entries {
		servings := sanitizeQuantity(e.Servings)
		total.ProteinGrams += sanitizeQuantity(e.ProteinGrams) * servings
		total.FatGrams += sanitizeQuantity(e.FatGrams) * servings
		total.TotalCarbGrams += sanitizeQuantity(e.TotalCarbGrams) * servings
		total.FiberGrams += sanitizeQuantity(e.FiberGrams) * servings
	}
	return total
}
