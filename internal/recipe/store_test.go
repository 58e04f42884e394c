package recipe

import (
	"errors"
	"math"
	"testing"
)

func TestAddEntryDefaults(t *testing.T) {
	t.Parallel()

	s := NewStore()
	id := s.AddEntry(EntryInit{})
	if id == "" {
		t.Fatal("expected a non-empty id")
	}
	if s.Len() != 1 {
		t.Fatalf("expected 1 entry, got %d", s.Len())
	}

	e, ok := s.Entry(id)
	if !ok {
		t.Fatalf("entry %q not found after add", id)
	}
	if e.ProteinGrams != 0 || e.FatGrams != 0 || e.TotalCarbGrams != 0 || e.FiberGrams != 0 {
		t.Fatalf("expected zero macros, got %+v", e)
	}
	if e.Servings != 1 {
		t.Fatalf("expected default servings 1, got %v", e.Servings)
	}
}

func TestAddEntryAssignsUniqueIDs(t *testing.T) {
	t.Parallel()

	s := NewStore()
	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		id := s.AddEntry(EntryInit{})
		if seen[id] {
			t.Fatalf("id %q assigned twice", id)
		}
		seen[id] = true
	}
}

func TestEntriesKeepInsertionOrder(t *testing.T) {
	t.Parallel()

	s := NewStore()
	s.AddEntry(EntryInit{Label: "eggs"})
	s.AddEntry(EntryInit{Label: "salmon"})
	s.AddEntry(EntryInit{Label: "spinach"})

	entries := s.Entries()
	want := []string{"eggs", "salmon", "spinach"}
	if len(entries) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(entries))
	}
	for i, label := range want {
		if entries[i].Label != label {
			t.Fatalf("entry %d label = %q, want %q", i, entries[i].Label, label)
		}
	}

	entries[0].Label = "clobbered"
	if got := s.Entries()[0].Label; got != "eggs" {
		t.Fatalf("mutating the snapshot leaked into the store: %q", got)
	}
}

func TestUpdateFieldRecomputesDerived(t *testing.T) {
	t.Parallel()

	s := NewStore()
	id := s.AddEntry(EntryInit{ProteinGrams: 30, FatGrams: 10, TotalCarbGrams: 5, FiberGrams: 5})

	d, ok := s.Derived(id)
	if !ok {
		t.Fatalf("derived for %q not found", id)
	}
	if d.Ratio != (Ratio{Kind: RatioFinite, Value: 3}) {
		t.Fatalf("expected ratio 3, got %+v", d.Ratio)
	}

	if err := s.UpdateField(id, FieldFat, 0); err != nil {
		t.Fatalf("update fat: %v", err)
	}
	d, _ = s.Derived(id)
	if d.Ratio.Kind != RatioInfinite {
		t.Fatalf("expected infinite ratio after zeroing energy, got %+v", d.Ratio)
	}

	if err := s.UpdateField(id, FieldServings, 2); err != nil {
		t.Fatalf("update servings: %v", err)
	}
	d, _ = s.Derived(id)
	if d.ProteinGrams != 60 {
		t.Fatalf("expected servings to scale protein to 60, got %v", d.ProteinGrams)
	}
}

func TestUpdateFieldRejectsInvalidValues(t *testing.T) {
	t.Parallel()

	s := NewStore()
	id := s.AddEntry(EntryInit{ProteinGrams: 10})
	before, _ := s.Derived(id)
	version := s.Version()

	for _, bad := range []float64{-1, math.NaN(), math.Inf(1), math.Inf(-1)} {
		err := s.UpdateField(id, FieldProtein, bad)
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("UpdateField(%v) error = %v, want ErrInvalidInput", bad, err)
		}
	}

	e, _ := s.Entry(id)
	if e.ProteinGrams != 10 {
		t.Fatalf("rejected update changed protein to %v", e.ProteinGrams)
	}
	after, _ := s.Derived(id)
	if after != before {
		t.Fatalf("rejected update changed derived values: %+v vs %+v", after, before)
	}
	if s.Version() != version {
		t.Fatalf("rejected update bumped version from %d to %d", version, s.Version())
	}
}

func TestUpdateFieldRejectsUnknownField(t *testing.T) {
	t.Parallel()

	s := NewStore()
	id := s.AddEntry(EntryInit{})
	if err := s.UpdateField(id, Field("calories"), 1); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown field, got %v", err)
	}
}

func TestUpdateFieldAbsentIDIsNoOp(t *testing.T) {
	t.Parallel()

	s := NewStore()
	s.AddEntry(EntryInit{ProteinGrams: 5})
	version := s.Version()

	if err := s.UpdateField("missing", FieldProtein, 7); err != nil {
		t.Fatalf("expected silent no-op, got %v", err)
	}
	if s.Version() != version {
		t.Fatalf("no-op update bumped version from %d to %d", version, s.Version())
	}
}

func TestRemoveEntryRecomputesAggregate(t *testing.T) {
	t.Parallel()

	s := NewStore()
	first := s.AddEntry(EntryInit{ProteinGrams: 10, FatGrams: 5, TotalCarbGrams: 5})
	s.AddEntry(EntryInit{ProteinGrams: 20, FatGrams: 5, TotalCarbGrams: 5, FiberGrams: 5})

	if d := s.AggregateDerived(); d.Ratio != (Ratio{Kind: RatioFinite, Value: 2}) {
		t.Fatalf("expected aggregate ratio 2 before removal, got %+v", d.Ratio)
	}

	s.RemoveEntry(first)

	entries := s.Entries()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry after removal, got %d", len(entries))
	}
	if entries[0].ID == first {
		t.Fatal("removed entry still listed")
	}

	d := s.AggregateDerived()
	want := Derived{
		ProteinGrams: 20,
		NetCarbGrams: 0,
		EnergyGrams:  5,
		Ratio:        Ratio{Kind: RatioFinite, Value: 4},
	}
	if d != want {
		t.Fatalf("aggregate after removal = %+v, want %+v", d, want)
	}

	if _, ok := s.Derived(first); ok {
		t.Fatal("derived values survive their entry")
	}
}

func TestRemoveEntryAbsentIDIsNoOp(t *testing.T) {
	t.Parallel()

	s := NewStore()
	s.AddEntry(EntryInit{})
	version := s.Version()

	s.RemoveEntry("missing")
	if s.Len() != 1 {
		t.Fatalf("expected 1 entry, got %d", s.Len())
	}
	if s.Version() != version {
		t.Fatalf("no-op remove bumped version from %d to %d", version, s.Version())
	}
}

func TestSetLabelAndName(t *testing.T) {
	t.Parallel()

	s := NewStore()
	id := s.AddEntry(EntryInit{Label: "chikcen"})

	s.SetLabel(id, "chicken")
	if e, _ := s.Entry(id); e.Label != "chicken" {
		t.Fatalf("label = %q, want chicken", e.Label)
	}
	s.SetLabel("missing", "ignored")

	s.SetName("Dinner")
	if s.Name() != "Dinner" {
		t.Fatalf("name = %q, want Dinner", s.Name())
	}
}

func TestReplaceAndReset(t *testing.T) {
	t.Parallel()

	s := NewStore()
	s.AddEntry(EntryInit{Label: "old"})

	servings := 2.0
	s.Replace("Lunch", []EntryInit{
		{Label: "beef", ProteinGrams: 26, FatGrams: 15},
		{Label: "rice", TotalCarbGrams: 45, FiberGrams: 1, Servings: &servings},
	})

	if s.Name() != "Lunch" {
		t.Fatalf("name = %q, want Lunch", s.Name())
	}
	entries := s.Entries()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Label != "beef" || entries[1].Label != "rice" {
		t.Fatalf("unexpected labels: %q, %q", entries[0].Label, entries[1].Label)
	}
	if entries[0].ID == "" || entries[1].ID == "" || entries[0].ID == entries[1].ID {
		t.Fatalf("replace assigned bad ids: %q, %q", entries[0].ID, entries[1].ID)
	}
	if entries[1].Servings != 2 {
		t.Fatalf("servings = %v, want 2", entries[1].Servings)
	}

	s.Reset()
	if s.Len() != 0 || s.Name() != "" {
		t.Fatalf("reset left state behind: %d entries, name %q", s.Len(), s.Name())
	}
	if d := s.AggregateDerived(); d.Ratio.Kind != RatioUndefined {
		t.Fatalf("reset aggregate ratio = %+v, want undefined", d.Ratio)
	}
}

func TestSubscribeSeesEveryMutation(t *testing.T) {
	t.Parallel()

	s := NewStore()
	var changes []Change
	s.Subscribe(func(c Change) { changes = append(changes, c) })

	id := s.AddEntry(EntryInit{})
	if err := s.UpdateField(id, FieldProtein, 12); err != nil {
		t.Fatalf("update: %v", err)
	}
	s.SetLabel(id, "tuna")
	s.SetName("Snack")
	s.RemoveEntry(id)
	s.Replace("", nil)

	wantKinds := []ChangeKind{ChangeAdd, ChangeUpdate, ChangeLabel, ChangeName, ChangeRemove, ChangeReplace}
	if len(changes) != len(wantKinds) {
		t.Fatalf("expected %d changes, got %d: %+v", len(wantKinds), len(changes), changes)
	}
	for i, kind := range wantKinds {
		if changes[i].Kind != kind {
			t.Fatalf("change %d kind = %v, want %v", i, changes[i].Kind, kind)
		}
	}
	if changes[0].EntryID != id || changes[1].EntryID != id || changes[4].EntryID != id {
		t.Fatalf("changes carry wrong entry ids: %+v", changes)
	}
	if changes[1].Field != FieldProtein {
		t.Fatalf("update change field = %q, want protein", changes[1].Field)
	}
}

func TestRejectedMutationsDoNotNotify(t *testing.T) {
	t.Parallel()

	s := NewStore()
	id := s.AddEntry(EntryInit{})

	var count int
	s.Subscribe(func(Change) { count++ })

	if err := s.UpdateField(id, FieldProtein, -3); err == nil {
		t.Fatal("expected rejection")
	}
	s.RemoveEntry("missing")
	if err := s.UpdateField("missing", FieldFat, 1); err != nil {
		t.Fatalf("no-op update: %v", err)
	}

	if count != 0 {
		t.Fatalf("expected no notifications, got %d", count)
	}
}

func TestDerivedReadsAreStable(t *testing.T) {
	t.Parallel()

	s := NewStore()
	id := s.AddEntry(EntryInit{ProteinGrams: 25, FatGrams: 3, TotalCarbGrams: 6, FiberGrams: 2})

	first, ok := s.Derived(id)
	if !ok {
		t.Fatalf("derived for %q not found", id)
	}
	second, _ := s.Derived(id)
	if first != second {
		t.Fatalf("repeated reads differ without mutation: %+v vs %+v", first, second)
	}

	version := s.Version()
	s.Entries()
	s.AggregateDerived()
	s.AggregateEntry()
	if s.Version() != version {
		t.Fatal("reads bumped the version")
	}
}
