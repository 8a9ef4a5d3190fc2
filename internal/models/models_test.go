package models

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestQualityName(t *testing.T) {
	tests := []struct {
		q    int
		want string
	}{
		{0, "Normal"},
		{6, "Unique"},
		{11, "Haunted"},
		{12, "Collector's"},
		{4, "Quality 4"},
		{15, "Quality 15"},
	}
	for _, tt := range tests {
		if got := QualityName(tt.q); got != tt.want {
			t.Errorf("QualityName(%d) = %q, want %q", tt.q, got, tt.want)
		}
	}
}

func TestEnrichedItemStack(t *testing.T) {
	sell := 3.0
	e := EnrichedItem{Defindex: 5021, Quality: 6, Quantity: 4, CustomName: "Lucky", Name: "Key", SellRef: &sell}
	if !e.Priced() {
		t.Error("Priced() = false, want true")
	}
	want := ItemStack{Defindex: 5021, Quality: 6, Quantity: 4, CustomName: "Lucky"}
	if got := e.Stack(); got != want {
		t.Errorf("Stack() = %+v, want %+v", got, want)
	}
	if got := e.Stack().Key(); got != (StackKey{Defindex: 5021, Quality: 6, CustomName: "Lucky"}) {
		t.Errorf("Key() = %+v", got)
	}
}

func TestSnapshotClone(t *testing.T) {
	sell := 3.0
	orig := &DashboardSnapshot{
		TotalRef: 3,
		Items:    []EnrichedItem{{Defindex: 5021, Quantity: 1, SellRef: &sell}},
		Deals:    []DealItem{{Defindex: 5021, SpreadKeys: 0.5}},
	}
	c := orig.Clone()
	if diff := cmp.Diff(orig, c); diff != "" {
		t.Fatalf("Clone() mismatch (-want +got):\n%s", diff)
	}

	*c.Items[0].SellRef = 99
	c.Items[0].Quantity = 7
	c.Deals[0].SpreadKeys = 9
	if *orig.Items[0].SellRef != 3 || orig.Items[0].Quantity != 1 || orig.Deals[0].SpreadKeys != 0.5 {
		t.Errorf("mutating the clone changed the original: %+v", orig)
	}

	var nilSnap *DashboardSnapshot
	if nilSnap.Clone() != nil {
		t.Error("Clone() of nil snapshot is not nil")
	}
}
