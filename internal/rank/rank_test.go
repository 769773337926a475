package rank

import (
	"testing"

	"github.com/worldjourney/platoo/internal/gazetteer"
	"github.com/worldjourney/platoo/internal/models"
)

func testSnapshot(entries ...*models.GazetteerEntry) *gazetteer.Snapshot {
	return gazetteer.NewSnapshot(entries, nil)
}

func newTestRanker() *Ranker {
	return NewRanker(DefaultOptions(), nil)
}

func TestRank_ExactBeatsFuzzyRegardlessOfPopularity(t *testing.T) {
	snap := testSnapshot(
		&models.GazetteerEntry{Name: "Pai", Popularity: 5},
		&models.GazetteerEntry{Name: "Pak", Popularity: 100},
	)
	got := newTestRanker().Rank("pai", snap, 0)
	if len(got) != 2 {
		t.Fatalf("candidate count = %d, want 2", len(got))
	}
	if got[0].Entry.Name != "Pai" || got[0].Kind != models.MatchExact {
		t.Errorf("top = %s/%v, want exact Pai", got[0].Entry.Name, got[0].Kind)
	}
	if got[1].Kind != models.MatchFuzzy {
		t.Errorf("second kind = %v, want fuzzy", got[1].Kind)
	}
}

func TestRank_PopularityOrdersWithinKind(t *testing.T) {
	snap := testSnapshot(
		&models.GazetteerEntry{Name: "Bangkek", Popularity: 20},
		&models.GazetteerEntry{Name: "Bangkok", Popularity: 90},
	)
	// One edit from either name.
	got := newTestRanker().Rank("bangkk", snap, 0)
	if len(got) != 2 {
		t.Fatalf("candidate count = %d, want 2", len(got))
	}
	if got[0].Entry.Name != "Bangkok" {
		t.Errorf("top = %s, want the more popular Bangkok", got[0].Entry.Name)
	}
}

func TestRank_DeterministicNameTieBreak(t *testing.T) {
	snap := testSnapshot(
		&models.GazetteerEntry{Name: "วัดใต้", Popularity: 50},
		&models.GazetteerEntry{Name: "วัดเหนือ", Popularity: 50},
	)
	// Both match by substring with equal popularity and distance.
	first := newTestRanker().Rank("วัด", snap, 0)
	for i := 0; i < 5; i++ {
		again := newTestRanker().Rank("วัด", snap, 0)
		if len(again) != len(first) {
			t.Fatalf("run %d: count changed", i)
		}
		for j := range again {
			if again[j].Entry.Name != first[j].Entry.Name {
				t.Fatalf("run %d: order not deterministic", i)
			}
		}
	}
	if first[0].Entry.Name >= first[1].Entry.Name {
		t.Errorf("equal candidates must order by name, got %s before %s",
			first[0].Entry.Name, first[1].Entry.Name)
	}
}

func TestRank_LimitAndCap(t *testing.T) {
	entries := []*models.GazetteerEntry{
		{Name: "วัดหนึ่ง"}, {Name: "วัดสอง"}, {Name: "วัดสาม"}, {Name: "วัดสี่"},
	}
	snap := testSnapshot(entries...)
	r := newTestRanker()
	if got := r.Rank("วัด", snap, 2); len(got) != 2 {
		t.Errorf("limit 2 returned %d candidates", len(got))
	}
	if got := r.Rank("วัด", snap, 500); len(got) != 4 {
		t.Errorf("oversized limit returned %d candidates, want all 4", len(got))
	}
}

func TestRank_OneCandidatePerEntry(t *testing.T) {
	snap := testSnapshot(
		&models.GazetteerEntry{Name: "ตลาดน้ำอัมพวา", Aliases: []string{"อัมพวา", "Amphawa"}},
	)
	got := newTestRanker().Rank("อัมพวา", snap, 0)
	if len(got) != 1 {
		t.Fatalf("candidate count = %d, want 1 (best alias per entry)", len(got))
	}
	if got[0].Kind != models.MatchExact {
		t.Errorf("kind = %v, want exact via the อัมพวา alias", got[0].Kind)
	}
}

func TestResolve_ClearWinner(t *testing.T) {
	snap := testSnapshot(
		&models.GazetteerEntry{Name: "ตลาดน้ำอัมพวา", Aliases: []string{"อัมพวา"}, Popularity: 95},
		&models.GazetteerEntry{Name: "วัดบางกุ้ง", Popularity: 70},
	)
	res := newTestRanker().Resolve("อัมพวา", snap)
	if res.Outcome != models.OutcomeResolved {
		t.Fatalf("outcome = %v, want resolved", res.Outcome)
	}
	if res.Entry.Name != "ตลาดน้ำอัมพวา" {
		t.Errorf("entry = %s", res.Entry.Name)
	}
}

func TestResolve_AmbiguousNearTie(t *testing.T) {
	snap := testSnapshot(
		&models.GazetteerEntry{Name: "วัดกลาง บางแพ", Aliases: []string{"วัดกลาง"}, Group: "วัดกลาง", Popularity: 40},
		&models.GazetteerEntry{Name: "วัดกลาง เมืองสุพรรณ", Aliases: []string{"วัดกลาง"}, Group: "วัดกลาง", Popularity: 40},
	)
	res := newTestRanker().Resolve("วัดกลาง", snap)
	if res.Outcome != models.OutcomeAmbiguous {
		t.Fatalf("outcome = %v, want ambiguous", res.Outcome)
	}
	if len(res.Tied) != 2 {
		t.Fatalf("tied count = %d, want 2", len(res.Tied))
	}
	if res.Lead >= DefaultGuardLead {
		t.Errorf("lead = %v, must sit inside the guard band", res.Lead)
	}
}

func TestResolve_PopularityBreaksNearTie(t *testing.T) {
	snap := testSnapshot(
		&models.GazetteerEntry{Name: "วัดกลาง บางแพ", Aliases: []string{"วัดกลาง"}, Group: "วัดกลาง", Popularity: 90},
		&models.GazetteerEntry{Name: "วัดกลาง เมืองสุพรรณ", Aliases: []string{"วัดกลาง"}, Group: "วัดกลาง", Popularity: 10},
	)
	res := newTestRanker().Resolve("วัดกลาง", snap)
	if res.Outcome != models.OutcomeResolved {
		t.Fatalf("outcome = %v, want resolved on popularity lead", res.Outcome)
	}
	if res.Entry.Name != "วัดกลาง บางแพ" {
		t.Errorf("entry = %s, want the popular one", res.Entry.Name)
	}
}

func TestResolve_NoMatch(t *testing.T) {
	snap := testSnapshot(
		&models.GazetteerEntry{Name: "phuket", Popularity: 90},
	)
	r := newTestRanker()

	if res := r.Resolve("zzzzzz", snap); res.Outcome != models.OutcomeNoMatch {
		t.Errorf("gibberish outcome = %v, want no_match", res.Outcome)
	}
	// Two edits on a six-rune key stays under the short threshold.
	if res := r.Resolve("phakot", snap); res.Outcome != models.OutcomeNoMatch {
		t.Errorf("weak fuzzy outcome = %v, want no_match", res.Outcome)
	}
	if res := r.Resolve("", snap); res.Outcome != models.OutcomeNoMatch {
		t.Errorf("empty query outcome = %v, want no_match", res.Outcome)
	}
}

func TestClampGuardLead(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, DefaultGuardLead},
		{-1, DefaultGuardLead},
		{0.05, MinGuardLead},
		{0.12, 0.12},
		{0.5, MaxGuardLead},
	}
	for _, tt := range tests {
		if got := ClampGuardLead(tt.in); got != tt.want {
			t.Errorf("ClampGuardLead(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
